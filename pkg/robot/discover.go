package robot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hipsterbrown/feetech-servo/feetech"
	"go.bug.st/serial"
)

// ScanOptions controls servo discovery.
type ScanOptions struct {
	MinID    int
	MaxID    int
	BaudRate int
	Timeout  time.Duration // per port
}

// FoundServo is a servo that answered a bus scan.
type FoundServo struct {
	Port  string
	ID    int
	Model string
}

func (o ScanOptions) withDefaults() ScanOptions {
	if o.MinID <= 0 {
		o.MinID = 1
	}
	if o.MaxID < o.MinID {
		o.MaxID = o.MinID + 5
	}
	if o.BaudRate <= 0 {
		o.BaudRate = 1_000_000
	}
	if o.Timeout <= 0 {
		o.Timeout = 2 * time.Second
	}
	return o
}

// Discover scans every serial port for Feetech STS servos in the ID range.
// Ports that fail to open or answer are skipped.
func Discover(ctx context.Context, opts ScanOptions) ([]FoundServo, error) {
	opts = opts.withDefaults()

	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("list serial ports: %w", err)
	}

	var found []FoundServo
	for _, port := range ports {
		// Skip Bluetooth ports on macOS
		if strings.Contains(port, "Bluetooth") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return found, err
		}

		servos, err := scanPort(ctx, port, opts)
		if err != nil {
			continue
		}
		found = append(found, servos...)
	}

	return found, nil
}

func scanPort(ctx context.Context, port string, opts ScanOptions) ([]FoundServo, error) {
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	bus, err := feetech.NewBus(feetech.BusConfig{
		Port:     port,
		BaudRate: opts.BaudRate,
		Protocol: feetech.ProtocolSTS,
		Timeout:  100 * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("open bus: %w", err)
	}
	defer bus.Close()

	servos, err := bus.Scan(ctx, opts.MinID, opts.MaxID)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", port, err)
	}

	out := make([]FoundServo, 0, len(servos))
	for _, s := range servos {
		out = append(out, FoundServo{
			Port:  port,
			ID:    s.ID,
			Model: fmt.Sprint(s.Model),
		})
	}
	return out, nil
}

// ServoItems turns discovered servos into hardware items laid out along the
// bottom edge of the chassis. Duplicate IDs on other ports get a port suffix.
func ServoItems(servos []FoundServo) Hardware {
	items := make(Hardware, 0, len(servos))
	seen := make(map[string]bool, len(servos))
	for i, s := range servos {
		name := fmt.Sprintf("servo%d", s.ID)
		if seen[name] {
			name = fmt.Sprintf("%s@%s", name, s.Port)
		}
		seen[name] = true
		items = append(items, Item{
			Name:     name,
			Type:     Servo,
			Position: Position{X: 60 + float64(i%4)*25, Y: 165},
		})
	}
	return items
}
