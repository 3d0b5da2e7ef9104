package robot

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/gwillem/ftcpreview/pkg/motion"
)

func TestHardware_Has(t *testing.T) {
	hw := Hardware{
		{Name: LeftFront, Type: Motor},
		{Name: "claw", Type: Servo},
	}

	tests := []struct {
		name     string
		typ      HardwareType
		expected bool
	}{
		{LeftFront, Motor, true},
		{LeftFront, Servo, false}, // name matches, type does not
		{"claw", Servo, true},
		{RightRear, Motor, false},
	}

	for _, tt := range tests {
		if got := hw.Has(tt.name, tt.typ); got != tt.expected {
			t.Errorf("Has(%s, %s) = %v, want %v", tt.name, tt.typ, got, tt.expected)
		}
	}
}

func TestHighlights(t *testing.T) {
	mounts := DefaultMounts()

	lit := Highlights(Hardware{
		{Name: LeftFront, Type: Motor},
		{Name: RightRear, Type: Motor},
		{Name: "colorSensor", Type: Sensor},
	}, mounts)

	expected := map[string]bool{
		LeftFront:  true,
		RightFront: false,
		LeftRear:   false,
		RightRear:  true,
		IMU:        true, // any sensor lights the IMU
	}
	for name, want := range expected {
		if lit[name] != want {
			t.Errorf("Highlights()[%s] = %v, want %v", name, lit[name], want)
		}
	}

	empty := Highlights(nil, mounts)
	for name, on := range empty {
		if on {
			t.Errorf("Highlights(nil)[%s] = true, want false", name)
		}
	}
}

func TestHardware_Validate(t *testing.T) {
	if err := (Hardware{{Name: "x", Type: Motor}}).Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	if err := (Hardware{{Name: "", Type: Motor}}).Validate(); err == nil {
		t.Error("Validate() should reject a missing name")
	}
	if err := (Hardware{{Name: "x", Type: "wheel"}}).Validate(); err == nil {
		t.Error("Validate() should reject an unknown type")
	}
}

func TestConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preview.json")

	cfg, ok := Preset("autonomous")
	if !ok {
		t.Fatal("Preset(autonomous) not found")
	}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}
	if !ConfigExists(path) {
		t.Fatal("ConfigExists() = false after SaveTo")
	}

	loaded, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadConfigFrom() error = %v", err)
	}
	if loaded.Caption != cfg.Caption {
		t.Errorf("Caption = %q, want %q", loaded.Caption, cfg.Caption)
	}
	if len(loaded.Sequence) != 4 || loaded.Sequence[1].Type != motion.RotateRight {
		t.Errorf("Sequence = %+v", loaded.Sequence)
	}
	if loaded.Sequence[3].Power != nil {
		t.Error("stop command should have no power")
	}
	if err := loaded.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg := Config{}.WithDefaults()

	if cfg.Units != motion.DefaultUnits() {
		t.Errorf("Units = %+v, want defaults", cfg.Units)
	}
	if cfg.SettleDelay() != 100*time.Millisecond {
		t.Errorf("SettleDelay() = %v, want 100ms", cfg.SettleDelay())
	}
	if cfg.FrameInterval() != time.Second/60 {
		t.Errorf("FrameInterval() = %v, want 1/60s", cfg.FrameInterval())
	}

	custom := Config{SettleMs: -1, FPS: 30}.WithDefaults()
	if custom.SettleDelay() >= 0 {
		t.Errorf("SettleDelay() = %v, want negative (disabled)", custom.SettleDelay())
	}
	if custom.FrameInterval() != time.Second/30 {
		t.Errorf("FrameInterval() = %v, want 1/30s", custom.FrameInterval())
	}
}

func TestPresets(t *testing.T) {
	for _, name := range PresetNames() {
		cfg, ok := Preset(name)
		if !ok {
			t.Errorf("Preset(%s) missing", name)
			continue
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("Preset(%s).Validate() error = %v", name, err)
		}
	}

	// Presets are copies.
	a, _ := Preset("sensors")
	a.Hardware[0].Name = "changed"
	b, _ := Preset("sensors")
	if b.Hardware[0].Name != LeftFront {
		t.Error("Preset() returned shared state")
	}

	if _, ok := Preset("nope"); ok {
		t.Error("Preset(nope) should not exist")
	}

	// Captions are shown exactly as the page wrote them.
	movement, _ := Preset("movement-systems")
	if want := "Mecanum hareket: İleri, sağa strafe, geri, sola strafe"; movement.Caption != want {
		t.Errorf("movement-systems caption = %q, want %q", movement.Caption, want)
	}
}

func TestViewport_Cell(t *testing.T) {
	v := Viewport{MinX: -50, MaxX: 50, MinY: -50, MaxY: 50, Cols: 11, Rows: 11}

	tests := []struct {
		x, y     float64
		col, row int
		ok       bool
	}{
		{0, 0, 5, 5, true},
		{-50, -50, 0, 0, true},
		{50, 50, 10, 10, true},
		{0, -40, 5, 1, true},
		{60, 0, 0, 0, false},
	}

	for _, tt := range tests {
		col, row, ok := v.Cell(tt.x, tt.y)
		if ok != tt.ok || (ok && (col != tt.col || row != tt.row)) {
			t.Errorf("Cell(%v, %v) = %d, %d, %v; want %d, %d, %v", tt.x, tt.y, col, row, ok, tt.col, tt.row, tt.ok)
		}
	}
}

func TestViewport_RoundTrip(t *testing.T) {
	v := CenteredViewport(40, 21, 11)

	for col := 0; col < v.Cols; col++ {
		for row := 0; row < v.Rows; row++ {
			x, y := v.Point(col, row)
			c, r, ok := v.Cell(x, y)
			if !ok || c != col || r != row {
				t.Errorf("round-trip failed: (%d,%d) -> (%.2f,%.2f) -> (%d,%d,%v)", col, row, x, y, c, r, ok)
			}
		}
	}

	if x, _ := v.Point(v.Cols-1, 0); math.Abs(x-50) > 1e-9 {
		t.Errorf("right edge x = %f, want 50", x)
	}
}

func TestHeadingGlyph(t *testing.T) {
	tests := []struct {
		deg      float64
		expected string
	}{
		{0, "↑"},
		{90, "→"},
		{180, "↓"},
		{-90, "←"},
		{450, "→"},
		{40, "↗"},
	}

	for _, tt := range tests {
		if got := HeadingGlyph(tt.deg); got != tt.expected {
			t.Errorf("HeadingGlyph(%v) = %s, want %s", tt.deg, got, tt.expected)
		}
	}
}

func TestServoItems(t *testing.T) {
	items := ServoItems([]FoundServo{
		{Port: "/dev/ttyUSB0", ID: 1},
		{Port: "/dev/ttyUSB0", ID: 2},
		{Port: "/dev/ttyUSB1", ID: 1},
	})

	if len(items) != 3 {
		t.Fatalf("ServoItems() returned %d items, want 3", len(items))
	}
	if items[0].Name != "servo1" || items[1].Name != "servo2" {
		t.Errorf("names = %s, %s", items[0].Name, items[1].Name)
	}
	if items[2].Name != "servo1@/dev/ttyUSB1" {
		t.Errorf("duplicate name = %s", items[2].Name)
	}
	for _, it := range items {
		if it.Type != Servo {
			t.Errorf("%s type = %s, want servo", it.Name, it.Type)
		}
	}
	if err := items.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}
