package server

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gwillem/ftcpreview/pkg/playback"
	"github.com/gwillem/ftcpreview/pkg/robot"
)

// ErrNotFound is returned for unknown preview IDs.
var ErrNotFound = errors.New("preview not found")

// Instance is one mounted preview panel with its own engine.
type Instance struct {
	ID        string
	Caption   string
	Hardware  robot.Hardware
	Engine    *playback.Engine
	CreatedAt time.Time

	done chan struct{}
}

// Done is closed when the instance is removed.
func (i *Instance) Done() <-chan struct{} {
	return i.done
}

// Manager tracks preview instances. Engines themselves are only touched on
// the loop goroutine.
type Manager struct {
	loop      *playback.Loop
	logf      func(format string, args ...any)
	instances map[string]*Instance
	mutex     sync.RWMutex
}

func NewManager(loop *playback.Loop, logf func(format string, args ...any)) *Manager {
	return &Manager{
		loop:      loop,
		logf:      logf,
		instances: make(map[string]*Instance),
	}
}

// Create validates cfg and mounts a new idle preview.
func (m *Manager) Create(cfg robot.Config) (*Instance, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	var logf func(string, ...any)
	if m.logf != nil {
		logf = func(format string, args ...any) {
			m.logf("[%s] "+format, append([]any{id[:8]}, args...)...)
		}
	}

	engine, err := playback.NewEngine(playback.Config{
		Playlist:    cfg.Sequence,
		Scheduler:   m.loop,
		Units:       cfg.Units,
		SettleDelay: cfg.SettleDelay(),
		Logf:        logf,
	})
	if err != nil {
		return nil, err
	}

	inst := &Instance{
		ID:        id,
		Caption:   cfg.Caption,
		Hardware:  cfg.Hardware,
		Engine:    engine,
		CreatedAt: time.Now(),
		done:      make(chan struct{}),
	}

	m.mutex.Lock()
	m.instances[id] = inst
	m.mutex.Unlock()

	return inst, nil
}

func (m *Manager) Get(id string) (*Instance, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	inst, exists := m.instances[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return inst, nil
}

// List returns instances oldest first.
func (m *Manager) List() []*Instance {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	out := make([]*Instance, 0, len(m.instances))
	for _, inst := range m.instances {
		out = append(out, inst)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.instances)
}

// Remove unmounts an instance, cancelling its pending frames.
func (m *Manager) Remove(ctx context.Context, id string) error {
	m.mutex.Lock()
	inst, exists := m.instances[id]
	if !exists {
		m.mutex.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(m.instances, id)
	m.mutex.Unlock()

	close(inst.done)
	return m.loop.Call(ctx, inst.Engine.Close)
}

// CloseAll removes every instance.
func (m *Manager) CloseAll(ctx context.Context) {
	for _, inst := range m.List() {
		_ = m.Remove(ctx, inst.ID)
	}
}
