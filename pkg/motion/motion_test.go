package motion

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestProgress(t *testing.T) {
	tests := []struct {
		elapsed  time.Duration
		duration time.Duration
		expected float64
	}{
		{0, time.Second, 0},
		{-5 * time.Millisecond, time.Second, 0}, // clock skew
		{250 * time.Millisecond, time.Second, 0.25},
		{time.Second, time.Second, 1},
		{3 * time.Second, time.Second, 1}, // late tick never overshoots
		{0, 0, 1},                         // zero duration completes at once
		{time.Second, 0, 1},
	}

	for _, tt := range tests {
		got := Progress(tt.elapsed, tt.duration)
		if got != tt.expected {
			t.Errorf("Progress(%v, %v) = %f, want %f", tt.elapsed, tt.duration, got, tt.expected)
		}
	}
}

func TestDelta(t *testing.T) {
	u := Units{Distance: 40, TurnDeg: 90}

	tests := []struct {
		typ      CommandType
		p        float64
		expected Pose
	}{
		{Forward, 1, Pose{Y: -40}},
		{Forward, 0.5, Pose{Y: -20}},
		{Backward, 1, Pose{Y: 40}},
		{Left, 0.25, Pose{X: -10}},
		{Right, 1, Pose{X: 40}},
		{RotateLeft, 1, Pose{Heading: -90}},
		{RotateRight, 0.5, Pose{Heading: 45}},
		{Stop, 1, Pose{}},
		{Forward, 2, Pose{Y: -40}}, // clamped
		{Right, -1, Pose{}},        // clamped
	}

	for _, tt := range tests {
		got := Delta(tt.typ, tt.p, u)
		if got != tt.expected {
			t.Errorf("Delta(%s, %f) = %+v, want %+v", tt.typ, tt.p, got, tt.expected)
		}
	}
}

func TestDelta_IgnoresPower(t *testing.T) {
	u := DefaultUnits()
	slow := Command{Type: Forward, DurationMs: 1000, Power: PowerOf(0.1)}
	fast := Command{Type: Forward, DurationMs: 1000, Power: PowerOf(1)}

	if Delta(slow.Type, 1, u) != Delta(fast.Type, 1, u) {
		t.Error("power must not change the delta")
	}
}

func TestPlaylist_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cmds    []Command
		wantErr bool
	}{
		{"empty", nil, false},
		{"valid", []Command{{Type: Forward, DurationMs: 1000}, {Type: Stop}}, false},
		{"negative duration", []Command{{Type: Forward, DurationMs: 10}, {Type: Left, DurationMs: -1}}, true},
		{"unknown type", []Command{{Type: "jump", DurationMs: 100}}, true},
		{"longest duration", []Command{{Type: Forward, DurationMs: MaxDurationMs}}, false},
		{"duration overflows", []Command{{Type: Forward, DurationMs: MaxDurationMs + 1}}, true},
		{"missing type", []Command{{DurationMs: 100}}, true},
	}

	for _, tt := range tests {
		_, err := NewPlaylist(tt.cmds...)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: NewPlaylist() error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrInvalidCommand) {
			t.Errorf("%s: error %v does not wrap ErrInvalidCommand", tt.name, err)
		}
	}
}

func TestParsePlaylist(t *testing.T) {
	data := []byte(`[
		{"type": "forward", "duration": 2000, "power": 0.5},
		{"type": "rotate-right", "duration": 1000, "power": 0.3},
		{"type": "stop", "duration": 500}
	]`)

	p, err := ParsePlaylist(data)
	if err != nil {
		t.Fatalf("ParsePlaylist() error = %v", err)
	}
	if len(p) != 3 {
		t.Fatalf("ParsePlaylist() returned %d commands, want 3", len(p))
	}
	if p[1].Type != RotateRight || p[1].Duration() != time.Second {
		t.Errorf("command 1 = %+v", p[1])
	}
	if p[2].Power != nil {
		t.Errorf("command 2 power = %v, want nil", *p[2].Power)
	}
	if p.TotalDuration() != 3500*time.Millisecond {
		t.Errorf("TotalDuration() = %v, want 3.5s", p.TotalDuration())
	}

	if _, err := ParsePlaylist([]byte(`[{"type": "forward", "duration": -1}]`)); !errors.Is(err, ErrInvalidCommand) {
		t.Errorf("ParsePlaylist(negative) error = %v, want ErrInvalidCommand", err)
	}
}

func TestPlaylist_FinalAndExtent(t *testing.T) {
	u := Units{Distance: 40, TurnDeg: 90}
	p := Playlist{
		{Type: Forward, DurationMs: 1000},
		{Type: Right, DurationMs: 1000},
		{Type: Backward, DurationMs: 1000},
		{Type: RotateRight, DurationMs: 500},
	}

	final := p.Final(Origin, u)
	want := Pose{X: 40, Y: 0, Heading: 90}
	if final != want {
		t.Errorf("Final() = %+v, want %+v", final, want)
	}

	if ext := p.Extent(u); math.Abs(ext-40) > 1e-9 {
		t.Errorf("Extent() = %f, want 40", ext)
	}
}
