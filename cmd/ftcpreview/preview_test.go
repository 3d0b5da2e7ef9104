package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gwillem/ftcpreview/pkg/motion"
	"github.com/gwillem/ftcpreview/pkg/playback"
	"github.com/gwillem/ftcpreview/pkg/robot"
)

// drain runs cmd and every command it produces through the model until
// nothing is left, the way the bubbletea runtime would.
func drain(t *testing.T, m tea.Model, cmd tea.Cmd) tea.Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 10_000 {
			t.Fatal("preview never settled")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case nil:
		default:
			var c tea.Cmd
			m, c = m.Update(msg)
			queue = append(queue, c)
		}
	}
	return m
}

func TestTeaScheduler_Flush(t *testing.T) {
	s := &teaScheduler{frame: 0}
	if cmd := s.flush(); cmd != nil {
		t.Error("flush with nothing pending should return nil")
	}

	fired := 0
	s.AfterFrame(func() { fired++ })
	s.AfterDelay(0, func() { fired++ })
	cmd := s.flush()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if len(s.pending) != 0 {
		t.Errorf("pending = %d after flush, want 0", len(s.pending))
	}

	var m tea.Model = callbackRecorder{}
	drain(t, m, cmd)
	if fired != 2 {
		t.Errorf("fired = %d, want 2", fired)
	}
}

type callbackRecorder struct{}

func (callbackRecorder) Init() tea.Cmd { return nil }
func (callbackRecorder) View() string  { return "" }
func (r callbackRecorder) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if fn, ok := msg.(callbackMsg); ok {
		fn()
	}
	return r, nil
}

func TestPreviewModel_Autorun(t *testing.T) {
	cfg := robot.Config{
		Hardware: robot.Hardware{{Name: robot.LeftFront, Type: robot.Motor}},
		Sequence: motion.Playlist{
			{Type: motion.Forward, DurationMs: 30},
			{Type: motion.RotateRight, DurationMs: 20},
		},
		SettleMs: -1,
		FPS:      200,
	}.WithDefaults()

	model, err := newPreviewModel(cfg, true)
	if err != nil {
		t.Fatalf("newPreviewModel: %v", err)
	}
	if !model.highlights[robot.LeftFront] || model.highlights[robot.IMU] {
		t.Errorf("highlights = %v", model.highlights)
	}

	final := drain(t, model, model.Init()).(previewModel)

	state := final.engine.State()
	if state.Phase != playback.Stopped || state.Index != 2 {
		t.Errorf("state = %+v, want stopped at 2", state)
	}
	want := motion.Pose{Y: -40, Heading: 90}
	if got := final.engine.Pose(); got != want {
		t.Errorf("pose = %v, want %v", got, want)
	}
	if len(final.panel.trail) == 0 {
		t.Error("no poses recorded in the trail")
	}
	if final.View() == "" {
		t.Error("empty view")
	}
}

func TestPreviewModel_ResetClearsHistory(t *testing.T) {
	cfg := robot.Config{
		Sequence: motion.Playlist{{Type: motion.Forward, DurationMs: 30}},
		SettleMs: -1,
		FPS:      200,
	}.WithDefaults()

	model, err := newPreviewModel(cfg, true)
	if err != nil {
		t.Fatalf("newPreviewModel: %v", err)
	}
	played := drain(t, model, model.Init()).(previewModel)

	empty := newPoseChart(played.chartWidth, played.extent)
	empty.DrawAll()
	if played.panel.chart.View() == empty.View() {
		t.Fatal("chart shows no history after playing")
	}

	m, _ := played.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	reset := m.(previewModel)

	if len(reset.panel.trail) != 0 {
		t.Errorf("trail has %d poses after reset, want 0", len(reset.panel.trail))
	}
	if reset.panel.chart.View() != empty.View() {
		t.Error("chart still shows the abandoned run after reset")
	}
	if got := reset.engine.State(); got.Phase != playback.Idle || got.Index != 0 {
		t.Errorf("state = %+v after reset, want idle at 0", got)
	}
}

func TestPreviewModel_StopIgnoresPendingTicks(t *testing.T) {
	cfg := robot.Config{
		Sequence: motion.Playlist{{Type: motion.Right, DurationMs: 40}},
		FPS:      200,
	}.WithDefaults()

	model, err := newPreviewModel(cfg, false)
	if err != nil {
		t.Fatalf("newPreviewModel: %v", err)
	}

	m, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if cmd == nil {
		t.Fatal("run should schedule a frame")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})

	final := drain(t, m, cmd).(previewModel)
	if got := final.engine.Pose(); got != motion.Origin {
		t.Errorf("pose = %v after stop, want origin", got)
	}
	if final.engine.State().Phase != playback.Stopped {
		t.Errorf("phase = %v, want stopped", final.engine.State().Phase)
	}
}

func TestConfigOptions_Load(t *testing.T) {
	cfg, err := ConfigOptions{Preset: "autonomous"}.load()
	if err != nil {
		t.Fatalf("load preset: %v", err)
	}
	if len(cfg.Sequence) == 0 || cfg.FPS != robot.DefaultFPS {
		t.Errorf("preset config not defaulted: %+v", cfg)
	}

	if _, err := (ConfigOptions{Preset: "nope"}).load(); err == nil {
		t.Error("expected error for unknown preset")
	}
	if _, err := (ConfigOptions{Config: t.TempDir() + "/missing.json"}).load(); err == nil {
		t.Error("expected error for missing config")
	}
}
