package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"github.com/gwillem/ftcpreview/pkg/motion"
	"github.com/gwillem/ftcpreview/pkg/playback"
	"github.com/gwillem/ftcpreview/pkg/robot"
)

type PreviewCommand struct {
	ConfigOptions
	Autorun bool `long:"autorun" description:"Start playback immediately"`
}

const (
	fieldCols         = 41
	fieldRows         = 21
	chartHeight       = 8
	defaultChartWidth = 80
	maxLogs           = 5
	maxTrail          = 400
	borderSize        = 2
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	robotStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	trailStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	litStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	currentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))

	phaseStyles = map[playback.Phase]lipgloss.Style{
		playback.Idle:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		playback.Running: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		playback.Stopped: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	}
)

// callbackMsg carries a scheduled engine callback back into Update, so the
// engine only ever runs on the bubbletea event loop.
type callbackMsg func()

// teaScheduler turns engine timers into tea.Tick commands. Requests made
// while handling a message are collected and returned from Update.
type teaScheduler struct {
	frame   time.Duration
	pending []tea.Cmd
}

func (s *teaScheduler) Now() time.Time { return time.Now() }

func (s *teaScheduler) AfterFrame(fn func()) { s.AfterDelay(s.frame, fn) }

func (s *teaScheduler) AfterDelay(d time.Duration, fn func()) {
	s.pending = append(s.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return callbackMsg(fn)
	}))
}

func (s *teaScheduler) flush() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

// panel is the part of the model the engine writes into from its callbacks.
type panel struct {
	logs  []string
	trail []motion.Pose
	chart *streamlinechart.Model
}

func (p *panel) addLog(format string, args ...any) {
	msg := time.Now().Format("15:04:05") + " " + fmt.Sprintf(format, args...)
	p.logs = append(p.logs, msg)
	if len(p.logs) > maxLogs {
		p.logs = p.logs[len(p.logs)-maxLogs:]
	}
}

func (p *panel) onEvent(ev playback.Event) {
	if ev.Kind != playback.PoseChanged {
		return
	}
	p.trail = append(p.trail, ev.Pose)
	if len(p.trail) > maxTrail {
		p.trail = p.trail[len(p.trail)-maxTrail:]
	}
	p.chart.PushDataSet("x", ev.Pose.X)
	p.chart.PushDataSet("y", ev.Pose.Y)
}

// newPoseChart returns an empty x/y chart scaled to the sequence extent.
func newPoseChart(width int, extent float64) streamlinechart.Model {
	chart := streamlinechart.New(width, chartHeight,
		streamlinechart.WithYRange(-extent*1.1-1, extent*1.1+1),
	)
	chart.SetDataSetStyles("x", runes.ThinLineStyle, lipgloss.NewStyle().Foreground(lipgloss.Color("196")))
	chart.SetDataSetStyles("y", runes.ThinLineStyle, lipgloss.NewStyle().Foreground(lipgloss.Color("51")))
	return chart
}

// clear forgets the trail and the chart history of the abandoned run.
func (p *panel) clear(chart streamlinechart.Model) {
	p.trail = nil
	*p.chart = chart
	p.chart.DrawAll()
}

type previewModel struct {
	cfg        robot.Config
	engine     *playback.Engine
	sched      *teaScheduler
	panel      *panel
	viewport   robot.Viewport
	extent     float64
	chartWidth int
	highlights map[string]bool
	width      int
	height     int
	autorun    bool
	quitting   bool
}

func newPreviewModel(cfg robot.Config, autorun bool) (previewModel, error) {
	extent := cfg.Sequence.Extent(cfg.Units)
	chart := newPoseChart(defaultChartWidth, extent)

	p := &panel{chart: &chart}
	sched := &teaScheduler{frame: cfg.FrameInterval()}
	engine, err := playback.NewEngine(playback.Config{
		Playlist:    cfg.Sequence,
		Scheduler:   sched,
		Units:       cfg.Units,
		SettleDelay: cfg.SettleDelay(),
		Logf:        p.addLog,
	})
	if err != nil {
		return previewModel{}, err
	}
	engine.Subscribe(p.onEvent)

	return previewModel{
		cfg:        cfg,
		engine:     engine,
		sched:      sched,
		panel:      p,
		viewport:   robot.CenteredViewport(extent, fieldCols, fieldRows),
		extent:     extent,
		chartWidth: defaultChartWidth,
		highlights: robot.Highlights(cfg.Hardware, robot.DefaultMounts()),
		autorun:    autorun,
	}, nil
}

func (m previewModel) Init() tea.Cmd {
	if !m.autorun {
		return nil
	}
	m.run()
	return m.sched.flush()
}

func (m previewModel) run() {
	if err := m.engine.Run(); err != nil {
		m.panel.addLog("run failed: %v", err)
	}
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w := m.width - borderSize - 2
		if w < 40 {
			w = 40
		}
		m.chartWidth = w
		m.panel.chart.Resize(w, chartHeight)
		m.panel.chart.DrawAll()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.engine.Close()
			m.quitting = true
			return m, tea.Quit
		case "r", " ", "enter":
			m.run()
		case "s":
			m.engine.Stop()
		case "x":
			m.engine.Reset()
			m.panel.clear(newPoseChart(m.chartWidth, m.extent))
		}
		return m, m.sched.flush()

	case callbackMsg:
		msg()
		m.panel.chart.DrawAll()
		return m, m.sched.flush()
	}

	return m, nil
}

func (m previewModel) View() string {
	if m.quitting {
		return "Preview closed.\n"
	}

	var sb strings.Builder

	// Header
	sb.WriteString(titleStyle.Render("FTC Robot Preview"))
	if m.cfg.Caption != "" {
		sb.WriteString(" - " + m.cfg.Caption)
	}
	sb.WriteString("\n\n")

	field := boxStyle.Render(m.renderField())
	side := lipgloss.JoinVertical(lipgloss.Left,
		m.renderStatus(),
		"",
		m.renderMounts(),
		"",
		m.renderPlaylist(),
	)
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, field, "  ", side))
	sb.WriteString("\n")

	sb.WriteString(boxStyle.Render(m.panel.chart.View()))
	sb.WriteString("\n")
	sb.WriteString(renderLegend())
	sb.WriteString("\n")

	logStyle := boxStyle.Width(max(m.width-4, 40))
	logLines := statusStyle.Render("r run · s stop · x reset · q quit")
	if len(m.panel.logs) > 0 {
		logLines = strings.Join(m.panel.logs, "\n")
	}
	sb.WriteString(logStyle.Render(logLines))
	sb.WriteString("\n")

	return sb.String()
}

// renderField draws the trail and the robot on a character grid. Canvas y
// grows downward, matching terminal rows.
func (m previewModel) renderField() string {
	grid := make([][]string, m.viewport.Rows)
	for r := range grid {
		grid[r] = make([]string, m.viewport.Cols)
		for c := range grid[r] {
			grid[r][c] = statusStyle.Render("·")
		}
	}

	if col, row, ok := m.viewport.Cell(0, 0); ok {
		grid[row][col] = statusStyle.Render("+")
	}
	for _, p := range m.panel.trail {
		if col, row, ok := m.viewport.Cell(p.X, p.Y); ok {
			grid[row][col] = trailStyle.Render("•")
		}
	}
	pose := m.engine.Pose()
	if col, row, ok := m.viewport.Cell(pose.X, pose.Y); ok {
		grid[row][col] = robotStyle.Render(robot.HeadingGlyph(pose.Heading))
	}

	lines := make([]string, len(grid))
	for r, cells := range grid {
		lines[r] = strings.Join(cells, "")
	}
	return strings.Join(lines, "\n")
}

func (m previewModel) renderStatus() string {
	state := m.engine.State()
	phase := phaseStyles[state.Phase].Render(state.Phase.String())

	var sb strings.Builder
	fmt.Fprintf(&sb, "Phase:   %s\n", phase)
	fmt.Fprintf(&sb, "Command: %d/%d\n", state.Index, len(m.engine.Playlist()))
	fmt.Fprintf(&sb, "Pose:    %s", m.engine.Pose())
	return sb.String()
}

func (m previewModel) renderMounts() string {
	rows := make([][]string, 0, len(robot.DefaultMounts()))
	lit := make([]bool, 0, cap(rows))
	for _, mount := range robot.DefaultMounts() {
		mark := "○"
		if m.highlights[mount.Name] {
			mark = "●"
		}
		rows = append(rows, []string{mark, mount.Name, string(mount.Type)})
		lit = append(lit, m.highlights[mount.Name])
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(statusStyle).
		Headers("", "Mount", "Type").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			cell := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return cell.Bold(true).Foreground(lipgloss.Color("12"))
			}
			if row >= 0 && row < len(lit) && lit[row] {
				return cell.Inherit(litStyle)
			}
			return cell.Inherit(statusStyle)
		}).
		Render()
}

func (m previewModel) renderPlaylist() string {
	state := m.engine.State()
	var lines []string
	for i, cmd := range m.engine.Playlist() {
		line := fmt.Sprintf("%2d. %s", i+1, cmd)
		switch {
		case state.Current != nil && i == state.Index:
			line = currentStyle.Render("▶ " + line)
		case i < state.Index:
			line = statusStyle.Render("  " + line)
		default:
			line = "  " + line
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return statusStyle.Render("(empty sequence)")
	}
	return strings.Join(lines, "\n")
}

func renderLegend() string {
	x := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true).Render("━━")
	y := lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true).Render("━━")
	return x + " x  " + y + " y"
}

func (c *PreviewCommand) Execute(args []string) error {
	cfg, err := c.load()
	if err != nil {
		return err
	}

	model, err := newPreviewModel(cfg, c.Autorun)
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
	return nil
}
