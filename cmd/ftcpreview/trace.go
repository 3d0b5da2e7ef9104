package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/gwillem/ftcpreview/pkg/motion"
	"github.com/gwillem/ftcpreview/pkg/playback"
	"github.com/gwillem/ftcpreview/pkg/robot"
)

type TraceCommand struct {
	ConfigOptions
	Every   int  `long:"every" default:"10" description:"Print every Nth pose frame (state changes are always printed)"`
	StopAt  int  `long:"stop-at" description:"Stop playback after this many milliseconds (0 plays to the end)"`
	Verbose bool `long:"verbose" short:"v" description:"Log engine decisions to stderr"`
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// maxTraceSteps bounds a trace so a huge sequence cannot spin forever.
const maxTraceSteps = 1_000_000

func (c *TraceCommand) Execute(args []string) error {
	cfg, err := c.load()
	if err != nil {
		return err
	}

	sched := playback.NewManualScheduler(cfg.FrameInterval())
	engineCfg := playback.Config{
		Playlist:    cfg.Sequence,
		Scheduler:   sched,
		Units:       cfg.Units,
		SettleDelay: cfg.SettleDelay(),
	}
	if c.Verbose {
		logger := log.New(os.Stderr, "engine: ", 0)
		engineCfg.Logf = func(format string, args ...any) {
			logger.Printf("[%6dms] "+format, append([]any{sched.Elapsed().Milliseconds()}, args...)...)
		}
	}
	engine, err := playback.NewEngine(engineCfg)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	fmt.Println(headerStyle.Render("Pose trace"))
	if cfg.Caption != "" {
		fmt.Println(dimStyle.Render(cfg.Caption))
	}
	fmt.Println(dimStyle.Render(fmt.Sprintf("%d commands, %s of motion, frame %s",
		len(cfg.Sequence), cfg.Sequence.TotalDuration(), cfg.FrameInterval())))
	fmt.Println()

	every := c.Every
	if every <= 0 {
		every = 1
	}
	frames := 0
	engine.Subscribe(func(ev playback.Event) {
		switch ev.Kind {
		case playback.PoseChanged:
			frames++
			if frames%every != 0 {
				return
			}
			fmt.Printf("%7dms  %-8s %s\n", sched.Elapsed().Milliseconds(), commandLabel(ev.State), ev.Pose)
		case playback.StateChanged:
			fmt.Printf("%7dms  %s\n", sched.Elapsed().Milliseconds(),
				dimStyle.Render(fmt.Sprintf("-- %s, command %d", ev.State.Phase, ev.State.Index)))
		}
	})

	if err := engine.Run(); err != nil {
		return err
	}
	if c.StopAt > 0 {
		sched.Advance(time.Duration(c.StopAt) * time.Millisecond)
		engine.Stop()
	} else {
		sched.RunUntilIdle(maxTraceSteps)
	}

	fmt.Println()
	fmt.Println(summaryTable(engine, cfg, frames))
	if engine.State().Phase == playback.Stopped && engine.State().Index == len(cfg.Sequence) {
		fmt.Println(successStyle.Render("Sequence complete."))
	}
	return nil
}

func commandLabel(s playback.State) string {
	if s.Current == nil {
		return "-"
	}
	return string(s.Current.Type)
}

func summaryTable(engine *playback.Engine, cfg robot.Config, frames int) string {
	pose := engine.Pose()
	expected := cfg.Sequence.Final(motion.Origin, cfg.Units)
	rows := [][]string{
		{"Phase", engine.State().Phase.String()},
		{"Index", fmt.Sprintf("%d/%d", engine.State().Index, len(cfg.Sequence))},
		{"Pose", pose.String()},
		{"Expected", expected.String()},
		{"Pose frames", fmt.Sprintf("%d", frames)},
	}
	for _, mount := range robot.DefaultMounts() {
		rows = append(rows, []string{"Mount " + mount.Name, fmt.Sprintf("%v", mount.Lit(cfg.Hardware))})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if col == 0 {
				return s.Foreground(lipgloss.Color("14"))
			}
			return s
		}).
		Render()
}
