package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/gwillem/ftcpreview/pkg/robot"
)

type InitCommand struct {
	Config string `long:"config" short:"c" default:"ftcpreview.json" description:"Config file to write"`
	Preset string `long:"preset" short:"p" description:"Preset to start from (skips the prompt)"`
	Force  bool   `long:"force" short:"f" description:"Overwrite an existing config without asking"`
}

func (c *InitCommand) Execute(args []string) error {
	fmt.Println(headerStyle.Render("FTC Preview Setup"))
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━━━━━"))
	fmt.Println()

	if robot.ConfigExists(c.Config) && !c.Force {
		overwrite := false
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("%s already exists. Overwrite it?", c.Config)).
					Affirmative("Overwrite").
					Negative("Keep").
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			fmt.Println()
			os.Exit(0)
		}
		if !overwrite {
			fmt.Println("Keeping existing config.")
			return nil
		}
	}

	name := c.Preset
	if name == "" {
		var options []huh.Option[string]
		for _, n := range robot.PresetNames() {
			preset, _ := robot.Preset(n)
			label := fmt.Sprintf("%s (%d commands, %d devices)", n, len(preset.Sequence), len(preset.Hardware))
			options = append(options, huh.NewOption(label, n))
		}
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Which page are you previewing?").
					Options(options...).
					Value(&name),
			),
		)
		if err := form.Run(); err != nil {
			fmt.Println()
			os.Exit(0)
		}
	}

	cfg, ok := robot.Preset(name)
	if !ok {
		return fmt.Errorf("unknown preset %q (available: %v)", name, robot.PresetNames())
	}

	caption := cfg.Caption
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Caption").
				Description("Shown above the preview").
				Value(&caption),
		),
	)
	if err := form.Run(); err != nil {
		fmt.Println()
		os.Exit(0)
	}
	cfg.Caption = caption

	if err := cfg.SaveTo(c.Config); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Println(successStyle.Render("Config written to " + c.Config))
	fmt.Println("Play it with: " + headerStyle.Render("ftcpreview preview -c "+c.Config))
	return nil
}
