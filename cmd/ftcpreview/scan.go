package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/gwillem/ftcpreview/pkg/robot"
)

type ScanCommand struct {
	Config  string `long:"config" short:"c" default:"ftcpreview.json" description:"Config file to update"`
	MinID   int    `long:"min-id" default:"1" description:"Lowest servo ID to scan"`
	MaxID   int    `long:"max-id" default:"6" description:"Highest servo ID to scan"`
	Baud    int    `long:"baud" default:"1000000" description:"Bus baud rate"`
	Timeout int    `long:"timeout" default:"2000" description:"Per-port scan timeout in milliseconds"`
	Yes     bool   `long:"yes" short:"y" description:"Add found servos without asking"`
}

func (c *ScanCommand) Execute(args []string) error {
	fmt.Println("Scanning serial ports for servos...")
	fmt.Println()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	servos, err := robot.Discover(ctx, robot.ScanOptions{
		MinID:    c.MinID,
		MaxID:    c.MaxID,
		BaudRate: c.Baud,
		Timeout:  time.Duration(c.Timeout) * time.Millisecond,
	})
	if err != nil {
		return fmt.Errorf("discover servos: %w", err)
	}
	if len(servos) == 0 {
		fmt.Println("No servos found.")
		fmt.Println("Make sure the controller is connected and powered on.")
		return nil
	}

	items := robot.ServoItems(servos)
	rows := make([][]string, 0, len(servos))
	for i, s := range servos {
		rows = append(rows, []string{items[i].Name, s.Port, fmt.Sprintf("%d", s.ID), s.Model})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("Name", "Port", "ID", "Model").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return s.Bold(true).Foreground(lipgloss.Color("12"))
			}
			return s
		})
	fmt.Println(t.Render())
	fmt.Println()

	add := c.Yes
	if !add {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Add %d servo(s) to %s?", len(items), c.Config)).
					Value(&add),
			),
		)
		if err := form.Run(); err != nil {
			fmt.Println()
			os.Exit(0)
		}
	}
	if !add {
		return nil
	}

	cfg := &robot.Config{}
	if robot.ConfigExists(c.Config) {
		if cfg, err = robot.LoadConfigFrom(c.Config); err != nil {
			return err
		}
	}

	added := 0
	for _, item := range items {
		if cfg.Hardware.Has(item.Name, item.Type) {
			continue
		}
		cfg.Hardware = append(cfg.Hardware, item)
		added++
	}

	if err := cfg.SaveTo(c.Config); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	fmt.Println(successStyle.Render(fmt.Sprintf("Added %d servo(s) to %s", added, c.Config)))
	return nil
}
