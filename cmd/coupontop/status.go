package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/justinpbarnett/coupontop/internal/monitor"
	"github.com/justinpbarnett/coupontop/internal/ui/text"
)

type cmdStatus struct {
	gs  *globalState
	all bool
}

func (c *cmdStatus) badgeColor(b monitor.Badge) *color.Color {
	switch b {
	case monitor.BadgePrimary:
		return c.gs.color(color.FgBlue, color.Bold)
	case monitor.BadgeSuccess:
		return c.gs.color(color.FgGreen, color.Bold)
	case monitor.BadgeDanger:
		return c.gs.color(color.FgRed, color.Bold)
	case monitor.BadgeSecondary:
		return c.gs.color(color.FgHiBlack, color.Bold)
	default:
		return c.gs.color(color.FgCyan, color.Bold)
	}
}

func (c *cmdStatus) printGrid(g monitor.Grid) {
	if g.Placeholder != "" {
		fmt.Fprintln(c.gs.stdout, g.Placeholder)
		return
	}
	faint := c.gs.color(color.Faint)
	for i, card := range g.Cards {
		if i > 0 {
			fmt.Fprintln(c.gs.stdout)
		}
		fmt.Fprintf(c.gs.stdout, "%s %s\n", c.badgeColor(card.Badge).Sprintf("[%s]", card.Status), text.Plain(card.Title))
		if card.Preview != "" {
			fmt.Fprintf(c.gs.stdout, "  %s\n", faint.Sprint(text.Plain(card.Preview)))
		}
		if card.Link != "" {
			fmt.Fprintf(c.gs.stdout, "  %s\n", card.Link)
		}
	}
}

func (c *cmdStatus) run(cmd *cobra.Command, _ []string) error {
	entries, err := c.gs.client().Status(cmd.Context())
	if err != nil {
		grid := monitor.ErrorGrid(err)
		return fmt.Errorf("%s: %w", grid.Placeholder, err)
	}

	hub := c.gs.cfg.Hub.URL
	grid := monitor.Build(entries, hub)
	if c.all {
		grid = monitor.BuildAll(entries, hub)
	}
	c.printGrid(grid)

	if !c.all {
		if hidden := len(entries) - len(grid.Cards); hidden > 0 {
			fmt.Fprintln(c.gs.stdout, c.gs.color(color.Faint).Sprintf("(%s hidden, use --all to show)", text.Plural(hidden, "finished session")))
		}
	}
	return nil
}

func getCmdStatus(gs *globalState) *cobra.Command {
	c := &cmdStatus{gs: gs}
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print the active browser sessions",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	cmd.Flags().BoolVarP(&c.all, "all", "a", false, "include finished and failed sessions")
	return cmd
}
