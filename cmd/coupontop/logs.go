package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/justinpbarnett/coupontop/internal/logbrowser"
	"github.com/justinpbarnett/coupontop/internal/ui/text"
)

type cmdLogs struct {
	gs *globalState
}

func (c *cmdLogs) list(cmd *cobra.Command, _ []string) error {
	listing, err := c.gs.client().ListLogs(cmd.Context())
	if err != nil {
		return fmt.Errorf("%s: %w", logbrowser.MsgListError, err)
	}

	b := logbrowser.New()
	b.ApplyListing(listing)

	heading := c.gs.color(color.Bold)
	for i, cat := range logbrowser.Categories {
		if i > 0 {
			fmt.Fprintln(c.gs.stdout)
		}
		p := b.Panel(cat)
		fmt.Fprintln(c.gs.stdout, heading.Sprintf("%s (%s)", cat.Title(), cat))
		if p.Placeholder != "" {
			fmt.Fprintf(c.gs.stdout, "  %s\n", p.Placeholder)
			continue
		}
		for _, f := range p.Files {
			fmt.Fprintf(c.gs.stdout, "  %s\n", f)
		}
	}
	return nil
}

func showArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(2)(cmd, args); err != nil {
		return err
	}
	for _, cat := range logbrowser.Categories {
		if args[0] == string(cat) {
			return nil
		}
	}
	return fmt.Errorf("unknown log category %q, expected %q or %q",
		args[0], logbrowser.CategoryLog, logbrowser.CategoryCoupon)
}

func (c *cmdLogs) show(cmd *cobra.Command, args []string) error {
	content, err := c.gs.client().LogContent(cmd.Context(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("%s: %w", logbrowser.MsgContentError, err)
	}
	body := text.Plain(content.Content)
	fmt.Fprint(c.gs.stdout, body)
	if !strings.HasSuffix(body, "\n") {
		fmt.Fprintln(c.gs.stdout)
	}
	return nil
}

func getCmdLogs(gs *globalState) *cobra.Command {
	c := &cmdLogs{gs: gs}

	logsCmd := &cobra.Command{
		Use:   "logs",
		Short: "Browse archived log files on the backend",
		Args:  cobra.NoArgs,
	}
	logsCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List application and coupon log files, newest first",
			Args:  cobra.NoArgs,
			RunE:  c.list,
		},
		&cobra.Command{
			Use:     "show log|coupon <file>",
			Short:   "Print one log file",
			Example: "  coupontop logs show coupon SPRING24_2024-05-01.log",
			Args:    showArgs,
			RunE:    c.show,
		},
	)
	return logsCmd
}
