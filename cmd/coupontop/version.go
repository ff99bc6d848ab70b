package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/justinpbarnett/coupontop/internal/ui/panels"
	"github.com/justinpbarnett/coupontop/internal/update"
)

type cmdVersion struct {
	gs    *globalState
	apply bool
	repo  string
}

func (c *cmdVersion) run(cmd *cobra.Command, _ []string) error {
	out := c.gs.stdout
	fmt.Fprintf(out, "coupontop version %s\n", panels.Version)

	if c.apply {
		rel, err := update.Apply(cmd.Context(), panels.Version, c.repo)
		if err != nil {
			return fmt.Errorf("update: %w", err)
		}
		if rel == nil {
			fmt.Fprintln(out, "You are up to date.")
			return nil
		}
		fmt.Fprintln(out, c.gs.color(color.FgGreen).Sprintf("Updated to v%s.", rel.Version))
		return nil
	}

	if update.IsDev(panels.Version) {
		fmt.Fprintln(out, "Development build, update check skipped.")
		return nil
	}

	rel, err := update.CheckForUpdate(cmd.Context(), panels.Version, c.repo)
	if err != nil {
		fmt.Fprintf(out, "Update check failed: %v\n", err)
		return nil
	}
	if rel != nil {
		fmt.Fprintln(out, c.gs.color(color.FgYellow).Sprintf("Update available: v%s. Run \"coupontop version --update\" to install.", rel.Version))
		if rel.URL != "" {
			fmt.Fprintln(out, rel.URL)
		}
	} else {
		fmt.Fprintln(out, "You are up to date.")
	}
	return nil
}

func getCmdVersion(gs *globalState) *cobra.Command {
	c := &cmdVersion{gs: gs}
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version and check for a newer release",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	cmd.Flags().BoolVar(&c.apply, "update", false, "download and install the latest release")
	cmd.Flags().StringVar(&c.repo, "repo", update.Repo, "GitHub repository releases are fetched from")
	_ = cmd.Flags().MarkHidden("repo")
	return cmd
}
