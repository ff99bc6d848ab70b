package main

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/justinpbarnett/coupontop/internal/control"
)

const (
	listUIDs    = "uids"
	listCoupons = "coupons"
)

// listName accepts a list name in singular or plural form.
func listName(arg string) (string, bool) {
	switch arg {
	case "uid", listUIDs:
		return listUIDs, true
	case "coupon", listCoupons:
		return listCoupons, true
	}
	return "", false
}

// listArgs requires exactly two arguments, the first naming a list.
func listArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(2)(cmd, args); err != nil {
		return err
	}
	if _, ok := listName(args[0]); !ok {
		return fmt.Errorf("unknown list %q, expected %q or %q", args[0], listUIDs, listCoupons)
	}
	return nil
}

type cmdSave struct {
	gs *globalState
}

// readSource reads a file, or stdin when path is "-".
func (c *cmdSave) readSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(c.gs.stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := afero.ReadFile(c.gs.fs, path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func (c *cmdSave) run(cmd *cobra.Command, args []string) error {
	content, err := c.readSource(args[1])
	if err != nil {
		return err
	}

	ctrl := c.gs.controller(c.gs.client(), c.gs.logger)
	var out control.Outcome
	list, _ := listName(args[0])
	switch list {
	case listUIDs:
		out = ctrl.SaveUIDs(cmd.Context(), content)
	case listCoupons:
		out = ctrl.SaveCoupons(cmd.Context(), content)
	}
	return printOutcome(c.gs, out)
}

func getCmdSave(gs *globalState) *cobra.Command {
	c := &cmdSave{gs: gs}
	return &cobra.Command{
		Use:   "save uids|coupons <file|->",
		Short: "Replace the UID or coupon list on the backend",
		Long: "Replace the whole UID or coupon list with the contents of a file, or of\n" +
			"stdin when the file is \"-\". UID lines have the form \"uid #comment\".",
		Example: "  coupontop save coupons coupons.txt\n" +
			"  printf '1234567 #main\\n' | coupontop save uids -",
		Args: listArgs,
		RunE: c.run,
	}
}
