package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/justinpbarnett/coupontop/internal/catalog"
	"github.com/justinpbarnett/coupontop/internal/control"
)

type cmdRun struct {
	gs   *globalState
	kind control.Kind

	uids       []string
	coupons    []string
	allUIDs    bool
	allCoupons bool
}

// resolveUIDs maps each value to a run key. A value that is already a run
// key, or a bare UID found in the catalog, resolves to its catalog entry.
// Anything else is sent unchanged.
func resolveUIDs(cat *catalog.Catalog, values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := cat.FindUID(v); ok {
			out = append(out, v)
			continue
		}
		id := v
		for _, u := range cat.UIDs {
			if u.UID == v {
				id = u.ID
				break
			}
		}
		out = append(out, id)
	}
	return out
}

var (
	errUIDFlags    = errors.New("--uid and --all-uids cannot be used together")
	errCouponFlags = errors.New("--coupon and --all-coupons cannot be used together")
)

func (c *cmdRun) run(cmd *cobra.Command, _ []string) error {
	if c.allUIDs && len(c.uids) > 0 {
		return errUIDFlags
	}
	if c.allCoupons && len(c.coupons) > 0 {
		return errCouponFlags
	}

	cat, err := c.gs.catalog()
	if err != nil {
		return err
	}

	uids := resolveUIDs(cat, c.uids)
	if c.allUIDs {
		uids = cat.UIDIDs()
	}
	coupons := c.coupons
	if c.allCoupons {
		coupons = cat.Coupons
	}

	ctrl := c.gs.controller(c.gs.client(), c.gs.logger)
	out, err := ctrl.Trigger(cmd.Context(), c.kind, uids, coupons)
	if err != nil {
		return err
	}
	return printOutcome(c.gs, out)
}

// printOutcome writes the outcome's message and warning, and turns a
// rejected action into an error so the exit code reflects it.
func printOutcome(gs *globalState, out control.Outcome) error {
	if !out.OK {
		return errors.New(out.Message)
	}
	fmt.Fprintln(gs.stdout, gs.color(color.FgGreen).Sprint(out.Message))
	if out.Warning != "" {
		fmt.Fprintln(gs.stdout, gs.color(color.FgYellow).Sprint(out.Warning))
	}
	return nil
}

func getCmdRun(gs *globalState, kind control.Kind) *cobra.Command {
	c := &cmdRun{gs: gs, kind: kind}

	short := "Start a run for the selected UIDs and coupons"
	if kind == control.KindForceRun {
		short = "Start a run even when no coupons are selected"
	}
	cmd := &cobra.Command{
		Use:   kind.String(),
		Short: short,
		Example: "  coupontop " + kind.String() + " --uid 1234567 --coupon SPRING24\n" +
			"  coupontop " + kind.String() + " --all-uids --all-coupons",
		Args: cobra.NoArgs,
		RunE: c.run,
	}

	flags := cmd.Flags()
	flags.StringSliceVarP(&c.uids, "uid", "u", nil, "UID or run key to include (repeatable)")
	flags.StringSliceVar(&c.coupons, "coupon", nil, "coupon code to apply (repeatable)")
	flags.BoolVar(&c.allUIDs, "all-uids", false, "include every UID in the local list")
	flags.BoolVar(&c.allCoupons, "all-coupons", false, "apply every coupon in the local list")
	return cmd
}
