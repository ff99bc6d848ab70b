package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/justinpbarnett/coupontop/internal/control"
)

type cmdDelete struct {
	gs  *globalState
	yes bool
}

// confirm asks prompt on stdout and reads a y/n answer from stdin. Anything
// but yes is a no, including end of input.
func (c *cmdDelete) confirm(prompt string) bool {
	fmt.Fprintf(c.gs.stdout, "%s [y/N] ", prompt)
	line, _ := bufio.NewReader(c.gs.stdin).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func (c *cmdDelete) run(cmd *cobra.Command, args []string) error {
	list, _ := listName(args[0])
	value := args[1]

	prompt := control.ConfirmDeleteCoupon(value)
	if list == listUIDs {
		prompt = control.ConfirmDeleteUID(value)
	}
	if !c.yes && !c.confirm(prompt) {
		fmt.Fprintln(c.gs.stdout, "Cancelled.")
		return nil
	}

	ctrl := c.gs.controller(c.gs.client(), c.gs.logger)
	var out control.Outcome
	if list == listUIDs {
		out = ctrl.DeleteUID(cmd.Context(), value)
	} else {
		out = ctrl.DeleteCoupon(cmd.Context(), value)
	}
	return printOutcome(c.gs, out)
}

func getCmdDelete(gs *globalState) *cobra.Command {
	c := &cmdDelete{gs: gs}
	cmd := &cobra.Command{
		Use:   "delete uids|coupons <value>",
		Short: "Delete one UID or coupon on the backend",
		Long: "Delete one entry from the UID or coupon list. A UID is given as the bare\n" +
			"account id, without the comment.",
		Example: "  coupontop delete coupons SPRING24\n" +
			"  coupontop delete uids 1234567 --yes",
		Args: listArgs,
		RunE: c.run,
	}
	cmd.Flags().BoolVarP(&c.yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
