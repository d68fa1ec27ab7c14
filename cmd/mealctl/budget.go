package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
)

func budgetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "budget",
		Short: "Show the external provider call budget",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.resources(cmd.Context())
			if err != nil {
				return err
			}
			if res.Gateway == nil {
				return errors.New("no external provider configured (set SPOONACULAR_API_KEY)")
			}
			status, err := res.Gateway.BudgetStatus(cmd.Context())
			if err != nil {
				return err
			}
			out := map[string]interface{}{
				"used":      status.Used,
				"quota":     status.Quota,
				"remaining": status.Remaining(),
				"reset_at":  status.ResetAt,
			}
			return a.print(cmd.OutOrStdout(), out, func(w io.Writer) {
				fmt.Fprintf(w, "used %d of %d calls, %d remaining, resets %s\n",
					status.Used, status.Quota, status.Remaining(), status.ResetAt.Format(time.RFC3339))
			})
		},
	}
}
