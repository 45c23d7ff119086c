package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/status-system/progression/internal/engine"
)

func newCheckCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run the daily-cycle check once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), opts, true)
			if err != nil {
				return err
			}
			defer a.close()

			out := cmd.OutOrStdout()
			action, ok := a.svc.CheckDailyCycle(cmd.Context())
			switch {
			case !ok:
				fmt.Fprintln(out, Muted.Render("Nothing to do."))
			case action.Kind() == engine.KindActivatePenalty:
				s := a.svc.State()
				fmt.Fprintln(out, Bad.Render("PENALTY ACTIVATED")+fmt.Sprintf("  HP %d/%d", s.Player.HP, s.Player.MaxHP))
				if s.PenaltyTask != nil {
					fmt.Fprintln(out, LabelValue("Task", s.PenaltyTask.Title))
				}
			default:
				fmt.Fprintln(out, Good.Render("New day. Daily quests reset."))
			}
			return nil
		},
	}
}

func newResetCmd(opts *globalOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all progress and start over",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to reset without --yes")
			}
			a, err := openApp(cmd.Context(), opts, true)
			if err != nil {
				return err
			}
			defer a.close()

			if _, err := a.svc.ResetAll(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), Warn.Render("All progress deleted."))
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")
	return cmd
}
