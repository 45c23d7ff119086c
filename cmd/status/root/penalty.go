package root

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/status-system/progression/internal/engine"
)

func newPenaltyCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "penalty",
		Short: "Configure or clear the daily penalty",
	}
	cmd.AddCommand(newPenaltySetCmd(opts), newPenaltyCompleteCmd(opts))
	return cmd
}

func newPenaltySetCmd(opts *globalOptions) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "set <title>",
		Short: "Set the task that clears a penalty",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), opts, true)
			if err != nil {
				return err
			}
			defer a.close()

			a.svc.Dispatch(cmd.Context(), engine.SetPenaltyTask{Title: args[0], Description: description})
			fmt.Fprintln(cmd.OutOrStdout(), Good.Render("Penalty task set:")+" "+args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "desc", "", "Description")
	return cmd
}

func newPenaltyCompleteCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "complete",
		Short: "Mark the penalty task done and start a fresh day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), opts, true)
			if err != nil {
				return err
			}
			defer a.close()

			if !a.svc.State().IsPenaltyActive {
				return errors.New("no active penalty")
			}
			a.svc.CompletePenalty(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), Good.Render("Penalty cleared. Daily quests reset."))
			return nil
		},
	}
}
