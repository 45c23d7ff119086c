package root

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/status-system/progression/internal/engine"
)

func newQuestCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quest",
		Short: "Manage daily quests",
	}
	cmd.AddCommand(
		newQuestAddCmd(opts),
		newQuestCompleteCmd(opts),
		newQuestDeleteCmd(opts),
	)
	return cmd
}

func parseAttribute(s string) (engine.AttributeKey, error) {
	key := engine.AttributeKey(strings.ToUpper(strings.TrimSpace(s)))
	if !key.IsValid() {
		return "", fmt.Errorf("invalid attribute %q (STR|INT|SOC|HLTH)", s)
	}
	return key, nil
}

func newQuestAddCmd(opts *globalOptions) *cobra.Command {
	var attr string
	var xp int
	var difficulty string
	var description string
	var core bool

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a daily quest",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseAttribute(attr)
			if err != nil {
				return err
			}
			if xp <= 0 {
				if xp, err = engine.QuestXPReward(engine.Difficulty(strings.ToLower(difficulty))); err != nil {
					return err
				}
			}

			a, err := openApp(cmd.Context(), opts, true)
			if err != nil {
				return err
			}
			defer a.close()

			in := engine.QuestInput{Title: args[0], Description: description, Attribute: key, XPReward: xp}
			var action engine.Action = engine.AddDailyQuest{Quest: in}
			if core {
				action = engine.AddCoreQuest{Quest: in}
			}
			state := a.svc.Dispatch(cmd.Context(), action)

			q := state.DailyQuests[len(state.DailyQuests)-1]
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s +%d)  %s\n", Good.Render("Quest added:"), q.Title, q.Attribute, q.XPReward, Muted.Render(q.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&attr, "attr", "a", string(engine.AttributeSTR), "Attribute (STR|INT|SOC|HLTH)")
	cmd.Flags().IntVar(&xp, "xp", 0, "XP reward (overrides --difficulty)")
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", string(engine.DifficultyMedium), "Difficulty (easy|medium|hard|extreme)")
	cmd.Flags().StringVar(&description, "desc", "", "Description")
	cmd.Flags().BoolVar(&core, "core", false, "Core quest (cannot be deleted)")
	return cmd
}

func newQuestCompleteCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <id>",
		Short: "Complete a daily quest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), opts, true)
			if err != nil {
				return err
			}
			defer a.close()

			before := a.svc.State()
			i := before.FindDailyQuest(args[0])
			if i < 0 {
				return fmt.Errorf("quest %q not found", args[0])
			}
			q := before.DailyQuests[i]
			if q.IsComplete {
				return fmt.Errorf("quest %q is already complete", q.Title)
			}

			after := a.svc.Dispatch(cmd.Context(), engine.CompleteDailyQuest{ID: q.ID})
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s  %s\n", Good.Render("Quest complete:"), q.Title, Gold.Render(fmt.Sprintf("+%d %s XP", q.XPReward, q.Attribute)))
			renderProgress(out, before.Player, after.Player, q.Attribute)
			return nil
		},
	}
}

func newQuestDeleteCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a daily quest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), opts, true)
			if err != nil {
				return err
			}
			defer a.close()

			state := a.svc.State()
			i := state.FindDailyQuest(args[0])
			if i < 0 {
				return fmt.Errorf("quest %q not found", args[0])
			}
			if state.DailyQuests[i].IsCore {
				return fmt.Errorf("quest %q is a core quest and cannot be deleted", state.DailyQuests[i].Title)
			}

			a.svc.Dispatch(cmd.Context(), engine.DeleteDailyQuest{ID: args[0]})
			fmt.Fprintln(cmd.OutOrStdout(), Muted.Render("Quest deleted: "+state.DailyQuests[i].Title))
			return nil
		},
	}
}
