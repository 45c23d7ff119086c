package root

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/status-system/progression/internal/engine"
)

const (
	defaultRaidHP  = 100
	defaultStepXP  = 25
	deadlineLayout = "2006-01-02"
)

func newRaidCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "raid",
		Short: "Manage boss raids",
	}
	cmd.AddCommand(
		newRaidAddCmd(opts),
		newRaidHitCmd(opts),
		newRaidDeleteCmd(opts),
	)
	return cmd
}

// parseSubQuest reads "title[:ATTR[:XP]]".
func parseSubQuest(spec string) (engine.SubQuestInput, error) {
	parts := strings.Split(spec, ":")
	in := engine.SubQuestInput{
		Title:     strings.TrimSpace(parts[0]),
		Attribute: engine.AttributeINT,
		XPReward:  defaultStepXP,
	}
	if in.Title == "" {
		return in, fmt.Errorf("sub-quest %q has no title", spec)
	}
	if len(parts) > 3 {
		return in, fmt.Errorf("sub-quest %q: expected title[:ATTR[:XP]]", spec)
	}
	if len(parts) > 1 {
		key, err := parseAttribute(parts[1])
		if err != nil {
			return in, err
		}
		in.Attribute = key
	}
	if len(parts) > 2 {
		xp, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil || xp < 0 {
			return in, fmt.Errorf("sub-quest %q: invalid xp %q", spec, parts[2])
		}
		in.XPReward = xp
	}
	return in, nil
}

func newRaidAddCmd(opts *globalOptions) *cobra.Command {
	var hp int
	var subs []string
	var deadline string
	var description string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a boss raid",
		Example: `  status raid add "Thesis" --hp 300 --sub "Outline:INT:50" --sub "Draft:INT:100" --deadline 2024-06-30`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
				return errors.New("name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if hp <= 0 {
				return errors.New("--hp must be greater than 0")
			}
			if len(subs) == 0 {
				return errors.New("at least one --sub is required")
			}
			in := engine.RaidInput{Name: args[0], Description: description, TotalHP: hp}
			for _, s := range subs {
				sq, err := parseSubQuest(s)
				if err != nil {
					return err
				}
				in.SubQuests = append(in.SubQuests, sq)
			}

			a, err := openApp(cmd.Context(), opts, true)
			if err != nil {
				return err
			}
			defer a.close()

			if deadline != "" {
				day, err := time.ParseInLocation(deadlineLayout, deadline, a.clock.Now().Location())
				if err != nil {
					return fmt.Errorf("invalid --deadline %q: expected YYYY-MM-DD", deadline)
				}
				end := engine.EndOfDay(day)
				in.Deadline = &end
			}

			state := a.svc.Dispatch(cmd.Context(), engine.AddBossRaid{Raid: in})
			b := state.BossRaids[len(state.BossRaids)-1]
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Good.Render("Boss raid added:"))
			renderRaid(cmd.OutOrStdout(), b)
			return nil
		},
	}

	cmd.Flags().IntVar(&hp, "hp", defaultRaidHP, "Boss total HP")
	cmd.Flags().StringArrayVarP(&subs, "sub", "s", nil, "Sub-quest as title[:ATTR[:XP]] (repeatable)")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&description, "desc", "", "Description")
	return cmd
}

func newRaidHitCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "hit <raid-id> <sub-quest-id>",
		Short: "Complete a sub-quest and damage the boss",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), opts, true)
			if err != nil {
				return err
			}
			defer a.close()

			before := a.svc.State()
			bi := before.FindBossRaid(args[0])
			if bi < 0 {
				return fmt.Errorf("raid %q not found", args[0])
			}
			raid := before.BossRaids[bi]
			var sub *engine.SubQuest
			for i := range raid.SubQuests {
				if raid.SubQuests[i].ID == args[1] {
					sub = &raid.SubQuests[i]
				}
			}
			if sub == nil {
				return fmt.Errorf("sub-quest %q not found in raid %q", args[1], raid.Name)
			}
			if sub.IsComplete {
				return fmt.Errorf("sub-quest %q is already complete", sub.Title)
			}

			after := a.svc.Dispatch(cmd.Context(), engine.CompleteSubQuest{BossID: raid.ID, SubQuestID: sub.ID})
			hit := after.BossRaids[after.FindBossRaid(raid.ID)]

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s  %s\n", Good.Render("Sub-quest complete:"), sub.Title,
				Gold.Render(fmt.Sprintf("-%.2f HP", raid.CurrentHP-hit.CurrentHP)))
			renderProgress(out, before.Player, after.Player, sub.Attribute)
			if hit.IsDefeated {
				fmt.Fprintln(out, Gold.Render("BOSS DEFEATED: "+hit.Name))
			} else {
				fmt.Fprintf(out, "%s HP %.2f/%d\n", hit.Name, hit.CurrentHP, hit.TotalHP)
			}
			return nil
		},
	}
}

func newRaidDeleteCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a boss raid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), opts, true)
			if err != nil {
				return err
			}
			defer a.close()

			state := a.svc.State()
			i := state.FindBossRaid(args[0])
			if i < 0 {
				return fmt.Errorf("raid %q not found", args[0])
			}
			a.svc.Dispatch(cmd.Context(), engine.DeleteBossRaid{ID: args[0]})
			fmt.Fprintln(cmd.OutOrStdout(), Muted.Render("Boss raid deleted: "+state.BossRaids[i].Name))
			return nil
		},
	}
}
