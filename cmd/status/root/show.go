package root

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/status-system/progression/internal/engine"
)

func newShowCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the player, quests, raids and penalty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), opts, true)
			if err != nil {
				return err
			}
			defer a.close()

			renderState(cmd.OutOrStdout(), a.svc.State())
			return nil
		},
	}
}

func renderState(w io.Writer, s engine.GameState) {
	status := engine.StatusOf(s.Player)

	fmt.Fprintln(w, Title.Render(s.Player.Name)+"  "+Gold.Render(status.RankDisplay))
	next := "max rank"
	if status.LevelsToNextRank > 0 {
		next = fmt.Sprintf("%d to next rank", status.LevelsToNextRank)
	}
	fmt.Fprintln(w, LabelValue("Total levels", fmt.Sprintf("%d (%s)", status.TotalLevels, next)))
	fmt.Fprintln(w, LabelValue("HP", fmt.Sprintf("%d/%d", s.Player.HP, s.Player.MaxHP))+"  "+
		LabelValue("MP", fmt.Sprintf("%d/%d", s.Player.MP, s.Player.MaxMP)))
	fmt.Fprintln(w)

	fmt.Fprintln(w, H2.Render("Attributes"))
	for _, key := range engine.AttributeKeys {
		attr := s.Player.Attributes.Get(key)
		fmt.Fprintf(w, "- %-4s %-12s LV.%-3d %s\n", key, attr.FullName, attr.Level,
			Muted.Render(engine.FormatXP(attr.XP, attr.MaxXP)))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, H2.Render("Daily quests"))
	if len(s.DailyQuests) == 0 {
		fmt.Fprintln(w, Muted.Render("(none)"))
	}
	for _, q := range s.DailyQuests {
		core := ""
		if q.IsCore {
			core = " " + Gold.Render("core")
		}
		fmt.Fprintf(w, "%s %s (%s +%d)%s  %s\n", checkbox(q.IsComplete), q.Title, q.Attribute, q.XPReward, core, Muted.Render(q.ID))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, H2.Render("Boss raids"))
	if len(s.BossRaids) == 0 {
		fmt.Fprintln(w, Muted.Render("(none)"))
	}
	for _, b := range s.BossRaids {
		renderRaid(w, b)
	}

	if s.IsPenaltyActive {
		fmt.Fprintln(w)
		task := "(no task set)"
		if s.PenaltyTask != nil {
			task = s.PenaltyTask.Title
		}
		fmt.Fprintln(w, Bad.Render("PENALTY ACTIVE")+"  "+task)
	} else if s.PenaltyTask != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, Muted.Render("Penalty task: "+s.PenaltyTask.Title))
	}

	if warning, ok := engine.ForegroundWarning(s); ok {
		fmt.Fprintln(w)
		fmt.Fprintln(w, Warn.Render(warning))
	}
}

func renderRaid(w io.Writer, b engine.BossRaid) {
	done := 0
	for _, sq := range b.SubQuests {
		if sq.IsComplete {
			done++
		}
	}
	state := ""
	if b.IsDefeated {
		state = " " + Good.Render("DEFEATED")
	}
	fmt.Fprintf(w, "%s  HP %.2f/%d  %d/%d steps%s  %s\n", Key.Render(b.Name), b.CurrentHP, b.TotalHP, done, len(b.SubQuests), state, Muted.Render(b.ID))
	if b.Deadline != nil {
		fmt.Fprintf(w, "  %s\n", Muted.Render("deadline "+b.Deadline.Format("2006-01-02 15:04")))
	}
	for _, sq := range b.SubQuests {
		fmt.Fprintf(w, "  %s %s (%s +%d)  %s\n", checkbox(sq.IsComplete), sq.Title, sq.Attribute, sq.XPReward, Muted.Render(sq.ID))
	}
}
