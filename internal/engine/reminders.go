package engine

import (
	"fmt"
	"sort"
	"time"
)

const (
	DailyReminderLead = time.Hour
	RaidReminderLead  = 2 * time.Hour
)

// ReminderKind tells a notification collaborator which copy to use.
type ReminderKind string

const (
	ReminderDailyQuest ReminderKind = "quest_reminder"
	ReminderSideQuest  ReminderKind = "side_quest_reminder"
)

// Reminder is a notification that should fire at FireAt.
type Reminder struct {
	Kind     ReminderKind `json:"kind"`
	TargetID string       `json:"targetId"`
	Title    string       `json:"title"`
	Body     string       `json:"body"`
	FireAt   time.Time    `json:"fireAt"`
	Deadline time.Time    `json:"deadline"`
}

// PlanReminders lists the reminders still worth scheduling at now, sorted
// by fire time. Incomplete daily quests are reminded one hour before their
// deadline, undefeated raids with a deadline two hours before.
func PlanReminders(s GameState, now time.Time) []Reminder {
	var out []Reminder
	for _, q := range s.DailyQuests {
		if q.IsComplete {
			continue
		}
		fireAt := q.Deadline.Add(-DailyReminderLead)
		if !fireAt.After(now) {
			continue
		}
		out = append(out, Reminder{
			Kind:     ReminderDailyQuest,
			TargetID: q.ID,
			Title:    "QUEST DEADLINE APPROACHING",
			Body:     fmt.Sprintf("%q must be completed soon!", q.Title),
			FireAt:   fireAt,
			Deadline: q.Deadline,
		})
	}
	for _, b := range s.BossRaids {
		if b.IsDefeated || b.Deadline == nil {
			continue
		}
		fireAt := b.Deadline.Add(-RaidReminderLead)
		if !fireAt.After(now) {
			continue
		}
		out = append(out, Reminder{
			Kind:     ReminderSideQuest,
			TargetID: b.ID,
			Title:    "SIDE QUEST DEADLINE",
			Body:     fmt.Sprintf("%q deadline approaching!", b.Name),
			FireAt:   fireAt,
			Deadline: *b.Deadline,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FireAt.Before(out[j].FireAt)
	})
	return out
}

// ForegroundWarning returns the warning shown when the app returns to the
// foreground with open quests. Undefeated raids count as open.
func ForegroundWarning(s GameState) (string, bool) {
	open := s.IncompleteDailyQuests()
	for _, b := range s.BossRaids {
		if !b.IsDefeated {
			open++
		}
	}
	if open == 0 {
		return "", false
	}
	plural := ""
	if open > 1 {
		plural = "s"
	}
	return fmt.Sprintf("You have %d uncompleted quest%s! Complete them to avoid penalty.", open, plural), true
}
