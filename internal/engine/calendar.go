package engine

import (
	"sort"
	"time"
)

// CalendarEntry is one dated item on the deadline calendar.
type CalendarEntry struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Date       time.Time `json:"date"`
	BossRaidID string    `json:"bossRaidId,omitempty"`
	IsRaid     bool      `json:"isRaid"`
}

// DeadlinesOn returns standalone deadlines and undefeated raid deadlines
// that fall on day's local calendar date.
func DeadlinesOn(s GameState, day time.Time) []CalendarEntry {
	var out []CalendarEntry
	for _, d := range s.Deadlines {
		if SameDay(day, d.Date) {
			out = append(out, CalendarEntry{ID: d.ID, Title: d.Title, Date: d.Date, BossRaidID: d.BossRaidID})
		}
	}
	for _, b := range s.BossRaids {
		if b.IsDefeated || b.Deadline == nil || !SameDay(day, *b.Deadline) {
			continue
		}
		out = append(out, CalendarEntry{ID: b.ID, Title: b.Name, Date: *b.Deadline, BossRaidID: b.ID, IsRaid: true})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
