package engine

import "time"

const (
	// MPRegenPerQuest is restored on every completed daily quest.
	MPRegenPerQuest = 5
	// PenaltyHPDamage is subtracted when a penalty activates.
	PenaltyHPDamage = 20

	hpEpsilon = 1e-9
)

// EndOfDay returns 23:59:59.999 of t's calendar day in t's location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// SameDay reports whether a and b fall on the same calendar day in a's
// location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func newDailyQuest(in QuestInput, isCore bool, id string, now time.Time) DailyQuest {
	deadline := EndOfDay(now)
	if in.Deadline != nil {
		deadline = *in.Deadline
	}
	reward := in.XPReward
	if reward < 0 {
		reward = 0
	}
	return DailyQuest{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Attribute:   in.Attribute,
		XPReward:    reward,
		IsComplete:  false,
		IsCore:      isCore,
		CreatedAt:   now,
		Deadline:    deadline,
	}
}

func newBossRaid(in RaidInput, ids IDGenerator, now time.Time) BossRaid {
	subQuests := make([]SubQuest, 0, len(in.SubQuests))
	seen := make(map[string]bool, len(in.SubQuests))
	for _, sq := range in.SubQuests {
		id := sq.ID
		// Sub-quests are completed by id, so a repeated id gets a fresh one.
		if id == "" || seen[id] {
			id = ids.NewID()
		}
		seen[id] = true
		reward := sq.XPReward
		if reward < 0 {
			reward = 0
		}
		subQuests = append(subQuests, SubQuest{
			ID:        id,
			Title:     sq.Title,
			XPReward:  reward,
			Attribute: sq.Attribute,
		})
	}
	raid := BossRaid{
		ID:          ids.NewID(),
		Name:        in.Name,
		Description: in.Description,
		TotalHP:     in.TotalHP,
		CurrentHP:   float64(in.TotalHP),
		SubQuests:   subQuests,
		IsDefeated:  false,
		CreatedAt:   now,
	}
	if in.Deadline != nil {
		d := *in.Deadline
		raid.Deadline = &d
	}
	return raid
}

// awardToPlayer applies amount to one attribute and recomputes rank from
// the full attribute set.
func awardToPlayer(p Player, key AttributeKey, amount int) Player {
	if key.IsValid() {
		p.Attributes = p.Attributes.With(key, applyAward(p.Attributes.Get(key), amount))
	}
	p.Rank = CalculateRank(TotalLevels(p.Attributes))
	return p
}

// DamagePerSubQuest is the even HP share each step of raid removes.
func DamagePerSubQuest(raid BossRaid) float64 {
	if len(raid.SubQuests) == 0 {
		return 0
	}
	return float64(raid.TotalHP) / float64(len(raid.SubQuests))
}

// strikeRaid marks sub-quest i complete and applies its damage share.
// HP floors at zero, and completing the last open step forces zero so
// float drift can never leave a cleared raid alive.
func strikeRaid(raid BossRaid, i int, now time.Time) BossRaid {
	subQuests := make([]SubQuest, len(raid.SubQuests))
	copy(subQuests, raid.SubQuests)
	completedAt := now
	subQuests[i].IsComplete = true
	subQuests[i].CompletedAt = &completedAt
	raid.SubQuests = subQuests

	hp := raid.CurrentHP - DamagePerSubQuest(raid)
	if hp < hpEpsilon || allComplete(subQuests) {
		hp = 0
	}
	if hp > float64(raid.TotalHP) {
		hp = float64(raid.TotalHP)
	}
	raid.CurrentHP = hp

	if raid.CurrentHP <= 0 && !raid.IsDefeated {
		defeatedAt := now
		raid.IsDefeated = true
		raid.DefeatedAt = &defeatedAt
	}
	return raid
}

func allComplete(subQuests []SubQuest) bool {
	for _, sq := range subQuests {
		if !sq.IsComplete {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// rollDeadline moves a stale daily deadline onto day, keeping its clock time.
func rollDeadline(deadline, day time.Time) time.Time {
	if !deadline.Before(day) {
		return deadline
	}
	local := deadline.In(day.Location())
	y, m, d := day.Date()
	return time.Date(y, m, d, local.Hour(), local.Minute(), local.Second(), local.Nanosecond(), day.Location())
}
