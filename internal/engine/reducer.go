package engine

// Reducer is the single state-transition function of the game. It never
// fails: actions that reference missing ids, or that would repeat a
// one-way transition, return the input state unchanged.
//
// Apply never mutates its input; every slice that changes is copied.
type Reducer struct {
	clock Clock
	ids   IDGenerator
}

// NewReducer creates a reducer that stamps time from clock and ids from ids.
func NewReducer(clock Clock, ids IDGenerator) *Reducer {
	if clock == nil {
		clock = SystemClock{}
	}
	if ids == nil {
		ids = UUIDGenerator{}
	}
	return &Reducer{clock: clock, ids: ids}
}

// Apply returns the state that results from applying a to s.
func (r *Reducer) Apply(s GameState, a Action) GameState {
	switch act := a.(type) {
	case LoadState:
		return Normalize(act.State)

	case SetPlayerName:
		s.Player.Name = act.Name
		return s

	case CompleteAwakening:
		s.IsFirstLaunch = false
		return s

	case CompleteConfiguration:
		s.IsConfigured = true
		return s

	case AddDailyQuest:
		return r.addQuest(s, act.Quest, false)

	case AddCoreQuest:
		return r.addQuest(s, act.Quest, true)

	case CompleteDailyQuest:
		return r.completeDailyQuest(s, act.ID)

	case DeleteDailyQuest:
		s.DailyQuests = filterQuests(s.DailyQuests, act.ID)
		return s

	case AddBossRaid:
		if act.Raid.TotalHP <= 0 {
			return s
		}
		for _, sq := range act.Raid.SubQuests {
			if !sq.Attribute.IsValid() {
				return s
			}
		}
		raids := make([]BossRaid, 0, len(s.BossRaids)+1)
		raids = append(raids, s.BossRaids...)
		s.BossRaids = append(raids, newBossRaid(act.Raid, r.ids, r.clock.Now()))
		return s

	case CompleteSubQuest:
		return r.completeSubQuest(s, act.BossID, act.SubQuestID)

	case DeleteBossRaid:
		s.BossRaids = filterRaids(s.BossRaids, act.ID)
		return s

	case SetPenaltyTask:
		s.PenaltyTask = &PenaltyTask{
			ID:          r.ids.NewID(),
			Title:       act.Title,
			Description: act.Description,
		}
		return s

	case ActivatePenalty:
		s.IsPenaltyActive = true
		s.Player.HP = clamp(s.Player.HP-PenaltyHPDamage, 0, s.Player.MaxHP)
		return s

	case CompletePenalty:
		s.IsPenaltyActive = false
		return s

	case UpdateSettings:
		s.Settings = mergeSettings(s.Settings, act.Patch)
		return s

	case UpdateHPMP:
		if act.HP != nil {
			s.Player.HP = clamp(*act.HP, 0, s.Player.MaxHP)
		}
		if act.MP != nil {
			s.Player.MP = clamp(*act.MP, 0, s.Player.MaxMP)
		}
		return s

	case ResetDailyQuests:
		now := r.clock.Now()
		quests := make([]DailyQuest, len(s.DailyQuests))
		for i, q := range s.DailyQuests {
			q.IsComplete = false
			q.CompletedAt = nil
			q.Deadline = rollDeadline(q.Deadline, now)
			quests[i] = q
		}
		s.DailyQuests = quests
		s.LastDailyReset = now
		return s

	case ResetAll:
		return DefaultGameState(r.clock.Now())

	default:
		return s
	}
}

// ApplyAll folds actions over s in order.
func (r *Reducer) ApplyAll(s GameState, actions ...Action) GameState {
	for _, a := range actions {
		s = r.Apply(s, a)
	}
	return s
}

func (r *Reducer) addQuest(s GameState, in QuestInput, isCore bool) GameState {
	if !in.Attribute.IsValid() {
		return s
	}
	quests := make([]DailyQuest, 0, len(s.DailyQuests)+1)
	quests = append(quests, s.DailyQuests...)
	s.DailyQuests = append(quests, newDailyQuest(in, isCore, r.ids.NewID(), r.clock.Now()))
	return s
}

func (r *Reducer) completeDailyQuest(s GameState, id string) GameState {
	i := s.FindDailyQuest(id)
	if i == -1 || s.DailyQuests[i].IsComplete {
		return s
	}

	now := r.clock.Now()
	quests := make([]DailyQuest, len(s.DailyQuests))
	copy(quests, s.DailyQuests)
	quest := quests[i]
	quest.IsComplete = true
	quest.CompletedAt = &now
	quests[i] = quest
	s.DailyQuests = quests

	s.Player = awardToPlayer(s.Player, quest.Attribute, quest.XPReward)
	s.Player.MP = clamp(s.Player.MP+MPRegenPerQuest, 0, s.Player.MaxMP)
	return s
}

func (r *Reducer) completeSubQuest(s GameState, bossID, subQuestID string) GameState {
	bi := s.FindBossRaid(bossID)
	if bi == -1 {
		return s
	}
	raid := s.BossRaids[bi]
	si := -1
	for i, sq := range raid.SubQuests {
		if sq.ID == subQuestID {
			si = i
			break
		}
	}
	if si == -1 || raid.SubQuests[si].IsComplete {
		return s
	}

	raid = strikeRaid(raid, si, r.clock.Now())
	raids := make([]BossRaid, len(s.BossRaids))
	copy(raids, s.BossRaids)
	raids[bi] = raid
	s.BossRaids = raids

	sq := raid.SubQuests[si]
	s.Player = awardToPlayer(s.Player, sq.Attribute, sq.XPReward)
	return s
}

// filterQuests drops the quest with id. Core quests are never removed.
func filterQuests(quests []DailyQuest, id string) []DailyQuest {
	i := -1
	for j, q := range quests {
		if q.ID == id {
			i = j
			break
		}
	}
	if i == -1 || quests[i].IsCore {
		return quests
	}
	out := make([]DailyQuest, 0, len(quests)-1)
	for _, q := range quests {
		if q.ID != id {
			out = append(out, q)
		}
	}
	return out
}

func filterRaids(raids []BossRaid, id string) []BossRaid {
	found := false
	for _, b := range raids {
		if b.ID == id {
			found = true
			break
		}
	}
	if !found {
		return raids
	}
	out := make([]BossRaid, 0, len(raids))
	for _, b := range raids {
		if b.ID != id {
			out = append(out, b)
		}
	}
	return out
}

func mergeSettings(s Settings, p SettingsPatch) Settings {
	if p.PenaltyEnabled != nil {
		s.PenaltyEnabled = *p.PenaltyEnabled
	}
	if p.NotificationsEnabled != nil {
		s.NotificationsEnabled = *p.NotificationsEnabled
	}
	if p.SoundEnabled != nil {
		s.SoundEnabled = *p.SoundEnabled
	}
	if p.HapticEnabled != nil {
		s.HapticEnabled = *p.HapticEnabled
	}
	return s
}
