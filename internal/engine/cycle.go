package engine

import "time"

// EvaluateDailyCycle decides what the daily-cycle monitor should dispatch
// at now. It returns false when nothing should happen:
//   - penalties are disabled in settings
//   - a penalty is already active
//   - now is on the same local calendar day as the last reset
//
// Once a day boundary has been crossed (by any amount, so a closed app is
// handled on next launch), an incomplete daily quest with a configured
// penalty task yields ActivatePenalty; anything else yields ResetDailyQuests.
// Without a penalty task, missed quests reset silently.
func EvaluateDailyCycle(s GameState, now time.Time) (Action, bool) {
	if !s.Settings.PenaltyEnabled || s.IsPenaltyActive {
		return nil, false
	}
	if SameDay(now, s.LastDailyReset) {
		return nil, false
	}
	if s.IncompleteDailyQuests() > 0 && s.PenaltyTask != nil {
		return ActivatePenalty{}, true
	}
	return ResetDailyQuests{}, true
}

// ResolvePenalty is the action sequence that clears a penalty. The flag
// is cleared before quests reset.
func ResolvePenalty() []Action {
	return []Action{CompletePenalty{}, ResetDailyQuests{}}
}
