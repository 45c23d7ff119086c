package engine

import (
	"testing"
	"time"
)

func TestEvaluateDailyCycle(t *testing.T) {
	yesterday := time.Date(2024, 1, 14, 10, 0, 0, 0, time.UTC)
	justAfterMidnight := time.Date(2024, 1, 15, 0, 5, 0, 0, time.UTC)

	base := func() GameState {
		s := DefaultGameState(yesterday)
		s.DailyQuests = []DailyQuest{
			{ID: "q1", Attribute: AttributeSTR, IsComplete: true},
			{ID: "q2", Attribute: AttributeINT, IsComplete: false},
		}
		s.PenaltyTask = &PenaltyTask{ID: "p", Title: "Run 5km"}
		return s
	}

	tests := []struct {
		name     string
		mutate   func(*GameState)
		now      time.Time
		wantAct  Action
		wantFire bool
	}{
		{
			name:     "boundary crossed with incomplete quest and penalty task",
			now:      justAfterMidnight,
			wantAct:  ActivatePenalty{},
			wantFire: true,
		},
		{
			name:     "boundary crossed without penalty task resets silently",
			mutate:   func(s *GameState) { s.PenaltyTask = nil },
			now:      justAfterMidnight,
			wantAct:  ResetDailyQuests{},
			wantFire: true,
		},
		{
			name: "boundary crossed with everything complete",
			mutate: func(s *GameState) {
				s.DailyQuests[1].IsComplete = true
			},
			now:      justAfterMidnight,
			wantAct:  ResetDailyQuests{},
			wantFire: true,
		},
		{
			name:     "same calendar day",
			now:      time.Date(2024, 1, 14, 23, 59, 0, 0, time.UTC),
			wantFire: false,
		},
		{
			name:     "app closed over several days",
			now:      time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC),
			wantAct:  ActivatePenalty{},
			wantFire: true,
		},
		{
			name:     "penalties disabled",
			mutate:   func(s *GameState) { s.Settings.PenaltyEnabled = false },
			now:      justAfterMidnight,
			wantFire: false,
		},
		{
			name:     "penalty already active",
			mutate:   func(s *GameState) { s.IsPenaltyActive = true },
			now:      justAfterMidnight,
			wantFire: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base()
			if tt.mutate != nil {
				tt.mutate(&s)
			}
			act, fire := EvaluateDailyCycle(s, tt.now)
			if fire != tt.wantFire {
				t.Fatalf("Expected fire=%v, got %v", tt.wantFire, fire)
			}
			if act != tt.wantAct {
				t.Errorf("Expected action %v, got %v", tt.wantAct, act)
			}
		})
	}
}

func TestEvaluateDailyCycle_LocalCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	s := DefaultGameState(time.Date(2024, 1, 14, 20, 0, 0, 0, time.UTC)) // 05:00 on the 15th in loc
	now := time.Date(2024, 1, 15, 23, 0, 0, 0, loc)

	if _, fire := EvaluateDailyCycle(s, now); fire {
		t.Error("Expected same local day to be a no-op")
	}
}

func TestEvaluateDailyCycle_IdempotentPerDay(t *testing.T) {
	r, clock := newTestReducer()
	s := r.ApplyAll(DefaultGameState(testNow),
		AddDailyQuest{Quest: QuestInput{Title: "a", Attribute: AttributeSTR, XPReward: 5}},
		SetPenaltyTask{Title: "penalty"},
	)
	clock.Advance(24 * time.Hour)

	fired := 0
	for i := 0; i < 3; i++ {
		if act, ok := EvaluateDailyCycle(s, clock.Now()); ok {
			fired++
			s = r.Apply(s, act)
		}
	}
	if fired != 1 {
		t.Errorf("Expected exactly one state change per day, got %d", fired)
	}

	s = r.ApplyAll(s, ResolvePenalty()...)
	if s.IsPenaltyActive || s.IncompleteDailyQuests() != 1 || !s.LastDailyReset.Equal(clock.T) {
		t.Errorf("unexpected state after resolving penalty: active=%v reset=%v", s.IsPenaltyActive, s.LastDailyReset)
	}
	if _, ok := EvaluateDailyCycle(s, clock.Now()); ok {
		t.Error("Expected no action right after resolving the penalty")
	}
}
