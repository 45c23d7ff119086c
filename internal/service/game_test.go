package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/status-system/progression/internal/engine"
	"github.com/status-system/progression/internal/store"
	"github.com/status-system/progression/pkg/logger"
)

var testStart = time.Date(2024, 1, 14, 10, 0, 0, 0, time.UTC)

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

// flakyStore wraps a MemoryStore and fails on demand.
type flakyStore struct {
	*store.MemoryStore
	mu       sync.Mutex
	loadErr  error
	saveErr  error
	resetErr error
	saves    int
}

func newFlakyStore() *flakyStore {
	return &flakyStore{MemoryStore: store.NewMemoryStore()}
}

func (f *flakyStore) Load(ctx context.Context) (*engine.GameState, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.MemoryStore.Load(ctx)
}

func (f *flakyStore) Save(ctx context.Context, s *engine.GameState) error {
	f.mu.Lock()
	f.saves++
	f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.MemoryStore.Save(ctx, s)
}

func (f *flakyStore) Reset(ctx context.Context) error {
	if f.resetErr != nil {
		return f.resetErr
	}
	return f.MemoryStore.Reset(ctx)
}

func newTestService(t *testing.T, st store.Store) (*GameService, *engine.FixedClock) {
	t.Helper()
	clock := &engine.FixedClock{T: testStart}
	svc := NewGameService(st, clock, &seqIDs{}, logger.Discard())
	svc.Start(context.Background())
	return svc, clock
}

func TestGameService_Start(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store starts fresh", func(t *testing.T) {
		svc, _ := newTestService(t, newFlakyStore())
		state := svc.State()
		if !state.IsFirstLaunch || state.Player.Name != engine.DefaultPlayerName {
			t.Errorf("Expected default state, got %+v", state.Player)
		}
	})

	t.Run("load error starts fresh", func(t *testing.T) {
		st := newFlakyStore()
		st.loadErr = errors.New("disk on fire")
		svc, _ := newTestService(t, st)
		if svc.State().Player.Rank != engine.RankE {
			t.Errorf("Expected rank E, got %s", svc.State().Player.Rank)
		}
	})

	t.Run("saved state is restored", func(t *testing.T) {
		st := newFlakyStore()
		saved := engine.DefaultGameState(testStart)
		saved.Player.Name = "JIN"
		saved.IsFirstLaunch = false
		if err := st.Save(ctx, &saved); err != nil {
			t.Fatalf("seed: %v", err)
		}

		svc, _ := newTestService(t, st)
		state := svc.State()
		if state.Player.Name != "JIN" || state.IsFirstLaunch {
			t.Errorf("Expected restored state, got name=%q firstLaunch=%v", state.Player.Name, state.IsFirstLaunch)
		}
	})
}

func TestGameService_DispatchPersists(t *testing.T) {
	ctx := context.Background()
	st := newFlakyStore()
	svc, _ := newTestService(t, st)

	state := svc.Dispatch(ctx,
		engine.AddDailyQuest{Quest: engine.QuestInput{Title: "Read", Attribute: engine.AttributeINT, XPReward: 30}},
		engine.SetPlayerName{Name: "JIN"},
	)
	if len(state.DailyQuests) != 1 || state.Player.Name != "JIN" {
		t.Fatalf("unexpected state after dispatch: %+v", state)
	}
	if st.saves != 2 {
		t.Errorf("Expected a save per action, got %d", st.saves)
	}

	saved, err := st.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if saved.Player.Name != "JIN" || len(saved.DailyQuests) != 1 {
		t.Errorf("Expected saved state to match, got %+v", saved)
	}
}

func TestGameService_SaveFailureKeepsState(t *testing.T) {
	st := newFlakyStore()
	st.saveErr = errors.New("read-only filesystem")
	svc, _ := newTestService(t, st)

	state := svc.Dispatch(context.Background(), engine.SetPlayerName{Name: "JIN"})
	if state.Player.Name != "JIN" {
		t.Errorf("Expected in-memory state to advance, got %q", state.Player.Name)
	}
}

func TestGameService_Subscribe(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, newFlakyStore())

	updates, cancel := svc.Subscribe()

	svc.Dispatch(ctx, engine.SetPlayerName{Name: "A"})
	svc.Dispatch(ctx, engine.SetPlayerName{Name: "B"})

	select {
	case got := <-updates:
		if got.Player.Name != "B" {
			t.Errorf("Expected newest snapshot B, got %q", got.Player.Name)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot")
	}

	cancel()
	cancel()
	if _, ok := <-updates; ok {
		t.Error("Expected channel to be closed after cancel")
	}

	// Publishing after unsubscribe must not panic.
	svc.Dispatch(ctx, engine.SetPlayerName{Name: "C"})
}

func TestGameService_PenaltyCycle(t *testing.T) {
	ctx := context.Background()
	svc, clock := newTestService(t, newFlakyStore())

	svc.Dispatch(ctx,
		engine.AddDailyQuest{Quest: engine.QuestInput{Title: "Run", Attribute: engine.AttributeSTR, XPReward: 30}},
		engine.SetPenaltyTask{Title: "Pushups", Description: "100 reps"},
	)

	if _, ok := svc.CheckDailyCycle(ctx); ok {
		t.Fatal("Expected no action on the same day")
	}

	clock.Advance(15 * time.Hour) // 2024-01-15 01:00
	action, ok := svc.CheckDailyCycle(ctx)
	if !ok {
		t.Fatal("Expected an action after the day boundary")
	}
	if _, isPenalty := action.(engine.ActivatePenalty); !isPenalty {
		t.Fatalf("Expected ActivatePenalty, got %T", action)
	}
	state := svc.State()
	if !state.IsPenaltyActive || state.Player.HP != engine.DefaultMaxHP-engine.PenaltyHPDamage {
		t.Errorf("Expected active penalty and HP 80, got active=%v hp=%d", state.IsPenaltyActive, state.Player.HP)
	}

	if _, ok := svc.CheckDailyCycle(ctx); ok {
		t.Error("Expected no further action while the penalty is active")
	}

	state = svc.CompletePenalty(ctx)
	if state.IsPenaltyActive {
		t.Error("Expected penalty to be cleared")
	}
	if state.DailyQuests[0].IsComplete {
		t.Error("Expected quests to be reset")
	}
	if !engine.SameDay(state.LastDailyReset, clock.Now()) {
		t.Errorf("Expected last reset today, got %v", state.LastDailyReset)
	}
	if _, ok := svc.CheckDailyCycle(ctx); ok {
		t.Error("Expected no action after resolving the penalty on the same day")
	}
}

func TestGameService_ResetAll(t *testing.T) {
	ctx := context.Background()
	st := newFlakyStore()
	svc, _ := newTestService(t, st)
	svc.Dispatch(ctx, engine.SetPlayerName{Name: "JIN"})

	state, err := svc.ResetAll(ctx)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if state.Player.Name != engine.DefaultPlayerName {
		t.Errorf("Expected default name, got %q", state.Player.Name)
	}
	if _, err := st.Load(ctx); !errors.Is(err, store.ErrStateNotFound) {
		t.Errorf("Expected store to be empty, got %v", err)
	}

	st.resetErr = errors.New("locked")
	if _, err := svc.ResetAll(ctx); err == nil {
		t.Error("Expected store reset error to be returned")
	}
}

func TestGameService_Queries(t *testing.T) {
	ctx := context.Background()
	svc, clock := newTestService(t, newFlakyStore())

	deadline := time.Date(2024, 1, 16, 18, 0, 0, 0, time.UTC)
	svc.Dispatch(ctx,
		engine.AddDailyQuest{Quest: engine.QuestInput{Title: "Run", Attribute: engine.AttributeSTR, XPReward: 30}},
		engine.AddBossRaid{Raid: engine.RaidInput{
			Name:      "Thesis",
			TotalHP:   2,
			Deadline:  &deadline,
			SubQuests: []engine.SubQuestInput{{Title: "Draft", XPReward: 10, Attribute: engine.AttributeINT}},
		}},
	)

	if got := svc.Status(); got.Rank != engine.RankE || got.TotalLevels != 4 {
		t.Errorf("unexpected status: %+v", got)
	}
	if got := svc.Reminders(); len(got) != 2 {
		t.Errorf("Expected 2 reminders, got %d", len(got))
	}
	if got := svc.Calendar(deadline); len(got) != 1 {
		t.Errorf("Expected 1 calendar entry on the raid deadline, got %d", len(got))
	}
	if !svc.Now().Equal(clock.Now()) {
		t.Error("Expected Now to follow the injected clock")
	}
}
