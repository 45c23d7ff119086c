package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/status-system/progression/internal/engine"
	"github.com/status-system/progression/internal/store"
	"github.com/status-system/progression/pkg/logger"
)

// GameService owns the live GameState. Every mutation goes through
// Dispatch, which serializes writers, persists the result and fans the new
// snapshot out to subscribers.
type GameService struct {
	store   store.Store
	reducer *engine.Reducer
	clock   engine.Clock
	logger  *logger.Logger

	mu    sync.Mutex
	state engine.GameState

	subsMu  sync.Mutex
	subs    map[int]chan engine.GameState
	nextSub int
}

// NewGameService creates a new game service holding the default state
// until Start is called.
func NewGameService(st store.Store, clock engine.Clock, ids engine.IDGenerator, log *logger.Logger) *GameService {
	if clock == nil {
		clock = engine.SystemClock{}
	}
	return &GameService{
		store:   st,
		reducer: engine.NewReducer(clock, ids),
		clock:   clock,
		logger:  log,
		state:   engine.DefaultGameState(clock.Now()),
		subs:    make(map[int]chan engine.GameState),
	}
}

// Start loads the saved state once. A missing or unreadable snapshot
// leaves the default state in place.
func (s *GameService) Start(ctx context.Context) engine.GameState {
	loaded, err := s.store.Load(ctx)
	switch {
	case errors.Is(err, store.ErrStateNotFound):
		s.logger.Info("No saved game state, starting fresh")
	case err != nil:
		s.logger.Error("Failed to load game state, starting fresh", logger.Err(err))
	default:
		s.logger.Info("Game state loaded",
			logger.F("player", loaded.Player.Name),
			logger.F("rank", string(loaded.Player.Rank)))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		s.state = s.reducer.Apply(s.state, engine.LoadState{State: *loaded})
	}
	s.publish(s.state)
	return s.state
}

// Dispatch applies actions in order and returns the resulting state.
// Persistence failures are logged; the in-memory state stays authoritative.
func (s *GameService) Dispatch(ctx context.Context, actions ...engine.Action) engine.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatchLocked(ctx, actions...)
}

func (s *GameService) dispatchLocked(ctx context.Context, actions ...engine.Action) engine.GameState {
	if len(actions) == 0 {
		return s.state
	}
	for _, a := range actions {
		s.state = s.reducer.Apply(s.state, a)
		s.logger.Debug("Action applied", logger.F("action", a.Kind()))
		s.persist(ctx)
	}
	s.publish(s.state)
	return s.state
}

func (s *GameService) persist(ctx context.Context) {
	snapshot := s.state
	if err := s.store.Save(ctx, &snapshot); err != nil {
		s.logger.Error("Failed to save game state", logger.Err(err))
	}
}

// CheckDailyCycle evaluates the daily cycle against the current time and
// applies the resulting action, if any.
func (s *GameService) CheckDailyCycle(ctx context.Context) (engine.Action, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	action, ok := engine.EvaluateDailyCycle(s.state, s.clock.Now())
	if !ok {
		return nil, false
	}
	s.dispatchLocked(ctx, action)
	return action, true
}

// CompletePenalty clears an active penalty and starts a fresh day.
func (s *GameService) CompletePenalty(ctx context.Context) engine.GameState {
	return s.Dispatch(ctx, engine.ResolvePenalty()...)
}

// ResetAll restores the default state and deletes the saved snapshot.
func (s *GameService) ResetAll(ctx context.Context) (engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = s.reducer.Apply(s.state, engine.ResetAll{})
	if err := s.store.Reset(ctx); err != nil {
		s.publish(s.state)
		return s.state, fmt.Errorf("failed to reset store: %w", err)
	}
	s.publish(s.state)
	return s.state, nil
}

// State returns the current snapshot. Callers must treat it as read-only.
func (s *GameService) State() engine.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Status returns the derived rank summary of the player.
func (s *GameService) Status() engine.Status {
	return engine.StatusOf(s.State().Player)
}

// Reminders returns the notification plan as of now.
func (s *GameService) Reminders() []engine.Reminder {
	return engine.PlanReminders(s.State(), s.clock.Now())
}

// Calendar lists the deadlines that fall on day.
func (s *GameService) Calendar(day time.Time) []engine.CalendarEntry {
	return engine.DeadlinesOn(s.State(), day)
}

// Now exposes the service clock.
func (s *GameService) Now() time.Time {
	return s.clock.Now()
}

// Subscribe returns a channel that receives the latest snapshot after each
// dispatch. Slow readers only ever see the newest snapshot. The returned
// func unsubscribes and closes the channel.
func (s *GameService) Subscribe() (<-chan engine.GameState, func()) {
	ch := make(chan engine.GameState, 1)

	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.subsMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.subs, id)
			s.subsMu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (s *GameService) publish(state engine.GameState) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	for _, ch := range s.subs {
		// Replace any unread snapshot with the newer one.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- state:
		default:
		}
	}
}
