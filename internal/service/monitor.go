package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/status-system/progression/internal/engine"
	"github.com/status-system/progression/pkg/logger"
)

// AppState is the foreground state reported by the client.
type AppState string

const (
	AppActive     AppState = "active"
	AppBackground AppState = "background"
	AppInactive   AppState = "inactive"
)

// ParseAppState validates a client-reported state.
func ParseAppState(s string) (AppState, error) {
	switch st := AppState(s); st {
	case AppActive, AppBackground, AppInactive:
		return st, nil
	default:
		return "", fmt.Errorf("unknown app state %q", s)
	}
}

// DefaultCheckSchedule runs the daily-cycle check once a minute.
const DefaultCheckSchedule = "@every 60s"

// Monitor drives the daily-cycle check: once at start, on the cron
// schedule, and whenever the app comes back to the foreground.
type Monitor struct {
	svc      *GameService
	logger   *logger.Logger
	cron     *cron.Cron
	schedule string

	mu       sync.Mutex
	appState AppState
	ctx      context.Context
}

// NewMonitor creates a monitor whose schedule is interpreted in loc.
func NewMonitor(svc *GameService, schedule string, loc *time.Location, log *logger.Logger) *Monitor {
	if schedule == "" {
		schedule = DefaultCheckSchedule
	}
	if loc == nil {
		loc = time.Local
	}
	return &Monitor{
		svc:      svc,
		logger:   log,
		cron:     cron.New(cron.WithLocation(loc)),
		schedule: schedule,
		appState: AppActive,
		ctx:      context.Background(),
	}
}

// Start runs the first check and schedules the rest. Checks run with ctx.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	m.ctx = ctx
	m.mu.Unlock()

	m.Check()

	if _, err := m.cron.AddFunc(m.schedule, func() { m.Check() }); err != nil {
		return fmt.Errorf("invalid check schedule %q: %w", m.schedule, err)
	}
	m.cron.Start()
	m.logger.Info("Daily cycle monitor started", logger.F("schedule", m.schedule))
	return nil
}

// Stop halts the schedule and waits for a running check to finish.
func (m *Monitor) Stop() {
	<-m.cron.Stop().Done()
	m.logger.Info("Daily cycle monitor stopped")
}

// Check evaluates the daily cycle once.
func (m *Monitor) Check() (engine.Action, bool) {
	m.mu.Lock()
	ctx := m.ctx
	m.mu.Unlock()

	action, ok := m.svc.CheckDailyCycle(ctx)
	if !ok {
		return nil, false
	}
	switch action.(type) {
	case engine.ActivatePenalty:
		m.logger.Warn("Daily quests missed, penalty activated",
			logger.Int("player_hp", m.svc.State().Player.HP))
	default:
		m.logger.Info("Daily quests reset")
	}
	return action, true
}

// AppStateChanged records the new app state and runs a check when the app
// returns to the foreground. It reports whether a check ran.
func (m *Monitor) AppStateChanged(next AppState) bool {
	m.mu.Lock()
	prev := m.appState
	m.appState = next
	m.mu.Unlock()

	if next != AppActive || (prev != AppBackground && prev != AppInactive) {
		return false
	}
	m.Check()
	return true
}

// AppState returns the last reported app state.
func (m *Monitor) AppState() AppState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.appState
}
