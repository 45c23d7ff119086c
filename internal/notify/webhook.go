package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/status-system/progression/internal/engine"
	"github.com/status-system/progression/pkg/logger"
)

// Plan is the payload posted to the webhook.
type Plan struct {
	GeneratedAt     time.Time         `json:"generatedAt"`
	PlayerName      string            `json:"playerName"`
	IsPenaltyActive bool              `json:"isPenaltyActive"`
	Warning         string            `json:"warning,omitempty"`
	Reminders       []engine.Reminder `json:"reminders"`
}

// WebhookNotifier posts the reminder plan whenever it changes. It only
// reads snapshots.
type WebhookNotifier struct {
	url        string
	clock      engine.Clock
	logger     *logger.Logger
	httpClient *http.Client

	last []byte
}

// NewWebhookNotifier creates a notifier posting to url
func NewWebhookNotifier(url string, timeout time.Duration, clock engine.Clock, log *logger.Logger) *WebhookNotifier {
	if clock == nil {
		clock = engine.SystemClock{}
	}
	return &WebhookNotifier{
		url:    url,
		clock:  clock,
		logger: log,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Run posts plans for each snapshot until ctx is done or updates closes.
func (n *WebhookNotifier) Run(ctx context.Context, updates <-chan engine.GameState) {
	for {
		select {
		case <-ctx.Done():
			return
		case state, ok := <-updates:
			if !ok {
				return
			}
			if _, err := n.Notify(ctx, state); err != nil {
				n.logger.Warn("Failed to deliver reminder plan", logger.F("url", n.url), logger.Err(err))
			}
		}
	}
}

// BuildPlan computes the payload for state at now.
func BuildPlan(state engine.GameState, now time.Time) Plan {
	plan := Plan{
		GeneratedAt:     now,
		PlayerName:      state.Player.Name,
		IsPenaltyActive: state.IsPenaltyActive,
		Reminders:       engine.PlanReminders(state, now),
	}
	if plan.Reminders == nil {
		plan.Reminders = []engine.Reminder{}
	}
	if warning, ok := engine.ForegroundWarning(state); ok {
		plan.Warning = warning
	}
	return plan
}

// Notify posts the plan for state. It reports false without sending when
// notifications are disabled or the plan is unchanged since the last post.
func (n *WebhookNotifier) Notify(ctx context.Context, state engine.GameState) (bool, error) {
	if !state.Settings.NotificationsEnabled {
		return false, nil
	}

	plan := BuildPlan(state, n.clock.Now())

	// Compare without the timestamp so only content changes trigger a post.
	unstamped := plan
	unstamped.GeneratedAt = time.Time{}
	fingerprint, err := json.Marshal(unstamped)
	if err != nil {
		return false, fmt.Errorf("failed to marshal plan: %w", err)
	}
	if bytes.Equal(fingerprint, n.last) {
		return false, nil
	}

	jsonData, err := json.Marshal(plan)
	if err != nil {
		return false, fmt.Errorf("failed to marshal plan: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(jsonData))
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(httpReq)
	if err != nil {
		return false, fmt.Errorf("failed to post plan: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return false, fmt.Errorf("webhook failed with status %d: %s", resp.StatusCode, string(body))
	}

	n.last = fingerprint
	n.logger.Debug("Reminder plan delivered", logger.Int("reminders", len(plan.Reminders)))
	return true, nil
}
