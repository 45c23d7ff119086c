package types

import (
	"encoding/json"

	"github.com/status-system/progression/internal/engine"
)

// ActionRequest is the wire form of an engine action
type ActionRequest struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// LifecycleRequest reports the client's foreground state
type LifecycleRequest struct {
	State string `json:"state"` // "active", "background" or "inactive"
}

// LifecycleResponse reports whether the transition triggered a daily-cycle check
type LifecycleResponse struct {
	State   string `json:"state"`
	Checked bool   `json:"checked"`
	Warning string `json:"warning,omitempty"`
}

// RemindersResponse is the notification plan as of now
type RemindersResponse struct {
	Reminders []engine.Reminder `json:"reminders"`
	Warning   string            `json:"warning,omitempty"`
}

// CalendarResponse lists the deadlines on one day
type CalendarResponse struct {
	Date    string                 `json:"date"` // YYYY-MM-DD
	Entries []engine.CalendarEntry `json:"entries"`
}

// Payloads of actions that carry one.

type NamePayload struct {
	Name string `json:"name"`
}

type IDPayload struct {
	ID string `json:"id"`
}

type SubQuestPayload struct {
	BossID     string `json:"bossId"`
	SubQuestID string `json:"subQuestId"`
}

type PenaltyTaskPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type VitalsPayload struct {
	HP *int `json:"hp,omitempty"`
	MP *int `json:"mp,omitempty"`
}
