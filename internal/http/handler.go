package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/status-system/progression/internal/engine"
	"github.com/status-system/progression/internal/service"
	"github.com/status-system/progression/internal/types"
	"github.com/status-system/progression/pkg/logger"
)

const (
	requestTimeout = 5 * time.Second
	dateLayout     = "2006-01-02"
)

// Handler holds HTTP handlers and dependencies
type Handler struct {
	svc            *service.GameService
	monitor        *service.Monitor
	logger         *logger.Logger
	allowedOrigins []string
	upgrader       *websocket.Upgrader
}

// NewHandler creates a new HTTP handler. allowedOrigins gates browser
// websocket connections the same way CORS gates requests.
func NewHandler(svc *service.GameService, monitor *service.Monitor, log *logger.Logger, allowedOrigins []string) *Handler {
	h := &Handler{
		svc:            svc,
		monitor:        monitor,
		logger:         log,
		allowedOrigins: allowedOrigins,
	}
	h.upgrader = h.newUpgrader()
	return h
}

// Routes sets up all HTTP routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/v1", func(r chi.Router) {
		r.Post("/actions", h.DispatchAction)
		r.Get("/state", h.GetState)
		r.Get("/status", h.GetStatus)
		r.Get("/reminders", h.GetReminders)
		r.Get("/calendar", h.GetCalendar)
		r.Post("/penalty/complete", h.CompletePenalty)
		r.Post("/lifecycle", h.Lifecycle)
		r.Get("/ws", h.Stream)
	})

	r.Get("/healthz", h.Health)

	return r
}

// Health handles health check requests
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// DispatchAction handles POST /v1/actions
func (h *Handler) DispatchAction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var req types.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	action, err := req.Action(h.svc.Now())
	if err != nil {
		switch {
		case errors.Is(err, types.ErrUnknownAction):
			h.respondError(w, http.StatusBadRequest, "unknown action", err.Error())
		default:
			h.respondError(w, http.StatusBadRequest, "invalid payload", err.Error())
		}
		return
	}

	// A full reset also drops the saved snapshot.
	if _, ok := action.(engine.ResetAll); ok {
		state, err := h.svc.ResetAll(ctx)
		if err != nil {
			h.respondError(w, http.StatusInternalServerError, "failed to reset", err.Error())
			return
		}
		h.respondJSON(w, http.StatusOK, state)
		return
	}

	h.respondJSON(w, http.StatusOK, h.svc.Dispatch(ctx, action))
}

// GetState handles GET /v1/state
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.svc.State())
}

// GetStatus handles GET /v1/status
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.svc.Status())
}

// GetReminders handles GET /v1/reminders
func (h *Handler) GetReminders(w http.ResponseWriter, r *http.Request) {
	resp := types.RemindersResponse{Reminders: h.svc.Reminders()}
	if resp.Reminders == nil {
		resp.Reminders = []engine.Reminder{}
	}
	if warning, ok := engine.ForegroundWarning(h.svc.State()); ok {
		resp.Warning = warning
	}
	h.respondJSON(w, http.StatusOK, resp)
}

// GetCalendar handles GET /v1/calendar?date=YYYY-MM-DD. The date defaults
// to today.
func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	now := h.svc.Now()
	day := now
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.ParseInLocation(dateLayout, raw, now.Location())
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "invalid date", "date must be in YYYY-MM-DD format")
			return
		}
		day = parsed
	}

	entries := h.svc.Calendar(day)
	if entries == nil {
		entries = []engine.CalendarEntry{}
	}
	h.respondJSON(w, http.StatusOK, types.CalendarResponse{
		Date:    day.Format(dateLayout),
		Entries: entries,
	})
}

// CompletePenalty handles POST /v1/penalty/complete
func (h *Handler) CompletePenalty(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if !h.svc.State().IsPenaltyActive {
		h.respondError(w, http.StatusConflict, "no active penalty", "there is no penalty to complete")
		return
	}
	h.respondJSON(w, http.StatusOK, h.svc.CompletePenalty(ctx))
}

// Lifecycle handles POST /v1/lifecycle
func (h *Handler) Lifecycle(w http.ResponseWriter, r *http.Request) {
	var req types.LifecycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	appState, err := service.ParseAppState(req.State)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid state", err.Error())
		return
	}

	resp := types.LifecycleResponse{
		State:   string(appState),
		Checked: h.monitor.AppStateChanged(appState),
	}
	if resp.Checked {
		if warning, ok := engine.ForegroundWarning(h.svc.State()); ok {
			resp.Warning = warning
		}
	}
	h.respondJSON(w, http.StatusOK, resp)
}

// respondJSON sends a JSON response
func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", logger.Err(err))
	}
}

// respondError sends an error response
func (h *Handler) respondError(w http.ResponseWriter, status int, errorMsg, message string) {
	h.respondJSON(w, status, types.ErrorResponse{
		Error:   errorMsg,
		Message: message,
	})
}
