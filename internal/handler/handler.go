// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the activity service.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/Shivanand-hulikatti/activity-board/internal/metrics"
	"github.com/Shivanand-hulikatti/activity-board/internal/model"
	"github.com/Shivanand-hulikatti/activity-board/internal/repository"
	"github.com/Shivanand-hulikatti/activity-board/internal/service"
)

// ActivityHandler holds all HTTP handlers for the activities API.
type ActivityHandler struct {
	svc      *service.ActivityService
	log      *slog.Logger
	boardURL string
}

// NewActivityHandler constructs an ActivityHandler. GET / redirects to
// boardURL.
func NewActivityHandler(svc *service.ActivityService, log *slog.Logger, boardURL string) *ActivityHandler {
	return &ActivityHandler{svc: svc, log: log, boardURL: boardURL}
}

// RegisterRoutes mounts the API routes on r.
func (h *ActivityHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Root)
	r.Get("/health", HealthCheck)
	r.Route("/activities", func(r chi.Router) {
		r.Get("/", h.ListActivities)
		r.Post("/{name}/signup", h.Signup)
		r.Post("/{name}/unregister", h.Unregister)
	})
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, model.ErrorResponse{Detail: detail})
}

// activityName returns the decoded {name} path parameter. chi matches on
// the raw path when the request carries escapes such as %2F, in which case
// the parameter is still percent-encoded.
func activityName(r *http.Request) (string, error) {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name, nil
	}
	return url.PathUnescape(name)
}

// ─── Handlers ─────────────────────────────────────────────────────────────────

// Root handles GET /
// Redirects to the activity board.
func (h *ActivityHandler) Root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.boardURL, http.StatusTemporaryRedirect)
}

// ListActivities handles GET /activities
// Returns the catalog as a JSON object keyed by activity name.
func (h *ActivityHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.svc.Catalog(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "list activities", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list activities")
		return
	}
	writeJSON(w, http.StatusOK, catalog)
}

// Signup handles POST /activities/{name}/signup?email=
func (h *ActivityHandler) Signup(w http.ResponseWriter, r *http.Request) {
	name, err := activityName(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid activity name")
		return
	}

	msg, err := h.svc.Signup(r.Context(), name, r.URL.Query().Get("email"))
	if err != nil {
		metrics.RecordEnrollment("signup", metrics.OutcomeFailure)
		h.writeServiceError(w, r, err)
		return
	}

	metrics.RecordEnrollment("signup", metrics.OutcomeSuccess)
	writeJSON(w, http.StatusOK, model.MessageResponse{Message: msg})
}

// Unregister handles POST /activities/{name}/unregister?email=
func (h *ActivityHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	name, err := activityName(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid activity name")
		return
	}

	msg, err := h.svc.Unregister(r.Context(), name, r.URL.Query().Get("email"))
	if err != nil {
		metrics.RecordEnrollment("unregister", metrics.OutcomeFailure)
		h.writeServiceError(w, r, err)
		return
	}

	metrics.RecordEnrollment("unregister", metrics.OutcomeSuccess)
	writeJSON(w, http.StatusOK, model.MessageResponse{Message: msg})
}

func (h *ActivityHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "Activity not found")
	case errors.Is(err, repository.ErrAlreadySignedUp):
		writeError(w, http.StatusBadRequest, "Student is already signed up")
	case errors.Is(err, repository.ErrNotSignedUp):
		writeError(w, http.StatusBadRequest, "Student is not signed up for this activity")
	case errors.Is(err, repository.ErrActivityFull):
		writeError(w, http.StatusBadRequest, "Activity is full")
	case errors.Is(err, service.ErrInvalidEmail):
		writeError(w, http.StatusBadRequest, "A valid email is required")
	default:
		h.log.ErrorContext(r.Context(), "enrollment change failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
