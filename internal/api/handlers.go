// Package api exposes the HTTP handlers for the exercise tracker.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"example.com/exercisetracker/internal/domain"
)

// Handler coordinates HTTP requests with the domain services.
type Handler struct {
	registry *domain.Registry
	log      *domain.ExerciseLog
}

// NewHandler builds a Handler.
func NewHandler(registry *domain.Registry, log *domain.ExerciseLog) *Handler {
	return &Handler{registry: registry, log: log}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/users", h.users)
	mux.HandleFunc("/api/users/", h.userSubresource)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) users(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listUsers(w, r)
	case http.MethodPost:
		h.createUser(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// userSubresource routes /api/users/{id}/exercises and /api/users/{id}/logs.
func (h *Handler) userSubresource(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/users/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" {
		http.NotFound(w, r)
		return
	}

	id := parts[0]
	switch parts[1] {
	case "exercises":
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.createExercise(w, r, id)
	case "logs":
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.queryLogs(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.registry.List(r.Context())
	if err != nil {
		writeErrorBody(w, err)
		return
	}

	views := make([]UserView, 0, len(users))
	for _, user := range users {
		views = append(views, UserView{ID: user.ID, Username: user.Username})
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeErrorBody(w, err)
		return
	}

	user, err := h.registry.Register(r.Context(), r.PostFormValue("username"))
	if err != nil {
		writeErrorBody(w, err)
		return
	}

	writeJSON(w, http.StatusOK, UserView{ID: user.ID, Username: user.Username})
}

func (h *Handler) createExercise(w http.ResponseWriter, r *http.Request, userID string) {
	if err := r.ParseForm(); err != nil {
		writeErrorBody(w, err)
		return
	}

	duration := 0
	if raw := r.PostFormValue("duration"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeErrorBody(w, &domain.ValidationError{Msg: "invalid duration"})
			return
		}
		duration = parsed
	}

	logged, err := h.log.Create(r.Context(), domain.CreateExerciseInput{
		UserID:      userID,
		Description: r.PostFormValue("description"),
		DurationMin: duration,
		Date:        r.PostFormValue("date"),
	})
	if err != nil {
		// Unknown user on this endpoint is reported as bare text, a wire
		// format older clients depend on.
		if errors.Is(err, domain.ErrUserNotFound) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("could not find user"))
			return
		}
		writeErrorBody(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ExerciseView{
		ID:          logged.UserID,
		Username:    logged.Username,
		Description: logged.Description,
		Duration:    logged.DurationMin,
		Date:        domain.CalendarString(logged.LoggedOn),
	})
}

func (h *Handler) queryLogs(w http.ResponseWriter, r *http.Request, userID string) {
	query := domain.QueryInput{
		UserID: userID,
		From:   r.URL.Query().Get("from"),
		To:     r.URL.Query().Get("to"),
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeErrorBody(w, &domain.ValidationError{Msg: "invalid limit"})
			return
		}
		query.Limit = &parsed
	}

	page, err := h.log.QueryLog(r.Context(), query)
	if err != nil {
		writeErrorBody(w, err)
		return
	}

	entries := make([]LogEntryView, 0, len(page.Entries))
	for _, entry := range page.Entries {
		entries = append(entries, LogEntryView{
			Description: entry.Description,
			Duration:    entry.DurationMin,
			Date:        domain.CalendarString(entry.LoggedOn),
		})
	}

	writeJSON(w, http.StatusOK, LogView{
		Username: page.Username,
		Count:    len(entries),
		ID:       page.UserID,
		Log:      entries,
	})
}

// UserView is the wire shape for a user record. The _id key mirrors the
// original service's wire format.
type UserView struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

// ExerciseView is the composite response after logging an exercise.
type ExerciseView struct {
	ID          string `json:"_id"`
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogEntryView is a single entry in a log query response.
type LogEntryView struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogView is the response for a log query.
type LogView struct {
	Username string         `json:"username"`
	Count    int            `json:"count"`
	ID       string         `json:"_id"`
	Log      []LogEntryView `json:"log"`
}

// writeErrorBody converts a failure into the {"error": ...} body. Errors ship
// with a 200 status: clients of the original service key off the body shape,
// never the status code.
func writeErrorBody(w http.ResponseWriter, err error) {
	msg := err.Error()

	var verr *domain.ValidationError
	var serr *domain.StorageError
	switch {
	case errors.As(err, &verr):
		msg = verr.Msg
	case errors.As(err, &serr):
		msg = serr.Error()
	case errors.Is(err, domain.ErrUserNotFound):
		msg = "could not find user"
	}

	writeJSON(w, http.StatusOK, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
