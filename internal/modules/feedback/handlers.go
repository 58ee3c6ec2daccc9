package feedback

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// MaxMessageLength caps stored feedback bodies.
const MaxMessageLength = 2000

// Handler handles feedback HTTP requests
type Handler struct {
	repo *Repository
	log  zerolog.Logger
}

// NewHandler creates a new feedback handler
func NewHandler(repo *Repository, log zerolog.Logger) *Handler {
	return &Handler{
		repo: repo,
		log:  log.With().Str("handler", "feedback").Logger(),
	}
}

// HandleCreate handles POST / - store a feedback message
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}
	if len(req.Message) > MaxMessageLength {
		http.Error(w, "message too long", http.StatusBadRequest)
		return
	}

	msg := &Message{Message: req.Message}
	if name := strings.TrimSpace(req.Name); name != "" {
		msg.Name = &name
	}
	if email := strings.TrimSpace(req.Email); email != "" {
		msg.Email = &email
	}

	created, err := h.repo.Create(msg)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to store feedback")
		http.Error(w, "Failed to store feedback", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// HandleList handles GET / - list feedback, newest first (admin only,
// enforced by router middleware)
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	var limit *int
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l < 1 || l > 1000 {
			http.Error(w, "Invalid limit. Must be 1-1000", http.StatusBadRequest)
			return
		}
		limit = &l
	}

	messages, err := h.repo.GetAll(limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list feedback")
		http.Error(w, "Failed to retrieve feedback", http.StatusInternalServerError)
		return
	}
	if messages == nil {
		messages = []Message{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(messages)
}

// HandleDelete handles DELETE /{id} (admin only)
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid feedback ID", http.StatusBadRequest)
		return
	}

	deleted, err := h.repo.Delete(id)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to delete feedback")
		http.Error(w, "Failed to delete feedback", http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "Feedback not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"deleted": id})
}
