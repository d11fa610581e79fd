package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Dakshan-Kumar-A/AI-Assisted-Daily-Journal/internal/models"
	"github.com/Dakshan-Kumar-A/AI-Assisted-Daily-Journal/internal/services"
)

var journalService *services.JournalService

// InitJournalService wires the journal service into the handlers.
// Must be called once at startup before routes are served.
func InitJournalService(svc *services.JournalService) {
	journalService = svc
}

type CreateJournalRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type UpdateJournalRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type JournalResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Journal *models.Journal `json:"journal,omitempty"`
}

type ListJournalsResponse struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message,omitempty"`
	Journals []models.Journal `json:"journals"`
	Total    int64            `json:"total"`
}

// journalErrorStatus maps service errors to HTTP statuses, keeping the
// not-found/forbidden distinction visible to the caller.
func journalErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrJournalNotFound):
		return http.StatusNotFound, "Journal not found"
	case errors.Is(err, services.ErrNotOwner):
		return http.StatusForbidden, "You do not have access to this journal"
	case errors.Is(err, services.ErrMissingFields):
		return http.StatusBadRequest, "Title and content are required"
	default:
		return http.StatusInternalServerError, "Something went wrong"
	}
}

// CreateJournal creates a new enriched journal entry for the
// authenticated user.
func CreateJournal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, JournalResponse{Success: false, Message: "Authentication required"})
		return
	}

	var req CreateJournalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, JournalResponse{Success: false, Message: "Invalid request body"})
		return
	}

	// The enrichment call rides on the same deadline as the write.
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	journal, err := journalService.Create(ctx, userID, services.CreateJournalInput{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		status, msg := journalErrorStatus(err)
		writeJSON(w, status, JournalResponse{Success: false, Message: msg})
		return
	}

	writeJSON(w, http.StatusCreated, JournalResponse{
		Success: true,
		Message: "Journal created successfully",
		Journal: journal,
	})
}

// GetJournals returns the authenticated user's entries, newest first.
func GetJournals(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ListJournalsResponse{Success: false, Message: "Authentication required", Journals: []models.Journal{}})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Date-range mode: ?from=YYYY-MM-DD&to=YYYY-MM-DD (to is inclusive).
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr != "" || toStr != "" {
		now := time.Now()
		to := now
		from := now.AddDate(0, 0, -30)
		if t, err := time.Parse("2006-01-02", fromStr); err == nil {
			from = t
		}
		if t, err := time.Parse("2006-01-02", toStr); err == nil {
			to = t
		}
		if from.After(to) {
			from, to = to, from
		}
		toEnd := to.AddDate(0, 0, 1)

		journals, err := journalService.ListRange(ctx, userID, from, toEnd)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, ListJournalsResponse{Success: false, Message: "Failed to fetch journals", Journals: []models.Journal{}})
			return
		}
		if journals == nil {
			journals = []models.Journal{}
		}
		writeJSON(w, http.StatusOK, ListJournalsResponse{Success: true, Journals: journals, Total: int64(len(journals))})
		return
	}

	limit := 20
	if s := r.URL.Query().Get("limit"); s != "" {
		if parsed, err := strconv.Atoi(s); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	skip := 0
	if s := r.URL.Query().Get("skip"); s != "" {
		if parsed, err := strconv.Atoi(s); err == nil && parsed >= 0 {
			skip = parsed
		}
	}

	journals, total, err := journalService.List(ctx, userID, limit, skip)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ListJournalsResponse{Success: false, Message: "Failed to fetch journals", Journals: []models.Journal{}})
		return
	}
	if journals == nil {
		journals = []models.Journal{}
	}

	writeJSON(w, http.StatusOK, ListJournalsResponse{
		Success:  true,
		Journals: journals,
		Total:    total,
	})
}

// GetJournal returns a single entry owned by the authenticated user.
func GetJournal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, JournalResponse{Success: false, Message: "Authentication required"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	journal, err := journalService.Get(ctx, userID, chi.URLParam(r, "id"))
	if err != nil {
		status, msg := journalErrorStatus(err)
		writeJSON(w, status, JournalResponse{Success: false, Message: msg})
		return
	}

	writeJSON(w, http.StatusOK, JournalResponse{Success: true, Journal: journal})
}

// UpdateJournal applies a partial update; enrichment re-runs only when
// the content actually changed.
func UpdateJournal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, JournalResponse{Success: false, Message: "Authentication required"})
		return
	}

	var req UpdateJournalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, JournalResponse{Success: false, Message: "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	journal, err := journalService.Update(ctx, userID, chi.URLParam(r, "id"), services.UpdateJournalInput{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		status, msg := journalErrorStatus(err)
		writeJSON(w, status, JournalResponse{Success: false, Message: msg})
		return
	}

	writeJSON(w, http.StatusOK, JournalResponse{
		Success: true,
		Message: "Journal updated successfully",
		Journal: journal,
	})
}

// DeleteJournal removes an entry owned by the authenticated user.
func DeleteJournal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, JournalResponse{Success: false, Message: "Authentication required"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := journalService.Delete(ctx, userID, chi.URLParam(r, "id")); err != nil {
		status, msg := journalErrorStatus(err)
		writeJSON(w, status, JournalResponse{Success: false, Message: msg})
		return
	}

	writeJSON(w, http.StatusOK, JournalResponse{Success: true, Message: "Journal deleted successfully"})
}
