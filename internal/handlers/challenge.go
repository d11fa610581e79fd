package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Dakshan-Kumar-A/AI-Assisted-Daily-Journal/internal/models"
	"github.com/Dakshan-Kumar-A/AI-Assisted-Daily-Journal/internal/services"
)

var challengeService *services.ChallengeService

// InitChallengeService wires the challenge service into the handlers.
func InitChallengeService(svc *services.ChallengeService) {
	challengeService = svc
}

type SubmitAnswerRequest struct {
	Answer string `json:"answer"`
}

type ChallengeResponse struct {
	Success   bool                    `json:"success"`
	Message   string                  `json:"message,omitempty"`
	Challenge *services.Today         `json:"challenge,omitempty"`
	Record    *models.ChallengeAnswer `json:"record,omitempty"`
}

// GetTodayChallenge returns the question of the day, whether the user
// already answered, and trivia facts about the date.
func GetTodayChallenge(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ChallengeResponse{Success: false, Message: "Authentication required"})
		return
	}

	// Generous deadline: the facts lookup may hit the AI provider on a
	// cold cache.
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	today, err := challengeService.Today(ctx, userID, time.Now())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ChallengeResponse{Success: false, Message: "Failed to load challenge"})
		return
	}

	writeJSON(w, http.StatusOK, ChallengeResponse{Success: true, Challenge: today})
}

// SubmitChallengeAnswer stores the user's answer for today. A second
// submission for the same date returns 409.
func SubmitChallengeAnswer(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ChallengeResponse{Success: false, Message: "Authentication required"})
		return
	}

	var req SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ChallengeResponse{Success: false, Message: "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.Answer) == "" {
		writeJSON(w, http.StatusBadRequest, ChallengeResponse{Success: false, Message: "Answer is required"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	record, err := challengeService.SubmitAnswer(ctx, userID, req.Answer, time.Now())
	if err != nil {
		if errors.Is(err, services.ErrAlreadyAnswered) {
			writeJSON(w, http.StatusConflict, ChallengeResponse{Success: false, Message: "You already answered today's challenge"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, ChallengeResponse{Success: false, Message: "Failed to save answer"})
		return
	}

	writeJSON(w, http.StatusCreated, ChallengeResponse{
		Success: true,
		Message: "Answer saved",
		Record:  record,
	})
}
