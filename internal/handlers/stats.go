package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Dakshan-Kumar-A/AI-Assisted-Daily-Journal/internal/models"
	"github.com/Dakshan-Kumar-A/AI-Assisted-Daily-Journal/internal/services"
)

type StatsResponse struct {
	Success        bool                   `json:"success"`
	Message        string                 `json:"message,omitempty"`
	TotalEntries   int                    `json:"total_entries"`
	WeeklyActivity map[string]int         `json:"weekly_activity"`
	WeeklySeries   []int                  `json:"weekly_series"`
	MoodCounts     map[models.Mood]int    `json:"mood_counts"`
	Streak         int                    `json:"streak"`
	Achievements   []services.Achievement `json:"achievements"`
}

// GetStats derives all journal statistics for the authenticated user
// in one pass over their entries: weekly activity, mood distribution,
// current streak, and unlocked achievements.
func GetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, StatsResponse{Success: false, Message: "Authentication required"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Full history, no pagination: streak and mood counts need it all.
	entries, _, err := journalService.List(ctx, userID, 0, 0)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, StatsResponse{Success: false, Message: "Failed to fetch journals"})
		return
	}

	now := time.Now()
	writeJSON(w, http.StatusOK, StatsResponse{
		Success:        true,
		TotalEntries:   len(entries),
		WeeklyActivity: services.WeeklyActivity(entries, now),
		WeeklySeries:   services.WeeklySeries(entries, now),
		MoodCounts:     services.MoodDistribution(entries),
		Streak:         services.CurrentStreak(entries, now),
		Achievements:   services.Achievements(entries, now),
	})
}
