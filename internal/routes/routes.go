package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/Dakshan-Kumar-A/AI-Assisted-Daily-Journal/internal/handlers"
)

func SetupRoutes(r *chi.Mux) {
	// Auth routes
	r.Post("/api/auth/signup", handlers.Signup)
	r.Post("/api/auth/signin", handlers.Signin)
	r.Post("/api/auth/signout", handlers.Signout)
	r.Get("/api/auth/me", handlers.GetMe)

	// Journaling routes
	r.Post("/api/journals", handlers.CreateJournal)
	r.Get("/api/journals", handlers.GetJournals)
	r.Get("/api/journals/{id}", handlers.GetJournal)
	r.Put("/api/journals/{id}", handlers.UpdateJournal)
	r.Delete("/api/journals/{id}", handlers.DeleteJournal)

	// Statistics (weekly activity, moods, streak, achievements)
	r.Get("/api/stats", handlers.GetStats)

	// Daily challenge routes
	r.Get("/api/challenge/today", handlers.GetTodayChallenge)
	r.Post("/api/challenge/answer", handlers.SubmitChallengeAnswer)
}
