package main

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/Dakshan-Kumar-A/AI-Assisted-Daily-Journal/internal/ai"
	"github.com/Dakshan-Kumar-A/AI-Assisted-Daily-Journal/internal/config"
	"github.com/Dakshan-Kumar-A/AI-Assisted-Daily-Journal/internal/database"
	"github.com/Dakshan-Kumar-A/AI-Assisted-Daily-Journal/internal/handlers"
	"github.com/Dakshan-Kumar-A/AI-Assisted-Daily-Journal/internal/middleware"
	"github.com/Dakshan-Kumar-A/AI-Assisted-Daily-Journal/internal/routes"
	"github.com/Dakshan-Kumar-A/AI-Assisted-Daily-Journal/internal/services"
)

func main() {
	// Load env
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}
	// Load configuration
	cfg := config.Load()

	// Connect to PostgreSQL (user accounts)
	log.Printf("Connecting to PostgreSQL...")
	if err := database.ConnectPostgres(cfg.PostgresURI); err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer database.DisconnectPostgres()

	// Connect to Redis (sessions, rate limiting, fact cache)
	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer database.DisconnectRedis()

	// Log connection attempt (without showing password)
	log.Printf("Connecting to MongoDB...")
	if cfg.MongoURI != "" {
		maskedURI := cfg.MongoURI
		if strings.Contains(maskedURI, "@") {
			parts := strings.Split(maskedURI, "@")
			if len(parts) > 0 && strings.Contains(parts[0], ":") {
				userPass := strings.Split(parts[0], ":")
				if len(userPass) >= 3 {
					maskedURI = strings.Replace(maskedURI, userPass[2], "***", 1)
				}
			}
		}
		log.Printf("MongoDB URI: %s", maskedURI)
	}

	// Connect to MongoDB (journals, challenge answers)
	if err := database.Connect(cfg.MongoURI); err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.Disconnect()

	// Ensure MongoDB indexes for journals and challenge answers
	if err := services.EnsureJournalIndexes(context.Background()); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure MongoDB indexes: %v", err)
	} else {
		log.Println("✅ MongoDB indexes ensured")
	}

	// AI enrichment client. Without an API key every call falls back to
	// the static summary/mood, so the journal endpoints keep working.
	if cfg.OpenAIAPIKey == "" {
		log.Println("⚠️  WARNING: OPENAI_API_KEY not set. Entries will use the fallback summary and mood.")
	}
	aiClient := ai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)

	// Wire services into handlers
	handlers.InitJournalService(services.NewJournalService(services.NewMongoJournalStore(), aiClient))
	handlers.InitChallengeService(services.NewChallengeService(services.NewMongoChallengeStore(), aiClient, services.Cache))
	log.Println("✅ Services initialized")

	// Setup router
	r := chi.NewRouter()

	// Custom CORS: set headers and respond to OPTIONS with 200 so preflight never gets 403
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Production: SecurityHeaders → HostCheck → GlobalRateLimit → LoginRateLimit
	// Non-production: Redis-based rate limit only
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity(cfg.AllowedHost) {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, per-IP + login rate limiting)")
	} else {
		r.Use(middleware.RateLimitMiddleware)
	}

	// Health check (no rate limit)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Setup routes
	routes.SetupRoutes(r)

	log.Println("📋 Registered routes:")
	log.Println("  GET  /health")
	log.Println("  POST /api/auth/signup")
	log.Println("  POST /api/auth/signin")
	log.Println("  POST /api/auth/signout")
	log.Println("  GET  /api/auth/me")
	log.Println("  POST /api/journals")
	log.Println("  GET  /api/journals")
	log.Println("  GET  /api/journals/{id}")
	log.Println("  PUT  /api/journals/{id}")
	log.Println("  DELETE /api/journals/{id}")
	log.Println("  GET  /api/stats")
	log.Println("  GET  /api/challenge/today")
	log.Println("  POST /api/challenge/answer")

	log.Printf("🚀 Daily journal backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
