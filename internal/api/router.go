package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/heartquiz/heartgame-go/internal/api/apierr"
	"github.com/heartquiz/heartgame-go/internal/api/handler"
	"github.com/heartquiz/heartgame-go/internal/middleware"
	"github.com/heartquiz/heartgame-go/internal/services/account"
	"github.com/heartquiz/heartgame-go/internal/services/round"
	"github.com/heartquiz/heartgame-go/internal/services/score"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AccountService *account.Service
	RoundRegistry  *round.Registry
	ScoreLedger    *score.Ledger
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	authHandler := handler.NewAuthHandler(cfg.AccountService)
	gameHandler := handler.NewGameHandler(cfg.RoundRegistry, cfg.ScoreLedger)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger, panicHandler))
	api.Use(middleware.Logging(cfg.Logger))

	// Auth routes (form-encoded, per the original wire contract)
	api.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	// Game routes
	api.HandleFunc("/game/question", gameHandler.Question).Methods(http.MethodGet)
	api.HandleFunc("/game/answer", gameHandler.Answer).Methods(http.MethodPost)
	api.HandleFunc("/game/score/{user_id}", gameHandler.Score).Methods(http.MethodGet)
	api.HandleFunc("/game/leaderboard", gameHandler.Leaderboard).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func panicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
