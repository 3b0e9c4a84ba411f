package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/heartquiz/heartgame-go/internal/api/apierr"
	"github.com/heartquiz/heartgame-go/internal/api/request"
	"github.com/heartquiz/heartgame-go/internal/api/response"
	"github.com/heartquiz/heartgame-go/internal/model"
	"github.com/heartquiz/heartgame-go/internal/services/round"
	"github.com/heartquiz/heartgame-go/internal/services/score"
)

// GameHandler handles round and score endpoints
type GameHandler struct {
	registry *round.Registry
	ledger   *score.Ledger
}

// NewGameHandler creates a new game handler
func NewGameHandler(registry *round.Registry, ledger *score.Ledger) *GameHandler {
	return &GameHandler{
		registry: registry,
		ledger:   ledger,
	}
}

// Question handles GET /api/game/question
func (h *GameHandler) Question(w http.ResponseWriter, r *http.Request) {
	challenge, err := h.registry.Issue(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Question{
		QuestionID:  string(challenge.RoundID),
		ImageBase64: challenge.ImageBase64,
	})
}

// Answer handles POST /api/game/answer.
// The score is persisted before the verdict is sent: a ledger failure after
// a correct judgment returns 500, never a silent "correct".
func (h *GameHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req request.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.QuestionID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("question_id is required"))
		return
	}
	if req.Answer == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("answer is required"))
		return
	}

	correct, err := h.registry.Redeem(model.RoundID(req.QuestionID), req.Answer)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	if correct && req.UserID != "" {
		if _, err := h.ledger.RecordCorrectAnswer(r.Context(), model.UserID(req.UserID)); err != nil {
			apierr.WriteError(w, err)
			return
		}
	}

	response.JSON(w, http.StatusOK, response.Answer{Correct: correct})
}

// Score handles GET /api/game/score/{user_id}
func (h *GameHandler) Score(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	highest, err := h.ledger.HighestScore(r.Context(), model.UserID(userID))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Score{
		UserID:       userID,
		HighestScore: highest,
	})
}

// Leaderboard handles GET /api/game/leaderboard
func (h *GameHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 100 {
			apierr.WriteError(w, apierr.NewInvalidRequestError("limit must be between 1 and 100"))
			return
		}
		limit = n
	}

	entries, err := h.ledger.Leaderboard(r.Context(), limit)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(entries))
}
