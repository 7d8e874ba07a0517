package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/ranchgame/internal/api/middleware"
	"github.com/mcoot/ranchgame/internal/api/response"
	"github.com/mcoot/ranchgame/internal/model"
	"github.com/mcoot/ranchgame/internal/services/player"
)

// maxLeaderboardLimit caps the leaderboard page size
const maxLeaderboardLimit = 100

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	playerService *player.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(playerService *player.Service) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
	}
}

// Me handles GET /api/v1/me.
// Only the key holder can call this, so the record includes the key; the token stays hidden.
func (h *PlayerHandler) Me(w http.ResponseWriter, r *http.Request) {
	p := middleware.MustGetPlayer(r.Context())
	response.Secret(w, http.StatusOK, p.ToRecord(false))
}

// GetByID handles GET /api/v1/players/by-id/{id}
func (h *PlayerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	p, err := h.playerService.GetByID(r.Context(), model.PlayerID(id))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PublicPlayerFromModel(p))
}

// Leaderboard handles GET /api/v1/leaderboard
func (h *PlayerHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxLeaderboardLimit {
			WriteError(w, NewInvalidRequestError("limit must be between 1 and 100"))
			return
		}
		limit = n
	}

	players, err := h.playerService.Leaderboard(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(players))
}
