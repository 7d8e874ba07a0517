package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/ranchgame/internal/api/request"
	"github.com/mcoot/ranchgame/internal/api/response"
	"github.com/mcoot/ranchgame/internal/services/player"
)

// AdminHandler handles operator endpoints
type AdminHandler struct {
	playerService *player.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(playerService *player.Service) *AdminHandler {
	return &AdminHandler{
		playerService: playerService,
	}
}

// Bootstrap handles POST /api/v1/admin/bootstrap
func (h *AdminHandler) Bootstrap(w http.ResponseWriter, r *http.Request) {
	var req request.BootstrapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	result, err := h.playerService.Bootstrap(r.Context(), req.Count, req.Force)
	if err != nil {
		WriteError(w, err)
		return
	}

	if result.AlreadyBootstrapped {
		response.JSON(w, http.StatusOK, response.AlreadyBootstrappedResponse{AlreadyBootstrapped: true})
		return
	}

	response.Secret(w, http.StatusCreated, response.BootstrapResponseFromPlayers(result.Players))
}
