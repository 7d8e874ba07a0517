package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/ranchgame/internal/api/middleware"
	"github.com/mcoot/ranchgame/internal/api/request"
	"github.com/mcoot/ranchgame/internal/api/response"
	"github.com/mcoot/ranchgame/internal/model"
	"github.com/mcoot/ranchgame/internal/services/economy"
)

// TradeHandler handles trade endpoints
type TradeHandler struct {
	economyService *economy.Service
}

// NewTradeHandler creates a new trade handler
func NewTradeHandler(economyService *economy.Service) *TradeHandler {
	return &TradeHandler{
		economyService: economyService,
	}
}

// Quote handles GET /api/v1/me/quote?to_id={id}
func (h *TradeHandler) Quote(w http.ResponseWriter, r *http.Request) {
	from := middleware.MustGetPlayer(r.Context())
	to := r.URL.Query().Get("to_id")
	if to == "" {
		WriteError(w, NewInvalidRequestError("to_id is required"))
		return
	}

	q, err := h.economyService.Quote(r.Context(), from.Key, model.PlayerID(to))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.QuoteFromService(q))
}

// Create handles POST /api/v1/me/trades
func (h *TradeHandler) Create(w http.ResponseWriter, r *http.Request) {
	from := middleware.MustGetPlayer(r.Context())

	var req request.TradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.ToID == "" {
		WriteError(w, NewInvalidRequestError("to_id is required"))
		return
	}

	trade, p, err := h.economyService.Trade(r.Context(), from.Key, model.PlayerID(req.ToID))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Secret(w, http.StatusCreated, response.TradeResponse{
		Trade:  response.TradeFromModel(trade),
		Player: p.ToRecord(false),
	})
}
