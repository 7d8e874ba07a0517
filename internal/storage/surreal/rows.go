package surreal

import (
	"time"

	"github.com/mcoot/ranchgame/internal/model"
)

// playerRow is a player as stored in the player table.
// The table's own record id is never selected; player_id carries the storage identifier.
type playerRow struct {
	PlayerID     string   `json:"player_id"`
	Key          string   `json:"key"`
	Username     string   `json:"username"`
	Ranch        string   `json:"ranch"`
	Points       int      `json:"points"`
	Medals       []string `json:"medals"`
	Token        *string  `json:"token"`
	LastTradeIn  *int64   `json:"last_trade_in"`
	LastTradeOut *int64   `json:"last_trade_out"`
}

func (r playerRow) toPlayer() *model.Player {
	id := r.PlayerID
	return model.NewPlayerFromRecord(model.Record{
		Key:          r.Key,
		Username:     r.Username,
		Ranch:        model.Ranch(r.Ranch),
		Points:       r.Points,
		Medals:       r.Medals,
		Token:        r.Token,
		LastTradeIn:  r.LastTradeIn,
		LastTradeOut: r.LastTradeOut,
		ID:           &id,
	})
}

// playerVars binds a player's fields for CREATE/UPDATE statements
func playerVars(p *model.Player) map[string]any {
	r := p.ToRecord(true)
	return map[string]any{
		"player_id":      p.IDString(),
		"key":            r.Key,
		"username":       r.Username,
		"ranch":          string(r.Ranch),
		"points":         r.Points,
		"medals":         r.Medals,
		"token":          r.Token,
		"last_trade_in":  r.LastTradeIn,
		"last_trade_out": r.LastTradeOut,
	}
}

// tradeRow is a trade as stored in the trade table
type tradeRow struct {
	TradeID   string `json:"trade_id"`
	FromID    string `json:"from_id"`
	ToID      string `json:"to_id"`
	FromUser  string `json:"from_user"`
	ToUser    string `json:"to_user"`
	Amount    int    `json:"amount"`
	Trait     string `json:"trait"`
	Timestamp int64  `json:"timestamp"`
}

func (r tradeRow) toTrade() *model.Trade {
	return &model.Trade{
		ID:     model.TradeID(r.TradeID),
		FromID: model.PlayerID(r.FromID),
		ToID:   model.PlayerID(r.ToID),
		From:   r.FromUser,
		To:     r.ToUser,
		Resource: model.Resource{
			Amount: r.Amount,
			Trait:  model.Trait(r.Trait),
		},
		Timestamp: time.UnixMilli(r.Timestamp).UTC(),
	}
}
