package response

import (
	"time"

	"github.com/mcoot/ranchgame/internal/model"
	"github.com/mcoot/ranchgame/internal/services/economy"
)

// PublicPlayer is the view of a player anyone may see: no key, no token
type PublicPlayer struct {
	ID       string   `json:"id,omitempty"`
	Username string   `json:"username"`
	Ranch    string   `json:"ranch"`
	Points   int      `json:"points"`
	Medals   []string `json:"medals"`
}

// PublicPlayerFromModel converts a model.Player to its public view
func PublicPlayerFromModel(p *model.Player) PublicPlayer {
	medals := p.Medals
	if medals == nil {
		medals = []string{}
	}
	return PublicPlayer{
		ID:       p.IDString(),
		Username: p.Username,
		Ranch:    string(p.Ranch),
		Points:   p.Points,
		Medals:   medals,
	}
}

// BootstrapResponse is the response for a bootstrap that wrote players
type BootstrapResponse struct {
	Count   int            `json:"count"`
	Players []model.Record `json:"players"`
}

// BootstrapResponseFromPlayers serializes the bootstrapped players with their keys and without tokens
func BootstrapResponseFromPlayers(players []*model.Player) BootstrapResponse {
	records := make([]model.Record, len(players))
	for i, p := range players {
		records[i] = p.ToRecord(false)
	}
	return BootstrapResponse{Count: len(records), Players: records}
}

// AlreadyBootstrappedResponse reports a bootstrap that was skipped
type AlreadyBootstrappedResponse struct {
	AlreadyBootstrapped bool `json:"already_bootstrapped"`
}

// LeaderboardEntry is one ranked player
type LeaderboardEntry struct {
	Rank int `json:"rank"`
	PublicPlayer
}

// LeaderboardResponse lists the highest scoring players
type LeaderboardResponse struct {
	Players []LeaderboardEntry `json:"players"`
}

// LeaderboardFromModel ranks players in the order given
func LeaderboardFromModel(players []*model.Player) LeaderboardResponse {
	entries := make([]LeaderboardEntry, len(players))
	for i, p := range players {
		entries[i] = LeaderboardEntry{Rank: i + 1, PublicPlayer: PublicPlayerFromModel(p)}
	}
	return LeaderboardResponse{Players: entries}
}

// Resource represents a trade reward
type Resource struct {
	Amount int    `json:"amount"`
	Trait  string `json:"trait"`
}

// ResourceFromModel converts model.Resource
func ResourceFromModel(r model.Resource) Resource {
	return Resource{Amount: r.Amount, Trait: string(r.Trait)}
}

// Trade represents a completed trade
type Trade struct {
	ID        string    `json:"id"`
	FromID    string    `json:"from_id"`
	ToID      string    `json:"to_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Resource  Resource  `json:"resource"`
	Timestamp time.Time `json:"timestamp"`
}

// TradeFromModel converts a model.Trade
func TradeFromModel(t *model.Trade) Trade {
	return Trade{
		ID:        string(t.ID),
		FromID:    string(t.FromID),
		ToID:      string(t.ToID),
		From:      t.From,
		To:        t.To,
		Resource:  ResourceFromModel(t.Resource),
		Timestamp: t.Timestamp,
	}
}

// TradeResponse is the response for executing a trade
type TradeResponse struct {
	Trade  Trade        `json:"trade"`
	Player model.Record `json:"player"`
}

// QuoteResponse is the response for pricing a trade
type QuoteResponse struct {
	FromID    string   `json:"from_id"`
	ToID      string   `json:"to_id"`
	From      string   `json:"from"`
	To        string   `json:"to"`
	Resource  Resource `json:"resource"`
	LastTrade *Trade   `json:"last_trade,omitempty"`
}

// QuoteFromService converts an economy.Quote
func QuoteFromService(q *economy.Quote) QuoteResponse {
	resp := QuoteResponse{
		FromID:   string(q.FromID),
		ToID:     string(q.ToID),
		From:     q.From,
		To:       q.To,
		Resource: ResourceFromModel(q.Resource),
	}
	if q.LastTrade != nil {
		t := TradeFromModel(q.LastTrade)
		resp.LastTrade = &t
	}
	return resp
}

// HealthResponse reports liveness
type HealthResponse struct {
	Status string `json:"status"`
}
