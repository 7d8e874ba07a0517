package model

import "time"

// TradeID uniquely identifies a trade
type TradeID string

// Resource is what a player is awarded for a trade. It is never stored on its own.
type Resource struct {
	Amount int   `json:"amount"`
	Trait  Trait `json:"trait"`
}

// Trade records one exchange initiated by FromID with the counterpart ToID.
// Usernames are not unique, so history is keyed by the player ids; From and To
// carry the usernames at the time of the trade for display only.
type Trade struct {
	ID        TradeID   `json:"id"`
	FromID    PlayerID  `json:"from_id"`
	ToID      PlayerID  `json:"to_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Resource  Resource  `json:"resource"`
	Timestamp time.Time `json:"timestamp"`
}
