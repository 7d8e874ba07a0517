package request

// BootstrapRequest is the request body for bootstrapping the player population
type BootstrapRequest struct {
	Count int  `json:"count"`
	Force bool `json:"force"`
}

// TradeRequest is the request body for trading with another player.
// The counterpart is addressed by id because usernames are not unique.
type TradeRequest struct {
	ToID string `json:"to_id"`
}
