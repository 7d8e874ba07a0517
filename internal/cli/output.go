package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutputTo creates a new Output formatter writing to w
func NewOutputTo(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case PublicPlayer:
		o.printPublicPlayer(v)
	case BootstrapResult:
		o.printBootstrapResult(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case Quote:
		o.printQuote(v)
	case TradeResult:
		o.printTradeResult(v)
	case Identity:
		o.printIdentity(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player is the key holder's view of a player (matches API)
type Player struct {
	ID           string   `json:"id"`
	Key          string   `json:"key"`
	Username     string   `json:"username"`
	Ranch        string   `json:"ranch"`
	Points       int      `json:"points"`
	Medals       []string `json:"medals"`
	LastTradeIn  *int64   `json:"lastTradeIn,omitempty"`
	LastTradeOut *int64   `json:"lastTradeOut,omitempty"`
}

// PublicPlayer is the view of a player anyone may see
type PublicPlayer struct {
	ID       string   `json:"id,omitempty"`
	Username string   `json:"username"`
	Ranch    string   `json:"ranch"`
	Points   int      `json:"points"`
	Medals   []string `json:"medals"`
}

// BootstrapResult is the response of an admin bootstrap.
// AlreadyBootstrapped is set instead of Players when nothing was written.
type BootstrapResult struct {
	Count               int      `json:"count,omitempty"`
	Players             []Player `json:"players,omitempty"`
	AlreadyBootstrapped bool     `json:"already_bootstrapped,omitempty"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
	Rank int `json:"rank"`
	PublicPlayer
}

// Leaderboard response type
type Leaderboard struct {
	Players []LeaderboardEntry `json:"players"`
}

// Resource response type
type Resource struct {
	Amount int    `json:"amount"`
	Trait  string `json:"trait"`
}

// Trade response type
type Trade struct {
	ID        string    `json:"id"`
	FromID    string    `json:"from_id"`
	ToID      string    `json:"to_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Resource  Resource  `json:"resource"`
	Timestamp time.Time `json:"timestamp"`
}

// Quote response type
type Quote struct {
	FromID    string   `json:"from_id"`
	ToID      string   `json:"to_id"`
	From      string   `json:"from"`
	To        string   `json:"to"`
	Resource  Resource `json:"resource"`
	LastTrade *Trade   `json:"last_trade,omitempty"`
}

// TradeResult response type
type TradeResult struct {
	Trade  Trade  `json:"trade"`
	Player Player `json:"player"`
}

// Identity is a locally derived player identity
type Identity struct {
	Index    int    `json:"index"`
	Key      string `json:"key"`
	Username string `json:"username"`
	Ranch    string `json:"ranch"`
}

// HealthResult is the health response plus the client's view of the server
type HealthResult struct {
	Status    string `json:"status"`
	Server    string `json:"server,omitempty"`
	LatencyMS int64  `json:"latency_ms"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Fprintf(o.w, "Player: %s (%s)\n", p.Username, p.ID)
	fmt.Fprintf(o.w, "Key: %s\n", p.Key)
	fmt.Fprintf(o.w, "Ranch: %s\n", p.Ranch)
	fmt.Fprintf(o.w, "Points: %d\n", p.Points)
	if len(p.Medals) > 0 {
		fmt.Fprintf(o.w, "Medals: %s\n", strings.Join(p.Medals, ", "))
	}
	if p.LastTradeIn != nil {
		fmt.Fprintf(o.w, "Last trade in: %s\n", formatMillis(*p.LastTradeIn))
	}
	if p.LastTradeOut != nil {
		fmt.Fprintf(o.w, "Last trade out: %s\n", formatMillis(*p.LastTradeOut))
	}
}

func (o *Output) printPublicPlayer(p PublicPlayer) {
	fmt.Fprintf(o.w, "Player: %s (%s)\n", p.Username, p.ID)
	fmt.Fprintf(o.w, "Ranch: %s\n", p.Ranch)
	fmt.Fprintf(o.w, "Points: %d\n", p.Points)
	if len(p.Medals) > 0 {
		fmt.Fprintf(o.w, "Medals: %s\n", strings.Join(p.Medals, ", "))
	}
}

func (o *Output) printBootstrapResult(b BootstrapResult) {
	if b.AlreadyBootstrapped {
		fmt.Fprintln(o.w, "Already bootstrapped; nothing written (use --force to fill in missing players)")
		return
	}
	fmt.Fprintf(o.w, "Bootstrapped %d players\n", b.Count)
	for i, p := range b.Players {
		fmt.Fprintf(o.w, "  %4d  %s  %-24s %s\n", i, p.Key, p.Username, p.Ranch)
	}
}

func (o *Output) printLeaderboard(l Leaderboard) {
	if len(l.Players) == 0 {
		fmt.Fprintln(o.w, "No players yet")
		return
	}
	for _, e := range l.Players {
		fmt.Fprintf(o.w, "%3d. %-24s %-8s %6d\n", e.Rank, e.Username, e.Ranch, e.Points)
	}
}

func (o *Output) printQuote(q Quote) {
	fmt.Fprintf(o.w, "Trade %s -> %s would earn %d %s\n", q.From, q.To, q.Resource.Amount, q.Resource.Trait)
	if q.LastTrade != nil {
		fmt.Fprintf(o.w, "Previous trade: %d %s at %s\n",
			q.LastTrade.Resource.Amount, q.LastTrade.Resource.Trait, q.LastTrade.Timestamp.Format(time.RFC3339))
	}
}

func (o *Output) printTradeResult(t TradeResult) {
	fmt.Fprintf(o.w, "Traded with %s: +%d %s\n", t.Trade.To, t.Trade.Resource.Amount, t.Trade.Resource.Trait)
	fmt.Fprintf(o.w, "Points: %d\n", t.Player.Points)
}

func (o *Output) printIdentity(i Identity) {
	fmt.Fprintf(o.w, "Index: %d\n", i.Index)
	fmt.Fprintf(o.w, "Key: %s\n", i.Key)
	fmt.Fprintf(o.w, "Username: %s\n", i.Username)
	fmt.Fprintf(o.w, "Ranch: %s\n", i.Ranch)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	if h.Server != "" {
		fmt.Fprintf(o.w, "Server: %s (%dms)\n", h.Server, h.LatencyMS)
	}
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}
