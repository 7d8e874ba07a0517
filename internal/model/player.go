package model

// PlayerID is the storage-assigned identifier of a player
type PlayerID string

// Player is a pseudonymous participant in the ranch economy.
// Key and Username are derived from the player's index and never change once issued.
type Player struct {
	Key          string // secret credential, hex encoded
	Username     string // public handle, unique on a best-effort basis only
	Ranch        Ranch
	Points       int
	Medals       []string // append-only
	Token        *string
	LastTradeIn  *int64 // unix millis
	LastTradeOut *int64 // unix millis
	ID           *PlayerID
}

// Record is the persisted representation of a Player.
// Optional fields are omitted rather than written as null.
type Record struct {
	Key          string   `json:"key"`
	Username     string   `json:"username"`
	Ranch        Ranch    `json:"ranch"`
	Points       int      `json:"points"`
	Medals       []string `json:"medals"`
	Token        *string  `json:"token,omitempty"`
	LastTradeIn  *int64   `json:"lastTradeIn,omitempty"`
	LastTradeOut *int64   `json:"lastTradeOut,omitempty"`
	ID           *string  `json:"id,omitempty"`
}

// NewPlayer returns a freshly issued player with no economy state
func NewPlayer(key, username string, ranch Ranch) *Player {
	return &Player{
		Key:      key,
		Username: username,
		Ranch:    ranch,
		Points:   0,
		Medals:   []string{},
	}
}

// NewPlayerFromRecord hydrates a Player from its persisted representation
func NewPlayerFromRecord(r Record) *Player {
	p := &Player{
		Key:          r.Key,
		Username:     r.Username,
		Ranch:        r.Ranch,
		Points:       r.Points,
		Medals:       append([]string{}, r.Medals...),
		Token:        copyString(r.Token),
		LastTradeIn:  copyInt64(r.LastTradeIn),
		LastTradeOut: copyInt64(r.LastTradeOut),
	}
	if r.ID != nil {
		id := PlayerID(*r.ID)
		p.ID = &id
	}
	return p
}

// ToRecord serializes the player for persistence or transport.
// The token is only included when showToken is set.
func (p *Player) ToRecord(showToken bool) Record {
	r := Record{
		Key:          p.Key,
		Username:     p.Username,
		Ranch:        p.Ranch,
		Points:       p.Points,
		Medals:       append([]string{}, p.Medals...),
		LastTradeIn:  copyInt64(p.LastTradeIn),
		LastTradeOut: copyInt64(p.LastTradeOut),
	}
	if showToken {
		r.Token = copyString(p.Token)
	}
	if p.ID != nil {
		id := string(*p.ID)
		r.ID = &id
	}
	return r
}

// Clone returns a deep copy of the player
func (p *Player) Clone() *Player {
	return NewPlayerFromRecord(p.ToRecord(true))
}

// AddPoints adjusts the points counter; the counter never goes below zero
func (p *Player) AddPoints(delta int) error {
	if p.Points+delta < 0 {
		return ErrNegativePoints
	}
	p.Points += delta
	return nil
}

// AddMedal appends a medal to the player's collection
func (p *Player) AddMedal(medal string) {
	p.Medals = append(p.Medals, medal)
}

// SetID assigns the storage identifier
func (p *Player) SetID(id PlayerID) {
	p.ID = &id
}

// IDString returns the storage identifier, or "" if not yet persisted
func (p *Player) IDString() string {
	if p.ID == nil {
		return ""
	}
	return string(*p.ID)
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyInt64(i *int64) *int64 {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}
