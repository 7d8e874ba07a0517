package model

import (
	"encoding/json"
	"fmt"
)

// Ranch is the category a player belongs to, assigned from the player's index
type Ranch string

const (
	RanchSolar   Ranch = "solar"
	RanchLunar   Ranch = "lunar"
	RanchStellar Ranch = "stellar"
	RanchNebula  Ranch = "nebula"
	RanchComet   Ranch = "comet"
	RanchAurora  Ranch = "aurora"
)

// Ranches lists every ranch in assignment order.
// ranch(i) = Ranches[i mod len(Ranches)]; reordering this slice reassigns every player.
var Ranches = []Ranch{
	RanchSolar,
	RanchLunar,
	RanchStellar,
	RanchNebula,
	RanchComet,
	RanchAurora,
}

// Trait flavors the resources a ranch hands out in trades
type Trait string

const (
	TraitVigor    Trait = "vigor"
	TraitSpeed    Trait = "speed"
	TraitCoolness Trait = "coolness"
	TraitStamina  Trait = "stamina"
	TraitCoat     Trait = "coat"
	TraitAgility  Trait = "agility"
)

var ranchTraits = map[Ranch]Trait{
	RanchSolar:   TraitVigor,
	RanchLunar:   TraitSpeed,
	RanchStellar: TraitCoolness,
	RanchNebula:  TraitStamina,
	RanchComet:   TraitCoat,
	RanchAurora:  TraitAgility,
}

// RanchFromIndex returns the ranch assigned to the player with the given index.
// Negative indices are rejected with ErrInvalidIndex.
func RanchFromIndex(index int) (Ranch, error) {
	if index < 0 {
		return "", ErrInvalidIndex
	}
	return Ranches[index%len(Ranches)], nil
}

// ParseRanch validates a ranch name
func ParseRanch(s string) (Ranch, error) {
	r := Ranch(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRanch, s)
	}
	return r, nil
}

// Valid reports whether r is one of the known ranches
func (r Ranch) Valid() bool {
	for _, known := range Ranches {
		if r == known {
			return true
		}
	}
	return false
}

// Trait returns the trait mapped to the ranch.
// An unmapped ranch is a configuration defect and yields ErrUnknownRanch.
func (r Ranch) Trait() (Trait, error) {
	t, ok := ranchTraits[r]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRanch, string(r))
	}
	return t, nil
}

// UnmarshalJSON rejects ranch names outside the known set
func (r *Ranch) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRanch(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
