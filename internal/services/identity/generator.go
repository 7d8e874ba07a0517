package identity

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/mcoot/ranchgame/internal/model"
)

const (
	// KeyLengthBytes is how many leading digest bytes become the player key
	KeyLengthBytes = 16
	// DefaultSalt is the salt players are derived from when none is configured
	DefaultSalt = "ranchgame|players|v1"
)

// Identity is the material derived for a single index
type Identity struct {
	Index    int
	Key      string
	Username string
	NameSeed uint32
	Ranch    model.Ranch
}

// Generator derives player identities from an index and a fixed salt.
// It holds no mutable state and is safe for concurrent use.
type Generator struct {
	salt string
}

// NewGenerator creates a Generator; an empty salt selects DefaultSalt
func NewGenerator(salt string) *Generator {
	if salt == "" {
		salt = DefaultSalt
	}
	return &Generator{salt: salt}
}

// Salt returns the salt identities are derived from
func (g *Generator) Salt() string {
	return g.salt
}

// Derive computes the identity material for index
func (g *Generator) Derive(index int) (*Identity, error) {
	digest, err := DeriveDigest(g.salt, index)
	if err != nil {
		return nil, err
	}

	ranch, err := model.RanchFromIndex(index)
	if err != nil {
		return nil, err
	}

	keyMaterial := digest[:KeyLengthBytes]
	nameSeed := binary.BigEndian.Uint32(digest[KeyLengthBytes : KeyLengthBytes+4])

	return &Identity{
		Index:    index,
		Key:      hex.EncodeToString(keyMaterial),
		Username: SynthesizeName(nameSeed),
		NameSeed: nameSeed,
		Ranch:    ranch,
	}, nil
}

// Generate builds a ready-to-persist player for index
func (g *Generator) Generate(index int) (*model.Player, error) {
	id, err := g.Derive(index)
	if err != nil {
		return nil, err
	}
	return model.NewPlayer(id.Key, id.Username, id.Ranch), nil
}
