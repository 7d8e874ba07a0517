package identity

import (
	"crypto/sha256"
	"fmt"

	"github.com/mcoot/ranchgame/internal/model"
)

// DigestSize is the length in bytes of a derived digest
const DigestSize = sha256.Size

// DeriveDigest hashes "salt|index" into a fixed-length deterministic digest
func DeriveDigest(salt string, index int) ([DigestSize]byte, error) {
	if index < 0 {
		return [DigestSize]byte{}, fmt.Errorf("%w: got %d", model.ErrInvalidIndex, index)
	}
	return sha256.Sum256([]byte(fmt.Sprintf("%s|%d", salt, index))), nil
}
