package hasher

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const DefaultCost = 12

// Hasher one-way transforms plaintext secrets with bcrypt. The cost is fixed
// at construction so every flow shares one explicit configuration instead of
// a package-level default.
type Hasher struct {
	cost int
}

func New(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}

	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(secret string) ([]byte, error) {
	const op = "hasher.Hash"

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return hash, nil
}

// Verify reports whether secret matches hash. A mismatch is not an error.
func (h *Hasher) Verify(secret string, hash []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(secret)) == nil
}
