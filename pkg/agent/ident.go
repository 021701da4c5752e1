package agent

import (
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// TokenSource produces opaque identifier tokens. The registry uses two
// independent sources: one for agent IDs and one for wallet display
// addresses, so tests can swap either for a deterministic generator.
type TokenSource func() string

// UUIDToken returns a random UUID v4 string, used for agent IDs.
func UUIDToken() string {
	return uuid.New().String()
}

// WalletToken returns a 44-character nanoid, used for wallet display
// addresses. The address is never validated against any ledger.
func WalletToken() string {
	id, err := gonanoid.New(44)
	if err != nil {
		// gonanoid only fails when the system entropy source does;
		// fall back to a UUID so creation still succeeds.
		return uuid.New().String()
	}
	return id
}
