package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/irisdash/dashboard-api/internal/constants"
)

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateRegistrationToken generates an opaque single-use registration
// token of alphanumeric characters.
func GenerateRegistrationToken() (string, error) {
	buf := make([]byte, constants.RegistrationTokenLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(tokenAlphabet))))
		if err != nil {
			return "", fmt.Errorf("failed to generate random token: %w", err)
		}
		buf[i] = tokenAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// GenerateTaskDisplayID returns a random 6-digit task identifier. The value
// is a display label only; collisions are not checked.
func GenerateTaskDisplayID() (int, error) {
	span := int64(constants.TaskDisplayIDMax - constants.TaskDisplayIDMin + 1)
	n, err := rand.Int(rand.Reader, big.NewInt(span))
	if err != nil {
		return 0, fmt.Errorf("failed to generate display ID: %w", err)
	}
	return constants.TaskDisplayIDMin + int(n.Int64()), nil
}
