package credentials

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPIN hashes a parent PIN for storage in the parental controls
func HashPIN(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash pin: %w", err)
	}
	return string(hash), nil
}

// CheckPIN verifies a PIN attempt against the stored hash. An empty hash
// means no PIN has been set, which always passes.
func CheckPIN(pin, hash string) bool {
	if hash == "" {
		return true
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}
