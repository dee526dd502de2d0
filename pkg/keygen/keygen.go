package keygen

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// MinSecretBytes is the smallest signing secret GenerateSecret will produce
const MinSecretBytes = 32

// GenerateSecret generates a random signing secret of n bytes, base64 encoded.
// n below MinSecretBytes is raised to MinSecretBytes.
func GenerateSecret(n int) (string, error) {
	if n < MinSecretBytes {
		n = MinSecretBytes
	}

	secretBytes := make([]byte, n)
	if _, err := rand.Read(secretBytes); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(secretBytes), nil
}
