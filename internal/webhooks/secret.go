package webhooks

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// MinSecretLength is the shortest secret GenerateSecret hands out
const MinSecretLength = 16

// GenerateSecret generates a random webhook signing secret. The alphabet is
// URL and shell safe so the result can be pasted into an env file as is.
func GenerateSecret(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_"

	if length < MinSecretLength {
		return "", fmt.Errorf("secret length %d is below the minimum of %d", length, MinSecretLength)
	}

	secret := make([]byte, length)
	for i := range secret {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		secret[i] = charset[num.Int64()]
	}

	return string(secret), nil
}
