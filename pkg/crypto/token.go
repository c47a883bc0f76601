// Package crypto generates random credentials for the generated configuration
// files. The alphabet is the base64 set minus '=', '+', and '/' because the
// tokens are interpolated into YAML and env files where those characters need
// quoting or escaping.
package crypto

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	// TokenAlphabet is the full base64 alphabet with '=', '+', '/' excluded.
	TokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	// PasswordLength is the size of generated database and cache passwords.
	PasswordLength = 24

	// SecretLength is the size of the generated application secret key.
	SecretLength = 64
)

// GenerateToken returns a random string of the given length drawn from
// TokenAlphabet using the OS cryptographic random source.
func GenerateToken(length int) (string, error) {
	if length < 1 {
		return "", fmt.Errorf("token length must be positive, got %d", length)
	}

	max := big.NewInt(int64(len(TokenAlphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}
		buf[i] = TokenAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// GeneratePassword returns a manifest-safe password of PasswordLength.
func GeneratePassword() (string, error) {
	return GenerateToken(PasswordLength)
}

// GenerateSecretKey returns an application secret of SecretLength.
func GenerateSecretKey() (string, error) {
	return GenerateToken(SecretLength)
}
