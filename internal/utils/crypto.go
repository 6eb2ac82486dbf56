// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"math/big"
)

// passwordCharset leaves out look-alike characters (0/O, 1/l/I) since
// generated passwords get read off a log line.
const passwordCharset = "abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateRandomString returns a random string suitable for one-time
// credentials such as the seeded admin password.
func GenerateRandomString(length int) (string, error) {
	max := big.NewInt(int64(len(passwordCharset)))
	b := make([]byte, length)

	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = passwordCharset[n.Int64()]
	}

	return string(b), nil
}
