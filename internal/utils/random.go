package utils

import (
	"crypto/rand"
	"math/big"
)

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomToken returns n characters drawn from [A-Za-z0-9].
func RandomToken(n int) string {
	max := big.NewInt(int64(len(alphabet)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err) // crypto/rand does not fail on supported platforms
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out)
}

// GeneratePassword returns a fresh password for the reset flow.
func GeneratePassword() string {
	return RandomToken(10)
}
