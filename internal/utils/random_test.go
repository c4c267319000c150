package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomToken(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		tok := RandomToken(16)
		assert.Len(t, tok, 16)
		assert.Regexp(t, `^[A-Za-z0-9]+$`, tok)
		seen[tok] = true
	}
	assert.Len(t, seen, 100)
}

func TestGeneratePassword(t *testing.T) {
	assert.Len(t, GeneratePassword(), 10)
}
