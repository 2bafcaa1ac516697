package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomJoinCode(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		code := randomJoinCode()
		assert.Len(t, code, joinCodeLength)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(joinCodeAlphabet, r), "unexpected rune %q", r)
		}
		seen[code] = struct{}{}
	}

	// 62^6 codes; a hundred draws colliding would mean a broken source.
	assert.Greater(t, len(seen), 90)
}
