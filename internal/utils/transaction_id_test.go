package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateTransactionID(t *testing.T) {
	pattern := regexp.MustCompile(`^TXN-[0-9A-F]{32}$`)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := GenerateTransactionID()
		assert.Regexp(t, pattern, id)
		assert.False(t, seen[id])
		seen[id] = true
	}
}
