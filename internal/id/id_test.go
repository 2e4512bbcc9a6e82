package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSessionID(t *testing.T) {
	sid := NewSessionID()

	assert.True(t, strings.HasPrefix(string(sid), "sess_"))
	// Prefix plus 26-character ULID.
	assert.Len(t, string(sid), len(SessionPrefix)+1+26)
}

func TestSessionIDsAreUnique(t *testing.T) {
	seen := make(map[SessionID]bool)
	for i := 0; i < 100; i++ {
		sid := NewSessionID()
		assert.False(t, seen[sid], "duplicate session id %s", sid)
		seen[sid] = true
	}
}
