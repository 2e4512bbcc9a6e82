// Package id provides session ID generation for log correlation.
//
// Every termflow run is tagged with a ULID-based session ID so that
// multiple runs appending to the shared diagnostic log file can be told
// apart. ULIDs are lexicographically sortable, which keeps the log
// greppable in run order.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// SessionID identifies a single termflow run.
type SessionID string

// SessionPrefix marks session IDs in log output.
const SessionPrefix = "sess"

// Generator generates prefixed ULIDs.
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex // protects entropy reader
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance.
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator(rand.Reader)
	})
	return defaultGenerator
}

// NewGenerator creates a generator with the given entropy source.
// Tests can pass a deterministic reader.
func NewGenerator(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// Generate creates a new ULID.
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// NewSessionID generates a new prefixed session ID.
func NewSessionID() SessionID {
	return SessionID(fmt.Sprintf("%s_%s", SessionPrefix, Default().Generate()))
}
