// Package history stores everything the child has printed, as decoded
// Unicode scalar values.
//
// The buffer is append-only and growth-only: no entry is ever removed
// or mutated in place, and it is owned exclusively by the event loop.
// It grows without bound for the lifetime of a session, which is fine
// for short-lived sessions.
package history

import (
	"unicode/utf8"

	"go.uber.org/zap"
)

// Buffer is the append-only sequence of scalar values printed by the
// child, plus the undecoded tail of the last chunk.
type Buffer struct {
	runes   []rune
	pending []byte
	log     *zap.Logger
}

// New creates an empty buffer. The logger records decode anomalies.
func New(log *zap.Logger) *Buffer {
	return &Buffer{log: log}
}

// Append decodes a raw output chunk as UTF-8 and appends the scalar
// values. A rune truncated at the chunk boundary is carried into the
// next call. A genuinely malformed sequence stops decoding of the
// remainder of the chunk; the bytes already passed through verbatim to
// the terminal, they just do not enter history.
func (b *Buffer) Append(chunk []byte) {
	data := chunk
	if len(b.pending) > 0 {
		data = append(b.pending, chunk...)
		b.pending = nil
	}

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size <= 1 {
			if !utf8.FullRune(data) {
				// Truncated trailing sequence; finish it with the
				// next chunk.
				b.pending = append([]byte(nil), data...)
				return
			}
			b.log.Warn("malformed UTF-8 in child output, dropping rest of chunk",
				zap.Int("dropped_bytes", len(data)))
			return
		}
		b.runes = append(b.runes, r)
		data = data[size:]
	}
}

// Runes exposes the decoded history. Callers must treat it as
// read-only; the reflow engine is a pure reader.
func (b *Buffer) Runes() []rune {
	return b.runes
}

// Len returns the number of scalar values in history.
func (b *Buffer) Len() int {
	return len(b.runes)
}
