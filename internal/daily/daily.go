// internal/daily/daily.go
//
// Deterministic selection of the daily puzzle.
// The index for a date is HMAC-SHA256(salt, YYYY-MM-DD) reduced modulo the
// catalogue size, so every server with the same salt and catalogue serves
// the same puzzle, and the choice cannot be predicted without the salt.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// ParseDateKey parses a YYYY-MM-DD key.
func ParseDateKey(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// PuzzleIndex returns a deterministic index in [0, n) for a date.
func PuzzleIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}
