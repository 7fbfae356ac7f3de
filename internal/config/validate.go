package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/robalobadob/ringram/internal/ring"
)

// Validate checks cross-field rules and fills derived fields.
// Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range (got %d)", c.Server.Port)
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("server.request_timeout must be > 0 (got %v)", c.Server.RequestTimeout)
	}
	switch c.Database.PuzzleStore {
	case "sqlite", "memory":
	default:
		return fmt.Errorf("database.puzzle_store must be sqlite or memory (got %q)", c.Database.PuzzleStore)
	}
	if c.Auth.JWTExpiresDays <= 0 {
		return fmt.Errorf("auth.jwt_expires_days must be > 0 (got %d)", c.Auth.JWTExpiresDays)
	}
	if c.Seed.Count < 0 {
		return fmt.Errorf("seed.count must be >= 0 (got %d)", c.Seed.Count)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	shape, err := ring.ShapeForSide(c.Daily.Side)
	if err != nil {
		return fmt.Errorf("daily.side: %w", err)
	}
	reveal := []int{1, shape.FlatLen()}
	if strings.TrimSpace(c.Daily.RevealRaw) != "" {
		if reveal, err = ParseReveal(c.Daily.RevealRaw); err != nil {
			return fmt.Errorf("daily.reveal: %w", err)
		}
	}
	if err := ring.ValidateReveal(reveal, shape); err != nil {
		return fmt.Errorf("daily.reveal: %w", err)
	}
	c.Daily.Reveal = reveal
	return nil
}

// ParseReveal parses a comma-separated index list such as "1,12".
// An empty string yields nil (nothing revealed).
func ParseReveal(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid index %q: %w", p, err)
		}
		out = append(out, n)
	}
	return out, nil
}
