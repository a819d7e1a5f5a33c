package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Switch is an on/off environment flag. "1", "true", "yes" and "on" (any
// case) switch it on; every other value, including garbage, switches it off.
type Switch bool

// UnmarshalText implements encoding.TextUnmarshaler. It never fails.
func (s *Switch) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "1", "true", "yes", "on":
		*s = true
	default:
		*s = false
	}
	return nil
}

// Env holds the settings read from the process environment.
type Env struct {
	MemTrace Switch `env:"MINIPLAYER_MEM_TRACE"`
	TraceLog Switch `env:"MINIPLAYER_TRACE_LOG"`
}

// ParseEnv loads Env from environment variables.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}
