// Package playback exposes the per-window playback facade used by the shell
// together with the engine abstraction it drives. Engines are opaque: the
// facade only relies on the transport contract declared here.
package playback

import (
	"errors"
	"fmt"
)

// Engine is one independently clocked playback instance. Implementations are
// expected to be cheap to query because Status is polled every tick.
type Engine interface {
	Load(path string) error
	Play()
	Pause()
	Stop()
	// Seek moves the play head to an absolute position in seconds.
	Seek(seconds float64)
	// SetVolume applies a linear level in the 0..1 range.
	SetVolume(level float64)
	Status() Status
	// RefreshTracks re-rolls the track selection of the loaded media.
	RefreshTracks()
	Shutdown()
}

// Factory creates a fresh engine. A nil Factory means no engine is available
// in this build or on this machine.
type Factory func() (Engine, error)

// Status is a point-in-time snapshot of an engine.
type Status struct {
	Duration    float64 // seconds, meaningful only when HasDuration
	HasDuration bool
	Time        float64 // seconds
	Volume      float64 // 0..1
	Playing     bool
}

// idleStatus is reported for controllers without an engine.
var idleStatus = Status{Volume: 1}

// ErrInvalidPath is returned when a path cannot be handed to the engine.
var ErrInvalidPath = errors.New("path contains invalid UTF-8 or is empty")

// LoadError reports why a file could not be loaded into a session.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
