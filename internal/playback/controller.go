package playback

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Controller owns zero or one Engine for a single session. All methods are
// meant to be called from the goroutine that owns the session; transport
// commands on an unloaded controller are silent no-ops.
type Controller struct {
	newEngine     Factory
	engine        Engine
	path          string
	initialVolume float64
	hasInitial    bool
}

// NewController returns an unloaded controller that creates engines with f.
func NewController(f Factory) *Controller {
	return &Controller{newEngine: f}
}

// SetInitialVolume sets the level applied to every freshly loaded engine.
func (c *Controller) SetInitialVolume(level float64) {
	c.initialVolume = clampFloat(level, 0, 1)
	c.hasInitial = true
}

// Load replaces the current engine with one playing path. The previous engine
// is shut down before the new one is created, so a session never holds two.
func (c *Controller) Load(path string) error {
	c.Shutdown()

	if strings.TrimSpace(path) == "" || !utf8.ValidString(path) {
		return &LoadError{Path: path, Err: ErrInvalidPath}
	}
	if c.newEngine == nil {
		// engine unavailable: remember the file, stay unloaded
		c.path = path
		return nil
	}

	e, err := c.newEngine()
	if err != nil {
		return &LoadError{Path: path, Err: err}
	}
	if err := e.Load(path); err != nil {
		e.Shutdown()
		return &LoadError{Path: path, Err: err}
	}
	if c.hasInitial {
		e.SetVolume(c.initialVolume)
	}
	c.engine = e
	c.path = path
	return nil
}

// IsLoaded reports whether an engine is attached.
func (c *Controller) IsLoaded() bool { return c.engine != nil }

// Path returns the last path handed to Load, or "" after Shutdown.
func (c *Controller) Path() string { return c.path }

// Status returns the engine snapshot, or the idle snapshot when unloaded.
func (c *Controller) Status() Status {
	if c.engine == nil {
		return idleStatus
	}
	return c.engine.Status()
}

// PlayPause toggles between playing and paused.
func (c *Controller) PlayPause() {
	if c.engine == nil {
		return
	}
	if c.engine.Status().Playing {
		c.engine.Pause()
		return
	}
	c.engine.Play()
}

// Stop halts playback and rewinds the track selection.
func (c *Controller) Stop() {
	if c.engine == nil {
		return
	}
	c.engine.Stop()
	c.engine.RefreshTracks()
}

// Reset is the transport "back to start" command.
func (c *Controller) Reset() { c.Stop() }

// Shuffle re-rolls the track selection without stopping.
func (c *Controller) Shuffle() {
	if c.engine == nil {
		return
	}
	c.engine.RefreshTracks()
}

// Seek moves to an absolute position; negative positions seek to 0.
func (c *Controller) Seek(seconds float64) {
	if c.engine == nil {
		return
	}
	c.engine.Seek(math.Max(seconds, 0))
}

// SeekBy moves relative to the current time, clamped to [0, duration].
func (c *Controller) SeekBy(offset float64) {
	if c.engine == nil {
		return
	}
	st := c.engine.Status()
	upper := math.Inf(1)
	if st.HasDuration {
		upper = st.Duration
	}
	c.Seek(clampFloat(st.Time+offset, 0, upper))
}

// SetVolume applies a 0..1 level, clamping out of range input.
func (c *Controller) SetVolume(level float64) {
	if c.engine == nil {
		return
	}
	c.engine.SetVolume(clampFloat(level, 0, 1))
}

// Shutdown stops and releases the engine. Calling it again, or on an unloaded
// controller, does nothing.
func (c *Controller) Shutdown() {
	if c.engine != nil {
		c.engine.Stop()
		c.engine.Shutdown()
		c.engine = nil
	}
	c.path = ""
}

// Close implements io.Closer; owners must call it before dropping the
// controller.
func (c *Controller) Close() error {
	c.Shutdown()
	return nil
}

func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
