// Package session holds the per-window player state and reconciles what a
// window displays against its engine's latest status.
package session

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/edward-ap/miniplayer/internal/playback"
	"github.com/edward-ap/miniplayer/internal/trackinfo"
)

const (
	// DefaultTitle is shown until a file has been loaded.
	DefaultTitle = "MiniPlayer"

	MinZoom  = 0.5
	MaxZoom  = 2.0
	ZoomStep = 0.1
)

// Phase is the lifecycle position of a session's window.
type Phase int

const (
	// Opening means the window was requested but not confirmed yet.
	Opening Phase = iota
	// Active means the window exists and receives input.
	Active
	// Closed means the controller was shut down and the session dropped.
	Closed
)

func (p Phase) String() string {
	switch p {
	case Opening:
		return "opening"
	case Active:
		return "active"
	case Closed:
		return "closed"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Session is one window's playback state. It is owned by a single goroutine.
type Session struct {
	Playback *playback.Controller

	TimePercent   float64
	VolumePercent float64
	Duration      float64
	HasDuration   bool
	CurrentTime   float64
	Playing       bool
	LastError     string
	Zoom          float64
	Title         string
	NowPlaying    string
	Phase         Phase

	clock    Clock
	timeline Override
	volume   Override
	describe func(path string) string
}

// New returns an empty session driving ctrl. A nil clock uses SystemClock.
func New(ctrl *playback.Controller, clock Clock) *Session {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Session{
		Playback:      ctrl,
		VolumePercent: 100,
		Zoom:          1,
		Title:         DefaultTitle,
		Phase:         Opening,
		clock:         clock,
		describe:      trackinfo.Describe,
	}
}

// Load hands path to the controller. On success the title becomes the file
// name and the last error is cleared; on failure the error is recorded and
// returned.
func (s *Session) Load(path string) error {
	if err := s.Playback.Load(path); err != nil {
		s.LastError = fmt.Sprintf("Failed to load file: %v", err)
		return err
	}
	s.LastError = ""
	if name := filepath.Base(path); name != "" && name != "." {
		s.Title = name
	}
	if s.describe != nil {
		s.NowPlaying = s.describe(path)
	}
	return nil
}

// IsEmpty reports whether no media is loaded.
func (s *Session) IsEmpty() bool { return !s.Playback.IsLoaded() }

// Reconcile pulls the engine status and refreshes the displayed values.
// Slider values under an active override are left as the user set them.
func (s *Session) Reconcile() {
	st := s.Playback.Status()
	now := s.clock.Now()

	s.Duration = st.Duration
	s.HasDuration = st.HasDuration
	s.CurrentTime = st.Time
	s.Playing = st.Playing

	s.TimePercent = s.timeline.Resolve(now, timelinePercent(st))
	s.VolumePercent = s.volume.Resolve(now, clampPercent(st.Volume*100))
}

// SetTimelinePercent applies a timeline drag. The seek is issued only when
// the duration is known.
func (s *Session) SetTimelinePercent(p float64) {
	p = clampPercent(p)
	s.TimePercent = p
	s.timeline.Arm(p, s.clock.Now(), OverrideWindow)
	if s.HasDuration {
		s.Playback.Seek(s.Duration * p / 100)
	}
}

// SetVolumePercent applies a volume drag.
func (s *Session) SetVolumePercent(p float64) {
	p = clampPercent(p)
	s.VolumePercent = p
	s.volume.Arm(p, s.clock.Now(), OverrideWindow)
	s.Playback.SetVolume(p / 100)
}

// ZoomBy adjusts the zoom factor, clamped to [MinZoom, MaxZoom].
func (s *Session) ZoomBy(delta float64) {
	z := math.Round((s.Zoom+delta)*10) / 10
	s.Zoom = math.Min(MaxZoom, math.Max(MinZoom, z))
}

// Close shuts the controller down and marks the session closed.
func (s *Session) Close() {
	s.Playback.Shutdown()
	s.Phase = Closed
}

// View is an immutable snapshot handed to the window layer.
type View struct {
	Title         string
	NowPlaying    string
	TimePercent   float64
	VolumePercent float64
	CurrentTime   float64
	Duration      float64
	HasDuration   bool
	Playing       bool
	Loaded        bool
	Zoom          float64
	// Error is the session error, or the shell-wide error when the session
	// has none.
	Error string
}

// View snapshots the session. globalError is shown when the session itself
// has no error.
func (s *Session) View(globalError string) View {
	v := View{
		Title:         s.Title,
		NowPlaying:    s.NowPlaying,
		TimePercent:   s.TimePercent,
		VolumePercent: s.VolumePercent,
		CurrentTime:   s.CurrentTime,
		Duration:      s.Duration,
		HasDuration:   s.HasDuration,
		Playing:       s.Playing,
		Loaded:        s.Playback.IsLoaded(),
		Zoom:          s.Zoom,
		Error:         s.LastError,
	}
	if v.Error == "" {
		v.Error = globalError
	}
	return v
}

func timelinePercent(st playback.Status) float64 {
	if !st.HasDuration || st.Duration <= 0 {
		return 0
	}
	return clampPercent(st.Time / st.Duration * 100)
}

func clampPercent(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
