package session

import (
	"math"
	"testing"
	"time"

	"github.com/edward-ap/miniplayer/internal/playback"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }
func newFakeClock() *fakeClock               { return &fakeClock{now: time.Unix(1_700_000_000, 0)} }

type stubEngine struct {
	status  playback.Status
	seeks   []float64
	volumes []float64
}

func (e *stubEngine) Load(string) error       { return nil }
func (e *stubEngine) Play()                   { e.status.Playing = true }
func (e *stubEngine) Pause()                  { e.status.Playing = false }
func (e *stubEngine) Stop()                   {}
func (e *stubEngine) Seek(s float64)          { e.seeks = append(e.seeks, s) }
func (e *stubEngine) SetVolume(v float64)     { e.volumes = append(e.volumes, v) }
func (e *stubEngine) Status() playback.Status { return e.status }
func (e *stubEngine) RefreshTracks()          {}
func (e *stubEngine) Shutdown()               {}

func loadedSession(t *testing.T, st playback.Status) (*Session, *stubEngine, *fakeClock) {
	t.Helper()
	eng := &stubEngine{status: st}
	ctrl := playback.NewController(func() (playback.Engine, error) { return eng, nil })
	clk := newFakeClock()
	s := New(ctrl, clk)
	s.describe = nil
	if err := s.Load("song.prot"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s, eng, clk
}

func TestNewSessionIsEmpty(t *testing.T) {
	s := New(playback.NewController(nil), newFakeClock())
	s.Reconcile()
	if !s.IsEmpty() || s.HasDuration || s.Playing {
		t.Fatalf("fresh session: empty=%v hasDuration=%v playing=%v", s.IsEmpty(), s.HasDuration, s.Playing)
	}
	if s.TimePercent != 0 || s.VolumePercent != 100 {
		t.Fatalf("percents = %v/%v, want 0/100", s.TimePercent, s.VolumePercent)
	}
	if s.Title != DefaultTitle || s.Phase != Opening {
		t.Fatalf("title %q phase %v", s.Title, s.Phase)
	}
}

func TestLoadSetsTitleAndClearsError(t *testing.T) {
	s, _, _ := loadedSession(t, playback.Status{})
	if s.Title != "song.prot" {
		t.Fatalf("Title = %q, want song.prot", s.Title)
	}
	if s.LastError != "" {
		t.Fatalf("LastError = %q", s.LastError)
	}
}

func TestLoadFailureRecordsError(t *testing.T) {
	s := New(playback.NewController(func() (playback.Engine, error) { return &stubEngine{}, nil }), newFakeClock())
	if err := s.Load("bad\xff.prot"); err == nil {
		t.Fatal("expected load error")
	}
	if s.LastError == "" {
		t.Fatal("LastError should be set")
	}
	if s.Title != DefaultTitle {
		t.Fatalf("title changed on failure: %q", s.Title)
	}
}

func TestTimelineOverrideHoldsDuringWindow(t *testing.T) {
	for _, p := range []float64{0, 12.5, 50, 99.9, 100} {
		s, eng, clk := loadedSession(t, playback.Status{Duration: 200, HasDuration: true, Time: 20, Volume: 1})
		s.Reconcile()
		s.SetTimelinePercent(p)
		eng.status.Time = 20 // engine still reports 10%
		clk.Advance(OverrideWindow - time.Millisecond)
		s.Reconcile()
		if s.TimePercent != p {
			t.Fatalf("p=%v: displayed %v during override window", p, s.TimePercent)
		}
	}
}

func TestTimelineConvergesAfterDeadline(t *testing.T) {
	s, eng, clk := loadedSession(t, playback.Status{Duration: 200, HasDuration: true, Time: 20, Volume: 1})
	s.Reconcile()
	s.SetTimelinePercent(50)
	eng.status.Time = 30
	clk.Advance(OverrideWindow)
	s.Reconcile()
	if math.Abs(s.TimePercent-15) > 1e-9 {
		t.Fatalf("TimePercent = %v, want 15", s.TimePercent)
	}
	if _, _, armed := s.timeline.Pending(); armed {
		t.Fatal("expired override should be cleared")
	}
}

func TestTimelineWithoutDuration(t *testing.T) {
	s := New(playback.NewController(nil), newFakeClock())
	s.SetTimelinePercent(70)
	if s.TimePercent != 70 {
		t.Fatalf("displayed %v, want 70", s.TimePercent)
	}
	s.clock.(*fakeClock).Advance(time.Second)
	s.Reconcile()
	if s.TimePercent != 0 {
		t.Fatalf("TimePercent = %v, want 0 with no duration", s.TimePercent)
	}
}

func TestDragIssuesSeek(t *testing.T) {
	s, eng, clk := loadedSession(t, playback.Status{Duration: 200, HasDuration: true, Time: 20, Volume: 1})
	s.Reconcile()
	s.SetTimelinePercent(50)
	if len(eng.seeks) != 1 || eng.seeks[0] != 100 {
		t.Fatalf("seeks = %v, want [100]", eng.seeks)
	}
	clk.Advance(100 * time.Millisecond)
	s.Reconcile()
	if s.TimePercent != 50 {
		t.Fatalf("TimePercent = %v, want 50 while engine catches up", s.TimePercent)
	}
}

func TestPercentsAreClamped(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-20, 0},
		{0, 0},
		{42, 42},
		{100, 100},
		{250, 100},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		s, eng, _ := loadedSession(t, playback.Status{Duration: 60, HasDuration: true, Volume: 1})
		s.Reconcile()
		s.SetVolumePercent(tt.in)
		s.SetTimelinePercent(tt.in)
		if s.VolumePercent != tt.want || s.TimePercent != tt.want {
			t.Fatalf("in=%v: volume %v timeline %v, want %v", tt.in, s.VolumePercent, s.TimePercent, tt.want)
		}
		if got := eng.volumes[len(eng.volumes)-1]; got != tt.want/100 {
			t.Fatalf("in=%v: engine volume %v, want %v", tt.in, got, tt.want/100)
		}
		if got := eng.seeks[len(eng.seeks)-1]; got < 0 || got > 60 {
			t.Fatalf("in=%v: seek %v out of [0,60]", tt.in, got)
		}
	}
}

func TestVolumeOverride(t *testing.T) {
	s, eng, clk := loadedSession(t, playback.Status{Volume: 1})
	s.Reconcile()
	s.SetVolumePercent(30)
	clk.Advance(200 * time.Millisecond)
	s.Reconcile()
	if s.VolumePercent != 30 {
		t.Fatalf("VolumePercent = %v during override, want 30", s.VolumePercent)
	}
	eng.status.Volume = 0.3
	clk.Advance(100 * time.Millisecond)
	s.Reconcile()
	if math.Abs(s.VolumePercent-30) > 1e-9 {
		t.Fatalf("VolumePercent = %v after override, want 30", s.VolumePercent)
	}
}

func TestReconcileCopiesGroundTruth(t *testing.T) {
	s, eng, _ := loadedSession(t, playback.Status{Duration: 90, HasDuration: true, Time: 45, Volume: 0.5, Playing: true})
	s.Reconcile()
	if !s.HasDuration || s.Duration != 90 || s.CurrentTime != 45 || !s.Playing {
		t.Fatalf("unexpected state: %+v", s)
	}
	if s.TimePercent != 50 || s.VolumePercent != 50 {
		t.Fatalf("percents %v/%v, want 50/50", s.TimePercent, s.VolumePercent)
	}
	eng.status.Time = 500
	s.Reconcile()
	if s.TimePercent != 100 {
		t.Fatalf("TimePercent = %v, want clamp to 100", s.TimePercent)
	}
}

func TestZoomBy(t *testing.T) {
	s := New(playback.NewController(nil), newFakeClock())
	for i := 0; i < 20; i++ {
		s.ZoomBy(ZoomStep)
	}
	if s.Zoom != MaxZoom {
		t.Fatalf("Zoom = %v, want %v", s.Zoom, MaxZoom)
	}
	for i := 0; i < 30; i++ {
		s.ZoomBy(-ZoomStep)
	}
	if s.Zoom != MinZoom {
		t.Fatalf("Zoom = %v, want %v", s.Zoom, MinZoom)
	}
	s.ZoomBy(ZoomStep)
	if s.Zoom != 0.6 {
		t.Fatalf("Zoom = %v, want 0.6", s.Zoom)
	}
}

func TestViewUsesGlobalErrorAsFallback(t *testing.T) {
	s := New(playback.NewController(nil), newFakeClock())
	if v := s.View("menu unavailable"); v.Error != "menu unavailable" {
		t.Fatalf("Error = %q", v.Error)
	}
	s.LastError = "Failed to load file"
	if v := s.View("menu unavailable"); v.Error != "Failed to load file" {
		t.Fatalf("Error = %q", v.Error)
	}
}

func TestCloseShutsDown(t *testing.T) {
	s, _, _ := loadedSession(t, playback.Status{})
	s.Close()
	if !s.IsEmpty() || s.Phase != Closed {
		t.Fatalf("after Close: empty=%v phase=%v", s.IsEmpty(), s.Phase)
	}
}
