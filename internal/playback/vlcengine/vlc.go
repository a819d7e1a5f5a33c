// Package vlcengine plays media through libVLC. It is the only package that
// links against libVLC; the rest of the player sees it as a playback.Factory.
package vlcengine

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"sync"

	vlc "github.com/adrg/libvlc-go/v3"

	"github.com/edward-ap/miniplayer/internal/playback"
)

var (
	runtimeOnce sync.Once
	runtimeErr  error
	runtimeMu   sync.Mutex
	runtimeUp   bool
)

// initRuntime initialises libVLC once per process. Later calls return the
// result of the first attempt.
func initRuntime() error {
	runtimeOnce.Do(func() {
		// let libVLC 3 pick up plugins shipped next to the executable
		if exe, err := os.Executable(); err == nil {
			plugins := filepath.Join(filepath.Dir(exe), "plugins")
			if st, err := os.Stat(plugins); err == nil && st.IsDir() {
				_ = os.Setenv("VLC_PLUGIN_PATH", plugins)
			}
		}

		args := []string{
			"--no-video",
			"--no-color",
			"--quiet",
		}
		if isTraceLoggingEnabled() {
			args = append(args,
				"--verbose=2",
				"--file-logging",
				"--log-verbose=2",
				"--logfile=vlc.log",
			)
		}
		runtimeMu.Lock()
		defer runtimeMu.Unlock()
		if err := vlc.Init(args...); err != nil {
			runtimeErr = fmt.Errorf("libvlc init failed: %w", err)
			return
		}
		runtimeUp = true
		log.Printf("vlcengine: libVLC %s ready", vlc.Version().String())
	})
	return runtimeErr
}

// ReleaseRuntime frees the process-wide libVLC instance. Every engine must be
// shut down before it is called.
func ReleaseRuntime() {
	runtimeMu.Lock()
	defer runtimeMu.Unlock()
	if runtimeUp {
		_ = vlc.Release()
		runtimeUp = false
	}
}

// NewFactory returns a playback.Factory producing libVLC-backed engines.
// libVLC is initialised lazily by the first engine.
func NewFactory() playback.Factory {
	return func() (playback.Engine, error) {
		if err := initRuntime(); err != nil {
			return nil, err
		}
		return newVLCEngine()
	}
}

// vlcEngine drives one libVLC list player. Every libVLC call is serialised
// through mu.
type vlcEngine struct {
	mu     sync.Mutex
	lp     *vlc.ListPlayer
	p      *vlc.Player
	list   *vlc.MediaList
	tracks []string
	volume float64
}

func newVLCEngine() (*vlcEngine, error) {
	runtimeMu.Lock()
	defer runtimeMu.Unlock()
	lp, err := vlc.NewListPlayer()
	if err != nil {
		return nil, fmt.Errorf("new vlc list player failed: %w", err)
	}
	p, err := lp.Player()
	if err != nil {
		_ = lp.Release()
		return nil, fmt.Errorf("vlc list player has no player: %w", err)
	}
	return &vlcEngine{lp: lp, p: p, volume: 1}, nil
}

func (e *vlcEngine) Load(path string) error {
	tracks, err := playback.ResolveTracks(path)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.setTracksLocked(tracks); err != nil {
		return err
	}
	return nil
}

// setTracksLocked rebuilds the media list from tracks. Caller holds mu.
func (e *vlcEngine) setTracksLocked(tracks []string) error {
	ml, err := vlc.NewMediaList()
	if err != nil {
		return fmt.Errorf("new media list failed: %w", err)
	}
	for _, t := range tracks {
		if err := ml.AddMediaFromPath(t); err != nil {
			_ = ml.Release()
			return fmt.Errorf("add media %q failed: %w", t, err)
		}
	}
	if err := e.lp.SetMediaList(ml); err != nil {
		_ = ml.Release()
		return fmt.Errorf("set media list failed: %w", err)
	}
	if e.list != nil {
		_ = e.list.Release()
	}
	e.list = ml
	e.tracks = tracks
	return nil
}

func (e *vlcEngine) Play() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if st, err := e.p.MediaState(); err == nil && st == vlc.MediaPaused {
		_ = e.p.SetPause(false)
		return
	}
	if err := e.lp.Play(); err != nil {
		log.Printf("vlcengine: play failed: %v", err)
	}
}

func (e *vlcEngine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	_ = e.p.SetPause(true)
}

func (e *vlcEngine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	_ = e.lp.Stop()
}

func (e *vlcEngine) Seek(seconds float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	_ = e.p.SetMediaTime(int(seconds * 1000))
}

func (e *vlcEngine) SetVolume(level float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.volume = level
	_ = e.p.SetVolume(int(level*100 + 0.5))
}

func (e *vlcEngine) Status() playback.Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	st := playback.Status{Volume: e.volume, Playing: e.p.IsPlaying()}
	if ms, err := e.p.MediaLength(); err == nil && ms > 0 {
		st.Duration = float64(ms) / 1000
		st.HasDuration = true
	}
	if ms, err := e.p.MediaTime(); err == nil && ms > 0 {
		st.Time = float64(ms) / 1000
	}
	if v, err := e.p.Volume(); err == nil && v >= 0 {
		st.Volume = float64(v) / 100
	}
	return st
}

// RefreshTracks shuffles the track order and restarts from the first entry,
// resuming playback when it was running.
func (e *vlcEngine) RefreshTracks() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.tracks) == 0 {
		return
	}
	playing := e.p.IsPlaying()
	tracks := append([]string(nil), e.tracks...)
	rand.Shuffle(len(tracks), func(i, j int) { tracks[i], tracks[j] = tracks[j], tracks[i] })
	_ = e.lp.Stop()
	if err := e.setTracksLocked(tracks); err != nil {
		log.Printf("vlcengine: refresh tracks failed: %v", err)
		return
	}
	if playing {
		_ = e.lp.Play()
	}
}

func (e *vlcEngine) Shutdown() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lp == nil {
		return
	}
	_ = e.lp.Stop()
	_ = e.lp.Release()
	e.lp, e.p = nil, nil
	if e.list != nil {
		_ = e.list.Release()
		e.list = nil
	}
	e.tracks = nil
}
