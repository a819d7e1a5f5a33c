// Package diag contains opt-in runtime diagnostics.
package diag

import (
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/dustin/go-humanize"
)

// MemorySampler logs process memory figures on demand and at most once per
// second from the tick. A nil *MemorySampler is valid and logs nothing.
type MemorySampler struct {
	out      *log.Logger
	now      func() time.Time
	interval time.Duration
	next     time.Time
	peakHeap uint64
	peakSys  uint64
}

// NewMemorySampler returns a sampler when enabled, nil otherwise.
func NewMemorySampler(enabled bool) *MemorySampler {
	if !enabled {
		return nil
	}
	return &MemorySampler{
		out:      log.New(os.Stderr, "[mem] ", 0),
		now:      time.Now,
		interval: time.Second,
	}
}

// MaybeLogPeriodic logs a "tick" sample when the interval has elapsed.
func (m *MemorySampler) MaybeLogPeriodic(windows, loaded int) {
	if m == nil {
		return
	}
	now := m.now()
	if now.Before(m.next) {
		return
	}
	m.next = now.Add(m.interval)
	m.log("tick", windows, loaded)
}

// LogEvent logs a sample tagged with reason.
func (m *MemorySampler) LogEvent(reason string, windows, loaded int) {
	if m == nil {
		return
	}
	m.log(reason, windows, loaded)
}

func (m *MemorySampler) log(reason string, windows, loaded int) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	m.peakHeap = max(m.peakHeap, ms.HeapAlloc)
	m.peakSys = max(m.peakSys, ms.Sys)
	threads := 0
	if p := pprof.Lookup("threadcreate"); p != nil {
		threads = p.Count()
	}
	m.out.Printf("reason=%s heap=%s sys=%s peak_heap=%s peak_sys=%s threads=%d goroutines=%d windows=%d loaded_players=%d",
		reason,
		humanize.IBytes(ms.HeapAlloc),
		humanize.IBytes(ms.Sys),
		humanize.IBytes(m.peakHeap),
		humanize.IBytes(m.peakSys),
		threads,
		runtime.NumGoroutine(),
		windows,
		loaded,
	)
}
