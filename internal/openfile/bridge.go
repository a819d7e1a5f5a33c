// Package openfile bridges the platform "open this file" callback into the
// player's event loop.
//
// The platform hook is process-wide and is installed at most once. Paths the
// hook delivers are queued under a mutex and drained by the owner's tick.
package openfile

import (
	"errors"
	"fmt"
	"sync"
)

// DefaultQueueLimit bounds the number of undrained paths.
const DefaultQueueLimit = 256

// ErrNoInstaller is returned when the bridge was built without an installer.
var ErrNoInstaller = errors.New("openfile: no platform installer")

// State is the install state of the platform hook.
type State int

const (
	NotAttempted State = iota
	Installed
	Failed
)

func (s State) String() string {
	switch s {
	case NotAttempted:
		return "not-attempted"
	case Installed:
		return "installed"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Installer registers the platform hook. The hook must call deliver for every
// path the platform asks the application to open; deliver is safe to call
// from any goroutine.
type Installer interface {
	Install(deliver func(path string)) error
}

// InstallerFunc adapts a function to Installer.
type InstallerFunc func(deliver func(path string)) error

// Install calls f(deliver).
func (f InstallerFunc) Install(deliver func(path string)) error { return f(deliver) }

// Logger is the subset of *log.Logger the bridge uses.
type Logger interface {
	Printf(format string, args ...any)
}

// Bridge owns the open-file queue and the one-time hook installation.
type Bridge struct {
	installer Installer
	limit     int
	log       Logger

	once sync.Once

	mu      sync.Mutex
	state   State
	err     error
	queue   []string
	dropped int
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithQueueLimit sets the queue bound; values below 1 are ignored.
func WithQueueLimit(n int) Option {
	return func(b *Bridge) {
		if n > 0 {
			b.limit = n
		}
	}
}

// WithLogger sets where dropped paths and install failures are reported.
func WithLogger(l Logger) Option {
	return func(b *Bridge) { b.log = l }
}

// New returns a bridge that will install the hook with inst.
func New(inst Installer, opts ...Option) *Bridge {
	b := &Bridge{installer: inst, limit: DefaultQueueLimit}
	for _, o := range opts {
		o(b)
	}
	return b
}

// EnsureInstalled attempts the hook installation the first time it is
// called. The install error is returned only to that first caller; every
// later call, including concurrent ones, returns nil without retrying.
func (b *Bridge) EnsureInstalled() error {
	var err error
	b.once.Do(func() {
		if b.installer == nil {
			err = ErrNoInstaller
		} else {
			err = b.installer.Install(b.Deliver)
		}
		b.mu.Lock()
		if err != nil {
			b.state = Failed
			b.err = err
		} else {
			b.state = Installed
		}
		b.mu.Unlock()
		if err != nil && b.log != nil {
			b.log.Printf("openfile: hook install failed: %v", err)
		}
	})
	return err
}

// State returns the install state and, when Failed, the reason.
func (b *Bridge) State() (State, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state, b.err
}

// Deliver queues path for the next drain. Empty paths are ignored and paths
// past the queue bound are dropped.
func (b *Bridge) Deliver(path string) {
	if path == "" {
		return
	}
	b.mu.Lock()
	if len(b.queue) >= b.limit {
		b.dropped++
		b.mu.Unlock()
		if b.log != nil {
			b.log.Printf("openfile: queue full, dropping %q", path)
		}
		return
	}
	b.queue = append(b.queue, path)
	b.mu.Unlock()
}

// TakeQueued returns every queued path in arrival order and empties the
// queue.
func (b *Bridge) TakeQueued() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.queue) == 0 {
		return nil
	}
	q := b.queue
	b.queue = nil
	return q
}

// Pending reports whether paths are waiting to be drained.
func (b *Bridge) Pending() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue) > 0
}

// Dropped returns how many paths were rejected because the queue was full.
func (b *Bridge) Dropped() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}
