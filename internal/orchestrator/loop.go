package orchestrator

import (
	"context"
	"log"
	"sync"
	"time"
)

// Msg is an input for the orchestrator, posted from any goroutine.
type Msg interface {
	apply(o *Orchestrator)
}

type (
	// Opened reports that the host showed the window of ID.
	Opened struct{ ID WindowID }
	// Focused reports that the window of ID received input or focus.
	Focused struct{ ID WindowID }
	// CloseRequested is the user asking to close the window of ID.
	CloseRequested struct{ ID WindowID }
	// Closed reports that the window of ID is gone.
	Closed struct{ ID WindowID }
	// TimelineChanged is a drag on the timeline slider.
	TimelineChanged struct {
		ID      WindowID
		Percent float64
	}
	// VolumeChanged is a drag on the volume slider.
	VolumeChanged struct {
		ID      WindowID
		Percent float64
	}
	PlayPausePressed struct{ ID WindowID }
	ResetPressed     struct{ ID WindowID }
	ShufflePressed   struct{ ID WindowID }
	// KeyPressed is a shortcut typed into the window of ID.
	KeyPressed struct {
		ID       WindowID
		Shortcut Shortcut
	}
	// FilePicked is the open dialog result; Path is empty when cancelled.
	FilePicked struct{ Path string }
	// Call runs an arbitrary function on the loop goroutine.
	Call func(o *Orchestrator)
)

func (m Opened) apply(o *Orchestrator) {
	o.WindowOpened(m.ID)
	o.Focus(m.ID)
}
func (m Focused) apply(o *Orchestrator)          { o.Focus(m.ID) }
func (m CloseRequested) apply(o *Orchestrator)   { o.CloseWindow(m.ID) }
func (m Closed) apply(o *Orchestrator)           { o.WindowClosed(m.ID) }
func (m TimelineChanged) apply(o *Orchestrator)  { o.SetTimeline(m.ID, m.Percent) }
func (m VolumeChanged) apply(o *Orchestrator)    { o.SetVolume(m.ID, m.Percent) }
func (m PlayPausePressed) apply(o *Orchestrator) { o.PlayPause(m.ID) }
func (m ResetPressed) apply(o *Orchestrator)     { o.Reset(m.ID) }
func (m ShufflePressed) apply(o *Orchestrator)   { o.Shuffle(m.ID) }
func (m KeyPressed) apply(o *Orchestrator)       { o.HandleShortcut(m.ID, m.Shortcut) }
func (m FilePicked) apply(o *Orchestrator)       { o.FilePicked(m.Path) }
func (m Call) apply(o *Orchestrator)             { m(o) }

// MailboxSize bounds the messages buffered ahead of the loop.
const MailboxSize = 256

// PostTimeout is how long Post waits for room in a full mailbox before the
// message is dropped.
const PostTimeout = 50 * time.Millisecond

// Loop runs an Orchestrator on one goroutine: it applies posted messages in
// order and ticks every TickInterval.
type Loop struct {
	o           *Orchestrator
	msgs        chan Msg
	done        chan struct{}
	doneOnce    sync.Once
	interval    time.Duration
	postTimeout time.Duration
}

// NewLoop wraps o.
func NewLoop(o *Orchestrator) *Loop {
	return &Loop{
		o:           o,
		msgs:        make(chan Msg, MailboxSize),
		done:        make(chan struct{}),
		interval:    TickInterval,
		postTimeout: PostTimeout,
	}
}

// Post queues m. Messages from one goroutine are applied in the order they
// were posted. A full mailbox makes Post wait up to PostTimeout, after which
// m is dropped and logged; after Run has returned messages are discarded.
func (l *Loop) Post(m Msg) {
	select {
	case <-l.done:
		return
	case l.msgs <- m:
		return
	default:
	}
	t := time.NewTimer(l.postTimeout)
	defer t.Stop()
	select {
	case l.msgs <- m:
	case <-l.done:
	case <-t.C:
		log.Printf("orchestrator: mailbox full, dropping %T", m)
	}
}

// Run processes messages and ticks until ctx is cancelled. It must be called
// at most once.
func (l *Loop) Run(ctx context.Context) error {
	defer l.doneOnce.Do(func() { close(l.done) })

	t := time.NewTicker(l.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m := <-l.msgs:
			m.apply(l.o)
		case <-t.C:
			l.o.Tick()
		}
	}
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} { return l.done }
