// Package shutdown implements the two-stage graceful-termination signal
// described in SPEC_FULL.md §5 "Cancellation": a first interrupt requests a
// drain within a bounded timeout, a second forces immediate abort.
package shutdown

import "sync"

// Signaller coordinates graceful shutdown across the scheduler and writer
// pool. It is safe for concurrent use.
type Signaller struct {
	closeAtLeisure chan struct{}
	closeNow       chan struct{}
	stopped        chan struct{}

	atLeisureOnce sync.Once
	nowOnce       sync.Once
	stoppedOnce   sync.Once
}

// NewSignaller returns a ready Signaller.
func NewSignaller() *Signaller {
	return &Signaller{
		closeAtLeisure: make(chan struct{}),
		closeNow:       make(chan struct{}),
		stopped:        make(chan struct{}),
	}
}

// CloseAtLeisure requests a graceful drain: stop issuing new work, finish
// what's in flight. Safe to call more than once.
func (s *Signaller) CloseAtLeisure() {
	s.atLeisureOnce.Do(func() { close(s.closeAtLeisure) })
}

// CloseNow requests an immediate abort, overriding any in-progress drain.
func (s *Signaller) CloseNow() {
	s.nowOnce.Do(func() { close(s.closeNow) })
}

// MarkStopped signals that the owner has finished tearing down.
func (s *Signaller) MarkStopped() {
	s.stoppedOnce.Do(func() { close(s.stopped) })
}

// ShouldCloseAtLeisure returns a channel closed once CloseAtLeisure has been
// called.
func (s *Signaller) ShouldCloseAtLeisure() <-chan struct{} { return s.closeAtLeisure }

// ShouldCloseNow returns a channel closed once CloseNow has been called.
func (s *Signaller) ShouldCloseNow() <-chan struct{} { return s.closeNow }

// HasStopped returns a channel closed once MarkStopped has been called.
func (s *Signaller) HasStopped() <-chan struct{} { return s.stopped }
