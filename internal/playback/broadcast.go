package playback

import (
	"sync"

	"github.com/llehouerou/chime/internal/spectrum"
)

const (
	statusBufferSize   = 16
	spectrumBufferSize = 8
)

// Subscription delivers engine snapshots to one observer. Sends never
// block the engine: when an observer falls behind, the oldest queued
// item is dropped so the newest always gets through.
type Subscription struct {
	Status   <-chan Status
	Spectrum <-chan spectrum.Snapshot
	Done     <-chan struct{}

	// Internal write channels
	statusCh   chan Status
	spectrumCh chan spectrum.Snapshot
	doneCh     chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		statusCh:   make(chan Status, statusBufferSize),
		spectrumCh: make(chan spectrum.Snapshot, spectrumBufferSize),
		doneCh:     make(chan struct{}),
	}
	s.Status = s.statusCh
	s.Spectrum = s.spectrumCh
	s.Done = s.doneCh
	return s
}

// close signals the subscriber to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// sendStatus queues a snapshot, evicting the oldest one when the buffer
// is full. Sends are serialized by the broadcaster lock, so the retry
// after eviction cannot fail.
func (s *Subscription) sendStatus(st Status) {
	select {
	case s.statusCh <- st:
	default:
		select {
		case <-s.statusCh:
		default:
		}
		select {
		case s.statusCh <- st:
		default:
		}
	}
}

// sendSpectrum queues a spectrum frame, evicting the oldest one when the
// buffer is full.
func (s *Subscription) sendSpectrum(snap spectrum.Snapshot) {
	select {
	case s.spectrumCh <- snap:
	default:
		select {
		case <-s.spectrumCh:
		default:
		}
		select {
		case s.spectrumCh <- snap:
		default:
		}
	}
}

// Broadcaster fans engine snapshots out to subscribers.
type Broadcaster struct {
	mu     sync.Mutex
	subs   []*Subscription
	closed bool
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{}
}

// Subscribe registers a new observer. Subscribing after Close returns a
// subscription whose Done channel is already closed.
func (b *Broadcaster) Subscribe() *Subscription {
	sub := newSubscription()
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		sub.close()
		return sub
	}
	b.subs = append(b.subs, sub)
	return sub
}

// Unsubscribe removes an observer. Its channels stop receiving but are
// not closed.
func (b *Broadcaster) Unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s == sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// BroadcastStatus delivers a snapshot to every subscriber without
// blocking.
func (b *Broadcaster) BroadcastStatus(st Status) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.subs {
		s.sendStatus(st)
	}
}

// BroadcastSpectrum delivers a spectrum frame to every subscriber
// without blocking.
func (b *Broadcaster) BroadcastSpectrum(snap spectrum.Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.subs {
		s.sendSpectrum(snap)
	}
}

// Close signals all subscribers to stop. Idempotent.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, s := range b.subs {
		s.close()
	}
	b.subs = nil
}
