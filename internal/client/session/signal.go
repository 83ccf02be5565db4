package session

import "sync"

// Signal is a process-wide broadcast used to tell interested parties that
// the session's token presence may have changed. It carries no payload:
// listeners must re-read the Store for current values, so an emission
// interleaved with another mutation can never deliver a stale snapshot.
//
// Every mutating Store call emits, even when the stored value did not
// change, so listeners have to be idempotent against redundant signals.
type Signal struct {
	mu        sync.Mutex
	nextID    int
	listeners []signalListener
}

type signalListener struct {
	id int
	fn func()
}

func NewSignal() *Signal {
	return &Signal{}
}

// Subscribe registers fn and returns a function that removes it again.
// Listeners are invoked in registration order.
func (s *Signal) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, signalListener{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Emit invokes all current listeners synchronously, in registration order.
// Each invocation is isolated: a panicking listener does not prevent the
// remaining listeners from running.
func (s *Signal) Emit() {
	s.mu.Lock()
	snapshot := make([]signalListener, len(s.listeners))
	copy(snapshot, s.listeners)
	s.mu.Unlock()

	for _, l := range snapshot {
		invokeIsolated(l.fn)
	}
}

func invokeIsolated(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}
