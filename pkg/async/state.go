package async

import "sync"

// state is the settlement core shared by Future and ExecFuture.
// Callbacks run on a dispatcher goroutine in registration order, never inside
// the call that registered them.
type state struct {
	mu       sync.Mutex
	done     chan struct{}
	err      error
	settled  bool
	draining bool
	pending  []func()
}

func (s *state) init() {
	s.done = make(chan struct{})
}

// settle records the outcome once; later calls are ignored.
func (s *state) settle(err error, commit func()) bool {
	s.mu.Lock()
	if s.settled {
		s.mu.Unlock()
		return false
	}
	if commit != nil {
		commit()
	}
	s.err = err
	s.settled = true
	close(s.done)
	start := s.startDrain()
	s.mu.Unlock()

	if start {
		go s.drain()
	}
	return true
}

// register queues cb to run after settlement.
func (s *state) register(cb func()) {
	if cb == nil {
		return
	}

	s.mu.Lock()
	s.pending = append(s.pending, cb)
	start := s.startDrain()
	s.mu.Unlock()

	if start {
		go s.drain()
	}
}

// startDrain must be called with mu held.
func (s *state) startDrain() bool {
	if !s.settled || s.draining || len(s.pending) == 0 {
		return false
	}
	s.draining = true
	return true
}

func (s *state) drain() {
	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.draining = false
			s.mu.Unlock()
			return
		}
		cb := s.pending[0]
		s.pending[0] = nil
		s.pending = s.pending[1:]
		s.mu.Unlock()

		runCallback(cb)
	}
}

// runCallback isolates callback panics so one faulty callback cannot stop the queue.
func runCallback(cb func()) {
	defer func() { _ = recover() }()
	cb()
}

func (s *state) isComplete() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// result must only be read after done is closed.
func (s *state) result() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
