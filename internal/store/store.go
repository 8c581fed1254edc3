package store

import (
	"sync"

	"wallet-client/internal/model"
)

// Store holds the wallet state for one application session. Only the
// wallet service dispatches; everything else reads snapshots.
type Store struct {
	mu          sync.RWMutex
	state       State
	subscribers map[int]func(State)
	nextID      int
}

func New(initial State) *Store {
	if initial.Transactions == nil {
		initial.Transactions = []model.Transaction{}
	}
	initial.Pagination = initial.Pagination.Normalize()
	return &Store{
		state:       initial.clone(),
		subscribers: make(map[int]func(State)),
	}
}

// Dispatch applies a to the current state and notifies subscribers with
// the resulting snapshot.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	next := s.state.clone()
	subs := make([]func(State), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next.clone())
	}
	return next
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Subscribe registers fn to receive a snapshot after every dispatch. The
// returned function removes the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}
