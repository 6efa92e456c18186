package memory

import (
	"context"
	"sync"

	"ledgerd/internal/ledger/models"
	"ledgerd/pkg/platform/sentinel"
)

// Store keeps ledger state in process memory. State does not survive a
// restart; it backs tests and single-process development runs.
type Store struct {
	mu     sync.RWMutex
	state  *models.Snapshot
	closed bool
}

func New() *Store {
	return &Store{state: models.NewSnapshot()}
}

// Load returns a copy of the stored state, or sentinel.ErrNotFound before the
// genesis commit.
func (s *Store) Load(_ context.Context) (*models.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, sentinel.ErrClosed
	}
	if s.state.Empty() {
		return nil, sentinel.ErrNotFound
	}
	return s.state.Clone(), nil
}

// Commit applies c to a copy and swaps it in, so a commit is all or nothing.
func (s *Store) Commit(ctx context.Context, c *models.Commit) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return sentinel.ErrClosed
	}
	next := s.state.Clone()
	next.Apply(c)
	s.state = next
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
