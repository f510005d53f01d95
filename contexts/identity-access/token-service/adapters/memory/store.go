package memory

import (
	"context"
	"sync"
	"time"

	"taskforge/contexts/identity-access/token-service/domain/entities"
)

// Store is an in-memory refresh token repository for tests and local
// development wiring.
type Store struct {
	mu     sync.RWMutex
	tokens map[string]entities.RefreshToken
}

func NewStore() *Store {
	return &Store{
		tokens: make(map[string]entities.RefreshToken),
	}
}

func (s *Store) Replace(_ context.Context, fresh entities.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, row := range s.tokens {
		if row.UserID == fresh.UserID {
			delete(s.tokens, token)
		}
	}
	s.tokens[fresh.Token] = fresh
	return nil
}

func (s *Store) Rotate(_ context.Context, oldToken string, fresh entities.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, oldToken)
	s.tokens[fresh.Token] = fresh
	return nil
}

func (s *Store) FindByToken(_ context.Context, token string) (entities.RefreshToken, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.tokens[token]
	return row, ok, nil
}

func (s *Store) DeleteByToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, token)
	return nil
}

func (s *Store) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var purged int64
	for token, row := range s.tokens {
		if !row.ExpiresAt.After(now) {
			delete(s.tokens, token)
			purged++
		}
	}
	return purged, nil
}

// LiveTokenCount reports live rows for a user. Test helper.
func (s *Store) LiveTokenCount(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, row := range s.tokens {
		if row.UserID == userID {
			count++
		}
	}
	return count
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}
