package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskforge/contexts/engagement/notification-service/domain/entities"
)

var errWriteFailure = errors.New("simulated storage failure")

// Store is an in-memory notification repository for tests and local
// development wiring.
type Store struct {
	mu            sync.RWMutex
	notifications map[string]entities.Notification
	failWrites    bool
}

func NewStore() *Store {
	return &Store{
		notifications: make(map[string]entities.Notification),
	}
}

func (s *Store) CreateNotification(_ context.Context, notification entities.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWrites {
		return errWriteFailure
	}
	s.notifications[notification.ID] = notification
	return nil
}

func (s *Store) FindNotificationByID(_ context.Context, id string) (entities.Notification, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notification, ok := s.notifications[id]
	return notification, ok, nil
}

func (s *Store) ListNotificationsByUser(_ context.Context, userID string) ([]entities.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.Notification, 0)
	for _, notification := range s.notifications {
		if notification.UserID == userID {
			out = append(out, notification)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) SaveNotification(_ context.Context, notification entities.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications[notification.ID] = notification
	return nil
}

// FailWrites makes subsequent creates fail. Test helper for the best-effort
// emission contract.
func (s *Store) FailWrites(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failWrites = fail
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
