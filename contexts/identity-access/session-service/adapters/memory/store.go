package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskforge/contexts/identity-access/session-service/domain/entities"
	"taskforge/internal/shared/access"
)

// Store is an in-memory user and organization repository for tests and local
// development wiring.
type Store struct {
	mu    sync.RWMutex
	users map[string]entities.User
	orgs  map[string]access.OrganizationRecord
}

func NewStore() *Store {
	return &Store{
		users: make(map[string]entities.User),
		orgs:  make(map[string]access.OrganizationRecord),
	}
}

func (s *Store) CreateUser(_ context.Context, user entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[user.ID] = user
	return nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (entities.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			return user, true, nil
		}
	}
	return entities.User{}, false, nil
}

func (s *Store) FindUserByID(_ context.Context, id string) (entities.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	return user, ok, nil
}

func (s *Store) CreateOrganization(_ context.Context, org access.OrganizationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orgs[org.ID] = org
	return nil
}

func (s *Store) FindOrganizationByID(_ context.Context, id string) (access.OrganizationRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	org, ok := s.orgs[id]
	return org, ok, nil
}

// ListOrganizations returns every tenant row. Serves the workspace module's
// organization catalog port.
func (s *Store) ListOrganizations(_ context.Context) ([]access.OrganizationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]access.OrganizationRecord, 0, len(s.orgs))
	for _, org := range s.orgs {
		out = append(out, org)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// LookupUser exposes the account as a shared-kernel record so other modules
// can depend on this store through their own directory ports.
func (s *Store) LookupUser(_ context.Context, id string) (access.UserRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return access.UserRecord{}, false, nil
	}
	return access.UserRecord{
		ID:             user.ID,
		Email:          user.Email,
		FullName:       user.FullName,
		Role:           user.Role,
		OrganizationID: user.OrganizationID,
		Active:         user.Active,
	}, true, nil
}

// SetActive flips the active flag directly. Test helper.
func (s *Store) SetActive(id string, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.users[id]; ok {
		user.Active = active
		s.users[id] = user
	}
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
