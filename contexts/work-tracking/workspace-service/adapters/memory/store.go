package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskforge/contexts/work-tracking/workspace-service/domain/entities"
	"taskforge/internal/shared/access"
)

type memberKey struct {
	projectID string
	userID    string
}

// Store is an in-memory project and membership repository for tests and
// local development wiring.
type Store struct {
	mu       sync.RWMutex
	projects map[string]entities.Project
	members  map[memberKey]entities.ProjectMember
}

func NewStore() *Store {
	return &Store{
		projects: make(map[string]entities.Project),
		members:  make(map[memberKey]entities.ProjectMember),
	}
}

func (s *Store) CreateProject(_ context.Context, project entities.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.projects[project.ID] = project
	return nil
}

func (s *Store) FindProjectByID(_ context.Context, id string) (entities.Project, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	project, ok := s.projects[id]
	return project, ok, nil
}

func (s *Store) ListProjectsByOrganization(_ context.Context, organizationID string) ([]entities.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.Project, 0)
	for _, project := range s.projects {
		if project.OrganizationID == organizationID {
			out = append(out, project)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) DeleteProject(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.projects, id)
	for key := range s.members {
		if key.projectID == id {
			delete(s.members, key)
		}
	}
	return nil
}

func (s *Store) AddMember(_ context.Context, member entities.ProjectMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := memberKey{projectID: member.ProjectID, userID: member.UserID}
	if _, exists := s.members[key]; exists {
		return nil
	}
	s.members[key] = member
	return nil
}

func (s *Store) RemoveMember(_ context.Context, projectID string, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := memberKey{projectID: projectID, userID: userID}
	if _, exists := s.members[key]; !exists {
		return false, nil
	}
	delete(s.members, key)
	return true, nil
}

func (s *Store) ListMembers(_ context.Context, projectID string) ([]entities.ProjectMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.ProjectMember, 0)
	for key, member := range s.members {
		if key.projectID == projectID {
			out = append(out, member)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AddedAt.Before(out[j].AddedAt) })
	return out, nil
}

func (s *Store) IsProjectMember(_ context.Context, projectID string, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.members[memberKey{projectID: projectID, userID: userID}]
	return ok, nil
}

// LookupProject exposes the project as a shared-kernel reference so other
// modules can depend on this store through their own directory ports.
func (s *Store) LookupProject(_ context.Context, projectID string) (access.ProjectRef, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	project, ok := s.projects[projectID]
	if !ok {
		return access.ProjectRef{}, false, nil
	}
	return access.ProjectRef{
		ID:             project.ID,
		OrganizationID: project.OrganizationID,
	}, true, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
