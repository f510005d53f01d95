package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskforge/contexts/work-tracking/task-service/domain/entities"
)

// Store is an in-memory task and comment repository for tests and local
// development wiring.
type Store struct {
	mu       sync.RWMutex
	tasks    map[string]entities.Task
	comments map[string]entities.Comment
}

func NewStore() *Store {
	return &Store{
		tasks:    make(map[string]entities.Task),
		comments: make(map[string]entities.Comment),
	}
}

func (s *Store) CreateTask(_ context.Context, task entities.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks[task.ID] = task
	return nil
}

func (s *Store) FindTaskByID(_ context.Context, id string) (entities.Task, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	return task, ok, nil
}

func (s *Store) ListTasksByProject(_ context.Context, projectID string) ([]entities.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.Task, 0)
	for _, task := range s.tasks {
		if task.ProjectID == projectID {
			out = append(out, task)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) SaveTask(_ context.Context, task entities.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks[task.ID] = task
	return nil
}

func (s *Store) DeleteTask(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tasks, id)
	for commentID, comment := range s.comments {
		if comment.TaskID == id {
			delete(s.comments, commentID)
		}
	}
	return nil
}

func (s *Store) CreateComment(_ context.Context, comment entities.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.comments[comment.ID] = comment
	return nil
}

func (s *Store) FindCommentByID(_ context.Context, id string) (entities.Comment, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comment, ok := s.comments[id]
	return comment, ok, nil
}

func (s *Store) ListCommentsByTask(_ context.Context, taskID string) ([]entities.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.Comment, 0)
	for _, comment := range s.comments {
		if comment.TaskID == taskID {
			out = append(out, comment)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) SaveComment(_ context.Context, comment entities.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.comments[comment.ID] = comment
	return nil
}

func (s *Store) DeleteComment(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.comments, id)
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
