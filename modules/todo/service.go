package todo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	domain "github.com/fajshah/faj-todo-phase2/domain/task"
	"github.com/fajshah/faj-todo-phase2/pkg/validate"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// ErrInvalidID is returned when a task identifier is not a well-formed ID.
// A malformed identifier is a bad request, not a missing task.
var ErrInvalidID = errors.New("invalid task id")

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// Service implements the owner-scoped task operations.
// All reads go through the optional cache; every mutation invalidates the
// owner's cached entries. A singleflight group collapses concurrent reads
// for the same key on a cache miss.
type Service struct {
	repo    *Repository
	cache   *Cache
	sfGroup singleflight.Group
}

// NewService creates a new task service. cache may be nil to disable caching.
func NewService(repo *Repository, cache *Cache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

// List returns a page of the user's tasks, newest first.
// Out-of-range page and limit values are clamped to sane defaults.
func (s *Service) List(ctx context.Context, userID string, filter ListFilter, page, limit int) (*ListTasksResponse, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if filter.Status != "" && !domain.ValidStatus(filter.Status) {
		return nil, validate.ErrInvalidStatus
	}
	if filter.Priority != "" && !domain.ValidPriority(filter.Priority) {
		return nil, validate.ErrInvalidPriority
	}

	key := listKey(userID, filter, page, limit)
	var cached ListTasksResponse
	if found := s.cacheGet(ctx, key, &cached); found {
		return &cached, nil
	}

	val, err, _ := s.sfGroup.Do(key, func() (any, error) {
		tasks, total, err := s.repo.List(ctx, userID, filter, (page-1)*limit, limit)
		if err != nil {
			return nil, err
		}
		if tasks == nil {
			tasks = []domain.Task{}
		}
		return &ListTasksResponse{
			Todos:       tasks,
			Total:       total,
			TotalPages:  totalPages(total, limit),
			CurrentPage: page,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	resp := val.(*ListTasksResponse)
	s.cacheSet(ctx, key, resp)
	return resp, nil
}

// GetByID returns the user's task with the given ID.
func (s *Service) GetByID(ctx context.Context, userID, id string) (*domain.Task, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	key := taskKey(userID, id)
	var cached domain.Task
	if found := s.cacheGet(ctx, key, &cached); found {
		return &cached, nil
	}

	val, err, _ := s.sfGroup.Do(key, func() (any, error) {
		return s.repo.FindByID(ctx, userID, id)
	})
	if err != nil {
		return nil, err
	}

	t := val.(*domain.Task)
	s.cacheSet(ctx, key, t)
	return t, nil
}

// Create validates the fields, applies defaults and stores a new task.
func (s *Service) Create(ctx context.Context, userID, title, description string, status domain.Status, priority domain.Priority) (*domain.Task, error) {
	if err := validate.TaskCreate(title, description, status, priority); err != nil {
		return nil, err
	}

	if status == "" {
		status = domain.StatusPending
	}
	if priority == "" {
		priority = domain.PriorityMedium
	}

	now := time.Now()
	t := &domain.Task{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       strings.TrimSpace(title),
		Description: description,
		Status:      status,
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID)
	return t, nil
}

// Update applies the provided fields to the user's task and refreshes its
// update timestamp. Fields left nil are unchanged.
func (s *Service) Update(ctx context.Context, req UpdateTaskRequest) (*domain.Task, error) {
	if err := checkID(req.ID); err != nil {
		return nil, err
	}
	if err := validate.TaskUpdate(req.Title, req.Description, req.Status, req.Priority); err != nil {
		return nil, err
	}

	t, err := s.repo.FindByID(ctx, req.UserID, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		t.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Status != nil {
		t.Status = *req.Status
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	t.UpdatedAt = time.Now()

	if err := s.repo.Save(ctx, t); err != nil {
		return nil, err
	}

	s.invalidate(ctx, req.UserID)
	return t, nil
}

// Delete removes the user's task. Deleting a missing task fails with
// ErrNotFound and changes nothing.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := checkID(id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	s.invalidate(ctx, userID)
	return nil
}

// ToggleCompletion flips the task's completion: a completed task returns to
// pending, anything else becomes completed.
func (s *Service) ToggleCompletion(ctx context.Context, userID, id string) (*domain.Task, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	t, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if t.Completed() {
		t.Status = domain.StatusPending
	} else {
		t.Status = domain.StatusCompleted
	}
	t.UpdatedAt = time.Now()

	if err := s.repo.Save(ctx, t); err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID)
	return t, nil
}

// cacheGet reads a cached value, treating cache errors as misses.
func (s *Service) cacheGet(ctx context.Context, key string, dest any) bool {
	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		log.Printf("[todo] cache read error for %s: %v", key, err)
		return false
	}
	return found
}

func (s *Service) cacheSet(ctx context.Context, key string, value any) {
	if err := s.cache.Set(ctx, key, value); err != nil {
		log.Printf("[todo] cache write error for %s: %v", key, err)
	}
}

func (s *Service) invalidate(ctx context.Context, userID string) {
	if err := s.cache.InvalidateUser(ctx, userID); err != nil {
		log.Printf("[todo] cache invalidation error for user %s: %v", userID, err)
	}
}

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

func totalPages(total int64, limit int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
