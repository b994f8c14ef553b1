package todo

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/fajshah/faj-todo-phase2/domain/task"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a task does not exist for the given owner.
// Tasks owned by another user are reported identically, so a caller can
// never learn whether a foreign task exists.
var ErrNotFound = errors.New("task not found")

// ListFilter narrows a task listing. Empty fields match everything.
type ListFilter struct {
	Status   domain.Status
	Priority domain.Priority
}

// Repository provides owner-scoped access to task storage.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new task repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create saves a new task.
func (r *Repository) Create(ctx context.Context, t *domain.Task) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindByID retrieves a task owned by userID.
func (r *Repository) FindByID(ctx context.Context, userID, id string) (*domain.Task, error) {
	var t domain.Task
	err := r.db.WithContext(ctx).First(&t, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &t, nil
}

// List retrieves a page of tasks owned by userID, newest first, along with
// the total count matching the filter.
func (r *Repository) List(ctx context.Context, userID string, filter ListFilter, offset, limit int) ([]domain.Task, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Task{}).Where("user_id = ?", userID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	var tasks []domain.Task
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&tasks).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// Save persists changes to an existing task, refreshing its update timestamp.
func (r *Repository) Save(ctx context.Context, t *domain.Task) error {
	if err := r.db.WithContext(ctx).Save(t).Error; err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

// Delete removes a task owned by userID. Deleting a missing or foreign task
// returns ErrNotFound.
func (r *Repository) Delete(ctx context.Context, userID, id string) error {
	result := r.db.WithContext(ctx).Delete(&domain.Task{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
