package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/database"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return translate(r.db.WithContext(ctx).Create(task).Error)
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, translate(err)
	}
	return &task, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Task{})
	if filter.CreatorEmail != "" {
		query = query.Where("creator_email = ?", filter.CreatorEmail)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	tasks := []models.Task{}
	if err := query.Order("created_at DESC").
		Scopes(database.Paginate(filter.Pagination)).
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// Update applies the non-nil fields of update
func (r *GormTaskRepository) Update(ctx context.Context, id string, update TaskUpdate) (*models.Task, error) {
	fields := map[string]interface{}{}
	if update.Title != nil {
		fields["title"] = *update.Title
	}
	if update.Detail != nil {
		fields["detail"] = *update.Detail
	}
	if update.CompletionDate != nil {
		fields["completion_date"] = *update.CompletionDate
	}
	if update.ImageURL != nil {
		fields["image_url"] = *update.ImageURL
	}

	if len(fields) > 0 {
		res := r.db.WithContext(ctx).Model(&models.Task{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}

	return r.FindByID(ctx, id)
}

// DeleteWithRefund deletes the task and refunds its creator in one transaction
func (r *GormTaskRepository) DeleteWithRefund(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&task).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&models.Task{})
		if res.Error != nil {
			return res.Error
		}
		// A concurrent delete already removed the row and issued the refund.
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		refund, ok := task.Refund()
		if !ok {
			return fmt.Errorf("%w: task %s", ErrInvalidRefund, task.ID)
		}
		if refund > 0 {
			if err := credit(tx, task.CreatorEmail, refund); err != nil && !errors.Is(err, ErrAccountNotFound) {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return &task, nil
}
