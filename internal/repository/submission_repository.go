package repository

import (
	"context"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/database"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/models"
	"gorm.io/gorm"
)

// GormSubmissionRepository is a GORM implementation of SubmissionRepository
type GormSubmissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a new SubmissionRepository
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &GormSubmissionRepository{db: db}
}

// Create stores a submission unless the worker already submitted for the task
func (r *GormSubmissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Submission{}).
			Where("task_id = ? AND worker_email = ?", submission.TaskID, submission.WorkerEmail).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrConflict
		}

		if submission.Status == "" {
			submission.Status = models.SubmissionPending
		}
		return tx.Create(submission).Error
	})
	return translate(err)
}

// FindByID finds a submission by ID
func (r *GormSubmissionRepository) FindByID(ctx context.Context, id string) (*models.Submission, error) {
	var submission models.Submission
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&submission).Error; err != nil {
		return nil, translate(err)
	}
	return &submission, nil
}

// Exists reports whether the worker already submitted for the task
func (r *GormSubmissionRepository) Exists(ctx context.Context, taskID, workerEmail string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Submission{}).
		Where("task_id = ? AND worker_email = ?", taskID, workerEmail).
		Count(&count).Error
	return count > 0, err
}

// List retrieves submissions with filtering and pagination
func (r *GormSubmissionRepository) List(ctx context.Context, filter SubmissionFilter) ([]models.Submission, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Submission{})
	if filter.WorkerEmail != "" {
		query = query.Where("worker_email = ?", filter.WorkerEmail)
	}
	if filter.CreatorEmail != "" {
		query = query.Where("creator_email = ?", filter.CreatorEmail)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Participant != "" {
		query = query.Where("(worker_email = ? OR creator_email = ?)", filter.Participant, filter.Participant)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	submissions := []models.Submission{}
	if err := query.Order("submitted_at DESC").
		Scopes(database.Paginate(filter.Pagination)).
		Find(&submissions).Error; err != nil {
		return nil, 0, err
	}
	return submissions, total, nil
}

// Transition moves a pending submission to status, crediting the worker on approval
func (r *GormSubmissionRepository) Transition(ctx context.Context, id string, status models.SubmissionStatus) (*models.Submission, error) {
	var submission models.Submission
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Submission{}).
			Where("id = ? AND status = ?", id, models.SubmissionPending).
			Update("status", status)
		if res.Error != nil {
			return res.Error
		}

		if err := tx.Where("id = ?", id).First(&submission).Error; err != nil {
			return err
		}
		if res.RowsAffected == 0 {
			return ErrPreconditionFailed
		}

		if status != models.SubmissionApproved || submission.PayableAmount <= 0 {
			return nil
		}
		return credit(tx, submission.WorkerEmail, submission.PayableAmount)
	})
	if err != nil {
		return nil, translate(err)
	}
	return &submission, nil
}

// UpdateLink replaces the link of a pending submission
func (r *GormSubmissionRepository) UpdateLink(ctx context.Context, id, link string) (*models.Submission, error) {
	res := r.db.WithContext(ctx).Model(&models.Submission{}).
		Where("id = ? AND status = ?", id, models.SubmissionPending).
		Update("link", link)
	if res.Error != nil {
		return nil, res.Error
	}

	submission, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected == 0 {
		return nil, ErrPreconditionFailed
	}
	return submission, nil
}
