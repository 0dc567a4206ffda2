package repository

import (
	"context"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/models"
	"gorm.io/gorm"
)

// GormCommentRepository is a GORM implementation of CommentRepository
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

// Create appends a comment
func (r *GormCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return translate(r.db.WithContext(ctx).Create(comment).Error)
}

// ListByWorker lists comments about a worker newest first
func (r *GormCommentRepository) ListByWorker(ctx context.Context, workerEmail string) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := r.db.WithContext(ctx).
		Where("worker_email = ?", workerEmail).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

// GormReviewRepository is a GORM implementation of ReviewRepository
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &GormReviewRepository{db: db}
}

// List lists every review newest first
func (r *GormReviewRepository) List(ctx context.Context) ([]models.Review, error) {
	reviews := []models.Review{}
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}
