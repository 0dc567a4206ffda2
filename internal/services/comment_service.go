package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/models"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/repository"
)

// CommentService handles comments about workers and the review listing
type CommentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

// AddComment appends a comment about a worker, signed by actor.
func (s *CommentService) AddComment(ctx context.Context, actor *models.User, workerEmail, text string) (*models.Comment, error) {
	workerEmail = strings.TrimSpace(workerEmail)
	text = strings.TrimSpace(text)
	if workerEmail == "" || text == "" {
		return nil, fmt.Errorf("%w: worker_email and comment are required", ErrValidation)
	}

	comment := &models.Comment{
		WorkerEmail:    workerEmail,
		CommenterName:  actor.Name,
		CommenterPhoto: actor.PhotoURL,
		Comment:        text,
		CreatedAt:      time.Now(),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// ListComments returns the comments about a worker, newest first.
func (s *CommentService) ListComments(ctx context.Context, workerEmail string) ([]models.Comment, error) {
	comments, err := s.commentRepo.ListByWorker(ctx, workerEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// ListReviews returns every review, newest first.
func (s *CommentService) ListReviews(ctx context.Context) ([]models.Review, error) {
	reviews, err := s.reviewRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}
