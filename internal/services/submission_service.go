package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/models"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/repository"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/utils"
)

// SubmissionService handles the submit/review workflow
type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
	taskRepo       repository.TaskRepository
}

// NewSubmissionService creates a new SubmissionService
func NewSubmissionService(submissionRepo repository.SubmissionRepository, taskRepo repository.TaskRepository) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		taskRepo:       taskRepo,
	}
}

// CreateSubmissionInput is what a worker sends for a task
type CreateSubmissionInput struct {
	TaskID            string
	SubmissionDetails string
	Link              string
}

// ListSubmissionsInput represents filters for listing submissions
type ListSubmissionsInput struct {
	WorkerEmail  string
	CreatorEmail string
	Status       *models.SubmissionStatus
	Pagination   utils.PaginationParams
}

// UpdateSubmissionInput carries either a review decision or a new link
type UpdateSubmissionInput struct {
	Status *models.SubmissionStatus
	Link   *string
}

// CreateSubmission records the actor's work on a task. Task fields are copied
// from the stored task, not from the client.
func (s *SubmissionService) CreateSubmission(ctx context.Context, actor *models.User, input CreateSubmissionInput) (*models.Submission, error) {
	if strings.TrimSpace(input.TaskID) == "" {
		return nil, fmt.Errorf("%w: task_id is required", ErrValidation)
	}

	task, err := s.taskRepo.FindByID(ctx, input.TaskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	if task.CreatorEmail == actor.Email {
		return nil, ErrOwnTask
	}

	submission := &models.Submission{
		TaskID:            task.ID,
		TaskTitle:         task.Title,
		TaskDetail:        task.Detail,
		PayableAmount:     task.PayableAmount,
		WorkerEmail:       actor.Email,
		WorkerName:        actor.Name,
		CreatorEmail:      task.CreatorEmail,
		CreatorName:       task.CreatorName,
		SubmissionDetails: input.SubmissionDetails,
		Link:              input.Link,
		Status:            models.SubmissionPending,
	}
	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrAlreadySubmitted
		}
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}
	return submission, nil
}

// Exists reports whether workerEmail already submitted for taskID
func (s *SubmissionService) Exists(ctx context.Context, taskID, workerEmail string) (bool, error) {
	if taskID == "" || workerEmail == "" {
		return false, fmt.Errorf("%w: task_id and worker_email are required", ErrValidation)
	}

	exists, err := s.submissionRepo.Exists(ctx, taskID, workerEmail)
	if err != nil {
		return false, fmt.Errorf("failed to check submission: %w", err)
	}
	return exists, nil
}

// ListSubmissions lists submissions matching the filters. Non-admin callers
// only see submissions they made or received.
func (s *SubmissionService) ListSubmissions(ctx context.Context, actor *models.User, input ListSubmissionsInput) ([]models.Submission, int64, error) {
	filter := repository.SubmissionFilter{
		WorkerEmail:  input.WorkerEmail,
		CreatorEmail: input.CreatorEmail,
		Status:       input.Status,
		Pagination:   input.Pagination,
	}
	if actor.Role != models.RoleAdmin {
		filter.Participant = actor.Email
	}

	submissions, total, err := s.submissionRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, total, nil
}

// ListApproved lists a worker's approved submissions; workerEmail defaults to
// the caller.
func (s *SubmissionService) ListApproved(ctx context.Context, actor *models.User, workerEmail string, pagination utils.PaginationParams) ([]models.Submission, int64, error) {
	if workerEmail == "" {
		workerEmail = actor.Email
	}
	approved := models.SubmissionApproved
	return s.ListSubmissions(ctx, actor, ListSubmissionsInput{
		WorkerEmail: workerEmail,
		Status:      &approved,
		Pagination:  pagination,
	})
}

// UpdateSubmission applies a review decision or a link edit.
//
// A decision moves a pending submission to approved or rejected and may only
// be made by the task creator or an admin. Approval credits the worker the
// payable amount in the same write; a second decision is ErrInvalidTransition.
// A link edit is made by the submitting worker while the submission is pending.
func (s *SubmissionService) UpdateSubmission(ctx context.Context, actor *models.User, id string, input UpdateSubmissionInput) (*models.Submission, error) {
	if (input.Status == nil) == (input.Link == nil) {
		return nil, fmt.Errorf("%w: send either status or link", ErrValidation)
	}

	submission, err := s.submissionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to find submission: %w", err)
	}

	isAdmin := actor.Role == models.RoleAdmin
	if input.Status != nil {
		if !input.Status.Terminal() {
			return nil, fmt.Errorf("%w: status must be approved or rejected", ErrValidation)
		}
		if !isAdmin && actor.Email != submission.CreatorEmail {
			return nil, ErrForbidden
		}
		updated, err := s.submissionRepo.Transition(ctx, id, *input.Status)
		return updated, s.translateUpdate(err)
	}

	if !isAdmin && actor.Email != submission.WorkerEmail {
		return nil, ErrForbidden
	}
	updated, err := s.submissionRepo.UpdateLink(ctx, id, *input.Link)
	return updated, s.translateUpdate(err)
}

func (s *SubmissionService) translateUpdate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrSubmissionNotFound
	case errors.Is(err, repository.ErrPreconditionFailed):
		return ErrInvalidTransition
	case errors.Is(err, repository.ErrAccountNotFound):
		return ErrUserNotFound
	}
	return fmt.Errorf("failed to update submission: %w", err)
}
