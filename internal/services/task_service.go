package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/constants"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/models"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/repository"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/utils"
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo  repository.TaskRepository
	aiService *AIService
}

// NewTaskService creates a new TaskService. aiService may be nil.
func NewTaskService(taskRepo repository.TaskRepository, aiService *AIService) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		aiService: aiService,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title          string
	Detail         string
	Quantity       int64
	PayableAmount  int64
	CompletionDate string
	ImageURL       string
}

// UpdateTaskInput represents input for updating a task; nil fields are kept.
type UpdateTaskInput struct {
	Title          *string
	Detail         *string
	CompletionDate *string
	ImageURL       *string
}

// ListTasks returns every task newest first
func (s *TaskService) ListTasks(ctx context.Context, pagination utils.PaginationParams) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.List(ctx, repository.TaskFilter{Pagination: pagination})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// GetTask returns a task by id
func (s *TaskService) GetTask(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTask posts a task on behalf of actor
func (s *TaskService) CreateTask(ctx context.Context, actor *models.User, input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if input.Quantity <= 0 || input.PayableAmount <= 0 {
		return nil, fmt.Errorf("%w: quantity and payable_amount must be positive", ErrValidation)
	}
	if input.Quantity > constants.MaxTaskQuantity {
		return nil, fmt.Errorf("%w: quantity must be at most %d", ErrValidation, constants.MaxTaskQuantity)
	}
	if input.PayableAmount > constants.MaxPayableAmount {
		return nil, fmt.Errorf("%w: payable_amount must be at most %d", ErrValidation, constants.MaxPayableAmount)
	}

	task := &models.Task{
		Title:          title,
		Detail:         input.Detail,
		Quantity:       input.Quantity,
		PayableAmount:  input.PayableAmount,
		CompletionDate: input.CompletionDate,
		ImageURL:       input.ImageURL,
		CreatorEmail:   actor.Email,
		CreatorName:    actor.Name,
	}
	if _, ok := task.Refund(); !ok {
		return nil, fmt.Errorf("%w: quantity times payable_amount is out of range", ErrValidation)
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// ListTasksByCreator returns the tasks posted by email. Only that creator and
// admins may list them.
func (s *TaskService) ListTasksByCreator(ctx context.Context, actor *models.User, email string, pagination utils.PaginationParams) ([]models.Task, int64, error) {
	if actor.Role != models.RoleAdmin && actor.Email != email {
		return nil, 0, ErrForbidden
	}

	tasks, total, err := s.taskRepo.List(ctx, repository.TaskFilter{CreatorEmail: email, Pagination: pagination})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// UpdateTask edits the title, detail, completion date and image of a task
func (s *TaskService) UpdateTask(ctx context.Context, actor *models.User, id string, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, task) {
		return nil, ErrForbidden
	}

	if input.Title == nil && input.Detail == nil && input.CompletionDate == nil && input.ImageURL == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrValidation)
	}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
		}
		input.Title = &title
	}

	updated, err := s.taskRepo.Update(ctx, id, repository.TaskUpdate{
		Title:          input.Title,
		Detail:         input.Detail,
		CompletionDate: input.CompletionDate,
		ImageURL:       input.ImageURL,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return updated, nil
}

// DeleteTask removes a task and refunds quantity x payable_amount coins to its
// creator. A task that is already gone is ErrTaskNotFound and refunds nothing.
func (s *TaskService) DeleteTask(ctx context.Context, actor *models.User, id string) (*models.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, task) {
		return nil, ErrForbidden
	}

	deleted, err := s.taskRepo.DeleteWithRefund(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}
	return deleted, nil
}

// DraftTask asks the AI service for a listing suggestion
func (s *TaskService) DraftTask(ctx context.Context, brief string) (*TaskDraft, error) {
	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}

	brief = strings.TrimSpace(brief)
	if brief == "" {
		return nil, fmt.Errorf("%w: brief is required", ErrValidation)
	}
	if utf8.RuneCountInString(brief) > constants.MaxDraftBriefLength {
		return nil, fmt.Errorf("%w: brief must be at most %d characters", ErrValidation, constants.MaxDraftBriefLength)
	}

	return s.aiService.DraftTask(ctx, brief)
}

func canManage(actor *models.User, task *models.Task) bool {
	return actor.Role == models.RoleAdmin || actor.Email == task.CreatorEmail
}
