package repository

import (
	"context"
	"errors"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/models"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/utils"
)

var (
	// ErrNotFound is returned when the addressed record does not exist.
	ErrNotFound = errors.New("repository: record not found")
	// ErrConflict is returned when a uniqueness constraint would be violated.
	ErrConflict = errors.New("repository: record already exists")
	// ErrPreconditionFailed is returned when a conditional update finds the record
	// in a state other than the one required.
	ErrPreconditionFailed = errors.New("repository: precondition failed")
	// ErrInsufficientCoins is returned when a debit would make a balance negative.
	ErrInsufficientCoins = errors.New("repository: insufficient coins")
	// ErrAccountNotFound is returned when a coin credit targets a missing user.
	ErrAccountNotFound = errors.New("repository: account to credit not found")
	// ErrInvalidRefund is returned when a stored task holds an unrepresentable refund.
	ErrInvalidRefund = errors.New("repository: task refund out of range")
)

// Repositories bundles the data access for every collection.
type Repositories struct {
	Users       UserRepository
	Tasks       TaskRepository
	Submissions SubmissionRepository
	Payments    PaymentRepository
	Comments    CommentRepository
	Reviews     ReviewRepository
}

// UserFilter holds filtering options for listing users
type UserFilter struct {
	Role       *models.Role
	Pagination utils.PaginationParams
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Upsert creates the user or overwrites name, photo, role and skill of the
	// existing user with the same email. The stored record is written back into user.
	Upsert(ctx context.Context, user *models.User) (created bool, err error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id string) (*models.User, error)

	// List retrieves users with filtering and pagination
	List(ctx context.Context, filter UserFilter) ([]models.User, int64, error)

	// Delete removes a user
	Delete(ctx context.Context, id string) error

	// AdjustCoins adds delta to the balance in one conditional write. A negative
	// delta fails with ErrInsufficientCoins rather than going below zero.
	AdjustCoins(ctx context.Context, email string, delta int64) (*models.User, error)

	// SetComment replaces the free-text comment field
	SetComment(ctx context.Context, email, comment string) error

	// SetRole replaces the user's role
	SetRole(ctx context.Context, email string, role models.Role) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	CreatorEmail string
	Pagination   utils.PaginationParams
}

// TaskUpdate lists the editable task fields; nil fields are left untouched.
type TaskUpdate struct {
	Title          *string
	Detail         *string
	CompletionDate *string
	ImageURL       *string
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id string) (*models.Task, error)

	// List retrieves tasks newest first with filtering and pagination
	List(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error)

	// Update applies the non-nil fields and returns the stored task
	Update(ctx context.Context, id string, update TaskUpdate) (*models.Task, error)

	// DeleteWithRefund deletes the task and credits Refund() coins to its creator
	// atomically. Only the call that actually removes the row credits.
	DeleteWithRefund(ctx context.Context, id string) (*models.Task, error)
}

// SubmissionFilter holds filtering options for listing submissions
type SubmissionFilter struct {
	WorkerEmail  string
	CreatorEmail string
	Status       *models.SubmissionStatus
	// Participant restricts results to submissions where the email is the worker
	// or the task creator.
	Participant string
	Pagination  utils.PaginationParams
}

// SubmissionRepository defines the interface for submission data access
type SubmissionRepository interface {
	// Create stores a submission; a second one for the same (task, worker) pair
	// fails with ErrConflict.
	Create(ctx context.Context, submission *models.Submission) error

	// FindByID finds a submission by ID
	FindByID(ctx context.Context, id string) (*models.Submission, error)

	// Exists reports whether the worker already submitted for the task
	Exists(ctx context.Context, taskID, workerEmail string) (bool, error)

	// List retrieves submissions newest first with filtering and pagination
	List(ctx context.Context, filter SubmissionFilter) ([]models.Submission, int64, error)

	// Transition moves a pending submission to status. Moving to approved credits
	// the worker PayableAmount in the same transaction. A non-pending submission
	// fails with ErrPreconditionFailed.
	Transition(ctx context.Context, id string, status models.SubmissionStatus) (*models.Submission, error)

	// UpdateLink replaces the link of a pending submission
	UpdateLink(ctx context.Context, id, link string) (*models.Submission, error)
}

// PaymentRepository defines the interface for payment data access
type PaymentRepository interface {
	// Create stores a payment row
	Create(ctx context.Context, payment *models.Payment) error

	// FindByTransactionID finds a payment by its gateway transaction id
	FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)

	// ListByPayer lists a payer's payments newest first
	ListByPayer(ctx context.Context, email string, pagination utils.PaginationParams) ([]models.Payment, int64, error)

	// Complete moves a pending payment to status. Success credits Coins to the
	// payer in the same transaction. A non-pending payment fails with
	// ErrPreconditionFailed.
	Complete(ctx context.Context, transactionID string, status models.PaymentStatus, gatewayRef string) (*models.Payment, error)
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create appends a comment
	Create(ctx context.Context, comment *models.Comment) error

	// ListByWorker lists comments about a worker newest first
	ListByWorker(ctx context.Context, workerEmail string) ([]models.Comment, error)
}

// ReviewRepository defines the interface for review data access
type ReviewRepository interface {
	// List lists every review newest first
	List(ctx context.Context) ([]models.Review, error)
}
