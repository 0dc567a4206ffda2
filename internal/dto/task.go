package dto

import (
	"time"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/models"
)

// CreateTaskRequest is the body of POST /tasks. Creator fields come from the
// session, never from the body.
type CreateTaskRequest struct {
	Title          string `json:"title" binding:"required"`
	Detail         string `json:"detail"`
	Quantity       int64  `json:"quantity" binding:"required,gt=0,lte=100000"`
	PayableAmount  int64  `json:"payable_amount" binding:"required,gt=0,lte=1000000"`
	CompletionDate string `json:"completion_date"`
	ImageURL       string `json:"image_url"`
}

// UpdateTaskRequest is the body of PUT /tasks/:id; absent fields are kept.
type UpdateTaskRequest struct {
	Title          *string `json:"title"`
	Detail         *string `json:"detail"`
	CompletionDate *string `json:"completion_date"`
	ImageURL       *string `json:"image_url"`
}

// DraftTaskRequest asks the assistant for a task suggestion
type DraftTaskRequest struct {
	Brief string `json:"brief" binding:"required"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID             string    `json:"_id"`
	Title          string    `json:"title"`
	Detail         string    `json:"detail"`
	Quantity       int64     `json:"quantity"`
	PayableAmount  int64     `json:"payable_amount"`
	CompletionDate string    `json:"completion_date"`
	ImageURL       string    `json:"image_url"`
	CreatorEmail   string    `json:"creator_email"`
	CreatorName    string    `json:"creator_name"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DeleteTaskResponse reports the removed task and the coins returned to its creator
type DeleteTaskResponse struct {
	DeletedCount int     `json:"deletedCount"`
	Refunded     int64   `json:"refunded"`
	Task         TaskDTO `json:"task"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:             task.ID,
		Title:          task.Title,
		Detail:         task.Detail,
		Quantity:       task.Quantity,
		PayableAmount:  task.PayableAmount,
		CompletionDate: task.CompletionDate,
		ImageURL:       task.ImageURL,
		CreatorEmail:   task.CreatorEmail,
		CreatorName:    task.CreatorName,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}
