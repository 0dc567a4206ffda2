package dto

import (
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/models"
)

// CreateSubmissionRequest is the body of POST /submissions. Task title, detail,
// payout and creator are looked up server-side.
type CreateSubmissionRequest struct {
	TaskID            string `json:"task_id" binding:"required"`
	SubmissionDetails string `json:"submission_details" binding:"required"`
	Link              string `json:"link"`
}

// UpdateSubmissionRequest carries either a review decision or a new link
type UpdateSubmissionRequest struct {
	Status *models.SubmissionStatus `json:"status"`
	Link   *string                  `json:"link"`
}

// ExistsResponse is the body of GET /submissions/exists
type ExistsResponse struct {
	Exists bool `json:"exists"`
}
