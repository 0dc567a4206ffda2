package handlers

import (
	"net/http"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/dto"
	apierrors "github.com/Ancishan/micro-task-earnning-pf-server/internal/errors"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/models"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/services"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/utils"
	"github.com/gin-gonic/gin"
)

// SubmissionHandler serves the submission workflow.
type SubmissionHandler struct {
	submissionService *services.SubmissionService
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(submissionService *services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
	}
}

// CreateSubmission records the caller's work on a task.
func (h *SubmissionHandler) CreateSubmission(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	submission, err := h.submissionService.CreateSubmission(c.Request.Context(), actor, services.CreateSubmissionInput{
		TaskID:            req.TaskID,
		SubmissionDetails: req.SubmissionDetails,
		Link:              req.Link,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, submission)
}

// Exists answers whether ?worker_email= already submitted for ?task_id=.
func (h *SubmissionHandler) Exists(c *gin.Context) {
	exists, err := h.submissionService.Exists(c.Request.Context(), c.Query("task_id"), c.Query("worker_email"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ExistsResponse{Exists: exists})
}

// ListSubmissions lists submissions filtered by worker, creator and status.
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	input := services.ListSubmissionsInput{
		WorkerEmail:  c.Query("worker_email"),
		CreatorEmail: c.Query("creator_email"),
		Pagination:   utils.GetPaginationParams(c),
	}
	if s := c.Query("status"); s != "" {
		status := models.SubmissionStatus(s)
		input.Status = &status
	}

	submissions, total, err := h.submissionService.ListSubmissions(c.Request.Context(), actor, input)
	if err != nil {
		respondError(c, err)
		return
	}

	setTotalCount(c, total)
	c.JSON(http.StatusOK, submissions)
}

// ListApproved lists the approved submissions of ?worker_email=, or of the caller.
func (h *SubmissionHandler) ListApproved(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	submissions, total, err := h.submissionService.ListApproved(c.Request.Context(), actor, c.Query("worker_email"), utils.GetPaginationParams(c))
	if err != nil {
		respondError(c, err)
		return
	}

	setTotalCount(c, total)
	c.JSON(http.StatusOK, submissions)
}

// UpdateSubmission approves, rejects, or edits the link of a submission.
func (h *SubmissionHandler) UpdateSubmission(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	submission, err := h.submissionService.UpdateSubmission(c.Request.Context(), actor, c.Param("id"), services.UpdateSubmissionInput{
		Status: req.Status,
		Link:   req.Link,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, submission)
}
