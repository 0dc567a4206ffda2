package handlers

import (
	"net/http"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/dto"
	apierrors "github.com/Ancishan/micro-task-earnning-pf-server/internal/errors"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/services"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/utils"
	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns every task, newest first
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, total, err := h.taskService.ListTasks(c.Request.Context(), utils.GetPaginationParams(c))
	if err != nil {
		respondError(c, err)
		return
	}

	setTotalCount(c, total)
	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.taskService.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// ListTasksByCreator returns the tasks posted by :createdBy
func (h *TaskHandler) ListTasksByCreator(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	tasks, total, err := h.taskService.ListTasksByCreator(c.Request.Context(), actor, c.Param("createdBy"), utils.GetPaginationParams(c))
	if err != nil {
		respondError(c, err)
		return
	}

	setTotalCount(c, total)
	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// CreateTask posts a new task for the caller
func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), actor, services.CreateTaskInput{
		Title:          req.Title,
		Detail:         req.Detail,
		Quantity:       req.Quantity,
		PayableAmount:  req.PayableAmount,
		CompletionDate: req.CompletionDate,
		ImageURL:       req.ImageURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask updates the editable fields of a task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), actor, c.Param("id"), services.UpdateTaskInput{
		Title:          req.Title,
		Detail:         req.Detail,
		CompletionDate: req.CompletionDate,
		ImageURL:       req.ImageURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task and refunds its remaining budget to the creator
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	task, err := h.taskService.DeleteTask(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	refunded, _ := task.Refund()
	c.JSON(http.StatusOK, dto.DeleteTaskResponse{
		DeletedCount: 1,
		Refunded:     refunded,
		Task:         dto.ToTaskDTO(*task),
	})
}

// DraftTask suggests a task listing from a free-text brief
func (h *TaskHandler) DraftTask(c *gin.Context) {
	var req dto.DraftTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	draft, err := h.taskService.DraftTask(c.Request.Context(), req.Brief)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, draft)
}
