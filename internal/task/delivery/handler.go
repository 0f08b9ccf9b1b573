package delivery

import (
	"log/slog"
	"net/http"

	authdelivery "taskmanager-backend/internal/auth/delivery"
	"taskmanager-backend/internal/task/dto"
	"taskmanager-backend/internal/task/usecase"
	"taskmanager-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskUsecase usecase.TaskUsecase
	log         *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskUsecase usecase.TaskUsecase, log *slog.Logger) *TaskHandler {
	return &TaskHandler{
		taskUsecase: taskUsecase,
		log:         log,
	}
}

// CreateTask creates a new task
// POST /api/tasks/create
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	task, err := h.taskUsecase.CreateTask(c.Request.Context(), authdelivery.UserID(c), &req)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// GetTasks returns all tasks for the authenticated user
// GET /api/tasks
func (h *TaskHandler) GetTasks(c *gin.Context) {
	tasks, err := h.taskUsecase.GetUserTasks(c.Request.Context(), authdelivery.UserID(c))
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// GetTaskByID returns a specific task
// GET /api/tasks/:id
func (h *TaskHandler) GetTaskByID(c *gin.Context) {
	task, err := h.taskUsecase.GetTaskByID(c.Request.Context(), authdelivery.UserID(c), c.Param("id"))
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateTask updates an existing task
// PUT /api/tasks/:id
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var updates dto.TaskUpdateRequest
	if err := c.ShouldBindJSON(&updates); err != nil {
		response.BindError(c, err)
		return
	}

	task, err := h.taskUsecase.UpdateTask(c.Request.Context(), authdelivery.UserID(c), c.Param("id"), &updates)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateTaskStatus changes the status of a task
// PATCH /api/tasks/:id/status
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	task, err := h.taskUsecase.UpdateTaskStatus(c.Request.Context(), authdelivery.UserID(c), c.Param("id"), req.Status)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask deletes a task
// DELETE /api/tasks/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.taskUsecase.DeleteTask(c.Request.Context(), authdelivery.UserID(c), c.Param("id")); err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Task removed"})
}

// FilterTasks filters and sorts the user's tasks
// GET /api/tasks/filter/results?status=pending&search=report&sortBy=priority&sortOrder=asc
func (h *TaskHandler) FilterTasks(c *gin.Context) {
	var query dto.FilterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BindError(c, err)
		return
	}

	tasks, err := h.taskUsecase.FilterTasks(c.Request.Context(), authdelivery.UserID(c), &query)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// RegisterRoutes mounts the task routes on a group already guarded by the
// auth middleware.
func (h *TaskHandler) RegisterRoutes(tasks *gin.RouterGroup) {
	tasks.POST("/create", h.CreateTask)
	tasks.GET("", h.GetTasks)
	tasks.GET("/filter/results", h.FilterTasks)
	tasks.GET("/:id", h.GetTaskByID)
	tasks.PUT("/:id", h.UpdateTask)
	tasks.PATCH("/:id/status", h.UpdateTaskStatus)
	tasks.DELETE("/:id", h.DeleteTask)
}
