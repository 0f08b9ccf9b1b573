package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"taskmanager-backend/internal/task/domain"
	"taskmanager-backend/internal/task/dto"
	"taskmanager-backend/internal/task/repository"
	"taskmanager-backend/pkg/apperror"
)

const msgTaskNotFound = "Task not found"

// deadlineLayouts are tried in order; the last two come from date and
// datetime-local form inputs.
var deadlineLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// taskUsecase implements TaskUsecase interface
type taskUsecase struct {
	taskRepo repository.TaskRepository
	log      *slog.Logger
}

// NewTaskUsecase creates a new instance of taskUsecase
func NewTaskUsecase(taskRepo repository.TaskRepository, log *slog.Logger) TaskUsecase {
	return &taskUsecase{
		taskRepo: taskRepo,
		log:      log.With("component", "task"),
	}
}

func (u *taskUsecase) CreateTask(ctx context.Context, userID string, req *dto.CreateTaskRequest) (*domain.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperror.Validation("title", "Title is required")
	}

	task := &domain.Task{
		UserID:      userID,
		Title:       title,
		Description: req.Description,
		Status:      domain.TaskStatusPending,
		Priority:    domain.PriorityMedium,
	}

	if req.Status != "" {
		status, ok := domain.ParseStatus(req.Status)
		if !ok {
			return nil, invalidStatus()
		}
		task.Status = status
	}

	if req.Priority != "" {
		priority, ok := domain.ParsePriority(req.Priority)
		if !ok {
			return nil, invalidPriority()
		}
		task.Priority = priority
	}

	if req.Deadline != nil && *req.Deadline != "" {
		deadline, err := parseDeadline(*req.Deadline)
		if err != nil {
			return nil, err
		}
		task.Deadline = &deadline
	}

	if err := u.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (u *taskUsecase) GetUserTasks(ctx context.Context, userID string) ([]*domain.Task, error) {
	return u.taskRepo.FindByUserID(ctx, userID)
}

func (u *taskUsecase) GetTaskByID(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	task, err := u.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperror.NotFound(msgTaskNotFound)
	}
	if task.UserID != userID {
		u.log.Warn("task access denied", "task_id", taskID, "user_id", userID)
		return nil, apperror.New(apperror.ErrForbidden, msgTaskNotFound)
	}
	return task, nil
}

func (u *taskUsecase) UpdateTask(ctx context.Context, userID, taskID string, updates *dto.TaskUpdateRequest) (*domain.Task, error) {
	task, err := u.GetTaskByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	fields, err := updateFields(updates)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return task, nil
	}

	return u.apply(ctx, userID, taskID, fields)
}

func (u *taskUsecase) UpdateTaskStatus(ctx context.Context, userID, taskID, status string) (*domain.Task, error) {
	parsed, ok := domain.ParseStatus(status)
	if !ok {
		return nil, invalidStatus()
	}
	if _, err := u.GetTaskByID(ctx, userID, taskID); err != nil {
		return nil, err
	}
	return u.apply(ctx, userID, taskID, map[string]interface{}{"status": parsed})
}

func (u *taskUsecase) apply(ctx context.Context, userID, taskID string, fields map[string]interface{}) (*domain.Task, error) {
	found, err := u.taskRepo.UpdateFields(ctx, taskID, userID, fields)
	if err != nil {
		return nil, err
	}
	if !found {
		// deleted between the ownership check and the update
		return nil, apperror.NotFound(msgTaskNotFound)
	}
	return u.GetTaskByID(ctx, userID, taskID)
}

func (u *taskUsecase) DeleteTask(ctx context.Context, userID, taskID string) error {
	if _, err := u.GetTaskByID(ctx, userID, taskID); err != nil {
		return err
	}

	found, err := u.taskRepo.Delete(ctx, taskID, userID)
	if err != nil {
		return err
	}
	if !found {
		return apperror.NotFound(msgTaskNotFound)
	}
	return nil
}

func (u *taskUsecase) FilterTasks(ctx context.Context, userID string, query *dto.FilterQuery) ([]*domain.Task, error) {
	filter := domain.TaskFilter{
		Search: strings.TrimSpace(query.Search),
		Desc:   true,
	}

	if query.Status != "" {
		status, ok := domain.ParseStatus(query.Status)
		if !ok {
			return nil, invalidStatus()
		}
		filter.Status = &status
	}

	sortBy := query.SortBy
	if sortBy == "" {
		sortBy = domain.DefaultSortBy
	}
	column, ok := domain.SortColumns[sortBy]
	if !ok {
		return nil, apperror.Validation("sortBy", "Invalid sort field")
	}
	filter.Column = column

	switch strings.ToLower(query.SortOrder) {
	case "", "desc":
	case "asc":
		filter.Desc = false
	default:
		return nil, apperror.Validation("sortOrder", "Sort order must be asc or desc")
	}

	return u.taskRepo.Filter(ctx, userID, filter)
}

// updateFields validates a partial update and returns the columns to set.
func updateFields(updates *dto.TaskUpdateRequest) (map[string]interface{}, error) {
	fields := make(map[string]interface{})

	if updates.Title != nil {
		title := strings.TrimSpace(*updates.Title)
		if title == "" {
			return nil, apperror.Validation("title", "Title is required")
		}
		fields["title"] = title
	}
	if updates.Description != nil {
		fields["description"] = *updates.Description
	}
	if updates.Status != nil {
		status, ok := domain.ParseStatus(*updates.Status)
		if !ok {
			return nil, invalidStatus()
		}
		fields["status"] = status
	}
	if updates.Priority != nil {
		priority, ok := domain.ParsePriority(*updates.Priority)
		if !ok {
			return nil, invalidPriority()
		}
		fields["priority"] = priority
	}
	if updates.Deadline != nil {
		if *updates.Deadline == "" {
			fields["deadline"] = nil
		} else {
			deadline, err := parseDeadline(*updates.Deadline)
			if err != nil {
				return nil, err
			}
			fields["deadline"] = deadline
		}
	}
	return fields, nil
}

func parseDeadline(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperror.Validation("deadline", "Invalid deadline")
}

func invalidStatus() error {
	return apperror.Validation("status", "Status must be one of pending, in_progress, completed")
}

func invalidPriority() error {
	return apperror.Validation("priority", "Priority must be one of low, medium, high")
}
