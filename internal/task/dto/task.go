package dto

// CreateTaskRequest is the body of POST /api/tasks/create
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	Deadline    *string `json:"deadline"`
}

// TaskUpdateRequest represents the fields that can be updated; nil means
// unchanged and an empty deadline clears it
type TaskUpdateRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Deadline    *string `json:"deadline,omitempty"`
}

// StatusRequest is the body of PATCH /api/tasks/:id/status
type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// FilterQuery holds the query parameters of GET /api/tasks/filter/results
type FilterQuery struct {
	Status    string `form:"status"`
	Search    string `form:"search"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
}
