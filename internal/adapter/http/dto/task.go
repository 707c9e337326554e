package dto

type TaskItem struct {
	ID          uint64  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description *string `json:"description"`
	Status      *string `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
}

// UpdateTaskRequest only decodes values; which keys were sent is read from the raw body.
type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=255"`
	Description *string `json:"description"`
	Status      *string `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type TaskEventMessage struct {
	Event      string   `json:"event"`
	Task       TaskItem `json:"task"`
	OccurredAt string   `json:"occurred_at"`
}
