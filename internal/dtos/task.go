package dtos

type Task struct {
	Id          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

type CreateTaskRequest struct {
	Title       string `json:"title" schema:"title" validate:"notblank"`
	Description string `json:"description" schema:"description"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

type ToggleTaskRequest struct {
	Completed bool `schema:"completed"`
}

type DeleteTaskRequest struct {
	Confirm string `schema:"confirm"`
}

type EditTaskRequest struct {
	Title       string `schema:"title" validate:"notblank"`
	Description string `schema:"description"`
}

type TaskListResponse struct {
	Tasks   []Task `json:"tasks"`
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}
