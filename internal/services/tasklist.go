package services

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/mdayat/demi-masa-todo-client/internal/dtos"
	"github.com/rs/zerolog/log"
)

const LoadErrorMessage = "Connection error: could not reach the task API."

type TaskListState struct {
	Tasks   []dtos.Task
	Loading bool
	Error   string
}

// ConfirmFunc asks the user to approve message and reports the answer.
type ConfirmFunc func(message string) bool

func ConfirmDeleteMessage(taskId int64) string {
	return fmt.Sprintf("Are you sure you want to delete the task with ID %d?", taskId)
}

type TaskListServicer interface {
	Load(ctx context.Context)
	ToggleCompleted(ctx context.Context, task dtos.Task) error
	DeleteTask(ctx context.Context, taskId int64, confirm ConfirmFunc) (bool, error)
	EditTask(ctx context.Context, taskId int64, arg dtos.EditTaskRequest) error
	Snapshot() TaskListState
}

type taskList struct {
	api TaskAPIServicer

	mu       sync.RWMutex
	tasks    []dtos.Task
	inFlight int
	errMsg   string
}

func NewTaskListService(api TaskAPIServicer) TaskListServicer {
	return &taskList{
		api:   api,
		tasks: []dtos.Task{},
	}
}

func (t *taskList) Load(ctx context.Context) {
	logger := log.Ctx(ctx).With().Logger()

	t.mu.Lock()
	t.inFlight++
	t.errMsg = ""
	t.mu.Unlock()

	tasks, err := t.api.ListTasks(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.inFlight--

	if err != nil {
		logger.Error().Err(err).Caller().Msg("failed to load tasks")
		t.errMsg = LoadErrorMessage
		return
	}

	t.tasks = tasks
	t.errMsg = ""
	logger.Debug().Int("count", len(tasks)).Msg("successfully loaded tasks")
}

func (t *taskList) ToggleCompleted(ctx context.Context, task dtos.Task) error {
	completed := !task.Completed
	if err := t.api.UpdateTask(ctx, task.Id, dtos.UpdateTaskRequest{Completed: &completed}); err != nil {
		return fmt.Errorf("failed to toggle task %d: %w", task.Id, err)
	}

	t.Load(ctx)
	return nil
}

// DeleteTask reports whether the user confirmed the deletion.
func (t *taskList) DeleteTask(ctx context.Context, taskId int64, confirm ConfirmFunc) (bool, error) {
	if confirm == nil || !confirm(ConfirmDeleteMessage(taskId)) {
		return false, nil
	}

	if err := t.api.DeleteTask(ctx, taskId); err != nil {
		return true, fmt.Errorf("failed to delete task %d: %w", taskId, err)
	}

	t.Load(ctx)
	return true, nil
}

func (t *taskList) EditTask(ctx context.Context, taskId int64, arg dtos.EditTaskRequest) error {
	update := dtos.UpdateTaskRequest{
		Title:       &arg.Title,
		Description: &arg.Description,
	}

	if err := t.api.UpdateTask(ctx, taskId, update); err != nil {
		return fmt.Errorf("failed to edit task %d: %w", taskId, err)
	}

	t.Load(ctx)
	return nil
}

func (t *taskList) Snapshot() TaskListState {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return TaskListState{
		Tasks:   slices.Clone(t.tasks),
		Loading: t.inFlight > 0,
		Error:   t.errMsg,
	}
}
