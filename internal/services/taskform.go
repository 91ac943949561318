package services

import (
	"context"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
	"github.com/mdayat/demi-masa-todo-client/internal/dtos"
	"github.com/rs/zerolog/log"
)

const (
	TitleRequiredMessage = "Title is required."
	CreateErrorMessage   = "Could not create the task. Check the connection to the API."
)

// TaskFormState is what the form shows after a submit. Title and
// Description are empty after a successful create.
type TaskFormState struct {
	Title       string
	Description string
	Alert       string
	Error       string
	Created     bool
}

type TaskFormServicer interface {
	Submit(ctx context.Context, arg dtos.CreateTaskRequest) TaskFormState
	Submitting() bool
}

type taskForm struct {
	api       TaskAPIServicer
	validate  *validator.Validate
	onCreated func(ctx context.Context)

	submitting atomic.Int32
}

// NewTaskFormService returns a form that calls onCreated once after every
// successful create. The form itself keeps no tasks.
func NewTaskFormService(api TaskAPIServicer, validate *validator.Validate, onCreated func(ctx context.Context)) TaskFormServicer {
	return &taskForm{
		api:       api,
		validate:  validate,
		onCreated: onCreated,
	}
}

func (t *taskForm) Submit(ctx context.Context, arg dtos.CreateTaskRequest) TaskFormState {
	logger := log.Ctx(ctx).With().Logger()
	state := TaskFormState{
		Title:       arg.Title,
		Description: arg.Description,
	}

	if err := t.validate.Struct(arg); err != nil {
		logger.Debug().Err(err).Msg("rejected task without title")
		state.Alert = TitleRequiredMessage
		return state
	}

	t.submitting.Add(1)
	defer t.submitting.Add(-1)

	if err := t.api.CreateTask(ctx, arg); err != nil {
		logger.Error().Err(err).Caller().Msg("failed to create task")
		state.Error = CreateErrorMessage
		return state
	}

	if t.onCreated != nil {
		t.onCreated(ctx)
	}

	return TaskFormState{Created: true}
}

func (t *taskForm) Submitting() bool {
	return t.submitting.Load() > 0
}
