package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/mdayat/demi-masa-todo-client/configs"
	"github.com/mdayat/demi-masa-todo-client/internal/dtos"
	"github.com/mdayat/demi-masa-todo-client/internal/httputil"
	"github.com/mdayat/demi-masa-todo-client/internal/services"
	"github.com/mdayat/demi-masa-todo-client/internal/views"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const EditErrorMessage = "Could not update the task. Check the connection to the API."

type TaskHandler interface {
	GetTasks(res http.ResponseWriter, req *http.Request)
	GetState(res http.ResponseWriter, req *http.Request)
	Reload(res http.ResponseWriter, req *http.Request)
	CreateTask(res http.ResponseWriter, req *http.Request)
	ToggleTask(res http.ResponseWriter, req *http.Request)
	ConfirmDeleteTask(res http.ResponseWriter, req *http.Request)
	DeleteTask(res http.ResponseWriter, req *http.Request)
	GetEditTask(res http.ResponseWriter, req *http.Request)
	EditTask(res http.ResponseWriter, req *http.Request)
}

type task struct {
	configs  configs.Configs
	api      services.TaskAPIServicer
	list     services.TaskListServicer
	form     services.TaskFormServicer
	renderer views.Renderer
}

func NewTaskHandler(
	configs configs.Configs,
	api services.TaskAPIServicer,
	list services.TaskListServicer,
	form services.TaskFormServicer,
	renderer views.Renderer,
) TaskHandler {
	return &task{
		configs:  configs,
		api:      api,
		list:     list,
		form:     form,
		renderer: renderer,
	}
}

// detach keeps API calls running when the browser goes away; in-flight
// requests are never aborted.
func detach(req *http.Request) context.Context {
	return context.WithoutCancel(req.Context())
}

func parseTaskId(req *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(req, "taskId"), 10, 64)
}

func redirectHome(res http.ResponseWriter, req *http.Request) {
	http.Redirect(res, req, "/", http.StatusSeeOther)
}

func (t task) sendIndex(res http.ResponseWriter, logger zerolog.Logger, statusCode int, form views.TaskForm) {
	page := views.NewIndexPage(t.list.Snapshot(), form)
	err := httputil.SendHTML(res, statusCode, func(w io.Writer) error {
		return t.renderer.RenderIndex(w, page)
	})

	if err != nil {
		logger.Error().Err(err).Caller().Int("status_code", http.StatusInternalServerError).Msg("failed to send index page")
		http.Error(res, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger.Info().Int("status_code", statusCode).Msg("successfully rendered tasks")
}

func (t task) GetTasks(res http.ResponseWriter, req *http.Request) {
	logger := log.Ctx(req.Context()).With().Logger()
	t.sendIndex(res, logger, http.StatusOK, views.TaskForm{Submitting: t.form.Submitting()})
}

func (t task) GetState(res http.ResponseWriter, req *http.Request) {
	logger := log.Ctx(req.Context()).With().Logger()

	state := t.list.Snapshot()
	resBody := dtos.TaskListResponse{
		Tasks:   state.Tasks,
		Loading: state.Loading,
		Error:   state.Error,
	}
	if resBody.Tasks == nil {
		resBody.Tasks = []dtos.Task{}
	}

	params := httputil.SendSuccessResponseParams{
		StatusCode: http.StatusOK,
		ResBody:    resBody,
	}

	if err := httputil.SendSuccessResponse(res, params); err != nil {
		logger.Error().Err(err).Caller().Int("status_code", http.StatusInternalServerError).Msg("failed to send success response")
		http.Error(res, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger.Info().Int("status_code", http.StatusOK).Msg("successfully got task list state")
}

func (t task) Reload(res http.ResponseWriter, req *http.Request) {
	logger := log.Ctx(req.Context()).With().Logger()

	t.list.Load(detach(req))
	redirectHome(res, req)
	logger.Info().Int("status_code", http.StatusSeeOther).Msg("successfully reloaded tasks")
}

func (t task) CreateTask(res http.ResponseWriter, req *http.Request) {
	logger := log.Ctx(req.Context()).With().Logger()

	var reqBody dtos.CreateTaskRequest
	if err := httputil.DecodeForm(req, &reqBody); err != nil {
		logger.Error().Err(err).Caller().Int("status_code", http.StatusBadRequest).Msg("invalid request body")
		http.Error(res, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	state := t.form.Submit(detach(req), reqBody)
	switch {
	case state.Created:
		redirectHome(res, req)
		logger.Info().Int("status_code", http.StatusSeeOther).Msg("successfully created task")
	case state.Alert != "":
		t.sendIndex(res, logger, http.StatusUnprocessableEntity, views.NewTaskForm(state, false))
	default:
		t.sendIndex(res, logger, http.StatusBadGateway, views.NewTaskForm(state, false))
	}
}

func (t task) ToggleTask(res http.ResponseWriter, req *http.Request) {
	logger := log.Ctx(req.Context()).With().Logger()

	taskId, err := parseTaskId(req)
	if err != nil {
		logger.Error().Err(err).Caller().Int("status_code", http.StatusNotFound).Msg("task not found")
		http.Error(res, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	var reqBody dtos.ToggleTaskRequest
	if err := httputil.DecodeForm(req, &reqBody); err != nil {
		logger.Error().Err(err).Caller().Int("status_code", http.StatusBadRequest).Msg("invalid request body")
		http.Error(res, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	err = t.list.ToggleCompleted(detach(req), dtos.Task{Id: taskId, Completed: reqBody.Completed})
	if err != nil {
		logger.Error().Err(err).Caller().Int64("task_id", taskId).Msg("failed to toggle task completion")
	} else {
		logger.Info().Int64("task_id", taskId).Msg("successfully toggled task completion")
	}

	redirectHome(res, req)
}

func (t task) ConfirmDeleteTask(res http.ResponseWriter, req *http.Request) {
	logger := log.Ctx(req.Context()).With().Logger()

	taskId, err := parseTaskId(req)
	if err != nil {
		logger.Error().Err(err).Caller().Int("status_code", http.StatusNotFound).Msg("task not found")
		http.Error(res, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	page := views.ConfirmDeletePage{
		TaskId:  taskId,
		Message: services.ConfirmDeleteMessage(taskId),
	}

	err = httputil.SendHTML(res, http.StatusOK, func(w io.Writer) error {
		return t.renderer.RenderConfirmDelete(w, page)
	})

	if err != nil {
		logger.Error().Err(err).Caller().Int("status_code", http.StatusInternalServerError).Msg("failed to send confirmation page")
		http.Error(res, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger.Info().Int("status_code", http.StatusOK).Msg("successfully rendered delete confirmation")
}

func (t task) DeleteTask(res http.ResponseWriter, req *http.Request) {
	logger := log.Ctx(req.Context()).With().Logger()

	taskId, err := parseTaskId(req)
	if err != nil {
		logger.Error().Err(err).Caller().Int("status_code", http.StatusNotFound).Msg("task not found")
		http.Error(res, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	var reqBody dtos.DeleteTaskRequest
	if err := httputil.DecodeForm(req, &reqBody); err != nil {
		logger.Error().Err(err).Caller().Int("status_code", http.StatusBadRequest).Msg("invalid request body")
		http.Error(res, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	confirmed, err := t.list.DeleteTask(detach(req), taskId, func(string) bool {
		return reqBody.Confirm == "yes"
	})

	switch {
	case err != nil:
		logger.Error().Err(err).Caller().Int64("task_id", taskId).Msg("failed to delete task")
	case !confirmed:
		logger.Info().Int64("task_id", taskId).Msg("task deletion declined")
	default:
		logger.Info().Int64("task_id", taskId).Msg("successfully deleted task")
	}

	redirectHome(res, req)
}

func (t task) sendEdit(res http.ResponseWriter, logger zerolog.Logger, statusCode int, page views.EditPage) {
	err := httputil.SendHTML(res, statusCode, func(w io.Writer) error {
		return t.renderer.RenderEdit(w, page)
	})

	if err != nil {
		logger.Error().Err(err).Caller().Int("status_code", http.StatusInternalServerError).Msg("failed to send edit page")
		http.Error(res, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger.Info().Int("status_code", statusCode).Msg("successfully rendered edit page")
}

func (t task) GetEditTask(res http.ResponseWriter, req *http.Request) {
	logger := log.Ctx(req.Context()).With().Logger()

	taskId, err := parseTaskId(req)
	if err != nil {
		logger.Error().Err(err).Caller().Int("status_code", http.StatusNotFound).Msg("task not found")
		http.Error(res, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	found, err := t.api.GetTask(detach(req), taskId)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			logger.Error().Err(err).Caller().Int("status_code", http.StatusNotFound).Msg("task not found")
			http.Error(res, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		} else {
			logger.Error().Err(err).Caller().Int("status_code", http.StatusBadGateway).Msg("failed to get task")
			http.Error(res, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		}
		return
	}

	t.sendEdit(res, logger, http.StatusOK, views.EditPage{
		TaskId:      found.Id,
		Title:       found.Title,
		Description: found.Description,
	})
}

func (t task) EditTask(res http.ResponseWriter, req *http.Request) {
	logger := log.Ctx(req.Context()).With().Logger()

	taskId, err := parseTaskId(req)
	if err != nil {
		logger.Error().Err(err).Caller().Int("status_code", http.StatusNotFound).Msg("task not found")
		http.Error(res, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	var reqBody dtos.EditTaskRequest
	err = httputil.DecodeFormAndValidate(req, t.configs.Validate, &reqBody)
	page := views.EditPage{
		TaskId:      taskId,
		Title:       reqBody.Title,
		Description: reqBody.Description,
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		logger.Debug().Err(err).Int("status_code", http.StatusUnprocessableEntity).Msg("rejected task without title")
		page.Alert = services.TitleRequiredMessage
		t.sendEdit(res, logger, http.StatusUnprocessableEntity, page)
		return
	}

	if err != nil {
		logger.Error().Err(err).Caller().Int("status_code", http.StatusBadRequest).Msg("invalid request body")
		http.Error(res, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := t.list.EditTask(detach(req), taskId, reqBody); err != nil {
		logger.Error().Err(err).Caller().Int64("task_id", taskId).Msg("failed to edit task")
		page.Error = EditErrorMessage
		t.sendEdit(res, logger, http.StatusBadGateway, page)
		return
	}

	redirectHome(res, req)
	logger.Info().Int("status_code", http.StatusSeeOther).Msg("successfully edited task")
}
