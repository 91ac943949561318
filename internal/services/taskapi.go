package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/mdayat/demi-masa-todo-client/configs"
	"github.com/mdayat/demi-masa-todo-client/internal/dtos"
	"github.com/mdayat/demi-masa-todo-client/internal/retryutil"
)

var ErrTaskNotFound = errors.New("task not found")

// APIError reports a non-2xx response from the task API.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("task API %s %s returned status %d", e.Method, e.URL, e.StatusCode)
}

type TaskAPIServicer interface {
	ListTasks(ctx context.Context) ([]dtos.Task, error)
	GetTask(ctx context.Context, taskId int64) (dtos.Task, error)
	CreateTask(ctx context.Context, arg dtos.CreateTaskRequest) error
	UpdateTask(ctx context.Context, taskId int64, arg dtos.UpdateTaskRequest) error
	DeleteTask(ctx context.Context, taskId int64) error
}

type taskAPI struct {
	configs       configs.Configs
	collectionURL string
}

func NewTaskAPIService(configs configs.Configs) TaskAPIServicer {
	client := configs.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	configs.HTTPClient = client

	return &taskAPI{
		configs:       configs,
		collectionURL: strings.TrimRight(configs.Env.TasksAPIURL, "/") + "/",
	}
}

func (t taskAPI) taskURL(taskId int64) (string, error) {
	return url.JoinPath(t.collectionURL, strconv.FormatInt(taskId, 10))
}

func (t taskAPI) ListTasks(ctx context.Context) ([]dtos.Task, error) {
	return retryutil.RetryWithData(t.configs.Env.TasksAPIAttempts, func() ([]dtos.Task, error) {
		res, err := t.do(ctx, http.MethodGet, t.collectionURL, nil)
		if err != nil {
			return nil, err
		}
		defer res.Body.Close()

		var tasks []dtos.Task
		if err := json.NewDecoder(res.Body).Decode(&tasks); err != nil {
			return nil, fmt.Errorf("failed to decode task list response: %w", err)
		}

		if tasks == nil {
			tasks = []dtos.Task{}
		}

		return tasks, nil
	})
}

func (t taskAPI) GetTask(ctx context.Context, taskId int64) (dtos.Task, error) {
	taskURL, err := t.taskURL(taskId)
	if err != nil {
		return dtos.Task{}, fmt.Errorf("failed to build task URL: %w", err)
	}

	return retryutil.RetryWithData(t.configs.Env.TasksAPIAttempts, func() (dtos.Task, error) {
		res, err := t.do(ctx, http.MethodGet, taskURL, nil)
		if err != nil {
			return dtos.Task{}, err
		}
		defer res.Body.Close()

		var task dtos.Task
		if err := json.NewDecoder(res.Body).Decode(&task); err != nil {
			return dtos.Task{}, fmt.Errorf("failed to decode task response: %w", err)
		}

		return task, nil
	})
}

func (t taskAPI) CreateTask(ctx context.Context, arg dtos.CreateTaskRequest) error {
	body, err := json.Marshal(arg)
	if err != nil {
		return fmt.Errorf("failed to encode create task request to json: %w", err)
	}

	return retryutil.RetryWithoutData(t.configs.Env.TasksAPIAttempts, func() error {
		return t.send(ctx, http.MethodPost, t.collectionURL, body)
	})
}

func (t taskAPI) UpdateTask(ctx context.Context, taskId int64, arg dtos.UpdateTaskRequest) error {
	taskURL, err := t.taskURL(taskId)
	if err != nil {
		return fmt.Errorf("failed to build task URL: %w", err)
	}

	body, err := json.Marshal(arg)
	if err != nil {
		return fmt.Errorf("failed to encode update task request to json: %w", err)
	}

	return retryutil.RetryWithoutData(t.configs.Env.TasksAPIAttempts, func() error {
		return t.send(ctx, http.MethodPut, taskURL, body)
	})
}

func (t taskAPI) DeleteTask(ctx context.Context, taskId int64) error {
	taskURL, err := t.taskURL(taskId)
	if err != nil {
		return fmt.Errorf("failed to build task URL: %w", err)
	}

	return retryutil.RetryWithoutData(t.configs.Env.TasksAPIAttempts, func() error {
		return t.send(ctx, http.MethodDelete, taskURL, nil)
	})
}

// send performs a request whose response body is ignored.
func (t taskAPI) send(ctx context.Context, method, target string, body []byte) error {
	res, err := t.do(ctx, method, target, body)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	_, _ = io.Copy(io.Discard, res.Body)
	return nil
}

// do returns the response only for 2xx statuses; the caller closes its body.
func (t taskAPI) do(ctx context.Context, method, target string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, retryutil.Permanent(fmt.Errorf("failed to new http %s request with context: %w", strings.ToLower(method), err))
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := t.configs.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send http %s request: %w", strings.ToLower(method), err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, res.Body)
		res.Body.Close()

		apiErr := &APIError{Method: method, URL: target, StatusCode: res.StatusCode}
		if res.StatusCode == http.StatusNotFound {
			return nil, retryutil.Permanent(fmt.Errorf("%w: %w", ErrTaskNotFound, apiErr))
		}
		if res.StatusCode < http.StatusInternalServerError {
			return nil, retryutil.Permanent(apiErr)
		}
		return nil, apiErr
	}

	return res, nil
}
