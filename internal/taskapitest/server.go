// Package taskapitest provides an in-memory task API for tests.
package taskapitest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/mdayat/demi-masa-todo-client/internal/dtos"
)

// Request is a call recorded by the fake API.
type Request struct {
	Method string
	Path   string
	Body   string
}

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	tasks    []dtos.Task
	nextId   int64
	requests []Request
	failures map[string]int
}

// NewServer starts a fake API serving /tasks/ seeded with tasks. Ids of the
// seeded tasks are kept; new tasks get ids above the highest one.
func NewServer(tasks ...dtos.Task) *Server {
	s := &Server{
		tasks:    slices.Clone(tasks),
		nextId:   1,
		failures: make(map[string]int),
	}

	for _, task := range tasks {
		if task.Id >= s.nextId {
			s.nextId = task.Id + 1
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/tasks/", s.handle)
	s.Server = httptest.NewServer(mux)
	return s
}

// TasksURL is the collection URL, with its trailing slash.
func (s *Server) TasksURL() string {
	return s.URL + "/tasks/"
}

// FailWith makes every request with method answer status until cleared
// with a zero status.
func (s *Server) FailWith(method string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if status == 0 {
		delete(s.failures, method)
		return
	}
	s.failures[method] = status
}

func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

// RequestsFor returns the recorded requests with the given method.
func (s *Server) RequestsFor(method string) []Request {
	var requests []Request
	for _, req := range s.Requests() {
		if req.Method == method {
			requests = append(requests, req)
		}
	}
	return requests
}

func (s *Server) Tasks() []dtos.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tasks)
}

func (s *Server) handle(res http.ResponseWriter, req *http.Request) {
	body, _ := io.ReadAll(req.Body)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, Request{Method: req.Method, Path: req.URL.Path, Body: string(body)})
	if status, ok := s.failures[req.Method]; ok {
		http.Error(res, http.StatusText(status), status)
		return
	}

	rawId := strings.TrimPrefix(req.URL.Path, "/tasks/")
	if rawId == "" {
		s.handleCollection(res, req, body)
		return
	}

	taskId, err := strconv.ParseInt(rawId, 10, 64)
	if err != nil {
		http.Error(res, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	idx := slices.IndexFunc(s.tasks, func(task dtos.Task) bool { return task.Id == taskId })
	if idx < 0 {
		http.Error(res, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	switch req.Method {
	case http.MethodGet:
		writeJSON(res, http.StatusOK, s.tasks[idx])
	case http.MethodPut:
		var update dtos.UpdateTaskRequest
		if err := json.Unmarshal(body, &update); err != nil {
			http.Error(res, http.StatusText(http.StatusUnprocessableEntity), http.StatusUnprocessableEntity)
			return
		}
		if update.Title != nil {
			s.tasks[idx].Title = *update.Title
		}
		if update.Description != nil {
			s.tasks[idx].Description = *update.Description
		}
		if update.Completed != nil {
			s.tasks[idx].Completed = *update.Completed
		}
		writeJSON(res, http.StatusOK, s.tasks[idx])
	case http.MethodDelete:
		s.tasks = slices.Delete(s.tasks, idx, idx+1)
		writeJSON(res, http.StatusOK, map[string]any{"ok": true})
	default:
		http.Error(res, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleCollection(res http.ResponseWriter, req *http.Request, body []byte) {
	switch req.Method {
	case http.MethodGet:
		tasks := s.tasks
		if tasks == nil {
			tasks = []dtos.Task{}
		}
		writeJSON(res, http.StatusOK, tasks)
	case http.MethodPost:
		var reqBody dtos.CreateTaskRequest
		if err := json.Unmarshal(body, &reqBody); err != nil || reqBody.Title == "" {
			http.Error(res, http.StatusText(http.StatusUnprocessableEntity), http.StatusUnprocessableEntity)
			return
		}

		task := dtos.Task{Id: s.nextId, Title: reqBody.Title, Description: reqBody.Description}
		s.nextId++
		s.tasks = append(s.tasks, task)
		writeJSON(res, http.StatusOK, task)
	default:
		http.Error(res, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func writeJSON(res http.ResponseWriter, statusCode int, v any) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(statusCode)
	_ = json.NewEncoder(res).Encode(v)
}
