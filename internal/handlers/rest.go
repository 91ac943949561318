package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/mdayat/demi-masa-todo-client/configs"
	"github.com/mdayat/demi-masa-todo-client/internal/services"
	"github.com/mdayat/demi-masa-todo-client/internal/views"
)

func NewRestHandler(
	configs configs.Configs,
	customMiddleware MiddlewareHandler,
	taskAPI services.TaskAPIServicer,
	taskList services.TaskListServicer,
) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.CleanPath)
	router.Use(chiMiddleware.RealIP)
	router.Use(customMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	if configs.Env.RateLimit > 0 {
		router.Use(httprate.LimitByIP(configs.Env.RateLimit, 1*time.Minute))
	}

	options := cors.Options{
		AllowedOrigins:   strings.Split(configs.Env.AllowedOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"User-Agent", "Content-Type", "Accept", "Accept-Encoding", "Accept-Language", "Cache-Control", "Connection", "Host", "Origin", "Referer"},
		ExposedHeaders:   []string{"Content-Length", "Location"},
		AllowCredentials: false,
		MaxAge:           300,
	}
	router.Use(cors.Handler(options))
	router.Use(chiMiddleware.Heartbeat("/ping"))

	taskForm := services.NewTaskFormService(taskAPI, configs.Validate, taskList.Load)
	taskHandler := NewTaskHandler(configs, taskAPI, taskList, taskForm, views.NewRenderer())

	router.Get("/", taskHandler.GetTasks)
	router.Get("/state", taskHandler.GetState)
	router.Post("/reload", taskHandler.Reload)

	router.Post("/tasks", taskHandler.CreateTask)
	router.Post("/tasks/{taskId}/toggle", taskHandler.ToggleTask)
	router.Get("/tasks/{taskId}/delete", taskHandler.ConfirmDeleteTask)
	router.Post("/tasks/{taskId}/delete", taskHandler.DeleteTask)
	router.Get("/tasks/{taskId}/edit", taskHandler.GetEditTask)
	router.Post("/tasks/{taskId}/edit", taskHandler.EditTask)

	router.NotFound(func(res http.ResponseWriter, req *http.Request) {
		http.Error(res, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	return router
}
