package main

import (
	"context"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/mdayat/demi-masa-todo-client/configs"
	"github.com/mdayat/demi-masa-todo-client/internal/handlers"
	"github.com/mdayat/demi-masa-todo-client/internal/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.CallerMarshalFunc = func(_ uintptr, file string, line int) string {
		return filepath.Base(file) + ":" + strconv.Itoa(line)
	}
	logger := log.With().Caller().Logger()

	env, err := configs.LoadEnv()
	if err != nil {
		logger.Fatal().Err(err).Send()
	}

	if env.LogLevel != "" {
		level, err := zerolog.ParseLevel(env.LogLevel)
		if err != nil {
			logger.Fatal().Err(err).Send()
		}
		zerolog.SetGlobalLevel(level)
	}

	configs := configs.NewConfigs(env, configs.NewHTTPClient(env))

	taskAPI := services.NewTaskAPIService(configs)
	taskList := services.NewTaskListService(taskAPI)
	go taskList.Load(logger.WithContext(context.Background()))

	customMiddleware := handlers.NewMiddlewareHandler(configs)
	rest := handlers.NewRestHandler(configs, customMiddleware, taskAPI, taskList)

	logger.Info().Str("addr", env.Addr).Str("tasks_api_url", env.TasksAPIURL).Msg("starting web server")
	if err := http.ListenAndServe(env.Addr, rest); err != nil {
		logger.Fatal().Err(err).Send()
	}
}
