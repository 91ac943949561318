package main

import (
	"context"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mdayat/demi-masa-todo-client/configs"
	"github.com/mdayat/demi-masa-todo-client/internal/dtos"
	"github.com/mdayat/demi-masa-todo-client/internal/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var seedTasks = []dtos.CreateTaskRequest{
	{Title: "Buy milk"},
	{Title: "Walk the dog", Description: "Around the park, twice"},
	{Title: "Read a chapter", Description: "Before going to bed"},
}

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

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	config := configs.NewConfigs(env, configs.NewHTTPClient(env))
	taskAPI := services.NewTaskAPIService(config)

	for _, task := range seedTasks {
		if err := config.Validate.Struct(task); err != nil {
			logger.Fatal().Err(err).Str("title", task.Title).Msg("invalid seed task")
		}

		if err := taskAPI.CreateTask(ctx, task); err != nil {
			logger.Fatal().Err(err).Str("title", task.Title).Msg("failed to seed task")
		}
	}

	tasks, err := taskAPI.ListTasks(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to list seeded tasks")
	}

	logger.Info().Int("seeded", len(seedTasks)).Int("total", len(tasks)).Msg("successfully seeded tasks")
}
