package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const DefaultTasksAPIURL = "http://localhost:8000/tasks/"

type Env struct {
	Addr             string        `validate:"required"`
	AllowedOrigins   string        `validate:"required"`
	LogLevel         string        `validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	RateLimit        int           `validate:"gte=0"`
	TasksAPIURL      string        `validate:"required,http_url"`
	TasksAPIAttempts uint          `validate:"gte=1"`
	TasksAPITimeout  time.Duration `validate:"gte=0"`
}

func LoadEnv(filenames ...string) (Env, error) {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Env{}, err
	}

	env := Env{
		Addr:             getenv("ADDR", ":8080"),
		AllowedOrigins:   getenv("ALLOWED_ORIGINS", "*"),
		LogLevel:         os.Getenv("LOG_LEVEL"),
		RateLimit:        100,
		TasksAPIURL:      getenv("TASKS_API_URL", DefaultTasksAPIURL),
		TasksAPIAttempts: 1,
	}

	if v := os.Getenv("RATE_LIMIT"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return Env{}, fmt.Errorf("failed to parse RATE_LIMIT: %w", err)
		}
		env.RateLimit = limit
	}

	if v := os.Getenv("TASKS_API_ATTEMPTS"); v != "" {
		attempts, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return Env{}, fmt.Errorf("failed to parse TASKS_API_ATTEMPTS: %w", err)
		}
		env.TasksAPIAttempts = uint(attempts)
	}

	if v := os.Getenv("TASKS_API_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return Env{}, fmt.Errorf("failed to parse TASKS_API_TIMEOUT: %w", err)
		}
		env.TasksAPITimeout = timeout
	}

	if err := NewValidate().Struct(env); err != nil {
		return Env{}, fmt.Errorf("invalid environment: %w", err)
	}

	return env, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
