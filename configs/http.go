package configs

import "net/http"

// NewHTTPClient returns the client used for every call to the task API.
// A zero TasksAPITimeout leaves requests without a deadline.
func NewHTTPClient(env Env) *http.Client {
	return &http.Client{Timeout: env.TasksAPITimeout}
}
