package configs

import (
	"net/http"

	"github.com/go-playground/validator/v10"
)

type Configs struct {
	Env        Env
	HTTPClient *http.Client
	Validate   *validator.Validate
}

func NewConfigs(env Env, httpClient *http.Client) Configs {
	return Configs{
		Env:        env,
		HTTPClient: httpClient,
		Validate:   NewValidate(),
	}
}
