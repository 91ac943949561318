package httputil

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/gorilla/schema"

	"github.com/go-playground/validator/v10"
)

var formDecoder = newFormDecoder()

func newFormDecoder() *schema.Decoder {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return decoder
}

// DecodeForm decodes a posted form into v without validating it.
func DecodeForm(req *http.Request, v interface{}) error {
	if err := req.ParseForm(); err != nil {
		return fmt.Errorf("failed to parse form: %w", err)
	}

	if err := formDecoder.Decode(v, req.PostForm); err != nil {
		return fmt.Errorf("failed to decode form: %w", err)
	}

	return nil
}

func DecodeFormAndValidate(req *http.Request, validate *validator.Validate, v interface{}) error {
	if err := DecodeForm(req, v); err != nil {
		return err
	}

	if err := validate.Struct(v); err != nil {
		return err
	}

	return nil
}

type SendSuccessResponseParams struct {
	StatusCode int
	ResBody    interface{}
}

func SendSuccessResponse(res http.ResponseWriter, params SendSuccessResponseParams) error {
	if params.ResBody == nil {
		res.WriteHeader(params.StatusCode)
		return nil
	}

	body, err := json.Marshal(params.ResBody)
	if err != nil {
		return fmt.Errorf("failed to encode response body to json: %w", err)
	}

	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(params.StatusCode)
	if _, err := res.Write(body); err != nil {
		return fmt.Errorf("failed to write response body: %w", err)
	}

	return nil
}

// SendHTML writes a page rendered by render with the given status. The page
// is rendered before anything is written so that a render error can still
// become a 500.
func SendHTML(res http.ResponseWriter, statusCode int, render func(w io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return fmt.Errorf("failed to render html: %w", err)
	}

	res.Header().Set("Content-Type", "text/html; charset=utf-8")
	res.WriteHeader(statusCode)
	if _, err := res.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write html: %w", err)
	}

	return nil
}
