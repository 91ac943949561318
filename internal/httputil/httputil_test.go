package httputil

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mdayat/demi-masa-todo-client/configs"
	"github.com/mdayat/demi-masa-todo-client/internal/dtos"
)

func newFormRequest(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestDecodeFormAndValidate(t *testing.T) {
	table := []struct {
		name           string
		values         url.Values
		expectedErr    bool
		expectedResult dtos.CreateTaskRequest
	}{
		{
			name:           "Success",
			values:         url.Values{"title": {"Buy milk"}, "description": {"Oat"}},
			expectedResult: dtos.CreateTaskRequest{Title: "Buy milk", Description: "Oat"},
		},
		{
			name:           "Unknown keys are ignored",
			values:         url.Values{"title": {"Buy milk"}, "csrf": {"x"}},
			expectedResult: dtos.CreateTaskRequest{Title: "Buy milk"},
		},
		{
			name:        "Missing title",
			values:      url.Values{"description": {"Oat"}},
			expectedErr: true,
		},
	}

	validate := configs.NewValidate()
	for _, v := range table {
		t.Run(v.name, func(t *testing.T) {
			var reqBody dtos.CreateTaskRequest
			err := DecodeFormAndValidate(newFormRequest(v.values), validate, &reqBody)
			if v.expectedErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("wasn't expecting error, got: %v", err)
			}

			if diff := cmp.Diff(v.expectedResult, reqBody); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestDecodeFormBool(t *testing.T) {
	var reqBody dtos.ToggleTaskRequest
	if err := DecodeForm(newFormRequest(url.Values{"completed": {"true"}}), &reqBody); err != nil {
		t.Fatalf("wasn't expecting error, got: %v", err)
	}

	if !reqBody.Completed {
		t.Error("expected completed to be true")
	}
}

func TestSendSuccessResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	params := SendSuccessResponseParams{
		StatusCode: http.StatusOK,
		ResBody:    []dtos.Task{{Id: 1, Title: "Buy milk"}},
	}

	if err := SendSuccessResponse(rec, params); err != nil {
		t.Fatalf("wasn't expecting error, got: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	expected := `[{"id":1,"title":"Buy milk","description":"","completed":false}]`
	if diff := cmp.Diff(expected, rec.Body.String()); diff != "" {
		t.Error(diff)
	}
}

func TestSendHTML(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := SendHTML(rec, http.StatusAccepted, func(w io.Writer) error {
			_, err := io.WriteString(w, "<p>ok</p>")
			return err
		})
		if err != nil {
			t.Fatalf("wasn't expecting error, got: %v", err)
		}

		if rec.Code != http.StatusAccepted || rec.Body.String() != "<p>ok</p>" {
			t.Errorf("unexpected response: %d %q", rec.Code, rec.Body.String())
		}
	})

	t.Run("Render error writes nothing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := SendHTML(rec, http.StatusOK, func(w io.Writer) error {
			_, _ = io.WriteString(w, "<p>partial")
			return errors.New("boom")
		})
		if err == nil {
			t.Fatal("expected error, got nil")
		}

		if rec.Body.Len() != 0 {
			t.Errorf("expected empty body, got %q", rec.Body.String())
		}
	})
}
