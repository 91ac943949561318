package views

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mdayat/demi-masa-todo-client/internal/dtos"
	"github.com/mdayat/demi-masa-todo-client/internal/services"
)

func TestNewIndexPage(t *testing.T) {
	table := []struct {
		name     string
		state    services.TaskListState
		expected IndexPage
	}{
		{
			name:     "Loading hides list and error",
			state:    services.TaskListState{Loading: true, Error: "stale", Tasks: []dtos.Task{{Id: 1}}},
			expected: IndexPage{Loading: true},
		},
		{
			name:     "Error hides list",
			state:    services.TaskListState{Error: services.LoadErrorMessage, Tasks: []dtos.Task{{Id: 1}}},
			expected: IndexPage{Error: services.LoadErrorMessage},
		},
		{
			name:     "Empty list",
			state:    services.TaskListState{Tasks: []dtos.Task{}},
			expected: IndexPage{ShowList: true, Empty: true, Items: []TaskItem{}},
		},
		{
			name: "Placeholder for missing description",
			state: services.TaskListState{Tasks: []dtos.Task{
				{Id: 1, Title: "Buy milk"},
				{Id: 2, Title: "Walk dog", Description: "Park", Completed: true},
			}},
			expected: IndexPage{ShowList: true, Items: []TaskItem{
				{Id: 1, Title: "Buy milk", Description: NoDescriptionMessage, Placeholder: true},
				{Id: 2, Title: "Walk dog", Description: "Park", Completed: true},
			}},
		},
	}

	for _, v := range table {
		t.Run(v.name, func(t *testing.T) {
			if diff := cmp.Diff(v.expected, NewIndexPage(v.state, TaskForm{})); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestRenderIndex(t *testing.T) {
	renderer := NewRenderer()

	render := func(t *testing.T, state services.TaskListState, form TaskForm) string {
		t.Helper()
		var buf bytes.Buffer
		if err := renderer.RenderIndex(&buf, NewIndexPage(state, form)); err != nil {
			t.Fatalf("wasn't expecting error, got: %v", err)
		}
		return buf.String()
	}

	t.Run("N tasks render N items", func(t *testing.T) {
		tasks := []dtos.Task{
			{Id: 1, Title: "Buy milk"},
			{Id: 2, Title: "Walk dog", Description: "Park"},
			{Id: 3, Title: "Read", Completed: true},
		}
		body := render(t, services.TaskListState{Tasks: tasks}, TaskForm{})

		if count := strings.Count(body, `<li class="task-item`); count != len(tasks) {
			t.Fatalf("expected %d items, got %d", len(tasks), count)
		}

		for _, want := range []string{"Buy milk", "Walk dog", "Park", "Read", "ID: 1", "ID: 2", "ID: 3"} {
			if !strings.Contains(body, want) {
				t.Errorf("expected body to contain %q", want)
			}
		}

		if strings.Contains(body, EmptyMessage) {
			t.Error("unexpected empty-state message")
		}
	})

	t.Run("Single unchecked task with placeholder", func(t *testing.T) {
		body := render(t, services.TaskListState{Tasks: []dtos.Task{
			{Id: 1, Title: "Buy milk", Description: "", Completed: false},
		}}, TaskForm{})

		if count := strings.Count(body, `<li class="task-item`); count != 1 {
			t.Fatalf("expected 1 item, got %d", count)
		}

		if !strings.Contains(body, `<h3>Buy milk</h3>`) {
			t.Error("expected title to be rendered")
		}

		if !strings.Contains(body, `<p class="placeholder">`+NoDescriptionMessage+`</p>`) {
			t.Error("expected description placeholder")
		}

		if strings.Contains(body, " checked>") || strings.Contains(body, "task-item completed") {
			t.Error("expected task to be unchecked")
		}
	})

	t.Run("Empty list", func(t *testing.T) {
		body := render(t, services.TaskListState{Tasks: []dtos.Task{}}, TaskForm{})

		if strings.Contains(body, `<li class="task-item`) {
			t.Error("expected no items")
		}

		if !strings.Contains(body, EmptyMessage) {
			t.Error("expected empty-state message")
		}
	})

	t.Run("Error banner", func(t *testing.T) {
		body := render(t, services.TaskListState{Error: services.LoadErrorMessage, Tasks: []dtos.Task{{Id: 1, Title: "Buy milk"}}}, TaskForm{})

		if !strings.Contains(body, services.LoadErrorMessage) {
			t.Error("expected error banner")
		}

		if strings.Contains(body, `class="task-list"`) {
			t.Error("expected list to be hidden")
		}
	})

	t.Run("Loading indicator", func(t *testing.T) {
		body := render(t, services.TaskListState{Loading: true}, TaskForm{})

		if !strings.Contains(body, LoadingMessage) {
			t.Error("expected loading indicator")
		}

		if strings.Contains(body, `class="task-list"`) {
			t.Error("expected list to be hidden")
		}
	})

	t.Run("Form keeps inputs and shows errors", func(t *testing.T) {
		form := NewTaskForm(services.TaskFormState{
			Title:       "Buy <milk>",
			Description: "Semi-skimmed",
			Error:       services.CreateErrorMessage,
		}, true)
		body := render(t, services.TaskListState{Tasks: []dtos.Task{}}, form)

		for _, want := range []string{`value="Buy &lt;milk&gt;"`, "Semi-skimmed", services.CreateErrorMessage, "Saving...", "<button type=\"submit\" disabled>"} {
			if !strings.Contains(body, want) {
				t.Errorf("expected body to contain %q", want)
			}
		}
	})
}

func TestRenderConfirmDelete(t *testing.T) {
	var buf bytes.Buffer
	page := ConfirmDeletePage{TaskId: 7, Message: services.ConfirmDeleteMessage(7)}
	if err := NewRenderer().RenderConfirmDelete(&buf, page); err != nil {
		t.Fatalf("wasn't expecting error, got: %v", err)
	}

	body := buf.String()
	if !strings.Contains(body, "Are you sure you want to delete the task with ID 7?") {
		t.Error("expected confirmation message naming the task id")
	}

	if !strings.Contains(body, `action="/tasks/7/delete"`) {
		t.Error("expected form posting to the delete action")
	}
}

func TestRenderEdit(t *testing.T) {
	var buf bytes.Buffer
	page := EditPage{TaskId: 4, Title: "Buy milk", Description: "Oat", Alert: services.TitleRequiredMessage}
	if err := NewRenderer().RenderEdit(&buf, page); err != nil {
		t.Fatalf("wasn't expecting error, got: %v", err)
	}

	body := buf.String()
	for _, want := range []string{"Edit task 4", `value="Buy milk"`, "Oat", services.TitleRequiredMessage, `action="/tasks/4/edit"`} {
		if !strings.Contains(body, want) {
			t.Errorf("expected body to contain %q", want)
		}
	}
}
