package views

import (
	"embed"
	"html/template"
	"io"

	"github.com/mdayat/demi-masa-todo-client/internal/services"
)

const (
	EmptyMessage         = "🎉 Congratulations! There are no pending tasks."
	LoadingMessage       = "Loading tasks..."
	NoDescriptionMessage = "No description"
)

//go:embed templates/*.html
var templateFS embed.FS

type TaskItem struct {
	Id          int64
	Title       string
	Description string
	Placeholder bool
	Completed   bool
}

type TaskForm struct {
	Title       string
	Description string
	Alert       string
	Error       string
	Submitting  bool
}

// IndexPage shows at most one of the loading indicator, the error banner
// and the list. Empty is set when the list is shown without items.
type IndexPage struct {
	Loading  bool
	Error    string
	ShowList bool
	Empty    bool
	Items    []TaskItem
	Form     TaskForm
}

type ConfirmDeletePage struct {
	TaskId  int64
	Message string
}

type EditPage struct {
	TaskId      int64
	Title       string
	Description string
	Alert       string
	Error       string
}

func NewIndexPage(state services.TaskListState, form TaskForm) IndexPage {
	page := IndexPage{Form: form}

	switch {
	case state.Loading:
		page.Loading = true
	case state.Error != "":
		page.Error = state.Error
	default:
		page.ShowList = true
		page.Empty = len(state.Tasks) == 0
		page.Items = make([]TaskItem, 0, len(state.Tasks))
		for _, task := range state.Tasks {
			item := TaskItem{
				Id:          task.Id,
				Title:       task.Title,
				Description: task.Description,
				Completed:   task.Completed,
			}
			if item.Description == "" {
				item.Description = NoDescriptionMessage
				item.Placeholder = true
			}
			page.Items = append(page.Items, item)
		}
	}

	return page
}

func NewTaskForm(state services.TaskFormState, submitting bool) TaskForm {
	return TaskForm{
		Title:       state.Title,
		Description: state.Description,
		Alert:       state.Alert,
		Error:       state.Error,
		Submitting:  submitting,
	}
}

type Renderer interface {
	RenderIndex(w io.Writer, page IndexPage) error
	RenderConfirmDelete(w io.Writer, page ConfirmDeletePage) error
	RenderEdit(w io.Writer, page EditPage) error
}

type renderer struct {
	templates *template.Template
}

func NewRenderer() Renderer {
	return &renderer{
		templates: template.Must(template.New("").Funcs(template.FuncMap{
			"emptyMessage":   func() string { return EmptyMessage },
			"loadingMessage": func() string { return LoadingMessage },
		}).ParseFS(templateFS, "templates/*.html")),
	}
}

func (r renderer) RenderIndex(w io.Writer, page IndexPage) error {
	return r.templates.ExecuteTemplate(w, "index.html", page)
}

func (r renderer) RenderConfirmDelete(w io.Writer, page ConfirmDeletePage) error {
	return r.templates.ExecuteTemplate(w, "confirm_delete.html", page)
}

func (r renderer) RenderEdit(w io.Writer, page EditPage) error {
	return r.templates.ExecuteTemplate(w, "edit.html", page)
}
