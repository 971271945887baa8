// Package server binds the todo handlers to their routes.
package server

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"

	"github.com/icdts/todoapp/internal/models"
	"github.com/icdts/todoapp/internal/render"
)

type TodoStore interface {
	ListAll(ctx context.Context) ([]models.Todo, error)
	GetByID(ctx context.Context, id int64) (models.Todo, error)
	Insert(ctx context.Context, title string) (models.Todo, error)
	ToggleCompleted(ctx context.Context, id int64) (models.Todo, error)
	DeleteByID(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

type App struct {
	Todos  TodoStore
	Render *render.Renderer
	Log    *slog.Logger

	// Static holds static/styles.css, served unless StylesPath is set.
	Static     fs.FS
	StylesPath string
	// HTMXPath, when set, is served at /assets/htmx.js.
	HTMXPath string
}

const HTMXRoute = "/assets/htmx.js"

func (app *App) Routes() http.Handler {
	r := mux.NewRouter()
	r.Use(app.logRequests)

	r.Methods(http.MethodGet).Path("/healthz").HandlerFunc(healthz)
	r.Methods(http.MethodGet).Path("/readyz").HandlerFunc(app.readyz)
	r.Methods(http.MethodGet).Path("/styles.css").HandlerFunc(app.styles)
	if app.HTMXPath != "" {
		r.Methods(http.MethodGet).Path(HTMXRoute).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, app.HTMXPath)
		})
	}

	r.Methods(http.MethodGet).Path("/").HandlerFunc(app.pageIndex)
	r.Methods(http.MethodGet).Path("/todos").HandlerFunc(app.listTodos)
	r.Methods(http.MethodPost).Path("/todos").HandlerFunc(app.createTodo)
	r.Methods(http.MethodPost).Path("/todos/{id:[0-9]+}").HandlerFunc(app.toggleTodo)
	r.Methods(http.MethodDelete).Path("/todos/{id:[0-9]+}").HandlerFunc(app.deleteTodo)

	return r
}

func (app *App) logRequests(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		m := httpsnoop.CaptureMetrics(handler, writer, request)
		app.Log.Info("handled", "method", request.Method, "url", request.URL.String(), "duration", m.Duration, "status", m.Code)
	})
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (app *App) readyz(w http.ResponseWriter, r *http.Request) {
	if err := app.Todos.Ping(r.Context()); err != nil {
		app.Log.Warn("storage not ready", "error", err)
		http.Error(w, "DB Not Ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}

func (app *App) styles(w http.ResponseWriter, r *http.Request) {
	if app.StylesPath != "" {
		http.ServeFile(w, r, app.StylesPath)
		return
	}
	http.ServeFileFS(w, r, app.Static, "static/styles.css")
}
