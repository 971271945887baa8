package server

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/icdts/todoapp/internal/store"
)

func (app *App) pageIndex(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := app.Render.Page(&buf); err != nil {
		app.serverError(w, r, err)
		return
	}
	writeHTML(w, http.StatusOK, &buf)
}

func (app *App) listTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := app.Todos.ListAll(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := app.Render.List(&buf, todos); err != nil {
		app.serverError(w, r, err)
		return
	}
	writeHTML(w, http.StatusOK, &buf)
}

func (app *App) createTodo(w http.ResponseWriter, r *http.Request) {
	todo, err := app.Todos.Insert(r.Context(), r.FormValue("title"))
	if errors.Is(err, store.ErrEmptyTitle) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := app.Render.Item(&buf, todo); err != nil {
		app.serverError(w, r, err)
		return
	}
	writeHTML(w, http.StatusOK, &buf)
}

// toggleTodo answers an unknown id with an empty 200 so htmx swaps nothing.
func (app *App) toggleTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if _, err := app.Todos.GetByID(r.Context(), id); err != nil {
		app.emptyOrError(w, r, err)
		return
	}
	todo, err := app.Todos.ToggleCompleted(r.Context(), id)
	if err != nil {
		app.emptyOrError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := app.Render.Item(&buf, todo); err != nil {
		app.serverError(w, r, err)
		return
	}
	writeHTML(w, http.StatusOK, &buf)
}

func (app *App) deleteTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := app.Todos.DeleteByID(r.Context(), id); err != nil {
		app.serverError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (app *App) emptyOrError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrNotFound) {
		w.WriteHeader(http.StatusOK)
		return
	}
	app.serverError(w, r, err)
}

func (app *App) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.Log.Error("request failed", "input", r.URL.Path, "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func writeHTML(w http.ResponseWriter, status int, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
