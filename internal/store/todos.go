// Package store holds the queries against the todos table. Every operation is
// a single statement, so the database engine serializes conflicting writes.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/icdts/todoapp/internal/models"
)

var (
	ErrNotFound   = errors.New("todo not found")
	ErrEmptyTitle = errors.New("title can't be empty")
)

const columns = "id, title, completed"

type Todos struct {
	db *sqlx.DB
}

func NewTodos(db *sqlx.DB) *Todos {
	return &Todos{db: db}
}

func (s *Todos) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// ListAll returns every todo in insertion order.
func (s *Todos) ListAll(ctx context.Context) ([]models.Todo, error) {
	todos := []models.Todo{}
	if err := s.db.SelectContext(ctx, &todos, "SELECT "+columns+" FROM todos ORDER BY id ASC"); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

func (s *Todos) GetByID(ctx context.Context, id int64) (models.Todo, error) {
	var todo models.Todo
	err := s.db.GetContext(ctx, &todo, s.db.Rebind("SELECT "+columns+" FROM todos WHERE id = ?"), id)
	if err != nil {
		return models.Todo{}, notFound(err, "get", id)
	}
	return todo, nil
}

func (s *Todos) Insert(ctx context.Context, title string) (models.Todo, error) {
	if title == "" {
		return models.Todo{}, ErrEmptyTitle
	}

	var todo models.Todo
	query := s.db.Rebind("INSERT INTO todos (title, completed) VALUES (?, ?) RETURNING " + columns)
	if err := s.db.GetContext(ctx, &todo, query, title, false); err != nil {
		return models.Todo{}, fmt.Errorf("insert todo: %w", err)
	}
	return todo, nil
}

// ToggleCompleted flips the completed flag and returns the updated row.
func (s *Todos) ToggleCompleted(ctx context.Context, id int64) (models.Todo, error) {
	var todo models.Todo
	query := s.db.Rebind("UPDATE todos SET completed = NOT completed WHERE id = ? RETURNING " + columns)
	if err := s.db.GetContext(ctx, &todo, query, id); err != nil {
		return models.Todo{}, notFound(err, "toggle", id)
	}
	return todo, nil
}

// DeleteByID is idempotent: deleting a missing id is not an error.
func (s *Todos) DeleteByID(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM todos WHERE id = ?"), id); err != nil {
		return fmt.Errorf("delete todo %d: %w", id, err)
	}
	return nil
}

func notFound(err error, op string, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("%s todo %d: %w", op, id, err)
}
