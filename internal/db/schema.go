package db

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Dialects understood by CreateSQL. The names match the database/sql driver
// names registered by go-sqlite3 and pgx/v5/stdlib.
const (
	DialectSQLite   = "sqlite3"
	DialectPostgres = "pgx"
)

var ErrUnknownDialect = errors.New("unknown sql dialect")

type ColumnType int

const (
	Integer ColumnType = iota + 1
	Text
	Boolean
)

func (t ColumnType) String() string {
	switch t {
	case Integer:
		return "integer"
	case Text:
		return "text"
	case Boolean:
		return "boolean"
	}
	return fmt.Sprintf("ColumnType(%d)", int(t))
}

type Column struct {
	Name          string
	Type          ColumnType
	PrimaryKey    bool
	AutoIncrement bool
	NotNull       bool
	// Default is nil for no default, otherwise a value of the column's Go
	// counterpart: int64, string or bool.
	Default any
}

type Table struct {
	Name    string
	Columns []Column
}

var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// NewTable validates the column definitions and returns the table. Exactly one
// primary key is required, and auto-increment is only allowed on it when it is
// an integer.
func NewTable(name string, cols ...Column) (Table, error) {
	if !identRe.MatchString(name) {
		return Table{}, fmt.Errorf("table name %q: invalid identifier", name)
	}
	if len(cols) == 0 {
		return Table{}, fmt.Errorf("table %s: no columns", name)
	}

	seen := make(map[string]bool, len(cols))
	pks := 0
	for _, c := range cols {
		if !identRe.MatchString(c.Name) {
			return Table{}, fmt.Errorf("table %s: column name %q: invalid identifier", name, c.Name)
		}
		if seen[c.Name] {
			return Table{}, fmt.Errorf("table %s: duplicate column %s", name, c.Name)
		}
		seen[c.Name] = true

		switch c.Type {
		case Integer, Text, Boolean:
		default:
			return Table{}, fmt.Errorf("table %s: column %s: unsupported type %s", name, c.Name, c.Type)
		}
		if c.PrimaryKey {
			pks++
		}
		if c.AutoIncrement && (!c.PrimaryKey || c.Type != Integer) {
			return Table{}, fmt.Errorf("table %s: column %s: auto-increment needs an integer primary key", name, c.Name)
		}
		if c.Default != nil && !defaultMatches(c.Type, c.Default) {
			return Table{}, fmt.Errorf("table %s: column %s: default %v is not %s", name, c.Name, c.Default, c.Type)
		}
	}
	if pks != 1 {
		return Table{}, fmt.Errorf("table %s: want exactly one primary key, got %d", name, pks)
	}

	return Table{Name: name, Columns: cols}, nil
}

func MustTable(name string, cols ...Column) Table {
	t, err := NewTable(name, cols...)
	if err != nil {
		panic(err)
	}
	return t
}

func defaultMatches(t ColumnType, v any) bool {
	switch v.(type) {
	case int64:
		return t == Integer
	case string:
		return t == Text
	case bool:
		return t == Boolean
	}
	return false
}

// TodosTable is the single table backing the application.
var TodosTable = MustTable("todos",
	Column{Name: "id", Type: Integer, PrimaryKey: true, AutoIncrement: true},
	Column{Name: "title", Type: Text, NotNull: true},
	Column{Name: "completed", Type: Boolean, NotNull: true, Default: false},
)

// CreateSQL renders an idempotent CREATE TABLE statement for the dialect.
func (t Table) CreateSQL(dialect string) (string, error) {
	if dialect != DialectSQLite && dialect != DialectPostgres {
		return "", fmt.Errorf("%w: %s", ErrUnknownDialect, dialect)
	}

	defs := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		defs = append(defs, "    "+columnSQL(c, dialect))
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n);", t.Name, strings.Join(defs, ",\n")), nil
}

func columnSQL(c Column, dialect string) string {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteByte(' ')

	if c.AutoIncrement && dialect == DialectPostgres {
		// SERIAL implies the sequence default and NOT NULL.
		b.WriteString("SERIAL PRIMARY KEY")
		return b.String()
	}

	switch c.Type {
	case Integer:
		b.WriteString("INTEGER")
	case Text:
		b.WriteString("TEXT")
	case Boolean:
		b.WriteString("BOOLEAN")
	}
	if c.PrimaryKey {
		b.WriteString(" PRIMARY KEY")
	}
	if c.AutoIncrement {
		b.WriteString(" AUTOINCREMENT")
	}
	if c.NotNull {
		b.WriteString(" NOT NULL")
	}
	if c.Default != nil {
		b.WriteString(" DEFAULT ")
		b.WriteString(literal(c.Default, dialect))
	}
	return b.String()
}

func literal(v any, dialect string) string {
	switch v := v.(type) {
	case bool:
		if dialect == DialectPostgres {
			if v {
				return "TRUE"
			}
			return "FALSE"
		}
		if v {
			return "1"
		}
		return "0"
	case string:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'"
	default:
		return fmt.Sprint(v)
	}
}
