package db

import (
	"errors"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib" // Import driver
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // Import driver
)

const memoryPath = ":memory:"

var ErrNoDSN = errors.New("no postgres DSN configured")

// ConnectSQLite opens the database file at dbPath and applies the schema.
// The bool reports whether the file was created by this call, so callers can
// decide whether to seed it.
func ConnectSQLite(dbPath string) (*sqlx.DB, bool, error) {
	fresh := false
	dsn := dbPath
	if dbPath != memoryPath {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			fresh = true
		}
		dsn = dbPath + "?_busy_timeout=5000"
	}

	db, err := sqlx.Connect(DialectSQLite, dsn)
	if err != nil {
		return nil, false, fmt.Errorf("connect sqlite: %w", err)
	}
	if dbPath == memoryPath {
		// every connection to :memory: is its own database
		db.SetMaxOpenConns(1)
		fresh = true
	}

	if err := migrate(db, DialectSQLite); err != nil {
		db.Close()
		return nil, false, err
	}
	return db, fresh, nil
}

func ConnectPostgres(dsn string) (*sqlx.DB, error) {
	if dsn == "" {
		return nil, ErrNoDSN
	}
	db, err := sqlx.Connect(DialectPostgres, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := migrate(db, DialectPostgres); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func migrate(db *sqlx.DB, dialect string) error {
	ddl, err := TodosTable.CreateSQL(dialect)
	if err != nil {
		return err
	}
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("create table %s: %w", TodosTable.Name, err)
	}
	return nil
}

// DemoTitles are the rows Seed inserts when run without arguments.
var DemoTitles = []string{
	"Buy milk",
	"Water the plants",
	"Read the htmx docs",
}

// Seed inserts one pending todo per title inside a single transaction.
func Seed(db *sqlx.DB, titles ...string) error {
	if len(titles) == 0 {
		titles = DemoTitles
	}

	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	query := tx.Rebind("INSERT INTO todos (title, completed) VALUES (?, ?)")
	for _, title := range titles {
		if _, err := tx.Exec(query, title, false); err != nil {
			tx.Rollback()
			return fmt.Errorf("seed %q: %w", title, err)
		}
	}
	return tx.Commit()
}
