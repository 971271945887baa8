package models

type Todo struct {
	ID        int64  `db:"id"`
	Title     string `db:"title"`
	Completed bool   `db:"completed"`
}
