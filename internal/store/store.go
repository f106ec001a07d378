// Package store owns the database connection and schema bootstrap.
package store

import (
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Deleting a user removes their items through the ON DELETE CASCADE
// constraint; the repositories never cascade by hand.
const schema = `
CREATE TABLE IF NOT EXISTS todo_user (
    user_id  VARCHAR(20)  PRIMARY KEY,
    name     VARCHAR(40)  NOT NULL,
    password VARCHAR(100) NOT NULL
);

CREATE TABLE IF NOT EXISTS todo_item (
    item_id       SERIAL PRIMARY KEY,
    task_name     VARCHAR(100) NOT NULL,
    user_id       VARCHAR(20)  NOT NULL REFERENCES todo_user (user_id) ON DELETE CASCADE,
    expire_date   TIMESTAMP    NOT NULL,
    finished_date TIMESTAMP
);
`

// Connect opens a Postgres connection pool and verifies it with a ping.
func Connect(dsn string) (*sqlx.DB, error) {
	return sqlx.Connect("postgres", dsn)
}

// EnsureSchema creates the tables if they do not exist yet.
func EnsureSchema(db *sqlx.DB) error {
	_, err := db.Exec(schema)
	return err
}
