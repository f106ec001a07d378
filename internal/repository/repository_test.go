package repository

import (
	"io"
	"log"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/ms-horiuchi/todoapp/internal/model"
	"github.com/ms-horiuchi/todoapp/internal/store"
)

var testLogger = log.New(io.Discard, "", 0)

// testDB connects to the Postgres named by TEST_DATABASE_URL and hands back
// a clean schema. Tests are skipped when the variable is unset.
func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := store.Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, store.EnsureSchema(db))

	_, err = db.Exec("DELETE FROM todo_item")
	require.NoError(t, err)
	_, err = db.Exec("DELETE FROM todo_user")
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })
	return db
}

func seedUser(t *testing.T, users *UserRepository, id string) model.User {
	t.Helper()
	created := users.Create(model.User{UserID: id, Name: "Alice", Password: "p"})
	require.NotNil(t, created)
	return *created
}

func seedItem(t *testing.T, items *ItemRepository, userID, taskName string) model.Item {
	t.Helper()
	expire := time.Date(2026, 9, 30, 12, 0, 0, 0, time.UTC)
	patch := model.ItemPatch{TaskName: &taskName, UserID: &userID, ExpireDate: &expire}
	created := items.Create(patch)
	require.NotNil(t, created)
	return *created
}
