// Package repository translates between persisted records and API-facing
// types. Every write runs in its own transaction with rollback on failure,
// and store faults are logged and downgraded to empty results rather than
// propagated; callers cannot tell "does not exist" from "store error".
package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ms-horiuchi/todoapp/internal/model"
)

const itemColumns = "item_id, task_name, user_id, expire_date, finished_date"

// ItemRepository provides CRUD over todo items.
type ItemRepository struct {
	db  *sqlx.DB
	log *log.Logger
}

func NewItemRepository(db *sqlx.DB, logger *log.Logger) *ItemRepository {
	return &ItemRepository{db: db, log: logger}
}

// ListAll returns every item. On a store fault it logs and returns an empty
// list, never nil.
func (r *ItemRepository) ListAll() []model.Item {
	items := []model.Item{}
	err := r.db.Select(&items, "SELECT "+itemColumns+" FROM todo_item")
	if err != nil {
		r.log.Printf("Error fetching items: %v", err)
		return []model.Item{}
	}
	return items
}

// ListByUser returns the items owned by userID, with the same failure shape
// as ListAll.
func (r *ItemRepository) ListByUser(userID string) []model.Item {
	items := []model.Item{}
	err := r.db.Select(&items, "SELECT "+itemColumns+" FROM todo_item WHERE user_id = $1", userID)
	if err != nil {
		r.log.Printf("Error fetching items for user %s: %v", userID, err)
		return []model.Item{}
	}
	return items
}

// GetByID returns nil both when the item does not exist and on a store fault.
func (r *ItemRepository) GetByID(id int64) *model.Item {
	var it model.Item
	err := r.db.Get(&it, "SELECT "+itemColumns+" FROM todo_item WHERE item_id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		r.log.Printf("Error fetching item %d: %v", id, err)
		return nil
	}
	return &it
}

// Create inserts a new item applying only the fields the client explicitly
// set; unset fields take the column defaults. The generated item_id comes
// back in the result. Nil on any failure, after rollback.
func (r *ItemRepository) Create(p model.ItemPatch) *model.Item {
	var cols []string
	var args []interface{}
	add := func(col string, v interface{}) {
		cols = append(cols, col)
		args = append(args, v)
	}
	if p.TaskName != nil {
		add("task_name", *p.TaskName)
	}
	if p.UserID != nil {
		add("user_id", *p.UserID)
	}
	if p.ExpireDate != nil {
		add("expire_date", *p.ExpireDate)
	}
	if p.FinishedDate.Set {
		add("finished_date", p.FinishedDate.Ptr())
	}

	query := "INSERT INTO todo_item DEFAULT VALUES RETURNING " + itemColumns
	if len(cols) > 0 {
		marks := make([]string, len(cols))
		for i := range cols {
			marks[i] = fmt.Sprintf("$%d", i+1)
		}
		query = fmt.Sprintf("INSERT INTO todo_item (%s) VALUES (%s) RETURNING %s",
			strings.Join(cols, ", "), strings.Join(marks, ", "), itemColumns)
	}

	tx, err := r.db.Beginx()
	if err != nil {
		r.log.Printf("Error creating item: %v", err)
		return nil
	}
	var it model.Item
	if err := tx.Get(&it, query, args...); err != nil {
		tx.Rollback()
		r.log.Printf("Error creating item: %v", err)
		return nil
	}
	if err := tx.Commit(); err != nil {
		r.log.Printf("Error creating item: %v", err)
		return nil
	}
	return &it
}

// Update loads the item, overwrites the fields present in the patch, and
// commits. Nil without logging when the item is missing; nil with rollback
// and a log line on a store fault.
func (r *ItemRepository) Update(id int64, p model.ItemPatch) *model.Item {
	tx, err := r.db.Beginx()
	if err != nil {
		r.log.Printf("Error updating item %d: %v", id, err)
		return nil
	}
	var it model.Item
	err = tx.Get(&it, "SELECT "+itemColumns+" FROM todo_item WHERE item_id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		tx.Rollback()
		return nil
	}
	if err != nil {
		tx.Rollback()
		r.log.Printf("Error updating item %d: %v", id, err)
		return nil
	}

	p.Apply(&it)

	err = tx.Get(&it, `UPDATE todo_item
		SET task_name = $1, user_id = $2, expire_date = $3, finished_date = $4
		WHERE item_id = $5 RETURNING `+itemColumns,
		it.TaskName, it.UserID, it.ExpireDate, it.FinishedDate, id)
	if err != nil {
		tx.Rollback()
		r.log.Printf("Error updating item %d: %v", id, err)
		return nil
	}
	if err := tx.Commit(); err != nil {
		r.log.Printf("Error updating item %d: %v", id, err)
		return nil
	}
	return &it
}

// UpdateFinishedDate sets or clears only the completion timestamp. A nil
// finishedDate marks the item not completed again.
func (r *ItemRepository) UpdateFinishedDate(id int64, finishedDate *time.Time) *model.Item {
	tx, err := r.db.Beginx()
	if err != nil {
		r.log.Printf("Error updating finish date for item %d: %v", id, err)
		return nil
	}
	var exists model.Item
	err = tx.Get(&exists, "SELECT "+itemColumns+" FROM todo_item WHERE item_id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		tx.Rollback()
		return nil
	}
	if err != nil {
		tx.Rollback()
		r.log.Printf("Error updating finish date for item %d: %v", id, err)
		return nil
	}

	var it model.Item
	err = tx.Get(&it, "UPDATE todo_item SET finished_date = $1 WHERE item_id = $2 RETURNING "+itemColumns,
		finishedDate, id)
	if err != nil {
		tx.Rollback()
		r.log.Printf("Error updating finish date for item %d: %v", id, err)
		return nil
	}
	if err := tx.Commit(); err != nil {
		r.log.Printf("Error updating finish date for item %d: %v", id, err)
		return nil
	}
	return &it
}

// Delete reports whether a matching item existed and was removed. False on
// not-found and on store faults alike.
func (r *ItemRepository) Delete(id int64) bool {
	tx, err := r.db.Beginx()
	if err != nil {
		r.log.Printf("Error deleting item %d: %v", id, err)
		return false
	}
	res, err := tx.Exec("DELETE FROM todo_item WHERE item_id = $1", id)
	if err != nil {
		tx.Rollback()
		r.log.Printf("Error deleting item %d: %v", id, err)
		return false
	}
	n, err := res.RowsAffected()
	if err != nil || n == 0 {
		tx.Rollback()
		if err != nil {
			r.log.Printf("Error deleting item %d: %v", id, err)
		}
		return false
	}
	if err := tx.Commit(); err != nil {
		r.log.Printf("Error deleting item %d: %v", id, err)
		return false
	}
	return true
}
