package repository

import (
	"database/sql"
	"errors"
	"log"

	"github.com/jmoiron/sqlx"

	"github.com/ms-horiuchi/todoapp/internal/model"
)

const userColumns = "user_id, name, password"

// UserRepository provides CRUD over user accounts. Unlike items, user
// create and update always apply the full record, and ListAll returns nil
// rather than an empty list on a store fault.
type UserRepository struct {
	db  *sqlx.DB
	log *log.Logger
}

func NewUserRepository(db *sqlx.DB, logger *log.Logger) *UserRepository {
	return &UserRepository{db: db, log: logger}
}

// ListAll returns every user, or nil on a store fault.
func (r *UserRepository) ListAll() []model.User {
	users := []model.User{}
	err := r.db.Select(&users, "SELECT "+userColumns+" FROM todo_user")
	if err != nil {
		r.log.Printf("Error fetching users: %v", err)
		return nil
	}
	return users
}

func (r *UserRepository) GetByID(id string) *model.User {
	var u model.User
	err := r.db.Get(&u, "SELECT "+userColumns+" FROM todo_user WHERE user_id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		r.log.Printf("Error fetching user %s: %v", id, err)
		return nil
	}
	return &u
}

// GetByIDAndPassword is the login lookup: an equality match on both fields,
// nil when either does not match or on a store fault.
func (r *UserRepository) GetByIDAndPassword(id, password string) *model.User {
	var u model.User
	err := r.db.Get(&u, "SELECT "+userColumns+" FROM todo_user WHERE user_id = $1 AND password = $2",
		id, password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		r.log.Printf("Error fetching user %s: %v", id, err)
		return nil
	}
	return &u
}

// Create inserts the full record. Nil on any failure, including a duplicate
// user_id, after rollback.
func (r *UserRepository) Create(u model.User) *model.User {
	tx, err := r.db.Beginx()
	if err != nil {
		r.log.Printf("Error creating user: %v", err)
		return nil
	}
	var created model.User
	err = tx.Get(&created, "INSERT INTO todo_user (user_id, name, password) VALUES ($1, $2, $3) RETURNING "+userColumns,
		u.UserID, u.Name, u.Password)
	if err != nil {
		tx.Rollback()
		r.log.Printf("Error creating user: %v", err)
		return nil
	}
	if err := tx.Commit(); err != nil {
		r.log.Printf("Error creating user: %v", err)
		return nil
	}
	return &created
}

// Update loads the user by id and, when present, replaces every field with
// the supplied record, user_id included. Nil when the user is missing.
func (r *UserRepository) Update(id string, u model.User) *model.User {
	tx, err := r.db.Beginx()
	if err != nil {
		r.log.Printf("Error updating user %s: %v", id, err)
		return nil
	}
	var existing model.User
	err = tx.Get(&existing, "SELECT "+userColumns+" FROM todo_user WHERE user_id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		tx.Rollback()
		return nil
	}
	if err != nil {
		tx.Rollback()
		r.log.Printf("Error updating user %s: %v", id, err)
		return nil
	}

	var updated model.User
	err = tx.Get(&updated, "UPDATE todo_user SET user_id = $1, name = $2, password = $3 WHERE user_id = $4 RETURNING "+userColumns,
		u.UserID, u.Name, u.Password, id)
	if err != nil {
		tx.Rollback()
		r.log.Printf("Error updating user %s: %v", id, err)
		return nil
	}
	if err := tx.Commit(); err != nil {
		r.log.Printf("Error updating user %s: %v", id, err)
		return nil
	}
	return &updated
}

// Delete removes the user; the store's ON DELETE CASCADE removes their
// items. False on not-found and on store faults alike.
func (r *UserRepository) Delete(id string) bool {
	tx, err := r.db.Beginx()
	if err != nil {
		r.log.Printf("Error deleting user %s: %v", id, err)
		return false
	}
	res, err := tx.Exec("DELETE FROM todo_user WHERE user_id = $1", id)
	if err != nil {
		tx.Rollback()
		r.log.Printf("Error deleting user %s: %v", id, err)
		return false
	}
	n, err := res.RowsAffected()
	if err != nil || n == 0 {
		tx.Rollback()
		if err != nil {
			r.log.Printf("Error deleting user %s: %v", id, err)
		}
		return false
	}
	if err := tx.Commit(); err != nil {
		r.log.Printf("Error deleting user %s: %v", id, err)
		return false
	}
	return true
}
