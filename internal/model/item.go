package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// Item is a task owned by a user. A nil FinishedDate means not completed.
type Item struct {
	ItemID       int64      `json:"item_id" db:"item_id"`
	TaskName     string     `json:"task_name" db:"task_name"`
	UserID       string     `json:"user_id" db:"user_id"`
	ExpireDate   time.Time  `json:"expire_date" db:"expire_date"`
	FinishedDate *time.Time `json:"finished_date" db:"finished_date"`
}

// NullableTime distinguishes three request states for a timestamp field:
// absent from the body (Set false), present as null (Set true, Valid false),
// and present with a value.
type NullableTime struct {
	Set   bool
	Valid bool
	Time  time.Time
}

func (n *NullableTime) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(data, []byte("null")) {
		n.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &n.Time); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

func (n NullableTime) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Time)
}

// Ptr returns the value as a nullable column pointer.
func (n NullableTime) Ptr() *time.Time {
	if !n.Valid {
		return nil
	}
	t := n.Time
	return &t
}

// ItemPatch carries the fields a client explicitly supplied for an item
// create or update. Nil pointer fields were absent from the request and are
// left untouched on merge.
type ItemPatch struct {
	TaskName     *string      `json:"task_name"`
	UserID       *string      `json:"user_id"`
	ExpireDate   *time.Time   `json:"expire_date"`
	FinishedDate NullableTime `json:"finished_date"`
}

// Apply overwrites exactly the fields present in the patch.
func (p ItemPatch) Apply(it *Item) {
	if p.TaskName != nil {
		it.TaskName = *p.TaskName
	}
	if p.UserID != nil {
		it.UserID = *p.UserID
	}
	if p.ExpireDate != nil {
		it.ExpireDate = *p.ExpireDate
	}
	if p.FinishedDate.Set {
		it.FinishedDate = p.FinishedDate.Ptr()
	}
}

// SetUserID forces the owner field, overriding whatever the client sent.
func (p *ItemPatch) SetUserID(userID string) {
	p.UserID = &userID
}
