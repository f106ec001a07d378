package model

// User is a registered account. The password is stored and compared as
// given; the API echoes the full record back, matching the persisted shape.
type User struct {
	UserID   string `json:"user_id" db:"user_id" binding:"required,max=20"`
	Name     string `json:"name" db:"name" binding:"required,max=40"`
	Password string `json:"password" db:"password" binding:"required,max=100"`
}
