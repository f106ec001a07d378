// Package handler maps HTTP routes onto the repositories and the auth
// service. User routes answer with a {success, message, data} envelope;
// item routes answer with the bare entity, or {"detail": ...} on errors.
package handler

import (
	"time"

	"github.com/ms-horiuchi/todoapp/internal/model"
)

// ItemStore is the slice of the item repository the handlers use.
type ItemStore interface {
	ListAll() []model.Item
	GetByID(id int64) *model.Item
	Create(p model.ItemPatch) *model.Item
	Update(id int64, p model.ItemPatch) *model.Item
	UpdateFinishedDate(id int64, finishedDate *time.Time) *model.Item
	Delete(id int64) bool
}

// UserStore is the slice of the user repository the handlers use.
type UserStore interface {
	ListAll() []model.User
	GetByID(id string) *model.User
	GetByIDAndPassword(id, password string) *model.User
	Create(u model.User) *model.User
	Update(id string, u model.User) *model.User
	Delete(id string) bool
}

// TokenService issues bearer tokens and resolves them back to users.
type TokenService interface {
	IssueToken(userID string) (string, error)
	ResolveCurrentUser(token string) (*model.User, error)
}

// APIResponse is the envelope wrapping every user-route response.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func ok(message string, data interface{}) APIResponse {
	return APIResponse{Success: true, Message: message, Data: data}
}

func fail(message string) APIResponse {
	return APIResponse{Success: false, Message: message}
}

// LoginResponse carries the issued token alongside the user's fields.
type LoginResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	User        model.User `json:"user"`
}
