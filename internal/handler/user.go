package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ms-horiuchi/todoapp/internal/model"
)

// UserHandler serves the /users routes. Registration and login are public;
// everything else requires auth.
type UserHandler struct {
	users  UserStore
	tokens TokenService
}

func NewUserHandler(users UserStore, tokens TokenService) *UserHandler {
	return &UserHandler{users: users, tokens: tokens}
}

// List returns every user. On a store fault the repository hands back nil,
// which renders as data: null in the envelope.
func (h *UserHandler) List(c *gin.Context) {
	users := h.users.ListAll()
	c.JSON(http.StatusOK, ok("Fetched user list", users))
}

func (h *UserHandler) Get(c *gin.Context) {
	user := h.users.GetByID(c.Param("user_id"))
	if user == nil {
		c.JSON(http.StatusNotFound, fail("User not found"))
		return
	}
	c.JSON(http.StatusOK, ok("Fetched user", user))
}

// Me echoes the token-resolved caller.
func (h *UserHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, ok("Fetched user", currentUser(c)))
}

func (h *UserHandler) Create(c *gin.Context) {
	var user model.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, fail("Invalid user payload"))
		return
	}
	created := h.users.Create(user)
	if created == nil {
		c.JSON(http.StatusBadRequest, fail("Failed to create user"))
		return
	}
	c.JSON(http.StatusCreated, ok("User created", created))
}

// Login matches the query-supplied credentials against the store and, on
// success, returns a fresh bearer token alongside the user.
func (h *UserHandler) Login(c *gin.Context) {
	userID := c.Query("user_id")
	password := c.Query("password")

	user := h.users.GetByIDAndPassword(userID, password)
	if user == nil {
		c.JSON(http.StatusUnauthorized, fail("authentication failed"))
		return
	}

	token, err := h.tokens.IssueToken(user.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, fail("Failed to generate token"))
		return
	}
	c.JSON(http.StatusOK, LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        *user,
	})
}

func (h *UserHandler) Update(c *gin.Context) {
	var user model.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, fail("Invalid user payload"))
		return
	}
	updated := h.users.Update(c.Param("user_id"), user)
	if updated == nil {
		c.JSON(http.StatusNotFound, fail("User not found"))
		return
	}
	c.JSON(http.StatusOK, ok("User updated", updated))
}

func (h *UserHandler) Delete(c *gin.Context) {
	if !h.users.Delete(c.Param("user_id")) {
		c.JSON(http.StatusNotFound, fail("User not found"))
		return
	}
	c.JSON(http.StatusOK, ok("User deleted", nil))
}
