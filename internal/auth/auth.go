// Package auth issues and validates the bearer tokens used to resolve the
// current user on each request.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ms-horiuchi/todoapp/internal/apperr"
	"github.com/ms-horiuchi/todoapp/internal/model"
)

// Tokens expire 24 hours after issue.
const tokenTTL = 24 * time.Hour

// Claims is the signed token payload.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// UserResolver looks up the account a token points at.
type UserResolver interface {
	GetByID(id string) *model.User
}

// Service signs tokens with a process-wide secret injected at startup.
type Service struct {
	secret []byte
	users  UserResolver
}

func NewService(secret []byte, users UserResolver) *Service {
	return &Service{secret: secret, users: users}
}

// IssueToken produces an HS256-signed token carrying the user id and expiry.
func (s *Service) IssueToken(userID string) (string, error) {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ResolveCurrentUser verifies the token and returns the account it names.
// Failures are apperr.Authentication values: "token expired" when the expiry
// has passed, "user not found" when the account is gone, "invalid token"
// otherwise.
func (s *Service) ResolveCurrentUser(tokenString string) (*model.User, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.Authentication("token expired")
		}
		return nil, apperr.Authentication("invalid token")
	}
	if !token.Valid || claims.UserID == "" {
		return nil, apperr.Authentication("invalid token")
	}

	user := s.users.GetByID(claims.UserID)
	if user == nil {
		return nil, apperr.Authentication("user not found")
	}
	return user, nil
}
