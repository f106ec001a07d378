package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/ms-horiuchi/todoapp/internal/apperr"
	"github.com/ms-horiuchi/todoapp/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeItems records the last call made through the ItemStore interface.
type fakeItems struct {
	items       map[int64]*model.Item
	createFails bool

	lastCreate       *model.ItemPatch
	lastUpdateID     int64
	lastUpdate       *model.ItemPatch
	lastFinishedDate *time.Time
	finishCalled     bool
}

func newFakeItems() *fakeItems {
	return &fakeItems{items: map[int64]*model.Item{}}
}

func (f *fakeItems) ListAll() []model.Item {
	out := []model.Item{}
	for _, it := range f.items {
		out = append(out, *it)
	}
	return out
}

func (f *fakeItems) GetByID(id int64) *model.Item {
	return f.items[id]
}

func (f *fakeItems) Create(p model.ItemPatch) *model.Item {
	f.lastCreate = &p
	if f.createFails {
		return nil
	}
	it := model.Item{ItemID: int64(len(f.items) + 1)}
	p.Apply(&it)
	f.items[it.ItemID] = &it
	return &it
}

func (f *fakeItems) Update(id int64, p model.ItemPatch) *model.Item {
	f.lastUpdateID = id
	f.lastUpdate = &p
	it, ok := f.items[id]
	if !ok {
		return nil
	}
	p.Apply(it)
	return it
}

func (f *fakeItems) UpdateFinishedDate(id int64, finishedDate *time.Time) *model.Item {
	f.finishCalled = true
	f.lastFinishedDate = finishedDate
	it, ok := f.items[id]
	if !ok {
		return nil
	}
	it.FinishedDate = finishedDate
	return it
}

func (f *fakeItems) Delete(id int64) bool {
	if _, ok := f.items[id]; !ok {
		return false
	}
	delete(f.items, id)
	return true
}

type fakeUsers struct {
	users    map[string]*model.User
	listErr  bool
	lastSave *model.User
}

func newFakeUsers(users ...model.User) *fakeUsers {
	f := &fakeUsers{users: map[string]*model.User{}}
	for i := range users {
		f.users[users[i].UserID] = &users[i]
	}
	return f
}

func (f *fakeUsers) ListAll() []model.User {
	if f.listErr {
		return nil
	}
	out := []model.User{}
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out
}

func (f *fakeUsers) GetByID(id string) *model.User {
	return f.users[id]
}

func (f *fakeUsers) GetByIDAndPassword(id, password string) *model.User {
	u := f.users[id]
	if u == nil || u.Password != password {
		return nil
	}
	return u
}

func (f *fakeUsers) Create(u model.User) *model.User {
	if _, exists := f.users[u.UserID]; exists {
		return nil
	}
	f.users[u.UserID] = &u
	f.lastSave = &u
	return &u
}

func (f *fakeUsers) Update(id string, u model.User) *model.User {
	if _, exists := f.users[id]; !exists {
		return nil
	}
	delete(f.users, id)
	f.users[u.UserID] = &u
	f.lastSave = &u
	return &u
}

func (f *fakeUsers) Delete(id string) bool {
	if _, exists := f.users[id]; !exists {
		return false
	}
	delete(f.users, id)
	return true
}

// fakeTokens maps "token-<id>" onto the backing user set.
type fakeTokens struct {
	users *fakeUsers
}

func (f *fakeTokens) IssueToken(userID string) (string, error) {
	return "token-" + userID, nil
}

func (f *fakeTokens) ResolveCurrentUser(token string) (*model.User, error) {
	if len(token) > 6 && token[:6] == "token-" {
		if u := f.users.GetByID(token[6:]); u != nil {
			return u, nil
		}
		return nil, apperr.Authentication("user not found")
	}
	return nil, apperr.Authentication("invalid token")
}

type testEnv struct {
	router *gin.Engine
	items  *fakeItems
	users  *fakeUsers
}

func newTestEnv(users ...model.User) *testEnv {
	fi := newFakeItems()
	fu := newFakeUsers(users...)
	router := NewRouter(fi, fu, &fakeTokens{users: fu}, "http://127.0.0.1:5500")
	return &testEnv{router: router, items: fi, users: fu}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer token-"+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst))
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "body: %s", w.Body.String())
}

var alice = model.User{UserID: "u1", Name: "Alice", Password: "p"}

func authHeaderless(t *testing.T, e *testEnv, method, path string) {
	t.Helper()
	w := e.do(t, method, path, "", nil)
	requireStatus(t, w, http.StatusUnauthorized)

	var resp APIResponse
	decode(t, w, &resp)
	require.False(t, resp.Success)
}
