package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"ladle/auth"
	"ladle/db"
	"ladle/flash"
	"ladle/models"
	"ladle/routes"
	"ladle/session"
	"ladle/tmpl"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserStore struct {
	users map[string]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]models.User{}}
}

func (s *fakeUserStore) FindByUsername(_ context.Context, username string) (models.User, error) {
	user, ok := s.users[username]
	if !ok {
		return models.User{}, db.ErrNotFound
	}
	return user, nil
}

func (s *fakeUserStore) Insert(_ context.Context, user models.User) error {
	if _, ok := s.users[user.Username]; ok {
		return db.ErrDuplicate
	}
	s.users[user.Username] = user
	return nil
}

func newAuthRouter(users *fakeUserStore, sessions *session.Manager) *httprouter.Router {
	router := httprouter.New()
	routes.AddAuthRoutes(router, &auth.Handler{
		Users:    users,
		Sessions: sessions,
		Tmpl:     tmpl.New(),
	})
	return router
}

func postForm(router *httprouter.Router, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// poppedFlash replays the response cookies into a fresh request and pops the
// flash the way the next page render would.
func poppedFlash(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	return flash.Pop(httptest.NewRecorder(), req)
}

// sessionUser extracts the authenticated username from the response cookies.
func sessionUser(t *testing.T, sessions *session.Manager, w *httptest.ResponseRecorder) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	return sessions.Username(req)
}

func TestRegisterStartsSession(t *testing.T) {
	users := newFakeUserStore()
	sessions := session.NewManager("test-secret")
	router := newAuthRouter(users, sessions)

	w := postForm(router, "/register", url.Values{
		"username":  {"Bob"},
		"firstname": {"Bob"},
		"password":  {"hunter2"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/profile/bob", w.Header().Get("Location"))
	assert.Equal(t, "bob", sessionUser(t, sessions, w))
	assert.Equal(t, "Registration Successful", poppedFlash(t, w))

	stored, err := users.FindByUsername(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, "bob", stored.Username)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("hunter2")))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	users := newFakeUserStore()
	sessions := session.NewManager("test-secret")
	router := newAuthRouter(users, sessions)

	w := postForm(router, "/register", url.Values{
		"username":  {"bob"},
		"firstname": {"Bob"},
		"password":  {"hunter2"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)

	// same username in a different case must conflict, not create a second user
	w = postForm(router, "/register", url.Values{
		"username":  {"BOB"},
		"firstname": {"Robert"},
		"password":  {"other"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/register", w.Header().Get("Location"))
	assert.Equal(t, "Username already exists", poppedFlash(t, w))
	assert.Len(t, users.users, 1)
}

func TestLoginCaseInsensitiveUsername(t *testing.T) {
	users := newFakeUserStore()
	sessions := session.NewManager("test-secret")
	router := newAuthRouter(users, sessions)

	w := postForm(router, "/register", url.Values{
		"username":  {"bob"},
		"firstname": {"Bob"},
		"password":  {"hunter2"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = postForm(router, "/login", url.Values{
		"username": {"Bob"},
		"password": {"hunter2"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/profile/bob", w.Header().Get("Location"))
	assert.Equal(t, "bob", sessionUser(t, sessions, w))
	assert.Equal(t, "Welcome, Bob", poppedFlash(t, w))
}

func TestLoginGenericInvalidCredentials(t *testing.T) {
	users := newFakeUserStore()
	hashed, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.DefaultCost)
	require.NoError(t, err)
	users.users["alice"] = models.User{Username: "alice", Firstname: "alice", Password: string(hashed)}

	sessions := session.NewManager("test-secret")
	router := newAuthRouter(users, sessions)

	wrongPassword := postForm(router, "/login", url.Values{
		"username": {"alice"},
		"password": {"nope"},
	})
	unknownUser := postForm(router, "/login", url.Values{
		"username": {"nobody"},
		"password": {"hunter2"},
	})

	// both failures look identical to the client
	for _, w := range []*httptest.ResponseRecorder{wrongPassword, unknownUser} {
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
		assert.Equal(t, "Incorrect Username and/or Password", poppedFlash(t, w))
		assert.Empty(t, sessionUser(t, sessions, w))
	}
}

func TestLogoutWithoutSession(t *testing.T) {
	sessions := session.NewManager("test-secret")
	router := newAuthRouter(newFakeUserStore(), sessions)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Equal(t, "You have been logged out", poppedFlash(t, w))
}

func TestLogoutClearsSession(t *testing.T) {
	sessions := session.NewManager("test-secret")
	router := newAuthRouter(newFakeUserStore(), sessions)

	login := httptest.NewRecorder()
	require.NoError(t, sessions.Set(login, "alice"))

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	for _, c := range login.Result().Cookies() {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Empty(t, sessionUser(t, sessions, w))
}
