package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SarahOester/AWP-Exam-assignment/internal/config"
	"github.com/SarahOester/AWP-Exam-assignment/internal/domain"
	"github.com/SarahOester/AWP-Exam-assignment/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTest builds the full router against a throwaway SQLite database.
// Redis is nil; the cache helpers treat that as a permanent miss.
func setupTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Profile{}))
	cfg := &config.Config{SessionSecret: "test-secret"}
	return SetupRouter(db, nil, cfg), db
}

// doRequest performs a form-encoded request with optional session cookies
func doRequest(t *testing.T, r http.Handler, method, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req, err := http.NewRequest(method, path, body)
	require.NoError(t, err)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// register signs up a user and returns the authenticated session cookies
func register(t *testing.T, r http.Handler, username, password string) []*http.Cookie {
	t.Helper()
	form := url.Values{
		"username":       {username},
		"password":       {password},
		"repeatPassword": {password},
	}
	w := doRequest(t, r, http.MethodPost, "/register", form, nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

// createProfile submits the create form and returns the profile path
func createProfile(t *testing.T, r http.Handler, cookies []*http.Cookie, title, fullName string) string {
	t.Helper()
	form := url.Values{
		"title":    {title},
		"fullName": {fullName},
		"tags":     {"go,testing"},
	}
	w := doRequest(t, r, http.MethodPost, "/profiles/new", form, cookies)
	require.Equal(t, http.StatusFound, w.Code)
	loc := w.Header().Get("Location")
	require.True(t, strings.HasPrefix(loc, "/profiles/"))
	return loc
}

func TestRegisterEstablishesSession(t *testing.T) {
	r, db := setupTest(t)

	cookies := register(t, r, "alice", "password123")

	// The cookie authenticates follow-up requests
	w := doRequest(t, r, http.MethodGet, "/profiles/new", nil, cookies)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&domain.User{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestRegisterMismatchedPasswordsPersistsNothing(t *testing.T) {
	r, db := setupTest(t)

	form := url.Values{
		"username":       {"alice"},
		"password":       {"password123"},
		"repeatPassword": {"password456"},
	}
	w := doRequest(t, r, http.MethodPost, "/register", form, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Passwords don&#39;t match")

	var count int64
	db.Model(&domain.User{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestRegisterShortPassword(t *testing.T) {
	r, _ := setupTest(t)

	form := url.Values{
		"username":       {"alice"},
		"password":       {"short"},
		"repeatPassword": {"short"},
	}
	w := doRequest(t, r, http.MethodPost, "/register", form, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Password must be at least 8 characters long")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	r, _ := setupTest(t)
	register(t, r, "alice", "password123")

	form := url.Values{
		"username":       {"alice"},
		"password":       {"password456"},
		"repeatPassword": {"password456"},
	}
	w := doRequest(t, r, http.MethodPost, "/register", form, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Username already exists")
}

func TestLoginRejectionsAreGeneric(t *testing.T) {
	r, _ := setupTest(t)
	register(t, r, "alice", "password123")

	wrongPassword := doRequest(t, r, http.MethodPost, "/login",
		url.Values{"username": {"alice"}, "password": {"wrongpassword"}}, nil)
	unknownUser := doRequest(t, r, http.MethodPost, "/login",
		url.Values{"username": {"nobody"}, "password": {"password123"}}, nil)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	// Same response for both failure modes, so usernames cannot be enumerated
	// (html/template escapes the apostrophe in the message)
	assert.Contains(t, wrongPassword.Body.String(), "User was not found or password didn&#39;t match")
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
}

func TestLoginSucceedsWithCorrectCredentials(t *testing.T) {
	r, _ := setupTest(t)
	register(t, r, "alice", "password123")

	w := doRequest(t, r, http.MethodPost, "/login",
		url.Values{"username": {"alice"}, "password": {"password123"}}, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.NotEmpty(t, w.Result().Cookies())
}

func TestPasswordWhitespaceIsSignificant(t *testing.T) {
	r, _ := setupTest(t)

	// Eight characters including the trailing space
	const password = "passwd7 "
	register(t, r, "alice", password)

	// Only the exact submission matches
	w := doRequest(t, r, http.MethodPost, "/login",
		url.Values{"username": {"alice"}, "password": {password}}, nil)
	assert.Equal(t, http.StatusFound, w.Code)

	w = doRequest(t, r, http.MethodPost, "/login",
		url.Values{"username": {"alice"}, "password": {"passwd7"}}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginPageShowsStateWhenAuthenticated(t *testing.T) {
	r, _ := setupTest(t)
	cookies := register(t, r, "alice", "password123")

	w := doRequest(t, r, http.MethodGet, "/login", nil, cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "You are already logged in")
}

func TestRequireSessionRedirectsAnonymous(t *testing.T) {
	r, _ := setupTest(t)

	for _, path := range []string{"/profiles/new", "/profiles/1", "/profiles/update/1"} {
		w := doRequest(t, r, http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusFound, w.Code, "path %s", path)
		assert.Equal(t, "/login", w.Header().Get("Location"), "path %s", path)
	}
}

func TestCreateProfileOncePerUser(t *testing.T) {
	r, _ := setupTest(t)
	cookies := register(t, r, "alice", "password123")
	createProfile(t, r, cookies, "Engineer", "Alice A")

	form := url.Values{"title": {"Designer"}, "fullName": {"Alice A"}}
	w := doRequest(t, r, http.MethodPost, "/profiles/new", form, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "You already created a profile!")
}

func TestCreateProfileRequiredFieldMessages(t *testing.T) {
	r, _ := setupTest(t)
	cookies := register(t, r, "alice", "password123")

	w := doRequest(t, r, http.MethodPost, "/profiles/new",
		url.Values{"bio": {"hello"}}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "A title is required")
	assert.Contains(t, w.Body.String(), "Firstname is required")
}

func TestProfileOwnership(t *testing.T) {
	r, _ := setupTest(t)
	owner := register(t, r, "alice", "password123")
	loc := createProfile(t, r, owner, "Engineer", "Alice A")
	other := register(t, r, "bob", "password123")

	// The owner sees the profile
	w := doRequest(t, r, http.MethodGet, loc, nil, owner)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Engineer")

	// A non-owner is rejected on view, edit and mutation
	w = doRequest(t, r, http.MethodGet, loc, nil, other)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, r, http.MethodGet, "/profiles/update"+strings.TrimPrefix(loc, "/profiles"), nil, other)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, r, http.MethodPost, loc, url.Values{"_action": {"delete"}}, other)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestProfileNotFound(t *testing.T) {
	r, _ := setupTest(t)
	cookies := register(t, r, "alice", "password123")

	w := doRequest(t, r, http.MethodGet, "/profiles/9999", nil, cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLikeToggle(t *testing.T) {
	r, db := setupTest(t)
	cookies := register(t, r, "alice", "password123")
	loc := createProfile(t, r, cookies, "Engineer", "Alice A")
	id := strings.TrimPrefix(loc, "/profiles/")

	w := doRequest(t, r, http.MethodPost, loc, url.Values{"_action": {"like"}}, cookies)
	assert.Equal(t, http.StatusFound, w.Code)
	profile, err := repository.FindProfileByID(db, id)
	require.NoError(t, err)
	assert.True(t, profile.Liked)

	w = doRequest(t, r, http.MethodPost, loc, url.Values{"_action": {"like"}}, cookies)
	assert.Equal(t, http.StatusFound, w.Code)
	profile, err = repository.FindProfileByID(db, id)
	require.NoError(t, err)
	assert.False(t, profile.Liked)
}

func TestUnknownProfileAction(t *testing.T) {
	r, _ := setupTest(t)
	cookies := register(t, r, "alice", "password123")
	loc := createProfile(t, r, cookies, "Engineer", "Alice A")

	w := doRequest(t, r, http.MethodPost, loc, url.Values{"_action": {"promote"}}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProfile(t *testing.T) {
	r, db := setupTest(t)
	cookies := register(t, r, "alice", "password123")
	loc := createProfile(t, r, cookies, "Engineer", "Alice A")
	id := strings.TrimPrefix(loc, "/profiles/")

	// The edit form is prefilled
	w := doRequest(t, r, http.MethodGet, "/profiles/update/"+id, nil, cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Engineer")

	form := url.Values{
		"title":    {"Senior Engineer"},
		"fullName": {"Alice A"},
		"bio":      {"updated bio"},
		"tags":     {"go,sql"},
	}
	w = doRequest(t, r, http.MethodPost, "/profiles/update/"+id, form, cookies)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, loc, w.Header().Get("Location"))

	profile, err := repository.FindProfileByID(db, id)
	require.NoError(t, err)
	assert.Equal(t, "Senior Engineer", profile.Title)
	assert.Equal(t, "updated bio", profile.Bio)
}

func TestDeleteProfile(t *testing.T) {
	r, _ := setupTest(t)
	cookies := register(t, r, "alice", "password123")
	loc := createProfile(t, r, cookies, "Engineer", "Alice A")

	w := doRequest(t, r, http.MethodPost, loc, url.Values{"_action": {"delete"}}, cookies)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = doRequest(t, r, http.MethodGet, loc, nil, cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIndexSearchAndSort(t *testing.T) {
	r, _ := setupTest(t)

	alice := register(t, r, "alice", "password123")
	createProfile(t, r, alice, "Zoo Engineer", "Alice A")
	bob := register(t, r, "bob", "password123")
	createProfile(t, r, bob, "Accountant", "Bob B")

	// The listing is public
	w := doRequest(t, r, http.MethodGet, "/", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Zoo Engineer")
	assert.Contains(t, w.Body.String(), "Accountant")

	// Case-insensitive substring search
	w = doRequest(t, r, http.MethodGet, "/?query=ENGINEER", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Zoo Engineer")
	assert.NotContains(t, w.Body.String(), "Accountant")

	// Ascending title order
	w = doRequest(t, r, http.MethodGet, "/?sort=title", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Less(t, strings.Index(body, "Accountant"), strings.Index(body, "Zoo Engineer"))
}

func TestLogoutClearsSession(t *testing.T) {
	r, _ := setupTest(t)
	cookies := register(t, r, "alice", "password123")

	w := doRequest(t, r, http.MethodPost, "/logout", nil, cookies)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	cleared := w.Result().Cookies()
	require.NotEmpty(t, cleared)
	assert.Empty(t, cleared[0].Value)
	assert.Negative(t, cleared[0].MaxAge)
}
