package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"mindhaven/internal/config"
	"mindhaven/internal/logger"
	"mindhaven/internal/middleware"
	"mindhaven/internal/session"
	"mindhaven/internal/user/model"
	"mindhaven/internal/user/repository"
	"mindhaven/internal/user/service"
	appErrors "mindhaven/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cookieName = "mh_session"

func TestMain(m *testing.M) {
	if err := logger.Init("production"); err != nil {
		os.Exit(1)
	}
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// --- fake repository ---

type fakeRepo struct {
	users map[string]*model.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[string]*model.User)}
}

func (f *fakeRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	user, ok := f.users[strings.ToLower(email)]
	if !ok {
		return nil, appErrors.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeRepo) Create(_ context.Context, user *model.User) error {
	key := strings.ToLower(user.Email)
	if _, exists := f.users[key]; exists {
		return appErrors.ErrDuplicateEmail
	}
	user.ID = uuid.New()
	clone := *user
	f.users[key] = &clone
	return nil
}

func (f *fakeRepo) UpdateLastLogin(_ context.Context, userID uuid.UUID, at time.Time) error {
	for _, user := range f.users {
		if user.ID == userID {
			t := at
			user.LastLogin = &t
			return nil
		}
	}
	return appErrors.ErrUserNotFound
}

func (f *fakeRepo) UpdatePassword(_ context.Context, userID uuid.UUID, hash string) error {
	for _, user := range f.users {
		if user.ID == userID {
			user.PasswordHashed = hash
			return nil
		}
	}
	return appErrors.ErrUserNotFound
}

func (f *fakeRepo) UpdatePasswordByEmail(_ context.Context, email, hash string) (int64, error) {
	user, ok := f.users[strings.ToLower(email)]
	if !ok {
		return 0, nil
	}
	user.PasswordHashed = hash
	return 1, nil
}

func (f *fakeRepo) Transaction(_ context.Context, fn func(repository.UserRepository) error) error {
	return fn(f)
}

// --- setup ---

type testApp struct {
	router   *gin.Engine
	service  *service.AuthService
	sessions *session.MemoryStore
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	sessionCfg := &config.SessionConfig{
		CookieName: cookieName,
		TTL:        time.Minute,
	}

	sessions := session.NewMemoryStore(sessionCfg.TTL)
	svc := service.NewService(newFakeRepo(), sessions)

	router := gin.New()
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.SessionMiddleware(sessionCfg, sessions))
	router.LoadHTMLGlob("../../../web/templates/*.html")

	NewPageHandler(svc, sessionCfg).RegisterRoutes(router)

	return &testApp{router: router, service: svc, sessions: sessions}
}

func (app *testApp) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

func (app *testApp) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

func (app *testApp) registerJane(t *testing.T) {
	t.Helper()

	w := app.postForm("/register", url.Values{
		"first_name": {"Jane"},
		"last_name":  {"Doe"},
		"email":      {"jane@example.com"},
		"password":   {"Abcdef12"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
}

func (app *testApp) loginJane(t *testing.T) *http.Cookie {
	t.Helper()

	w := app.postForm("/login", url.Values{
		"email":    {"jane@example.com"},
		"password": {"Abcdef12"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == cookieName && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("no session cookie set on login")
	return nil
}

// --- pages ---

func TestLanding_Anonymous(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "A safe place to talk")
	assert.Contains(t, w.Body.String(), "/login")
}

func TestLanding_LogoutBanner(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/?logout=success")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "You have been logged out")
}

func TestRegister_SuccessRedirectsToLogin(t *testing.T) {
	app := newTestApp(t)

	w := app.postForm("/register", url.Values{
		"first_name": {"Jane"},
		"last_name":  {"Doe"},
		"email":      {"jane@example.com"},
		"password":   {"Abcdef12"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?registered=1", w.Header().Get("Location"))
}

func TestRegister_DuplicateEmailShowsFieldError(t *testing.T) {
	app := newTestApp(t)
	app.registerJane(t)

	w := app.postForm("/register", url.Values{
		"first_name": {"Janet"},
		"last_name":  {"Doe"},
		"email":      {"jane@example.com"},
		"password":   {"Abcdef12"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "already registered")
}

func TestRegister_ValidationErrorsEchoInput(t *testing.T) {
	app := newTestApp(t)

	w := app.postForm("/register", url.Values{
		"first_name": {""},
		"last_name":  {"Doe"},
		"email":      {"jane@example.com"},
		"password":   {"weak"},
	})

	body := w.Body.String()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body, "First name is required")
	assert.Contains(t, body, "at least 8 characters")
	// Sanitized input is echoed, the password never is.
	assert.Contains(t, body, `value="jane@example.com"`)
	assert.NotContains(t, body, "weak")
}

func TestLogin_SuccessSetsSessionAndRedirectsByRole(t *testing.T) {
	app := newTestApp(t)
	app.registerJane(t)

	w := app.postForm("/login", url.Values{
		"email":    {"jane@example.com"},
		"password": {"Abcdef12"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/patient", w.Header().Get("Location"))
	assert.Equal(t, 1, app.sessions.Len())
}

func TestLogin_WrongPasswordIsOpaque(t *testing.T) {
	app := newTestApp(t)
	app.registerJane(t)

	w := app.postForm("/login", url.Values{
		"email":    {"jane@example.com"},
		"password": {"WrongPass1"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "invalid email or password")
	assert.Equal(t, 0, app.sessions.Len())
}

func TestLogin_MissingFields(t *testing.T) {
	app := newTestApp(t)

	w := app.postForm("/login", url.Values{})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Email is required")
	assert.Contains(t, w.Body.String(), "Password is required")
}

func TestLogin_AlreadyLoggedInRedirects(t *testing.T) {
	app := newTestApp(t)
	app.registerJane(t)
	cookie := app.loginJane(t)

	w := app.get("/login", cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/patient", w.Header().Get("Location"))
}

func TestLogout_DestroysSession(t *testing.T) {
	app := newTestApp(t)
	app.registerJane(t)
	cookie := app.loginJane(t)

	w := app.get("/logout", cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/?logout=success", w.Header().Get("Location"))
	assert.Equal(t, 0, app.sessions.Len())
}

// --- dashboards ---

func TestPatientDashboard_RequiresLogin(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/patient")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestPatientDashboard_LoggedIn(t *testing.T) {
	app := newTestApp(t)
	app.registerJane(t)
	cookie := app.loginJane(t)

	w := app.get("/patient", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hello, Jane")
}

func TestAdminDashboard_PatientIsRedirectedAway(t *testing.T) {
	app := newTestApp(t)
	app.registerJane(t)
	cookie := app.loginJane(t)

	w := app.get("/admin", cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/patient", w.Header().Get("Location"))
}
