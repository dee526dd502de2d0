package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pathlight/internal/models"
	"github.com/pathlight/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuthenticator struct {
	users map[string]*models.User
	err   error
	seen  []string
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, token string) (*models.User, error) {
	f.seen = append(f.seen, token)
	if f.err != nil {
		return nil, f.err
	}
	if user, ok := f.users[token]; ok {
		return user, nil
	}
	return nil, service.ErrUnauthorized
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := appLogger
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { SetLogger(prev) })
	return &buf
}

func newAuthRouter(auth Authenticator) *gin.Engine {
	r := gin.New()
	r.GET("/me", AuthMiddleware(auth), func(c *gin.Context) {
		c.JSON(http.StatusOK, GetUser(c))
	})
	return r
}

func doGet(r http.Handler, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	user := &models.User{ID: models.NewID(), Email: "a@x.com", IsActive: true}
	auth := &fakeAuthenticator{users: map[string]*models.User{"good": user}}
	r := newAuthRouter(auth)

	rec := doGet(r, "/me", "Bearer good")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"a@x.com"`)

	rec = doGet(r, "/me", "bearer good")
	assert.Equal(t, http.StatusOK, rec.Code)

	for _, header := range []string{"", "good", "Basic good", "Bearer ", "Bearer bad"} {
		rec := doGet(r, "/me", header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"), header)
		assert.Contains(t, rec.Body.String(), `"detail"`, header)
	}

	// malformed headers never reach the authenticator
	assert.Equal(t, []string{"good", "good", "bad"}, auth.seen)
}

func TestAuthMiddlewareStoreFailure(t *testing.T) {
	buf := captureLogs(t)

	r := newAuthRouter(&fakeAuthenticator{err: errors.New("connection refused")})

	rec := doGet(r, "/me", "Bearer any")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
	assert.Contains(t, buf.String(), "connection refused")
}

func TestRequestLoggerMiddleware(t *testing.T) {
	buf := captureLogs(t)

	r := gin.New()
	r.Use(RequestLoggerMiddleware())
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/fail", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
		c.Status(http.StatusInternalServerError)
	})

	doGet(r, "/ok?x=1", "")
	assert.Contains(t, buf.String(), "level=INFO")
	assert.Contains(t, buf.String(), "url=\"/ok?x=1\"")
	assert.Contains(t, buf.String(), "status=200")

	buf.Reset()
	doGet(r, "/fail", "")
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "status=500")
	assert.Contains(t, buf.String(), "boom")
}

func TestInitLoggerWritesFile(t *testing.T) {
	dir := t.TempDir()
	prev := appLogger
	closer, err := InitLogger(dir, slog.LevelInfo)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = closer.Close()
		SetLogger(prev)
	})

	LogInfo("hello", "k", "v")
	assert.FileExists(t, dir+"/app.log")
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://localhost:5173"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
