package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"portfolio/internal/auth"
	"portfolio/internal/cache"
	"portfolio/internal/config"
	"portfolio/internal/handler"
	"portfolio/internal/logger"
	"portfolio/internal/metrics"
	"portfolio/internal/repository"
	"portfolio/internal/router"
	"portfolio/internal/service"
	"portfolio/internal/testutil"
)

type testServer struct {
	t *testing.T
	e *echo.Echo
}

func newServer(t *testing.T, gormDB *gorm.DB, tokenCache *cache.Client) *testServer {
	t.Helper()

	userRepo := repository.NewUserRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	userService := service.NewUserService(userRepo)
	authService := service.NewAuthService(userRepo, userService,
		auth.NewJWTService("test-secret", time.Hour), auth.NewTokenStore(tokenCache), collector)
	projectService := service.NewProjectService(projectRepo, userRepo)
	commentService := service.NewCommentService(commentRepo, projectRepo, userRepo)

	e := echo.New()
	router.Register(e, router.Dependencies{
		Config:         &config.Config{CORSAllowOrigins: []string{"*"}},
		Logger:         logger.New(io.Discard, "error"),
		DB:             gormDB,
		Metrics:        collector,
		Gatherer:       registry,
		AuthService:    authService,
		AuthHandler:    handler.NewAuthHandler(authService),
		UserHandler:    handler.NewUserHandler(userService, projectService),
		ProjectHandler: handler.NewProjectHandler(projectService, commentService),
		CommentHandler: handler.NewCommentHandler(commentService),
	})
	return &testServer{t: t, e: e}
}

func newTestDB(t *testing.T) *gorm.DB {
	return testutil.NewDB(t)
}

func newSQLiteServer(t *testing.T) *testServer {
	return newServer(t, newTestDB(t), nil)
}

func (s *testServer) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			payload, err := json.Marshal(b)
			require.NoError(s.t, err)
			reader = bytes.NewReader(payload)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

type errorBody struct {
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details"`
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	decode(t, rec, &body)
	return body
}

// signupAndSignin registers a user and returns its id and a bearer token.
func (s *testServer) signupAndSignin(username, email, password string) (uint, string) {
	s.t.Helper()

	rec := s.do(http.MethodPost, "/signup", map[string]string{
		"username": username, "email": email, "password": password,
	}, "")
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/signin", map[string]string{"username": username, "password": password}, "")
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())

	var signin handler.SigninResponse
	decode(s.t, rec, &signin)
	return signin.ID, signin.Token
}

func (s *testServer) createProject(token string, userID uint, title string) handler.ProjectResponse {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/projects", map[string]interface{}{"title": title, "user_id": userID}, token)
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	var project handler.ProjectResponse
	decode(s.t, rec, &project)
	return project
}

func newRedisCache(t *testing.T) *cache.Client {
	mr := miniredis.RunT(t)
	c := cache.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return c
}
