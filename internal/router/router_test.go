package router

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"portfolio/internal/auth"
	apperrors "portfolio/internal/errors"
	"portfolio/internal/handler"
	"portfolio/internal/logger"
	"portfolio/internal/model"
	"portfolio/internal/service"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Signup(ctx context.Context, in service.NewUser) (*model.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockAuthService) Signin(ctx context.Context, username, password string) (*service.SigninResult, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SigninResult), args.Error(1)
}

func (m *mockAuthService) VerifyToken(ctx context.Context, token string) (*auth.Claims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

func (m *mockAuthService) Signout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

type signupPayload struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email,omitempty" validate:"required,email"`
	Title    string `json:"title" validate:"max=3"`
}

func TestValidator_ReportsJSONFieldNames(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name      string
		in        signupPayload
		wantField string
		wantMsg   string
	}{
		{"missing", signupPayload{Email: "a@x.com"}, "username", "missing required field: username"},
		{"bad email", signupPayload{Username: "a", Email: "nope"}, "email", "invalid field email: must be a valid email address"},
		{"too long", signupPayload{Username: "a", Email: "a@x.com", Title: "abcd"}, "title", "invalid field title: must be at most 3 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.in)
			var ve *apperrors.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
			assert.Equal(t, tt.wantMsg, ve.Message)
		})
	}

	assert.NoError(t, v.Validate(signupPayload{Username: "a", Email: "a@x.com"}))
}

func serveError(t *testing.T, method string, err error) *httptest.ResponseRecorder {
	t.Helper()
	var logs bytes.Buffer
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(logger.New(&logs, "error"))

	req := httptest.NewRequest(method, "/", nil)
	rec := httptest.NewRecorder()
	e.HTTPErrorHandler(err, e.NewContext(req, rec))
	return rec
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		wantBody string
	}{
		{
			name:     "error response passes through",
			err:      echo.NewHTTPError(http.StatusNotFound, apperrors.ErrorResponse{Error: "user not found", Code: "USER_NOT_FOUND"}),
			status:   http.StatusNotFound,
			wantBody: `{"error":"user not found","code":"USER_NOT_FOUND"}`,
		},
		{
			name:     "string message gets a status code",
			err:      echo.ErrMethodNotAllowed,
			status:   http.StatusMethodNotAllowed,
			wantBody: `{"error":"Method Not Allowed","code":"METHOD_NOT_ALLOWED"}`,
		},
		{
			name:     "plain error is internal",
			err:      errors.New("dial tcp 10.0.0.7:5432: connection refused"),
			status:   http.StatusInternalServerError,
			wantBody: `{"error":"internal server error","code":"INTERNAL_ERROR"}`,
		},
		{
			name:     "5xx detail is replaced",
			err:      echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{Error: "pq: syntax error", Code: "X"}),
			status:   http.StatusInternalServerError,
			wantBody: `{"error":"internal server error","code":"INTERNAL_ERROR"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serveError(t, http.MethodGet, tt.err)
			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestErrorHandler_HeadHasNoBody(t *testing.T) {
	rec := serveError(t, http.MethodHead, echo.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func securedEcho(svc service.AuthService) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(logger.New(io.Discard, "error"))
	e.GET("/private", func(c echo.Context) error {
		claims, ok := handler.CurrentClaims(c)
		if !ok {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.String(http.StatusOK, claims.Username)
	}, requireToken(svc))
	return e
}

func TestRequireToken(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("VerifyToken", mock.Anything, "good").Return(&auth.Claims{UserID: 1, Username: "alice"}, nil)
	svc.On("VerifyToken", mock.Anything, "revoked").Return(nil, apperrors.ErrInvalidToken)
	e := securedEcho(svc)

	tests := []struct {
		name     string
		header   string
		status   int
		wantCode string
	}{
		{"valid", "Bearer good", http.StatusOK, ""},
		{"no header", "", http.StatusUnauthorized, "MISSING_TOKEN"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "MISSING_TOKEN"},
		{"rejected", "Bearer revoked", http.StatusUnauthorized, "INVALID_TOKEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.wantCode == "" {
				assert.Equal(t, "alice", rec.Body.String())
				return
			}
			assert.Contains(t, rec.Body.String(), `"code":"`+tt.wantCode+`"`)
		})
	}
}
