package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"portfolio/internal/auth"
	apperrors "portfolio/internal/errors"
	"portfolio/internal/service"
)

// ClaimsContextKey is where the bearer middleware stores verified *auth.Claims.
const ClaimsContextKey = "claims"

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignupRequest represents a user registration request.
type SignupRequest struct {
	Username       string `json:"username" validate:"required,max=80"`
	Email          string `json:"email" validate:"required,email,max=120"`
	Password       string `json:"password" validate:"required,max=72"`
	FirstName      string `json:"first_name" validate:"max=50"`
	LastName       string `json:"last_name" validate:"max=50"`
	Bio            string `json:"bio"`
	ProfilePicture string `json:"profile_picture" validate:"max=500"`
	Twitter        string `json:"twitter" validate:"max=100"`
	LinkedIn       string `json:"linkedin" validate:"max=100"`
	YouTube        string `json:"youtube" validate:"max=100"`
	GitHub         string `json:"github" validate:"max=100"`
}

func (r SignupRequest) toNewUser() service.NewUser {
	return service.NewUser{
		Username:       r.Username,
		Email:          r.Email,
		Password:       r.Password,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Bio:            r.Bio,
		ProfilePicture: r.ProfilePicture,
		Twitter:        r.Twitter,
		LinkedIn:       r.LinkedIn,
		YouTube:        r.YouTube,
		GitHub:         r.GitHub,
	}
}

// SigninRequest represents a signin request.
type SigninRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SigninResponse carries the issued bearer token.
type SigninResponse struct {
	Token     string     `json:"token"`
	ID        uint       `json:"id"`
	Username  string     `json:"username"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// TokenUser identifies the token holder.
type TokenUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// VerifyTokenResponse describes a valid token.
type VerifyTokenResponse struct {
	User      TokenUser  `json:"user"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Signup godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Registration data"
// @Success 201 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Signup(c.Request().Context(), req.toNewUser())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, newUserResponse(user))
}

// Signin godoc
// @Summary Sign in and receive a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SigninRequest true "Credentials"
// @Success 200 {object} SigninResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /signin [post]
func (h *AuthHandler) Signin(c echo.Context) error {
	var req SigninRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.authService.Signin(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return respondError(err)
	}

	resp := SigninResponse{
		Token:    result.Token,
		ID:       result.User.ID,
		Username: result.User.Username,
	}
	if !result.ExpiresAt.IsZero() {
		resp.ExpiresAt = &result.ExpiresAt
	}
	return c.JSON(http.StatusOK, resp)
}

// VerifyToken godoc
// @Summary Verify the presented bearer token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} VerifyTokenResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /verify-token [get]
// @Router /verify-token [post]
func (h *AuthHandler) VerifyToken(c echo.Context) error {
	claims, ok := CurrentClaims(c)
	if !ok {
		return respondError(apperrors.ErrInvalidToken)
	}
	return c.JSON(http.StatusOK, VerifyTokenResponse{
		User:      TokenUser{ID: claims.UserID, Username: claims.Username},
		ExpiresAt: claims.ExpiresAtTime(),
	})
}

// Signout godoc
// @Summary Revoke the presented bearer token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /signout [post]
func (h *AuthHandler) Signout(c echo.Context) error {
	if err := h.authService.Signout(c.Request().Context(), BearerToken(c)); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "signed out"})
}

// CurrentClaims returns the claims stored by the bearer middleware.
func CurrentClaims(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get(ClaimsContextKey).(*auth.Claims)
	return claims, ok && claims != nil
}

// BearerToken returns the raw token from an "Authorization: Bearer <token>"
// header, or "" when the header is absent or uses another scheme.
func BearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
