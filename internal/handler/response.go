package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
)

// MessageResponse is returned by update and delete endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserResponse is the public projection of a user. It never carries the password hash.
type UserResponse struct {
	ID             uint       `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	FirstName      string     `json:"first_name,omitempty"`
	LastName       string     `json:"last_name,omitempty"`
	Bio            string     `json:"bio,omitempty"`
	ProfilePicture string     `json:"profile_picture,omitempty"`
	Twitter        string     `json:"twitter,omitempty"`
	LinkedIn       string     `json:"linkedin,omitempty"`
	YouTube        string     `json:"youtube,omitempty"`
	GitHub         string     `json:"github,omitempty"`
	Role           string     `json:"role"`
	JoinDate       time.Time  `json:"join_date"`
	LastLogin      *time.Time `json:"last_login,omitempty"`
}

func newUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Bio:            u.Bio,
		ProfilePicture: u.ProfilePicture,
		Twitter:        u.Twitter,
		LinkedIn:       u.LinkedIn,
		YouTube:        u.YouTube,
		GitHub:         u.GitHub,
		Role:           u.Role,
		JoinDate:       u.JoinDate,
		LastLogin:      u.LastLogin,
	}
}

// ProjectResponse is a project enriched with its owner's username.
type ProjectResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	URL         string    `json:"url"`
	UserID      uint      `json:"user_id"`
	Username    string    `json:"username,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func newProjectResponse(p *model.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		URL:         p.URL,
		UserID:      p.UserID,
		Username:    p.OwnerUsername(),
		CreatedAt:   p.CreatedAt,
	}
}

func newProjectList(projects []model.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, newProjectResponse(&projects[i]))
	}
	return out
}

// CommentResponse is the public projection of a comment.
type CommentResponse struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	UserID    uint      `json:"user_id"`
	ProjectID uint      `json:"project_id"`
	CreatedAt time.Time `json:"created_at"`
}

func newCommentResponse(c *model.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		UserID:    c.UserID,
		ProjectID: c.ProjectID,
		CreatedAt: c.CreatedAt,
	}
}

func newCommentList(comments []model.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, newCommentResponse(&comments[i]))
	}
	return out
}

// respondError converts a service error into an echo error carrying an
// ErrorResponse body. Internal faults keep the cause for server-side logging.
func respondError(err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	he := echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	if httpErr.StatusCode >= http.StatusInternalServerError {
		return he.SetInternal(err)
	}
	return he
}

func badRequest(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
		Error: "invalid request body",
		Code:  "INVALID_REQUEST",
	}).SetInternal(err)
}

// bindAndValidate binds the JSON body into req and runs struct validation.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return badRequest(err)
	}
	if err := c.Validate(req); err != nil {
		return respondError(err)
	}
	return nil
}

// parseID reads a positive integer path parameter.
func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid " + name,
			Code:  "INVALID_ID",
		})
	}
	return uint(id), nil
}
