package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"portfolio/internal/service"
)

// UserHandler bundles the user collection endpoints.
type UserHandler struct {
	svc      service.UserService
	projects service.ProjectService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService, projects service.ProjectService) *UserHandler {
	return &UserHandler{svc: svc, projects: projects}
}

// UpdateUserRequest is a partial update; omitted or null fields are left untouched.
type UpdateUserRequest struct {
	Username       *string `json:"username" validate:"omitempty,max=80"`
	Email          *string `json:"email" validate:"omitempty,email,max=120"`
	Password       *string `json:"password" validate:"omitempty,max=72"`
	FirstName      *string `json:"first_name" validate:"omitempty,max=50"`
	LastName       *string `json:"last_name" validate:"omitempty,max=50"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profile_picture" validate:"omitempty,max=500"`
	Twitter        *string `json:"twitter" validate:"omitempty,max=100"`
	LinkedIn       *string `json:"linkedin" validate:"omitempty,max=100"`
	YouTube        *string `json:"youtube" validate:"omitempty,max=100"`
	GitHub         *string `json:"github" validate:"omitempty,max=100"`
}

func (r UpdateUserRequest) toPatch() service.UserPatch {
	return service.UserPatch{
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

// CreateUser godoc
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param user body SignupRequest true "User payload"
// @Success 201 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req SignupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	created, err := h.svc.CreateUser(c.Request().Context(), req.toNewUser())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, newUserResponse(created))
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, newUserResponse(user))
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} UserResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, newUserResponse(&users[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// UpdateUser godoc
// @Summary Partially update a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param user body UpdateUserRequest true "Fields to change"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if _, err := h.svc.UpdateUser(c.Request().Context(), id, req.toPatch()); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "user updated"})
}

// DeleteUser godoc
// @Summary Delete a user with their projects and comments
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteUser(c.Request().Context(), id); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "user deleted"})
}

// ListUserProjects godoc
// @Summary List a user's projects
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} ProjectResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id}/projects [get]
func (h *UserHandler) ListUserProjects(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	projects, err := h.projects.ListProjectsByUser(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, newProjectList(projects))
}
