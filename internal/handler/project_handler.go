package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"portfolio/internal/service"
)

// ProjectHandler handles project endpoints.
type ProjectHandler struct {
	svc      service.ProjectService
	comments service.CommentService
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(svc service.ProjectService, comments service.CommentService) *ProjectHandler {
	return &ProjectHandler{svc: svc, comments: comments}
}

// CreateProjectRequest represents a new project.
type CreateProjectRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url" validate:"max=500"`
	URL         string `json:"url" validate:"max=500"`
	UserID      uint   `json:"user_id" validate:"required"`
}

// UpdateProjectRequest is a partial update; omitted or null fields are left untouched.
type UpdateProjectRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url" validate:"omitempty,max=500"`
	URL         *string `json:"url" validate:"omitempty,max=500"`
}

// CreateProject godoc
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param project body CreateProjectRequest true "Project data"
// @Success 201 {object} ProjectResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c echo.Context) error {
	var req CreateProjectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	project, err := h.svc.CreateProject(c.Request().Context(), service.NewProject{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		URL:         req.URL,
		UserID:      req.UserID,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, newProjectResponse(project))
}

// GetProject godoc
// @Summary Get a project
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} ProjectResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetProject(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	project, err := h.svc.GetProject(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, newProjectResponse(project))
}

// ListProjects godoc
// @Summary List projects with their owners' usernames
// @Tags projects
// @Produce json
// @Success 200 {array} ProjectResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /projects [get]
func (h *ProjectHandler) ListProjects(c echo.Context) error {
	projects, err := h.svc.ListProjects(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, newProjectList(projects))
}

// UpdateProject godoc
// @Summary Partially update a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param project body UpdateProjectRequest true "Fields to change"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateProjectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	_, err = h.svc.UpdateProject(c.Request().Context(), id, service.ProjectPatch{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		URL:         req.URL,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "project updated"})
}

// DeleteProject godoc
// @Summary Delete a project and its comments
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteProject(c.Request().Context(), id); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "project deleted"})
}

// ListProjectComments godoc
// @Summary List comments on a project
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {array} CommentResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id}/comments [get]
func (h *ProjectHandler) ListProjectComments(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	comments, err := h.comments.ListCommentsByProject(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, newCommentList(comments))
}
