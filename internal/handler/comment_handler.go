package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"portfolio/internal/service"
)

// CommentHandler handles comment endpoints.
type CommentHandler struct {
	svc service.CommentService
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(svc service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// CreateCommentRequest represents a new comment.
type CreateCommentRequest struct {
	Content   string `json:"content" validate:"required"`
	UserID    uint   `json:"user_id" validate:"required"`
	ProjectID uint   `json:"project_id" validate:"required"`
}

// UpdateCommentRequest changes a comment's content.
type UpdateCommentRequest struct {
	Content *string `json:"content"`
}

// CreateComment godoc
// @Summary Comment on a project
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param comment body CreateCommentRequest true "Comment data"
// @Success 201 {object} CommentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /comments [post]
func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.svc.CreateComment(c.Request().Context(), service.NewComment{
		Content:   req.Content,
		UserID:    req.UserID,
		ProjectID: req.ProjectID,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, newCommentResponse(comment))
}

// GetComment godoc
// @Summary Get a comment
// @Tags comments
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} CommentResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/{id} [get]
func (h *CommentHandler) GetComment(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	comment, err := h.svc.GetComment(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, newCommentResponse(comment))
}

// ListComments godoc
// @Summary List comments
// @Tags comments
// @Produce json
// @Success 200 {array} CommentResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /comments [get]
func (h *CommentHandler) ListComments(c echo.Context) error {
	comments, err := h.svc.ListComments(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, newCommentList(comments))
}

// UpdateComment godoc
// @Summary Edit a comment
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Param comment body UpdateCommentRequest true "New content"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/{id} [put]
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if _, err := h.svc.UpdateComment(c.Request().Context(), id, service.CommentPatch{Content: req.Content}); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "comment updated"})
}

// DeleteComment godoc
// @Summary Delete a comment
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteComment(c.Request().Context(), id); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "comment deleted"})
}
