package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
	"portfolio/internal/repository"
)

// NewComment carries the fields accepted when creating a comment.
type NewComment struct {
	Content   string
	UserID    uint
	ProjectID uint
}

// CommentPatch is a partial update. Only content is editable.
type CommentPatch struct {
	Content *string
}

// CommentService manages comments on projects.
type CommentService interface {
	CreateComment(ctx context.Context, in NewComment) (*model.Comment, error)
	GetComment(ctx context.Context, id uint) (*model.Comment, error)
	ListComments(ctx context.Context) ([]model.Comment, error)
	ListCommentsByProject(ctx context.Context, projectID uint) ([]model.Comment, error)
	UpdateComment(ctx context.Context, id uint, patch CommentPatch) (*model.Comment, error)
	DeleteComment(ctx context.Context, id uint) error
}

type commentService struct {
	comments repository.CommentRepository
	projects repository.ProjectRepository
	users    repository.UserRepository
}

// NewCommentService creates a new comment service.
func NewCommentService(comments repository.CommentRepository, projects repository.ProjectRepository, users repository.UserRepository) CommentService {
	return &commentService{comments: comments, projects: projects, users: users}
}

func (s *commentService) CreateComment(ctx context.Context, in NewComment) (*model.Comment, error) {
	switch {
	case strings.TrimSpace(in.Content) == "":
		return nil, apperrors.MissingField("content")
	case in.UserID == 0:
		return nil, apperrors.MissingField("user_id")
	case in.ProjectID == 0:
		return nil, apperrors.MissingField("project_id")
	}

	if err := s.checkReferences(ctx, in.UserID, in.ProjectID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		Content:   in.Content,
		UserID:    in.UserID,
		ProjectID: in.ProjectID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, apperrors.ErrInvalidReference
		}
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) checkReferences(ctx context.Context, userID, projectID uint) error {
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return fmt.Errorf("check author: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: user_id %d", apperrors.ErrInvalidReference, userID)
	}

	ok, err = s.projects.Exists(ctx, projectID)
	if err != nil {
		return fmt.Errorf("check project: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: project_id %d", apperrors.ErrInvalidReference, projectID)
	}
	return nil
}

func (s *commentService) GetComment(ctx context.Context, id uint) (*model.Comment, error) {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) ListComments(ctx context.Context) ([]model.Comment, error) {
	comments, err := s.comments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

func (s *commentService) ListCommentsByProject(ctx context.Context, projectID uint) ([]model.Comment, error) {
	ok, err := s.projects.Exists(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("check project: %w", err)
	}
	if !ok {
		return nil, apperrors.ErrProjectNotFound
	}

	comments, err := s.comments.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list project comments: %w", err)
	}
	return comments, nil
}

func (s *commentService) UpdateComment(ctx context.Context, id uint, patch CommentPatch) (*model.Comment, error) {
	fields := make(map[string]interface{})
	if patch.Content != nil {
		if strings.TrimSpace(*patch.Content) == "" {
			return nil, apperrors.InvalidField("content", "must not be empty")
		}
		fields["content"] = *patch.Content
	}

	if err := s.comments.Update(ctx, id, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return s.GetComment(ctx, id)
}

func (s *commentService) DeleteComment(ctx context.Context, id uint) error {
	if err := s.comments.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCommentNotFound
		}
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
