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

// NewProject carries the fields accepted when creating a project.
type NewProject struct {
	Title       string
	Description string
	ImageURL    string
	URL         string
	UserID      uint
}

// ProjectPatch is a partial update. Nil fields are left untouched.
type ProjectPatch struct {
	Title       *string
	Description *string
	ImageURL    *string
	URL         *string
}

// ProjectService manages portfolio projects.
type ProjectService interface {
	CreateProject(ctx context.Context, in NewProject) (*model.Project, error)
	GetProject(ctx context.Context, id uint) (*model.Project, error)
	ListProjects(ctx context.Context) ([]model.Project, error)
	ListProjectsByUser(ctx context.Context, userID uint) ([]model.Project, error)
	UpdateProject(ctx context.Context, id uint, patch ProjectPatch) (*model.Project, error)
	DeleteProject(ctx context.Context, id uint) error
}

type projectService struct {
	projects repository.ProjectRepository
	users    repository.UserRepository
}

// NewProjectService creates a new project service.
func NewProjectService(projects repository.ProjectRepository, users repository.UserRepository) ProjectService {
	return &projectService{projects: projects, users: users}
}

func (s *projectService) CreateProject(ctx context.Context, in NewProject) (*model.Project, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperrors.MissingField("title")
	}
	if in.UserID == 0 {
		return nil, apperrors.MissingField("user_id")
	}

	exists, err := s.users.Exists(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("check owner: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %d", apperrors.ErrInvalidOwner, in.UserID)
	}

	project := &model.Project{
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		URL:         in.URL,
		UserID:      in.UserID,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		// owner deleted between the check and the insert
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, fmt.Errorf("%w: %d", apperrors.ErrInvalidOwner, in.UserID)
		}
		return nil, fmt.Errorf("create project: %w", err)
	}
	return project, nil
}

func (s *projectService) GetProject(ctx context.Context, id uint) (*model.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return project, nil
}

// ListProjects returns every project with its owner joined in.
func (s *projectService) ListProjects(ctx context.Context) ([]model.Project, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (s *projectService) ListProjectsByUser(ctx context.Context, userID uint) ([]model.Project, error) {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return nil, apperrors.ErrUserNotFound
	}

	projects, err := s.projects.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user projects: %w", err)
	}
	return projects, nil
}

func (s *projectService) UpdateProject(ctx context.Context, id uint, patch ProjectPatch) (*model.Project, error) {
	fields := make(map[string]interface{})
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, apperrors.InvalidField("title", "must not be empty")
		}
		fields["title"] = *patch.Title
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.ImageURL != nil {
		fields["image_url"] = *patch.ImageURL
	}
	if patch.URL != nil {
		fields["url"] = *patch.URL
	}

	if err := s.projects.Update(ctx, id, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("update project: %w", err)
	}
	return s.GetProject(ctx, id)
}

// DeleteProject removes the project; the store cascades to its comments.
func (s *projectService) DeleteProject(ctx context.Context, id uint) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrProjectNotFound
		}
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}
