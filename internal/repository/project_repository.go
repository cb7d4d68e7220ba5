package repository

import (
	"context"

	"gorm.io/gorm"

	"portfolio/internal/model"
)

// ProjectRepository defines project persistence operations.
// Reads join the owning user so callers get the owner's username in one query.
type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id uint) (*model.Project, error)
	List(ctx context.Context) ([]model.Project, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Project, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// Create creates a new project.
func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Omit("User", "Comments").Create(project).Error
}

// FindByID finds a project by ID together with its owner.
func (r *projectRepository) FindByID(ctx context.Context, id uint) (*model.Project, error) {
	var project model.Project
	if err := r.withOwner(ctx).Where("projects.id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List lists every project with its owner.
func (r *projectRepository) List(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := r.withOwner(ctx).Order("projects.id").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// ListByUser lists the projects owned by a user.
func (r *projectRepository) ListByUser(ctx context.Context, userID uint) ([]model.Project, error) {
	var projects []model.Project
	if err := r.withOwner(ctx).
		Where("projects.user_id = ?", userID).
		Order("projects.id").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Update sets only the given columns.
func (r *projectRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	return updateColumns(ctx, r.db, &model.Project{}, id, fields)
}

// Delete removes the project; the store cascades to its comments.
func (r *projectRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &model.Project{}, id)
}

// Exists reports whether a project row exists.
func (r *projectRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return existsByID(ctx, r.db, &model.Project{}, id)
}

func (r *projectRepository) withOwner(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Joins("User")
}
