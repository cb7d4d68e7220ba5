package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"portfolio/internal/auth"
	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
	"portfolio/internal/repository"
)

// NewUser carries the fields accepted when registering a user.
type NewUser struct {
	Username       string
	Email          string
	Password       string
	FirstName      string
	LastName       string
	Bio            string
	ProfilePicture string
	Twitter        string
	LinkedIn       string
	YouTube        string
	GitHub         string
}

// UserPatch is a partial update. Nil fields are left untouched.
type UserPatch struct {
	Username       *string
	Email          *string
	Password       *string
	FirstName      *string
	LastName       *string
	Bio            *string
	ProfilePicture *string
	Twitter        *string
	LinkedIn       *string
	YouTube        *string
	GitHub         *string
}

// UserService exposes domain operations.
type UserService interface {
	CreateUser(ctx context.Context, in NewUser) (*model.User, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, id uint, patch UserPatch) (*model.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService builds a UserService backed by the given repository.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) CreateUser(ctx context.Context, in NewUser) (*model.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	switch {
	case in.Username == "":
		return nil, apperrors.MissingField("username")
	case in.Email == "":
		return nil, apperrors.MissingField("email")
	case in.Password == "":
		return nil, apperrors.MissingField("password")
	}

	if err := s.ensureUnique(ctx, 0, in.Username, in.Email); err != nil {
		return nil, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:       in.Username,
		Email:          in.Email,
		PasswordHash:   hash,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Bio:            in.Bio,
		ProfilePicture: in.ProfilePicture,
		Twitter:        in.Twitter,
		LinkedIn:       in.LinkedIn,
		YouTube:        in.YouTube,
		GitHub:         in.GitHub,
		Role:           model.RoleUser,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateUser
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UpdateUser applies the non-nil patch fields. A new password is re-hashed
// before it reaches the store.
func (s *userService) UpdateUser(ctx context.Context, id uint, patch UserPatch) (*model.User, error) {
	fields, err := s.patchColumns(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, fields); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, apperrors.ErrUserNotFound
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, apperrors.ErrDuplicateUser
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return s.GetUser(ctx, id)
}

func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (s *userService) patchColumns(ctx context.Context, id uint, patch UserPatch) (map[string]interface{}, error) {
	fields := make(map[string]interface{})

	var username, email string
	if patch.Username != nil {
		username = strings.TrimSpace(*patch.Username)
		if username == "" {
			return nil, apperrors.InvalidField("username", "must not be empty")
		}
		fields["username"] = username
	}
	if patch.Email != nil {
		email = strings.TrimSpace(*patch.Email)
		if email == "" {
			return nil, apperrors.InvalidField("email", "must not be empty")
		}
		fields["email"] = email
	}
	if patch.Password != nil {
		if *patch.Password == "" {
			return nil, apperrors.InvalidField("password", "must not be empty")
		}
		hash, err := hashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		fields["password_hash"] = hash
	}

	optional := map[string]*string{
		"first_name":      patch.FirstName,
		"last_name":       patch.LastName,
		"bio":             patch.Bio,
		"profile_picture": patch.ProfilePicture,
		"twitter":         patch.Twitter,
		"linkedin":        patch.LinkedIn,
		"youtube":         patch.YouTube,
		"github":          patch.GitHub,
	}
	for column, value := range optional {
		if value != nil {
			fields[column] = *value
		}
	}

	if username != "" || email != "" {
		exists, err := s.repo.Exists(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("check user: %w", err)
		}
		if !exists {
			return nil, apperrors.ErrUserNotFound
		}
		if err := s.ensureUnique(ctx, id, username, email); err != nil {
			return nil, err
		}
	}
	return fields, nil
}

// ensureUnique rejects a username or email held by a user other than self.
// Empty values are not checked.
func (s *userService) ensureUnique(ctx context.Context, self uint, username, email string) error {
	if username != "" {
		existing, err := s.repo.FindByUsername(ctx, username)
		if err == nil && existing.ID != self {
			return apperrors.ErrUsernameTaken
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check username: %w", err)
		}
	}
	if email != "" {
		existing, err := s.repo.FindByEmail(ctx, email)
		if err == nil && existing.ID != self {
			return apperrors.ErrEmailTaken
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check email: %w", err)
		}
	}
	return nil
}

func hashPassword(plain string) (string, error) {
	hash, err := auth.HashPassword(plain)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return "", apperrors.InvalidField("password", "must be at most 72 bytes")
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}
