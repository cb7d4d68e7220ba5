package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"portfolio/internal/auth"
	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
)

func newAuthServiceForTest(repo *MockUserRepository, store *MockTokenStore, events AuthEvents) AuthService {
	jwtService := auth.NewJWTService("test-secret", time.Hour)
	return NewAuthService(repo, NewUserService(repo), jwtService, store, events)
}

func storedUser(t *testing.T, id uint, username, password string) *model.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &model.User{ID: id, Username: username, Email: username + "@x.com", PasswordHash: hash}
}

func TestAuthService_Signup(t *testing.T) {
	tests := []struct {
		name          string
		input         NewUser
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:  "successful signup",
			input: NewUser{Username: "alice", Email: "a@x.com", Password: "pw1"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:  "username taken",
			input: NewUser{Username: "alice", Email: "new@x.com", Password: "pw1"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(&model.User{ID: 3, Username: "alice"}, nil)
			},
			expectedError: apperrors.ErrUsernameTaken,
		},
		{
			name:  "email taken",
			input: NewUser{Username: "bob", Email: "a@x.com", Password: "pw1"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "bob").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(&model.User{ID: 3, Email: "a@x.com"}, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
		{
			name:  "race on insert",
			input: NewUser{Username: "alice", Email: "a@x.com", Password: "pw1"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrDuplicateUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)
			events := &recordedAuthEvents{}

			service := newAuthServiceForTest(mockRepo, new(MockTokenStore), events)
			user, err := service.Signup(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
				assert.Zero(t, events.signups)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.input.Username, user.Username)
				assert.Equal(t, model.RoleUser, user.Role)
				assert.NotEqual(t, tt.input.Password, user.PasswordHash)
				assert.True(t, auth.CheckPassword(tt.input.Password, user.PasswordHash))
				assert.Equal(t, 1, events.signups)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Signin(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByUsername", mock.Anything, "alice").Return(storedUser(t, 7, "alice", "pw1"), nil)
	mockRepo.On("TouchLastLogin", mock.Anything, uint(7)).Return(nil)
	events := &recordedAuthEvents{}

	service := newAuthServiceForTest(mockRepo, new(MockTokenStore), events)
	result, err := service.Signin(context.Background(), "alice", "pw1")

	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, uint(7), result.User.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), result.ExpiresAt, time.Minute)
	assert.Equal(t, 1, events.signins)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Signin_FailuresAreIndistinguishable(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByUsername", mock.Anything, "alice").Return(storedUser(t, 7, "alice", "pw1"), nil)
	mockRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)
	events := &recordedAuthEvents{}

	service := newAuthServiceForTest(mockRepo, new(MockTokenStore), events)

	_, wrongPassword := service.Signin(context.Background(), "alice", "nope")
	_, unknownUser := service.Signin(context.Background(), "ghost", "pw1")

	assert.Equal(t, apperrors.ErrInvalidCredentials, wrongPassword)
	assert.Equal(t, wrongPassword, unknownUser)
	assert.Equal(t, 2, events.failures)
	mockRepo.AssertNotCalled(t, "TouchLastLogin", mock.Anything, mock.Anything)
}

func TestAuthService_Signin_MissingFields(t *testing.T) {
	service := newAuthServiceForTest(new(MockUserRepository), new(MockTokenStore), nil)

	_, err := service.Signin(context.Background(), "", "pw1")
	assert.Equal(t, apperrors.MissingField("username"), err)

	_, err = service.Signin(context.Background(), "alice", "")
	assert.Equal(t, apperrors.MissingField("password"), err)
}

func TestAuthService_Signin_StoreFault(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByUsername", mock.Anything, "alice").Return(nil, errors.New("connection reset"))

	service := newAuthServiceForTest(mockRepo, new(MockTokenStore), nil)
	_, err := service.Signin(context.Background(), "alice", "pw1")

	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_VerifyToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByUsername", mock.Anything, "alice").Return(storedUser(t, 7, "alice", "pw1"), nil)
	mockRepo.On("TouchLastLogin", mock.Anything, uint(7)).Return(nil)
	mockStore := new(MockTokenStore)
	mockStore.On("IsTokenRevoked", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)

	service := newAuthServiceForTest(mockRepo, mockStore, nil)
	result, err := service.Signin(context.Background(), "alice", "pw1")
	require.NoError(t, err)

	claims, err := service.VerifyToken(context.Background(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)

	_, err = service.VerifyToken(context.Background(), result.Token+"x")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	_, err = service.VerifyToken(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrMissingToken)
}

func TestAuthService_SignoutRevokesToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", time.Hour)
	token, _, err := jwtService.GenerateToken(7, "alice")
	require.NoError(t, err)
	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)

	mockStore := new(MockTokenStore)
	mockStore.On("IsTokenRevoked", mock.Anything, claims.ID).Return(false, nil).Once()
	mockStore.On("RevokeToken", mock.Anything, claims.ID, mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 0 && ttl <= time.Hour
	})).Return(nil)
	mockStore.On("IsTokenRevoked", mock.Anything, claims.ID).Return(true, nil)

	mockRepo := new(MockUserRepository)
	service := NewAuthService(mockRepo, NewUserService(mockRepo), jwtService, mockStore, nil)

	require.NoError(t, service.Signout(context.Background(), token))

	_, err = service.VerifyToken(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	mockStore.AssertExpectations(t)
}

func TestAuthService_SignoutNonExpiringToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 0)
	token, expiresAt, err := jwtService.GenerateToken(7, "alice")
	require.NoError(t, err)
	assert.True(t, expiresAt.IsZero())

	mockStore := new(MockTokenStore)
	mockStore.On("IsTokenRevoked", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)
	mockStore.On("RevokeToken", mock.Anything, mock.AnythingOfType("string"), time.Duration(0)).Return(nil)

	mockRepo := new(MockUserRepository)
	service := NewAuthService(mockRepo, NewUserService(mockRepo), jwtService, mockStore, nil)

	require.NoError(t, service.Signout(context.Background(), token))
	mockStore.AssertExpectations(t)
}
