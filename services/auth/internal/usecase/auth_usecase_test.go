package usecase

import (
	"testing"
	"time"

	"meetapp/pkg/jwt"
	"meetapp/pkg/logger"
	"meetapp/services/auth/internal/entity"
	"meetapp/services/auth/internal/repo/persistent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	if args.Error(0) == nil {
		user.ID = "user-123"
		user.CreatedAt = time.Now()
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id string) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

var _ persistent.UserRepository = (*MockUserRepository)(nil)

func hashFor(password string) string {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(hashed)
}

func existingUser() *entity.User {
	return &entity.User{
		ID:       "user-123",
		Name:     "Grace",
		Email:    "grace@meetapp.com",
		Password: hashFor("secret123"),
	}
}

func newAuthUseCase(repo persistent.UserRepository) AuthUseCase {
	return NewAuthUseCase(repo, jwt.NewService("test-secret"), logger.New())
}

func TestRegister_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	uc := newAuthUseCase(mockRepo)

	mockRepo.On("Create", mock.AnythingOfType("*entity.User")).Return(nil)

	user, err := uc.Register("Grace", "grace@meetapp.com", "secret123")

	assert.NoError(t, err)
	assert.Equal(t, "user-123", user.ID)
	// Password is stored hashed, never in the clear
	assert.NotEqual(t, "secret123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
}

func TestRegister_EmailTaken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	uc := newAuthUseCase(mockRepo)

	mockRepo.On("Create", mock.AnythingOfType("*entity.User")).Return(gorm.ErrDuplicatedKey)

	_, err := uc.Register("Grace", "grace@meetapp.com", "secret123")

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	uc := newAuthUseCase(mockRepo)

	mockRepo.On("GetByEmail", "grace@meetapp.com").Return(existingUser(), nil)

	token, user, err := uc.Login("grace@meetapp.com", "secret123")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "user-123", user.ID)

	// The token round-trips through our own validator
	claims, err := jwt.NewService("test-secret").ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}

func TestLogin_UnknownEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	uc := newAuthUseCase(mockRepo)

	mockRepo.On("GetByEmail", "nobody@meetapp.com").Return(nil, gorm.ErrRecordNotFound)

	_, _, err := uc.Login("nobody@meetapp.com", "secret123")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_WrongPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	uc := newAuthUseCase(mockRepo)

	mockRepo.On("GetByEmail", "grace@meetapp.com").Return(existingUser(), nil)

	_, _, err := uc.Login("grace@meetapp.com", "not-the-password")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfile_Name(t *testing.T) {
	mockRepo := new(MockUserRepository)
	uc := newAuthUseCase(mockRepo)

	mockRepo.On("GetByID", "user-123").Return(existingUser(), nil)
	mockRepo.On("Update", mock.AnythingOfType("*entity.User")).Return(nil)

	name := "Grace Hopper"
	user, err := uc.UpdateProfile("user-123", &name, nil, nil, "", "")

	assert.NoError(t, err)
	assert.Equal(t, "Grace Hopper", user.Name)
	assert.Equal(t, "grace@meetapp.com", user.Email)
}

func TestUpdateProfile_PasswordChangeRequiresOldPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	uc := newAuthUseCase(mockRepo)

	mockRepo.On("GetByID", "user-123").Return(existingUser(), nil)

	_, err := uc.UpdateProfile("user-123", nil, nil, nil, "wrong-old", "new-secret")

	assert.ErrorIs(t, err, ErrWrongPassword)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestUpdateProfile_PasswordChange(t *testing.T) {
	mockRepo := new(MockUserRepository)
	uc := newAuthUseCase(mockRepo)

	mockRepo.On("GetByID", "user-123").Return(existingUser(), nil)
	mockRepo.On("Update", mock.AnythingOfType("*entity.User")).Return(nil)

	user, err := uc.UpdateProfile("user-123", nil, nil, nil, "secret123", "new-secret")

	assert.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("new-secret")))
}

func TestUpdateProfile_EmailTakenByAnotherUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	uc := newAuthUseCase(mockRepo)

	mockRepo.On("GetByID", "user-123").Return(existingUser(), nil)
	mockRepo.On("GetByEmail", "ada@meetapp.com").
		Return(&entity.User{ID: "user-456", Email: "ada@meetapp.com"}, nil)

	email := "ada@meetapp.com"
	_, err := uc.UpdateProfile("user-123", nil, &email, nil, "", "")

	assert.ErrorIs(t, err, ErrEmailTaken)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestUpdateProfile_EmailFreed(t *testing.T) {
	mockRepo := new(MockUserRepository)
	uc := newAuthUseCase(mockRepo)

	mockRepo.On("GetByID", "user-123").Return(existingUser(), nil)
	mockRepo.On("GetByEmail", "new@meetapp.com").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Update", mock.AnythingOfType("*entity.User")).Return(nil)

	email := "new@meetapp.com"
	user, err := uc.UpdateProfile("user-123", nil, &email, nil, "", "")

	assert.NoError(t, err)
	assert.Equal(t, "new@meetapp.com", user.Email)
}

func TestUpdateProfile_UserNotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	uc := newAuthUseCase(mockRepo)

	mockRepo.On("GetByID", "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, err := uc.UpdateProfile("ghost", nil, nil, nil, "", "")

	assert.ErrorIs(t, err, ErrUserNotFound)
}
