package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/security"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// TestRegisterNormalizesIdentity 用户名与邮箱统一转小写后入库
func TestRegisterNormalizesIdentity(t *testing.T) {
	userRepo := new(MockUserRepo)
	followRepo := new(MockFollowRepo)
	svc := NewUserService(userRepo, followRepo)

	userRepo.On("GetUserByUsername", mock.Anything, "alice_01").Return(nil, nil)
	userRepo.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(nil, nil)
	userRepo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Username == "alice_01" &&
			u.EmailAddress == "alice@example.com" &&
			u.Password != "secret123"
	})).Return(nil)

	err := svc.Register(context.Background(), &dto.RegisterDTO{
		Username:     "  Alice_01 ",
		EmailAddress: "Alice@Example.COM",
		Password:     "secret123",
	})
	assert.NoError(t, err)
	userRepo.AssertExpectations(t)
}

// TestRegisterRejectsInvalidUsername 长度与字符集不满足要求直接拒绝
func TestRegisterRejectsInvalidUsername(t *testing.T) {
	userRepo := new(MockUserRepo)
	svc := NewUserService(userRepo, new(MockFollowRepo))

	cases := []string{"ab", "has space", "bad!char", "日本語", ""}
	for _, username := range cases {
		err := svc.Register(context.Background(), &dto.RegisterDTO{
			Username:     username,
			EmailAddress: "a@b.com",
			Password:     "secret123",
		})
		assert.ErrorIs(t, err, ErrUsernameInvalid, "username: %q", username)
	}
	userRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	userRepo := new(MockUserRepo)
	svc := NewUserService(userRepo, new(MockFollowRepo))

	userRepo.On("GetUserByUsername", mock.Anything, "alice").Return(&model.User{ID: 1}, nil)

	err := svc.Register(context.Background(), &dto.RegisterDTO{
		Username:     "alice",
		EmailAddress: "new@example.com",
		Password:     "secret123",
	})
	assert.ErrorIs(t, err, ErrUsernameExist)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	userRepo := new(MockUserRepo)
	svc := NewUserService(userRepo, new(MockFollowRepo))

	userRepo.On("GetUserByUsername", mock.Anything, "newuser").Return(nil, nil)
	userRepo.On("GetUserByEmail", mock.Anything, "taken@example.com").Return(&model.User{ID: 1}, nil)

	err := svc.Register(context.Background(), &dto.RegisterDTO{
		Username:     "newuser",
		EmailAddress: "taken@example.com",
		Password:     "secret123",
	})
	assert.ErrorIs(t, err, ErrEmailExist)
}

func TestLoginWrongPassword(t *testing.T) {
	userRepo := new(MockUserRepo)
	svc := NewUserService(userRepo, new(MockFollowRepo))

	hash, err := security.HashPassword("correct-password")
	assert.NoError(t, err)

	username := "alice"
	userRepo.On("GetUserByUsername", mock.Anything, "alice").
		Return(&model.User{ID: 1, Username: "alice", Password: hash}, nil)

	_, err = svc.Login(context.Background(), &dto.CredentialDTO{
		Username: &username,
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrPasswordIncorrect)
}

func TestLoginSuccessIssuesToken(t *testing.T) {
	userRepo := new(MockUserRepo)
	svc := NewUserService(userRepo, new(MockFollowRepo))

	hash, err := security.HashPassword("secret123")
	assert.NoError(t, err)

	email := "alice@example.com"
	userRepo.On("GetUserByEmail", mock.Anything, "alice@example.com").
		Return(&model.User{ID: 1, Username: "alice", Password: hash}, nil)

	token, err := svc.Login(context.Background(), &dto.CredentialDTO{
		EmailAddress: &email,
		Password:     "secret123",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := security.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint64(1), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestLoginMissingCredentials(t *testing.T) {
	svc := NewUserService(new(MockUserRepo), new(MockFollowRepo))

	_, err := svc.Login(context.Background(), &dto.CredentialDTO{Password: "whatever"})
	assert.ErrorIs(t, err, ErrMissingLoginCredentials)
}

func TestGetProfileWithCounts(t *testing.T) {
	userRepo := new(MockUserRepo)
	followRepo := new(MockFollowRepo)
	svc := NewUserService(userRepo, followRepo)

	userRepo.On("GetUserByUsername", mock.Anything, "alice").
		Return(&model.User{ID: 1, Username: "alice"}, nil)
	followRepo.On("CountFollowers", mock.Anything, uint64(1)).Return(int64(3), nil)
	followRepo.On("CountFollowing", mock.Anything, uint64(1)).Return(int64(5), nil)

	profile, err := svc.GetProfile(context.Background(), "Alice")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), profile.FollowerCount)
	assert.Equal(t, int64(5), profile.FollowingCount)
}
