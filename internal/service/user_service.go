package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/pkg/security"
	"Inkstone/internal/repository"
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

type UserService interface {
	Register(ctx context.Context, regDTO *dto.RegisterDTO) error
	Login(ctx context.Context, credDTO *dto.CredentialDTO) (string, error)
	Logout(ctx context.Context, token string) error
	GetProfile(ctx context.Context, username string) (*dto.UserDTO, error)
}

type UserServiceImpl struct {
	userRepo   repository.UserRepo
	followRepo repository.FollowRepo
}

func NewUserService(userRepo repository.UserRepo, followRepo repository.FollowRepo) UserService {
	return &UserServiceImpl{
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, regDTO *dto.RegisterDTO) error {
	username := strings.ToLower(strings.TrimSpace(regDTO.Username))
	if len(username) < 3 || len(username) > 30 || !usernamePattern.MatchString(username) {
		return ErrUsernameInvalid
	}
	email := strings.ToLower(strings.TrimSpace(regDTO.EmailAddress))

	findUser, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	if findUser != nil {
		return ErrUsernameExist
	}

	findUser, err = s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if findUser != nil {
		return ErrEmailExist
	}

	passwordHash, err := security.HashPassword(regDTO.Password)
	if err != nil {
		return err
	}

	user := &model.User{
		Username:     username,
		EmailAddress: email,
		Password:     passwordHash,
	}
	return s.userRepo.CreateUser(ctx, user)
}

func (s *UserServiceImpl) Login(ctx context.Context, credDTO *dto.CredentialDTO) (string, error) {
	user, err := s.findUserByLoginCredentials(ctx, credDTO)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}
	if err := security.CheckPasswordHash(credDTO.Password, user.Password); err != nil {
		if errors.Is(err, security.ErrPasswordMismatch) {
			return "", ErrPasswordIncorrect
		}
		return "", err
	}
	token, err := security.GenerateToken(user.ID, user.Username)
	if err != nil {
		return "", err
	}
	return token, nil
}

// Logout 把令牌签名拉黑至其自然过期
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return err
	}
	return redis.SetWithExpiration(ctx, signature, true, time.Hour*24)
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, username string) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, strings.ToLower(username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	followerCount, err := s.followRepo.CountFollowers(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	followingCount, err := s.followRepo.CountFollowing(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.UserDTO{
		ID:             user.ID,
		Username:       user.Username,
		FollowerCount:  followerCount,
		FollowingCount: followingCount,
		CreatedAt:      &user.CreatedAt,
	}, nil
}

func (s *UserServiceImpl) findUserByLoginCredentials(ctx context.Context, credDTO *dto.CredentialDTO) (*model.User, error) {
	if credDTO.Username != nil {
		return s.userRepo.GetUserByUsername(ctx, strings.ToLower(*credDTO.Username))
	}
	if credDTO.EmailAddress != nil {
		return s.userRepo.GetUserByEmail(ctx, strings.ToLower(*credDTO.EmailAddress))
	}
	return nil, ErrMissingLoginCredentials
}
