package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"stayBack/internal/models"
	"stayBack/internal/repositories"
	"stayBack/utils"
)

const (
	accessTokenTTL  = 20 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

type UserService struct {
	UserRepo *repositories.UserRepository
	Tokens   *utils.Manager
}

func (s *UserService) SignUp(ctx context.Context, req models.SignUpRequest) (models.User, error) {
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" {
		return models.User{}, models.ErrInvalidCredentials
	}

	if _, err := s.UserRepo.GetUserByEmail(ctx, req.Email); err == nil {
		return models.User{}, models.ErrDuplicateEmail
	} else if !errors.Is(err, models.ErrUserNotFound) {
		return models.User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return models.User{}, err
	}

	return s.UserRepo.CreateUser(ctx, models.User{
		Name:     req.Name,
		Surname:  req.Surname,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: string(hashed),
		Role:     "user",
	})
}

func (s *UserService) SignIn(ctx context.Context, req models.SignInRequest) (models.SignInResponse, error) {
	user, err := s.UserRepo.GetUserByEmail(ctx, req.Email)
	if errors.Is(err, models.ErrUserNotFound) {
		return models.SignInResponse{}, models.ErrInvalidCredentials
	}
	if err != nil {
		return models.SignInResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return models.SignInResponse{}, models.ErrInvalidCredentials
	}

	accessToken, err := s.Tokens.NewAccessToken(user.ID, user.Role, accessTokenTTL)
	if err != nil {
		return models.SignInResponse{}, err
	}
	refreshToken, err := s.Tokens.NewRefreshToken()
	if err != nil {
		return models.SignInResponse{}, err
	}

	err = s.UserRepo.CreateSession(ctx, models.Session{
		UserID:       user.ID,
		Role:         user.Role,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(refreshTokenTTL),
	})
	if err != nil {
		return models.SignInResponse{}, err
	}

	return models.SignInResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (models.User, error) {
	return s.UserRepo.GetUserByID(ctx, id)
}

func (s *UserService) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	return s.UserRepo.UpdateUser(ctx, user)
}

func (s *UserService) RegisterDeviceToken(ctx context.Context, userID int, token string) error {
	if strings.TrimSpace(token) == "" {
		return models.ErrInvalidCredentials
	}
	return s.UserRepo.UpdateDeviceToken(ctx, userID, token)
}
