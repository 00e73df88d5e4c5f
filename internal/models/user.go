package models

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

type User struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Surname     string     `json:"surname"`
	Phone       string     `json:"phone"`
	Email       string     `json:"email"`
	Password    string     `json:"-"`
	AvatarPath  *string    `json:"avatar_path,omitempty"`
	Role        string     `json:"role"`
	DeviceToken *string    `json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type Session struct {
	UserID       int       `json:"user_id"`
	Role         string    `json:"role"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

type SignUpRequest struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
