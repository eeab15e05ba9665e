package models

import (
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// User is the account behind exactly one Profile.
type User struct {
	gorm.Model `json:"-"`
	ID         uint   `json:"id" gorm:"primaryKey"`
	Email      string `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Phone      string `json:"phone" gorm:"uniqueIndex"`
	Password   string `json:"-"` // Store hashed password, ignore for JSON serialization
}

// SignupRequest defines the request body for local registration.
// Registration creates the User and its Profile together.
type SignupRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required,min=7,max=20"`
	Password    string `json:"password" validate:"required,min=8"`
	Username    string `json:"username" validate:"required,min=3,max=15"`
	DisplayName string `json:"display_name" validate:"omitempty,max=50"`
}

// SigninRequest defines the request body for signing in with email or phone.
type SigninRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID    uint `json:"user_id"`
	ProfileID uint `json:"profile_id"`
	jwt.RegisteredClaims
}
