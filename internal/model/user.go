package model

import "time"

// User is a registered account. Passwords are stored as a one-way hash
// only.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:255;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:255;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// SendCodeRequest asks for a verification code by mail.
type SendCodeRequest struct {
	Email string `json:"email" binding:"required"`
}

// RegisterRequest creates an account; the code must have been mailed to
// the address first.
type RegisterRequest struct {
	Username         string `json:"username" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required"`
	VerificationCode string `json:"verification_code" binding:"required"`
}

// PasswordLoginRequest authenticates by username or email plus password.
type PasswordLoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// CodeLoginRequest authenticates an existing account by emailed code.
type CodeLoginRequest struct {
	Email            string `json:"email" binding:"required"`
	VerificationCode string `json:"verification_code" binding:"required"`
}

// TokenResponse is returned on successful login or registration.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user"`
}
