package model

import "time"

type User struct {
	UserID       int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type LoginResult struct {
	UserID      int64
	Email       string
	AccessToken string
	ExpiresAt   time.Time
}
