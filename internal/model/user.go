package model

import "time"

// UserID uniquely identifies a user account
type UserID string

// User is an authenticated account in the registration system
type User struct {
	ID           UserID
	Email        string
	Name         string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}
