package model

import "time"

type User struct {
	ID         int       `json:"id"`
	Email      string    `json:"email"`
	Password   string    `json:"-"`
	IsVerified bool      `json:"is_verified"`
	IsOAuth    bool      `json:"is_oauth"`
	CreatedAt  time.Time `json:"created_at"`
}

// Verification is a single-use numeric token, one live row per user.
type Verification struct {
	UserID    int       `json:"user_id"`
	Token     int       `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
