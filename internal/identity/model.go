package identity

import "time"

// User represents a registered app account.
type User struct {
	ID           int64
	Email        string
	Phone        string
	Name         string
	Salt         string
	PasswordHash string
	AccessToken  string
	CreatedAt    time.Time
}

// SignupInput carries the fields required to open an account.
type SignupInput struct {
	Email    string
	Phone    string
	Name     string
	Password string
}
