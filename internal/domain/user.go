package domain

import "time"

type User struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash string
	IsStaff      bool
	Image        string
	CreatedAt    time.Time
}

// Identity is the authenticated caller attached to a request.
type Identity struct {
	UserID  int64
	IsStaff bool
}
