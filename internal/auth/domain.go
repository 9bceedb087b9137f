package auth

import "time"

// User is the credential record stored per canonical email. The email is the
// store key and never changes after creation.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	FullName     string     `json:"fullName"`
	PasswordHash string     `json:"passwordHash"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastLogin    *time.Time `json:"lastLogin"`
	IsActive     bool       `json:"isActive"`
}

// Profile is the outward-facing subset of a User. The password hash never
// leaves the service.
type Profile struct {
	FullName  string     `json:"fullName"`
	Email     string     `json:"email"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}
