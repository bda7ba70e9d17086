package users

import "time"

// User is the application user record. Subject is the stable external
// identifier issued by the authentication provider; ID is the internal
// database id.
type User struct {
	ID          int64     `json:"id"`
	Subject     string    `json:"subject"`
	Email       string    `json:"email"`
	Name        string    `json:"name,omitempty"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Gender      string    `json:"gender,omitempty"`
	DateOfBirth string    `json:"date_of_birth,omitempty"`
	Age         int       `json:"age"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SignUpRequest is the body for POST /api/auth/signup. DateOfBirth uses the
// YYYY-MM-DD form.
type SignUpRequest struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"date_of_birth"`
	Age         int    `json:"age"`
}

// UpdateProfileRequest updates profile fields; nil means keep the current value.
type UpdateProfileRequest struct {
	Name        *string `json:"name"`
	PhoneNumber *string `json:"phone_number"`
	Gender      *string `json:"gender"`
	DateOfBirth *string `json:"date_of_birth"`
	Age         *int    `json:"age"`
}
