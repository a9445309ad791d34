package model

import (
	"errors"
	"time"
)

// User represents a registered account. Only admins can publish projects;
// everyone else registers to comment and like.
type User struct {
	ID             int64     `db:"id" json:"id"`
	Username       string    `db:"username" json:"username"`
	Email          string    `db:"email" json:"email"`
	PasswordHashed string    `db:"password_hashed" json:"-"` // "-" hides from JSON output
	FirstName      string    `db:"first_name" json:"first_name"`
	LastName       string    `db:"last_name" json:"last_name"`
	Bio            *string   `db:"bio" json:"bio"`
	Profession     *string   `db:"profession" json:"profession"`
	Location       *string   `db:"location" json:"location"`
	LinkedinURL    *string   `db:"linkedin_url" json:"linkedin_url"`
	GithubURL      *string   `db:"github_url" json:"github_url"`
	WebsiteURL     *string   `db:"website_url" json:"website_url"`
	ProfileImage   *string   `db:"profile_image" json:"profile_image"`
	IsAdmin        bool      `db:"is_admin" json:"is_admin"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// FullName joins first and last name for notification messages.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// PublicProfile is the profile-page representation of a user. It carries no
// email or role; those stay on the authenticated /me view.
type PublicProfile struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Bio          *string   `json:"bio"`
	Profession   *string   `json:"profession"`
	Location     *string   `json:"location"`
	LinkedinURL  *string   `json:"linkedin_url"`
	GithubURL    *string   `json:"github_url"`
	WebsiteURL   *string   `json:"website_url"`
	ProfileImage *string   `json:"profile_image"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublicProfile reshapes the user for unauthenticated viewers.
func (u *User) PublicProfile() *PublicProfile {
	return &PublicProfile{
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Bio:          u.Bio,
		Profession:   u.Profession,
		Location:     u.Location,
		LinkedinURL:  u.LinkedinURL,
		GithubURL:    u.GithubURL,
		WebsiteURL:   u.WebsiteURL,
		ProfileImage: u.ProfileImage,
		CreatedAt:    u.CreatedAt,
	}
}

// UserSummary is the lightweight author representation joined onto
// comments.
type UserSummary struct {
	ID           int64   `db:"id" json:"id"`
	Username     string  `db:"username" json:"username"`
	FirstName    string  `db:"first_name" json:"first_name"`
	LastName     string  `db:"last_name" json:"last_name"`
	ProfileImage *string `db:"profile_image" json:"profile_image"`
}

// RegisterRequest represents the data needed to register a new user.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LoginRequest represents the data needed to log in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest carries the editable profile fields. ProfileImage is
// filled in by the handler after it has stored the upload.
type UpdateProfileRequest struct {
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Bio          *string `json:"bio"`
	Profession   *string `json:"profession"`
	Location     *string `json:"location"`
	LinkedinURL  *string `json:"linkedin_url"`
	GithubURL    *string `json:"github_url"`
	WebsiteURL   *string `json:"website_url"`
	ProfileImage *string `json:"-"`
}

var (
	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameExists is returned when attempting to create a user with a taken username
	ErrUsernameExists = errors.New("username already exists")

	// ErrEmailExists is returned when attempting to create a user with a taken email
	ErrEmailExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned when login credentials are incorrect
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden is returned when an actor lacks admin rights or ownership
	// for a mutating operation
	ErrForbidden = errors.New("operation not permitted")
)
