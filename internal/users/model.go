package users

import "time"

// User is an account holder. PasswordHash never leaves the service layer.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Response is the public view of a user.
type Response struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u User) Response() Response {
	var fullName *string
	if u.FullName != "" {
		name := u.FullName
		fullName = &name
	}
	return Response{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  fullName,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
