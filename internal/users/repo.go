package users

import "context"

type Repo interface {
	Create(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	// Update persists email, full name, password hash and active flag.
	Update(ctx context.Context, user User) (User, error)
	Delete(ctx context.Context, userID string) error
}
