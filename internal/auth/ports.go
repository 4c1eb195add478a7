package auth

import (
	"context"

	"bookreview/internal/user"
)

// UserStore is the part of the user service authentication relies on.
type UserStore interface {
	Register(ctx context.Context, name, email, hashedPassword string) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	GetByID(ctx context.Context, id string) (user.User, error)
}
