package auth

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bookreview/internal/user"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) Register(ctx context.Context, name, email, hashedPassword string) (user.User, error) {
	args := m.Called(ctx, name, email, hashedPassword)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (user.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *mockUserStore) GetByID(ctx context.Context, id string) (user.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.User), args.Error(1)
}
