package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockBlacklist struct {
	mock.Mock
}

func (m *MockBlacklist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	args := m.Called(ctx, jti, expiresAt)
	return args.Error(0)
}

func (m *MockBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}
