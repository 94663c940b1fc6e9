package identity_test

import (
	"context"

	identity "github.com/goliatone/go-identity"
	"github.com/stretchr/testify/mock"
)

// MockUserStore implements identity.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	var user *identity.User
	if v := args.Get(0); v != nil {
		user = v.(*identity.User)
	}
	return user, args.Error(1)
}

func (m *MockUserStore) CreateUser(ctx context.Context, user *identity.User, plaintext string) error {
	args := m.Called(ctx, user, plaintext)
	return args.Error(0)
}

func (m *MockUserStore) VerifySecret(ctx context.Context, user *identity.User, plaintext string) (bool, error) {
	args := m.Called(ctx, user, plaintext)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserStore) GetRoles(ctx context.Context, user *identity.User) ([]string, error) {
	args := m.Called(ctx, user)
	var roles []string
	if v := args.Get(0); v != nil {
		roles = v.([]string)
	}
	return roles, args.Error(1)
}

func (m *MockUserStore) AssignRole(ctx context.Context, user *identity.User, role string) error {
	args := m.Called(ctx, user, role)
	return args.Error(0)
}

func (m *MockUserStore) RoleExists(ctx context.Context, role string) (bool, error) {
	args := m.Called(ctx, role)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserStore) CreateRole(ctx context.Context, role string) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

// MockLogger implements identity.Logger
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Info(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Warn(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Error(format string, args ...any) {
	m.Called(format, args)
}
