package mocks

import (
	"context"
	"time"

	"challenge_league_api/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	return user(args, 0), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	return user(args, 0), args.Error(1)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(userID int64, email string) (string, time.Time, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func user(args mock.Arguments, i int) *model.User {
	if u, ok := args.Get(i).(*model.User); ok {
		return u
	}
	return nil
}

func users(args mock.Arguments, i int) []*model.User {
	if u, ok := args.Get(i).([]*model.User); ok {
		return u
	}
	return nil
}

func memberships(args mock.Arguments, i int) []*model.TeamMembership {
	if m, ok := args.Get(i).([]*model.TeamMembership); ok {
		return m
	}
	return nil
}

func teamChallenge(args mock.Arguments, i int) *model.TeamChallenge {
	if tc, ok := args.Get(i).(*model.TeamChallenge); ok {
		return tc
	}
	return nil
}

func challenge(args mock.Arguments, i int) *model.Challenge {
	if c, ok := args.Get(i).(*model.Challenge); ok {
		return c
	}
	return nil
}
