package mocks

import (
	"context"

	"challenge_league_api/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockChallengeRepository struct {
	mock.Mock
}

func (m *MockChallengeRepository) CreateChallenges(ctx context.Context, challenges []*model.Challenge) error {
	args := m.Called(ctx, challenges)
	return args.Error(0)
}

func (m *MockChallengeRepository) GetChallenge(ctx context.Context, challengeID int64) (*model.Challenge, error) {
	args := m.Called(ctx, challengeID)
	return challenge(args, 0), args.Error(1)
}

func (m *MockChallengeRepository) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	return user(args, 0), args.Error(1)
}

func (m *MockChallengeRepository) GetActiveMemberships(ctx context.Context, userID int64) ([]*model.TeamMembership, error) {
	args := m.Called(ctx, userID)
	return memberships(args, 0), args.Error(1)
}

func (m *MockChallengeRepository) GetActiveTeamChallenge(ctx context.Context, teamID int64) (*model.TeamChallenge, error) {
	args := m.Called(ctx, teamID)
	return teamChallenge(args, 0), args.Error(1)
}

func (m *MockChallengeRepository) TeamChallengeExists(ctx context.Context, teamID, challengeID int64) (bool, error) {
	args := m.Called(ctx, teamID, challengeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockChallengeRepository) HasActiveContribution(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockChallengeRepository) CreateTeamChallenge(ctx context.Context, tc *model.TeamChallenge) error {
	args := m.Called(ctx, tc)
	return args.Error(0)
}
