package mocks

import (
	"context"

	"challenge_league_api/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockContributionRepository struct {
	mock.Mock
}

func (m *MockContributionRepository) GetActiveMemberships(ctx context.Context, userID int64) ([]*model.TeamMembership, error) {
	args := m.Called(ctx, userID)
	return memberships(args, 0), args.Error(1)
}

func (m *MockContributionRepository) GetActiveTeamChallenge(ctx context.Context, teamID int64) (*model.TeamChallenge, error) {
	args := m.Called(ctx, teamID)
	return teamChallenge(args, 0), args.Error(1)
}

func (m *MockContributionRepository) CreateContribution(ctx context.Context, c *model.UserContribution) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContributionRepository) GetContributionDistances(ctx context.Context, teamChallengeID int64) ([]float64, error) {
	args := m.Called(ctx, teamChallengeID)
	if d, ok := args.Get(0).([]float64); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockContributionRepository) GetChallenge(ctx context.Context, challengeID int64) (*model.Challenge, error) {
	args := m.Called(ctx, challengeID)
	return challenge(args, 0), args.Error(1)
}

func (m *MockContributionRepository) MarkTeamChallengeCompleted(ctx context.Context, teamChallengeID int64) (bool, error) {
	args := m.Called(ctx, teamChallengeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockContributionRepository) GetTeam(ctx context.Context, teamID int64) (*model.Team, error) {
	args := m.Called(ctx, teamID)
	if t, ok := args.Get(0).(*model.Team); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockContributionRepository) UpdateTeamStreak(ctx context.Context, streak *model.TeamStreak) error {
	args := m.Called(ctx, streak)
	return args.Error(0)
}
