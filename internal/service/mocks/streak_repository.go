package mocks

import (
	"context"

	"challenge_league_api/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockStreakRepository struct {
	mock.Mock
}

func (m *MockStreakRepository) ListTeamsWithCompletion(ctx context.Context) ([]*model.Team, error) {
	args := m.Called(ctx)
	if t, ok := args.Get(0).([]*model.Team); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStreakRepository) ResetTeamStreak(ctx context.Context, teamID int64) (bool, error) {
	args := m.Called(ctx, teamID)
	return args.Bool(0), args.Error(1)
}

type MockPointsRepository struct {
	mock.Mock
}

func (m *MockPointsRepository) GetLeagueChallengeScores(ctx context.Context, leagueRoomID int64) ([]*model.TeamChallengeScore, error) {
	args := m.Called(ctx, leagueRoomID)
	if s, ok := args.Get(0).([]*model.TeamChallengeScore); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}
