package mocks

import (
	"context"

	"challenge_league_api/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockContributionService struct {
	mock.Mock
}

func (m *MockContributionService) RecordContribution(ctx context.Context, in *model.ContributionInput) (*model.ContributionResult, error) {
	args := m.Called(ctx, in)
	if r, ok := args.Get(0).(*model.ContributionResult); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockStreakService struct {
	mock.Mock
}

func (m *MockStreakService) ResetStreaks(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockPointsService struct {
	mock.Mock
}

func (m *MockPointsService) GetTeamPoints(ctx context.Context, leagueRoomID int64) ([]*model.TeamPoints, error) {
	args := m.Called(ctx, leagueRoomID)
	if p, ok := args.Get(0).([]*model.TeamPoints); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockChallengeService struct {
	mock.Mock
}

func (m *MockChallengeService) AddChallenge(ctx context.Context, challenge *model.Challenge) (*model.Challenge, error) {
	args := m.Called(ctx, challenge)
	if c, ok := args.Get(0).(*model.Challenge); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChallengeService) CreateDailyChallenges(ctx context.Context) ([]*model.Challenge, error) {
	args := m.Called(ctx)
	if c, ok := args.Get(0).([]*model.Challenge); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChallengeService) AssignChallenge(ctx context.Context, userID, challengeID int64, multiplier *float64) (*model.TeamChallenge, error) {
	args := m.Called(ctx, userID, challengeID, multiplier)
	if tc, ok := args.Get(0).(*model.TeamChallenge); ok {
		return tc, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockTeamService struct {
	mock.Mock
}

func (m *MockTeamService) CreateTeam(ctx context.Context, userIDs []int64, leagueRoomID *int64) (*model.Team, error) {
	args := m.Called(ctx, userIDs, leagueRoomID)
	if t, ok := args.Get(0).(*model.Team); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTeamService) GetLeagueTeams(ctx context.Context, leagueRoomID int64) ([]*model.LeagueTeam, error) {
	args := m.Called(ctx, leagueRoomID)
	if t, ok := args.Get(0).([]*model.LeagueTeam); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockLeagueService struct {
	mock.Mock
}

func (m *MockLeagueService) JoinWaitingRoom(ctx context.Context, userID int64) (*model.WaitingRoomEntry, error) {
	args := m.Called(ctx, userID)
	if e, ok := args.Get(0).(*model.WaitingRoomEntry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLeagueService) GetWaitingRoomID(ctx context.Context, userID int64) (*int64, error) {
	args := m.Called(ctx, userID)
	if id, ok := args.Get(0).(*int64); ok {
		return id, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLeagueService) GetWaitingRoomUsers(ctx context.Context, waitingRoomID int64) ([]*model.User, error) {
	args := m.Called(ctx, waitingRoomID)
	if u, ok := args.Get(0).([]*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLeagueService) CreateLeagueRoom(ctx context.Context, userID int64) (*model.LeaguePromotion, error) {
	args := m.Called(ctx, userID)
	if p, ok := args.Get(0).(*model.LeaguePromotion); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLeagueService) GetActiveLeagueRoom(ctx context.Context, userID int64) (*model.ActiveLeagueRoom, error) {
	args := m.Called(ctx, userID)
	if r, ok := args.Get(0).(*model.ActiveLeagueRoom); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) RegisterUser(ctx context.Context, name, email, password string) (*model.User, error) {
	args := m.Called(ctx, name, email, password)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (*model.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if r, ok := args.Get(0).(*model.LoginResult); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) Logout(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
