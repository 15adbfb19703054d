package mocks

import (
	"context"
	"time"

	"challenge_league_api/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) GetUsersByIDs(ctx context.Context, userIDs []int64) ([]*model.User, error) {
	args := m.Called(ctx, userIDs)
	return users(args, 0), args.Error(1)
}

func (m *MockTeamRepository) CreateTeam(ctx context.Context, team *model.Team, userIDs []int64) error {
	args := m.Called(ctx, team, userIDs)
	return args.Error(0)
}

func (m *MockTeamRepository) GetLeagueTeams(ctx context.Context, leagueRoomID int64) ([]*model.LeagueTeam, error) {
	args := m.Called(ctx, leagueRoomID)
	if t, ok := args.Get(0).([]*model.LeagueTeam); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockLeagueRepository struct {
	mock.Mock
}

func (m *MockLeagueRepository) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	return user(args, 0), args.Error(1)
}

func (m *MockLeagueRepository) GetOpenWaitingRoom(ctx context.Context, userID int64) (*model.WaitingRoomEntry, error) {
	args := m.Called(ctx, userID)
	return waitingRoomEntry(args, 0), args.Error(1)
}

func (m *MockLeagueRepository) JoinWaitingRoom(ctx context.Context, userID int64, capacity int) (*model.WaitingRoomEntry, error) {
	args := m.Called(ctx, userID, capacity)
	return waitingRoomEntry(args, 0), args.Error(1)
}

func (m *MockLeagueRepository) GetWaitingRoomUsers(ctx context.Context, waitingRoomID int64) ([]*model.User, error) {
	args := m.Called(ctx, waitingRoomID)
	return users(args, 0), args.Error(1)
}

func (m *MockLeagueRepository) PromoteWaitingRoom(ctx context.Context, waitingRoomID int64, leagueRoomName string) (*model.LeaguePromotion, error) {
	args := m.Called(ctx, waitingRoomID, leagueRoomName)
	if p, ok := args.Get(0).(*model.LeaguePromotion); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLeagueRepository) GetActiveLeagueRoom(ctx context.Context, userID int64, since time.Time) (*model.ActiveLeagueRoom, error) {
	args := m.Called(ctx, userID, since)
	if r, ok := args.Get(0).(*model.ActiveLeagueRoom); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func waitingRoomEntry(args mock.Arguments, i int) *model.WaitingRoomEntry {
	if e, ok := args.Get(i).(*model.WaitingRoomEntry); ok {
		return e
	}
	return nil
}
