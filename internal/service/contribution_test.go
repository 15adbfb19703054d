package service

import (
	"context"
	"testing"
	"time"

	"challenge_league_api/internal/model"
	"challenge_league_api/internal/repository"
	"challenge_league_api/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 10, 15, 30, 0, 0, time.UTC)

func fixedClock() time.Time {
	return fixedNow
}

func newContributionInput(userID int64, meters float64) *model.ContributionInput {
	return &model.ContributionInput{
		UserID:          userID,
		StartTime:       fixedNow.Add(-time.Hour),
		EndTime:         fixedNow,
		StartLatitude:   52.52,
		StartLongitude:  13.405,
		EndLatitude:     52.53,
		EndLongitude:    13.41,
		DistanceCovered: meters,
	}
}

func TestContributionService_RecordContribution(t *testing.T) {
	yesterday := dateOf(fixedNow).AddDate(0, 0, -1)

	tests := []struct {
		name          string
		input         *model.ContributionInput
		setupMocks    func(repo *mocks.MockContributionRepository)
		expectedError error
		check         func(t *testing.T, result *model.ContributionResult)
	}{
		{
			name:  "No active team",
			input: newContributionInput(1, 1000),
			setupMocks: func(repo *mocks.MockContributionRepository) {
				repo.On("GetActiveMemberships", mock.Anything, int64(1)).
					Return([]*model.TeamMembership{}, nil)
			},
			expectedError: ErrNoActiveTeam,
		},
		{
			name:  "Multiple active teams",
			input: newContributionInput(1, 1000),
			setupMocks: func(repo *mocks.MockContributionRepository) {
				repo.On("GetActiveMemberships", mock.Anything, int64(1)).
					Return([]*model.TeamMembership{{TeamID: 7}, {TeamID: 8}}, nil)
			},
			expectedError: ErrMultipleActiveTeams,
		},
		{
			name:  "No active challenge",
			input: newContributionInput(1, 1000),
			setupMocks: func(repo *mocks.MockContributionRepository) {
				repo.On("GetActiveMemberships", mock.Anything, int64(1)).
					Return([]*model.TeamMembership{{TeamID: 7, UserID: 1}}, nil)
				repo.On("GetActiveTeamChallenge", mock.Anything, int64(7)).
					Return(nil, repository.ErrNotFound)
			},
			expectedError: ErrNoActiveChallenge,
		},
		{
			name:  "Below target stays incomplete",
			input: newContributionInput(1, 1500),
			setupMocks: func(repo *mocks.MockContributionRepository) {
				repo.On("GetActiveMemberships", mock.Anything, int64(1)).
					Return([]*model.TeamMembership{{TeamID: 7, UserID: 1}}, nil)
				repo.On("GetActiveTeamChallenge", mock.Anything, int64(7)).
					Return(&model.TeamChallenge{TeamChallengeID: 42, TeamID: 7, ChallengeID: 3}, nil)
				repo.On("CreateContribution", mock.Anything, mock.MatchedBy(func(c *model.UserContribution) bool {
					return c.TeamChallengeID == 42 &&
						c.UserID == 1 &&
						!c.Active &&
						c.ContributionDetails == "Distance covered: 1500"
				})).Return(nil)
				repo.On("GetContributionDistances", mock.Anything, int64(42)).
					Return([]float64{1000, 1500}, nil)
				repo.On("GetChallenge", mock.Anything, int64(3)).
					Return(&model.Challenge{ChallengeID: 3, Length: 4}, nil)
			},
			check: func(t *testing.T, result *model.ContributionResult) {
				assert.False(t, result.ChallengeCompleted)
				assert.InDelta(t, 2.5, result.TotalDistanceKm, 1e-9)
				assert.Equal(t, 4.0, result.RequiredDistanceKm)
				assert.Equal(t, int64(42), result.TeamChallengeID)
				require.NotNil(t, result.Contribution)
				assert.Equal(t, 1500.0, result.Contribution.DistanceCovered)
			},
		},
		{
			name:  "Reaching target completes and advances streak",
			input: newContributionInput(1, 5000),
			setupMocks: func(repo *mocks.MockContributionRepository) {
				repo.On("GetActiveMemberships", mock.Anything, int64(1)).
					Return([]*model.TeamMembership{{TeamID: 7, UserID: 1}}, nil)
				repo.On("GetActiveTeamChallenge", mock.Anything, int64(7)).
					Return(&model.TeamChallenge{TeamChallengeID: 42, TeamID: 7, ChallengeID: 3}, nil)
				repo.On("CreateContribution", mock.Anything, mock.Anything).Return(nil)
				repo.On("GetContributionDistances", mock.Anything, int64(42)).
					Return([]float64{5000}, nil)
				repo.On("GetChallenge", mock.Anything, int64(3)).
					Return(&model.Challenge{ChallengeID: 3, Length: 4}, nil)
				repo.On("MarkTeamChallengeCompleted", mock.Anything, int64(42)).Return(true, nil)
				repo.On("GetTeam", mock.Anything, int64(7)).
					Return(&model.Team{TeamID: 7, CurrentStreak: 2, LastCompletionDate: &yesterday, StreakBonusPoints: 10}, nil)
				repo.On("UpdateTeamStreak", mock.Anything, mock.MatchedBy(func(s *model.TeamStreak) bool {
					return s.TeamID == 7 &&
						s.CurrentStreak == 3 &&
						s.StreakBonusPoints == 10+5*2 &&
						s.LastCompletionDate != nil &&
						s.LastCompletionDate.Equal(dateOf(fixedNow))
				})).Return(nil)
			},
			check: func(t *testing.T, result *model.ContributionResult) {
				assert.True(t, result.ChallengeCompleted)
				assert.Equal(t, 5.0, result.TotalDistanceKm)
				assert.Equal(t, 4.0, result.RequiredDistanceKm)
			},
		},
		{
			name:  "Already completed challenge does not advance streak again",
			input: newContributionInput(1, 800),
			setupMocks: func(repo *mocks.MockContributionRepository) {
				repo.On("GetActiveMemberships", mock.Anything, int64(1)).
					Return([]*model.TeamMembership{{TeamID: 7, UserID: 1}}, nil)
				repo.On("GetActiveTeamChallenge", mock.Anything, int64(7)).
					Return(&model.TeamChallenge{TeamChallengeID: 42, TeamID: 7, ChallengeID: 3}, nil)
				repo.On("CreateContribution", mock.Anything, mock.Anything).Return(nil)
				repo.On("GetContributionDistances", mock.Anything, int64(42)).
					Return([]float64{4000, 800}, nil)
				repo.On("GetChallenge", mock.Anything, int64(3)).
					Return(&model.Challenge{ChallengeID: 3, Length: 4}, nil)
				repo.On("MarkTeamChallengeCompleted", mock.Anything, int64(42)).Return(false, nil)
			},
			check: func(t *testing.T, result *model.ContributionResult) {
				assert.True(t, result.ChallengeCompleted)
				assert.InDelta(t, 4.8, result.TotalDistanceKm, 1e-9)
			},
		},
		{
			name:  "Challenge row missing",
			input: newContributionInput(1, 800),
			setupMocks: func(repo *mocks.MockContributionRepository) {
				repo.On("GetActiveMemberships", mock.Anything, int64(1)).
					Return([]*model.TeamMembership{{TeamID: 7, UserID: 1}}, nil)
				repo.On("GetActiveTeamChallenge", mock.Anything, int64(7)).
					Return(&model.TeamChallenge{TeamChallengeID: 42, TeamID: 7, ChallengeID: 3}, nil)
				repo.On("CreateContribution", mock.Anything, mock.Anything).Return(nil)
				repo.On("GetContributionDistances", mock.Anything, int64(42)).
					Return([]float64{800}, nil)
				repo.On("GetChallenge", mock.Anything, int64(3)).
					Return(nil, repository.ErrNotFound)
			},
			expectedError: ErrChallengeNotFound,
		},
		{
			name:  "Insert failure",
			input: newContributionInput(1, 800),
			setupMocks: func(repo *mocks.MockContributionRepository) {
				repo.On("GetActiveMemberships", mock.Anything, int64(1)).
					Return([]*model.TeamMembership{{TeamID: 7, UserID: 1}}, nil)
				repo.On("GetActiveTeamChallenge", mock.Anything, int64(7)).
					Return(&model.TeamChallenge{TeamChallengeID: 42, TeamID: 7, ChallengeID: 3}, nil)
				repo.On("CreateContribution", mock.Anything, mock.Anything).Return(assert.AnError)
			},
			expectedError: assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.MockContributionRepository{}
			tt.setupMocks(repo)

			service := NewContributionService(repo, 5)
			service.now = fixedClock

			result, err := service.RecordContribution(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				require.NotNil(t, result)
				tt.check(t, result)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestNextStreak(t *testing.T) {
	today := dateOf(fixedNow)
	yesterday := today.AddDate(0, 0, -1)
	lastWeek := today.AddDate(0, 0, -7)

	tests := []struct {
		name           string
		team           *model.Team
		expectedStreak int
		expectedBonus  int
	}{
		{
			name:           "First completion",
			team:           &model.Team{TeamID: 1},
			expectedStreak: 1,
			expectedBonus:  0,
		},
		{
			name:           "Second completion on the same day",
			team:           &model.Team{TeamID: 1, CurrentStreak: 3, LastCompletionDate: &today, StreakBonusPoints: 15},
			expectedStreak: 3,
			expectedBonus:  15,
		},
		{
			name:           "Consecutive day",
			team:           &model.Team{TeamID: 1, CurrentStreak: 1, LastCompletionDate: &yesterday},
			expectedStreak: 2,
			expectedBonus:  5,
		},
		{
			name:           "Gap restarts the streak",
			team:           &model.Team{TeamID: 1, CurrentStreak: 4, LastCompletionDate: &lastWeek, StreakBonusPoints: 30},
			expectedStreak: 1,
			expectedBonus:  30,
		},
		{
			name:           "Reset streak with today's date",
			team:           &model.Team{TeamID: 1, CurrentStreak: 0, LastCompletionDate: &today},
			expectedStreak: 1,
			expectedBonus:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			streak := nextStreak(tt.team, fixedNow, 5)

			assert.Equal(t, tt.team.TeamID, streak.TeamID)
			assert.Equal(t, tt.expectedStreak, streak.CurrentStreak)
			assert.Equal(t, tt.expectedBonus, streak.StreakBonusPoints)
			require.NotNil(t, streak.LastCompletionDate)
			assert.True(t, streak.LastCompletionDate.Equal(today))
		})
	}
}
