package service

import (
	"context"
	"testing"

	"challenge_league_api/internal/model"
	"challenge_league_api/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 {
	return &f
}

func TestPointsService_GetTeamPoints(t *testing.T) {
	tests := []struct {
		name          string
		scores        []*model.TeamChallengeScore
		repoErr       error
		expected      []*model.TeamPoints
		expectedError error
	}{
		{
			name:     "Empty league",
			scores:   []*model.TeamChallengeScore{},
			expected: []*model.TeamPoints{},
		},
		{
			name: "Multiplier and streak bonus",
			scores: []*model.TeamChallengeScore{
				{TeamID: 1, IsCompleted: true, Multiplier: floatPtr(2), EarningPoints: 50, StreakBonusPoints: 5},
				{TeamID: 1, IsCompleted: true, Multiplier: nil, EarningPoints: 30, StreakBonusPoints: 5},
				{TeamID: 1, IsCompleted: false, Multiplier: floatPtr(3), EarningPoints: 100, StreakBonusPoints: 5},
			},
			expected: []*model.TeamPoints{
				{TeamID: 1, TotalPoints: 135, CompletedChallenges: 2, StreakBonus: 5},
			},
		},
		{
			name: "Zero multiplier counts as one",
			scores: []*model.TeamChallengeScore{
				{TeamID: 4, IsCompleted: true, Multiplier: floatPtr(0), EarningPoints: 40},
			},
			expected: []*model.TeamPoints{
				{TeamID: 4, TotalPoints: 40, CompletedChallenges: 1},
			},
		},
		{
			name: "Ordered by total then team id",
			scores: []*model.TeamChallengeScore{
				{TeamID: 3, IsCompleted: true, EarningPoints: 20},
				{TeamID: 2, IsCompleted: true, EarningPoints: 60},
				{TeamID: 1, IsCompleted: true, EarningPoints: 20},
				{TeamID: 5, IsCompleted: false, EarningPoints: 90, StreakBonusPoints: 10},
			},
			expected: []*model.TeamPoints{
				{TeamID: 2, TotalPoints: 60, CompletedChallenges: 1},
				{TeamID: 1, TotalPoints: 20, CompletedChallenges: 1},
				{TeamID: 3, TotalPoints: 20, CompletedChallenges: 1},
				{TeamID: 5, TotalPoints: 10, CompletedChallenges: 0, StreakBonus: 10},
			},
		},
		{
			name:          "Repository error",
			repoErr:       assert.AnError,
			expectedError: assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.MockPointsRepository{}
			repo.On("GetLeagueChallengeScores", mock.Anything, int64(9)).Return(tt.scores, tt.repoErr)

			service := NewPointsService(repo)
			points, err := service.GetTeamPoints(context.Background(), 9)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, points)
			}

			repo.AssertExpectations(t)
		})
	}
}
