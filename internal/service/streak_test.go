package service

import (
	"context"
	"testing"
	"time"

	"challenge_league_api/internal/model"
	"challenge_league_api/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestStreakService_ResetStreaks(t *testing.T) {
	daysAgo := func(n int) *time.Time {
		d := dateOf(fixedNow).AddDate(0, 0, -n)
		return &d
	}

	tests := []struct {
		name          string
		setupMocks    func(repo *mocks.MockStreakRepository)
		expectedCount int
		expectedError error
	}{
		{
			name: "Recent completions keep their streak",
			setupMocks: func(repo *mocks.MockStreakRepository) {
				repo.On("ListTeamsWithCompletion", mock.Anything).Return([]*model.Team{
					{TeamID: 1, CurrentStreak: 3, LastCompletionDate: daysAgo(0)},
					{TeamID: 2, CurrentStreak: 5, LastCompletionDate: daysAgo(1)},
				}, nil)
			},
			expectedCount: 0,
		},
		{
			name: "Stale streaks are reset",
			setupMocks: func(repo *mocks.MockStreakRepository) {
				repo.On("ListTeamsWithCompletion", mock.Anything).Return([]*model.Team{
					{TeamID: 1, CurrentStreak: 3, LastCompletionDate: daysAgo(2)},
					{TeamID: 2, CurrentStreak: 1, LastCompletionDate: daysAgo(1)},
					{TeamID: 3, CurrentStreak: 7, LastCompletionDate: daysAgo(30)},
				}, nil)
				repo.On("ResetTeamStreak", mock.Anything, int64(1)).Return(true, nil)
				repo.On("ResetTeamStreak", mock.Anything, int64(3)).Return(true, nil)
			},
			expectedCount: 2,
		},
		{
			name: "Zero streaks and missing dates are skipped",
			setupMocks: func(repo *mocks.MockStreakRepository) {
				repo.On("ListTeamsWithCompletion", mock.Anything).Return([]*model.Team{
					{TeamID: 1, CurrentStreak: 0, LastCompletionDate: daysAgo(10)},
					{TeamID: 2, CurrentStreak: 4},
				}, nil)
			},
			expectedCount: 0,
		},
		{
			name: "Concurrent reset is not counted twice",
			setupMocks: func(repo *mocks.MockStreakRepository) {
				repo.On("ListTeamsWithCompletion", mock.Anything).Return([]*model.Team{
					{TeamID: 1, CurrentStreak: 3, LastCompletionDate: daysAgo(3)},
				}, nil)
				repo.On("ResetTeamStreak", mock.Anything, int64(1)).Return(false, nil)
			},
			expectedCount: 0,
		},
		{
			name: "Update error",
			setupMocks: func(repo *mocks.MockStreakRepository) {
				repo.On("ListTeamsWithCompletion", mock.Anything).Return([]*model.Team{
					{TeamID: 1, CurrentStreak: 3, LastCompletionDate: daysAgo(3)},
				}, nil)
				repo.On("ResetTeamStreak", mock.Anything, int64(1)).Return(false, assert.AnError)
			},
			expectedError: assert.AnError,
		},
		{
			name: "List error",
			setupMocks: func(repo *mocks.MockStreakRepository) {
				repo.On("ListTeamsWithCompletion", mock.Anything).Return(nil, assert.AnError)
			},
			expectedError: assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.MockStreakRepository{}
			tt.setupMocks(repo)

			service := NewStreakService(repo)
			service.now = fixedClock

			count, err := service.ResetStreaks(context.Background())

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedCount, count)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestStreakService_ResetStreaksIsIdempotent(t *testing.T) {
	stale := dateOf(fixedNow).AddDate(0, 0, -5)

	repo := &mocks.MockStreakRepository{}
	repo.On("ListTeamsWithCompletion", mock.Anything).Return([]*model.Team{
		{TeamID: 1, CurrentStreak: 2, LastCompletionDate: &stale},
	}, nil).Once()
	repo.On("ResetTeamStreak", mock.Anything, int64(1)).Return(true, nil).Once()
	repo.On("ListTeamsWithCompletion", mock.Anything).Return([]*model.Team{
		{TeamID: 1, CurrentStreak: 0, LastCompletionDate: &stale},
	}, nil).Once()

	service := NewStreakService(repo)
	service.now = fixedClock

	first, err := service.ResetStreaks(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, first)

	second, err := service.ResetStreaks(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, second)

	repo.AssertExpectations(t)
}
