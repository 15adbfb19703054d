package service

import (
	"context"
	"fmt"
	"time"

	"challenge_league_api/internal/model"
	"challenge_league_api/pkg/logger"

	"go.uber.org/zap"
)

const day = 24 * time.Hour

type StreakService struct {
	repo StreakRepository
	now  Clock
}

func NewStreakService(repo StreakRepository) *StreakService {
	return &StreakService{
		repo: repo,
		now:  utcNow,
	}
}

// ResetStreaks zeroes the streak of every team whose last completion is more than one
// whole day before today. Teams completing today or yesterday keep their streak.
func (s *StreakService) ResetStreaks(ctx context.Context) (int, error) {
	teams, err := s.repo.ListTeamsWithCompletion(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list teams: %w", err)
	}

	today := dateOf(s.now())
	updated := 0
	for _, team := range teams {
		if team.LastCompletionDate == nil || team.CurrentStreak == 0 {
			continue
		}
		if daysBetween(*team.LastCompletionDate, today) <= 1 {
			continue
		}

		reset, err := s.repo.ResetTeamStreak(ctx, team.TeamID)
		if err != nil {
			return updated, fmt.Errorf("failed to reset streak of team %d: %w", team.TeamID, err)
		}
		if reset {
			updated++
			streaksReset.Inc()
			logger.Logger().Info("team streak reset",
				zap.Int64("team_id", team.TeamID),
				zap.Int("previous_streak", team.CurrentStreak))
		}
	}

	return updated, nil
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween is the whole number of days from the calendar date of from to that of to.
func daysBetween(from, to time.Time) int {
	return int(dateOf(to).Sub(dateOf(from)) / day)
}

// nextStreak is the team's streak after completing a challenge on today.
func nextStreak(team *model.Team, today time.Time, bonusPerDay int) *model.TeamStreak {
	today = dateOf(today)
	streak := &model.TeamStreak{
		TeamID:             team.TeamID,
		CurrentStreak:      team.CurrentStreak,
		LastCompletionDate: &today,
		StreakBonusPoints:  team.StreakBonusPoints,
	}

	gap := -1
	if team.LastCompletionDate != nil {
		gap = daysBetween(*team.LastCompletionDate, today)
	}

	switch gap {
	case 0:
		if streak.CurrentStreak == 0 {
			streak.CurrentStreak = 1
		}
		return streak
	case 1:
		streak.CurrentStreak++
	default:
		streak.CurrentStreak = 1
	}

	if streak.CurrentStreak > 1 {
		streak.StreakBonusPoints += bonusPerDay * (streak.CurrentStreak - 1)
	}

	return streak
}
