package service

import (
	"context"
	"fmt"
	"sort"

	"challenge_league_api/internal/model"
)

type PointsService struct {
	repo PointsRepository
}

func NewPointsService(repo PointsRepository) *PointsService {
	return &PointsService{
		repo: repo,
	}
}

// GetTeamPoints totals earning_points × multiplier over each team's completed challenges and
// adds the team's streak bonus once. Only teams with at least one team challenge appear.
// Ordered by total descending, then team id ascending.
func (s *PointsService) GetTeamPoints(ctx context.Context, leagueRoomID int64) ([]*model.TeamPoints, error) {
	scores, err := s.repo.GetLeagueChallengeScores(ctx, leagueRoomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get league scores: %w", err)
	}

	byTeam := make(map[int64]*model.TeamPoints)
	teams := make([]*model.TeamPoints, 0)
	for _, score := range scores {
		tp, ok := byTeam[score.TeamID]
		if !ok {
			tp = &model.TeamPoints{
				TeamID:      score.TeamID,
				StreakBonus: score.StreakBonusPoints,
			}
			byTeam[score.TeamID] = tp
			teams = append(teams, tp)
		}

		if score.IsCompleted {
			tp.TotalPoints += float64(score.EarningPoints) * multiplierOf(score.Multiplier)
			tp.CompletedChallenges++
		}
	}

	for _, tp := range teams {
		tp.TotalPoints += float64(tp.StreakBonus)
	}

	sort.SliceStable(teams, func(i, j int) bool {
		if teams[i].TotalPoints != teams[j].TotalPoints {
			return teams[i].TotalPoints > teams[j].TotalPoints
		}
		return teams[i].TeamID < teams[j].TeamID
	})

	return teams, nil
}

// multiplierOf treats a missing or zero multiplier as 1.
func multiplierOf(m *float64) float64 {
	if m == nil || *m == 0 {
		return 1
	}
	return *m
}
