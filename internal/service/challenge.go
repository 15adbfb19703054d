package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"challenge_league_api/internal/model"
	"challenge_league_api/internal/repository"
)

// DailyChallengeDuration is the window, in minutes, of generated daily challenges.
const DailyChallengeDuration = 24 * 60

type dailyTier struct {
	difficulty string
	count      int
	minKm      int
	maxKm      int
	factor     int
}

var dailyTiers = []dailyTier{
	{difficulty: model.DifficultyEasy, count: 2, minKm: 1, maxKm: 3, factor: 10},
	{difficulty: model.DifficultyMedium, count: 2, minKm: 4, maxKm: 7, factor: 15},
	{difficulty: model.DifficultyHard, count: 1, minKm: 8, maxKm: 10, factor: 20},
}

type ChallengeService struct {
	repo    ChallengeRepository
	now     Clock
	randInt func(n int) int
}

func NewChallengeService(repo ChallengeRepository) *ChallengeService {
	return &ChallengeService{
		repo:    repo,
		now:     utcNow,
		randInt: rand.IntN,
	}
}

func (s *ChallengeService) AddChallenge(ctx context.Context, challenge *model.Challenge) (*model.Challenge, error) {
	err := s.repo.CreateChallenges(ctx, []*model.Challenge{challenge})
	if err != nil {
		return nil, fmt.Errorf("failed to create challenge: %w", err)
	}
	return challenge, nil
}

// CreateDailyChallenges generates two easy, two medium and one hard challenge starting now.
func (s *ChallengeService) CreateDailyChallenges(ctx context.Context) ([]*model.Challenge, error) {
	start := s.now()

	challenges := make([]*model.Challenge, 0, 5)
	for _, tier := range dailyTiers {
		for i := 0; i < tier.count; i++ {
			length := tier.minKm + s.randInt(tier.maxKm-tier.minKm+1)
			challenges = append(challenges, &model.Challenge{
				StartTime:     start,
				Duration:      DailyChallengeDuration,
				Length:        float64(length),
				Difficulty:    tier.difficulty,
				EarningPoints: length * tier.factor,
			})
		}
	}

	err := s.repo.CreateChallenges(ctx, challenges)
	if err != nil {
		return nil, fmt.Errorf("failed to create daily challenges: %w", err)
	}

	return challenges, nil
}

// AssignChallenge gives the user's team the challenge. The checks mirror the schema's unique
// indexes, which decide the outcome when two requests race.
func (s *ChallengeService) AssignChallenge(ctx context.Context, userID, challengeID int64, multiplier *float64) (*model.TeamChallenge, error) {
	_, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	_, err = s.repo.GetChallenge(ctx, challengeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}

	memberships, err := s.repo.GetActiveMemberships(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team membership: %w", err)
	}
	switch {
	case len(memberships) == 0:
		return nil, ErrNoActiveTeam
	case len(memberships) > 1:
		return nil, ErrMultipleActiveTeams
	}
	teamID := memberships[0].TeamID

	_, err = s.repo.GetActiveTeamChallenge(ctx, teamID)
	switch {
	case err == nil:
		return nil, ErrActiveChallenge
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("failed to check active challenges: %w", err)
	}

	exists, err := s.repo.TeamChallengeExists(ctx, teamID, challengeID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing challenges: %w", err)
	}
	if exists {
		return nil, ErrAlreadyAssigned
	}

	active, err := s.repo.HasActiveContribution(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user contributions: %w", err)
	}
	if active {
		return nil, ErrActiveContribution
	}

	tc := &model.TeamChallenge{
		TeamID:      teamID,
		ChallengeID: challengeID,
		Multiplier:  multiplier,
	}
	err = s.repo.CreateTeamChallenge(ctx, tc)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyAssigned):
			return nil, ErrAlreadyAssigned
		case errors.Is(err, repository.ErrActiveChallengeExists):
			return nil, ErrActiveChallenge
		default:
			return nil, fmt.Errorf("failed to create team challenge: %w", err)
		}
	}

	return tc, nil
}
