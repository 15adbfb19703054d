package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"challenge_league_api/internal/model"
	"challenge_league_api/internal/repository"
	"challenge_league_api/pkg/logger"

	"go.uber.org/zap"
)

const metersPerKm = 1000

type ContributionService struct {
	repo              ContributionRepository
	streakBonusPerDay int
	now               Clock
}

func NewContributionService(repo ContributionRepository, streakBonusPerDay int) *ContributionService {
	return &ContributionService{
		repo:              repo,
		streakBonusPerDay: streakBonusPerDay,
		now:               utcNow,
	}
}

// RecordContribution persists the contribution against the team's active challenge and then
// evaluates completion. A failure after the insert leaves the contribution stored and the
// challenge unevaluated; the next contribution re-evaluates it.
func (s *ContributionService) RecordContribution(ctx context.Context, in *model.ContributionInput) (*model.ContributionResult, error) {
	teamID, err := s.activeTeam(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	teamChallenge, err := s.repo.GetActiveTeamChallenge(ctx, teamID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActiveChallenge
		}
		return nil, fmt.Errorf("failed to get active team challenge: %w", err)
	}

	contribution := &model.UserContribution{
		TeamChallengeID:     teamChallenge.TeamChallengeID,
		UserID:              in.UserID,
		StartTime:           in.StartTime,
		EndTime:             in.EndTime,
		StartLatitude:       in.StartLatitude,
		StartLongitude:      in.StartLongitude,
		EndLatitude:         in.EndLatitude,
		EndLongitude:        in.EndLongitude,
		DistanceCovered:     in.DistanceCovered,
		Active:              false,
		ContributionDetails: "Distance covered: " + strconv.FormatFloat(in.DistanceCovered, 'f', -1, 64),
	}

	err = s.repo.CreateContribution(ctx, contribution)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user contribution: %w", err)
	}
	contributionsRecorded.Inc()

	result, err := s.evaluateCompletion(ctx, teamID, teamChallenge)
	if err != nil {
		return nil, err
	}
	result.Contribution = contribution

	return result, nil
}

func (s *ContributionService) activeTeam(ctx context.Context, userID int64) (int64, error) {
	memberships, err := s.repo.GetActiveMemberships(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get team membership: %w", err)
	}

	switch len(memberships) {
	case 0:
		return 0, ErrNoActiveTeam
	case 1:
		return memberships[0].TeamID, nil
	default:
		return 0, ErrMultipleActiveTeams
	}
}

func (s *ContributionService) evaluateCompletion(ctx context.Context, teamID int64, teamChallenge *model.TeamChallenge) (*model.ContributionResult, error) {
	distances, err := s.repo.GetContributionDistances(ctx, teamChallenge.TeamChallengeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get contributions: %w", err)
	}

	var totalMeters float64
	for _, d := range distances {
		totalMeters += d
	}
	totalKm := totalMeters / metersPerKm

	challenge, err := s.repo.GetChallenge(ctx, teamChallenge.ChallengeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, fmt.Errorf("failed to get challenge details: %w", err)
	}

	result := &model.ContributionResult{
		TeamChallengeID:    teamChallenge.TeamChallengeID,
		TotalDistanceKm:    totalKm,
		RequiredDistanceKm: challenge.Length,
	}

	if totalKm < challenge.Length {
		return result, nil
	}

	flipped, err := s.repo.MarkTeamChallengeCompleted(ctx, teamChallenge.TeamChallengeID)
	if err != nil {
		return nil, fmt.Errorf("failed to update challenge completion status: %w", err)
	}
	result.ChallengeCompleted = true

	if flipped {
		challengesCompleted.Inc()
		if err := s.advanceStreak(ctx, teamID); err != nil {
			return nil, err
		}
		logger.Logger().Info("team challenge completed",
			zap.Int64("team_id", teamID),
			zap.Int64("team_challenge_id", teamChallenge.TeamChallengeID),
			zap.Float64("total_distance_km", totalKm))
	}

	return result, nil
}

func (s *ContributionService) advanceStreak(ctx context.Context, teamID int64) error {
	team, err := s.repo.GetTeam(ctx, teamID)
	if err != nil {
		return fmt.Errorf("failed to get team: %w", err)
	}

	err = s.repo.UpdateTeamStreak(ctx, nextStreak(team, s.now(), s.streakBonusPerDay))
	if err != nil {
		return fmt.Errorf("failed to update team streak: %w", err)
	}

	return nil
}
