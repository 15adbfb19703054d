package repository

import (
	"context"
	"fmt"

	"challenge_league_api/internal/model"

	"github.com/Masterminds/squirrel"
)

func (r *Repository) CreateContribution(ctx context.Context, c *model.UserContribution) error {
	query, args, err := squirrel.
		Insert("user_contributions").
		SetMap(map[string]interface{}{
			"team_challenge_id":    c.TeamChallengeID,
			"user_id":              c.UserID,
			"start_time":           c.StartTime,
			"end_time":             c.EndTime,
			"start_latitude":       c.StartLatitude,
			"start_longitude":      c.StartLongitude,
			"end_latitude":         c.EndLatitude,
			"end_longitude":        c.EndLongitude,
			"distance_covered":     c.DistanceCovered,
			"active":               c.Active,
			"contribution_details": c.ContributionDetails,
		}).
		Suffix("RETURNING user_contribution_id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build contribution insert query: %w", err)
	}

	err = r.db.QueryRowxContext(ctx, query, args...).Scan(&c.UserContributionID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert contribution: %w", err)
	}

	return nil
}

// GetContributionDistances returns distance_covered, in meters, of every contribution to the team challenge.
func (r *Repository) GetContributionDistances(ctx context.Context, teamChallengeID int64) ([]float64, error) {
	query, args, err := squirrel.
		Select("distance_covered").
		From("user_contributions").
		Where(squirrel.Eq{"team_challenge_id": teamChallengeID}).
		OrderBy("user_contribution_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build distances query: %w", err)
	}

	var distances []float64
	err = r.db.SelectContext(ctx, &distances, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get contribution distances: %w", err)
	}

	return distances, nil
}

func (r *Repository) HasActiveContribution(ctx context.Context, userID int64) (bool, error) {
	query, args, err := squirrel.
		Select("1").
		Prefix("SELECT EXISTS (").
		From("user_contributions").
		Where(squirrel.Eq{"user_id": userID, "active": true}).
		Suffix(")").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, err
	}

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, args...); err != nil {
		return false, fmt.Errorf("failed to check active contributions: %w", err)
	}

	return exists, nil
}
