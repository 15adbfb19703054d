package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"challenge_league_api/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type Challenge struct {
	ChallengeID   int64     `db:"challenge_id"`
	StartTime     time.Time `db:"start_time"`
	Duration      int       `db:"duration"`
	Length        float64   `db:"length"`
	Difficulty    string    `db:"difficulty"`
	EarningPoints int       `db:"earning_points"`
	Type          *string   `db:"type"`
	CreatedAt     time.Time `db:"created_at"`
}

type TeamChallenge struct {
	TeamChallengeID int64     `db:"team_challenge_id"`
	TeamID          int64     `db:"team_id"`
	ChallengeID     int64     `db:"challenge_id"`
	IsCompleted     bool      `db:"iscompleted"`
	Multiplier      *float64  `db:"multiplier"`
	Bonus           bool      `db:"bonus"`
	CreatedAt       time.Time `db:"created_at"`
}

type teamChallengeScore struct {
	TeamID            int64    `db:"team_id"`
	IsCompleted       bool     `db:"iscompleted"`
	Multiplier        *float64 `db:"multiplier"`
	EarningPoints     int      `db:"earning_points"`
	StreakBonusPoints int      `db:"streak_bonus_points"`
}

func (c *TeamChallenge) toModel() *model.TeamChallenge {
	return &model.TeamChallenge{
		TeamChallengeID: c.TeamChallengeID,
		TeamID:          c.TeamID,
		ChallengeID:     c.ChallengeID,
		IsCompleted:     c.IsCompleted,
		Multiplier:      c.Multiplier,
		Bonus:           c.Bonus,
		CreatedAt:       c.CreatedAt,
	}
}

// CreateChallenges inserts all challenges in one transaction and fills in their ids.
func (r *Repository) CreateChallenges(ctx context.Context, challenges []*model.Challenge) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		for _, c := range challenges {
			query, args, err := squirrel.
				Insert("challenges").
				SetMap(map[string]interface{}{
					"start_time":     c.StartTime,
					"duration":       c.Duration,
					"length":         c.Length,
					"difficulty":     c.Difficulty,
					"earning_points": c.EarningPoints,
					"type":           c.Type,
				}).
				Suffix("RETURNING challenge_id, created_at").
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
			if err != nil {
				return fmt.Errorf("failed to build challenge insert query: %w", err)
			}

			err = tx.QueryRowxContext(ctx, query, args...).Scan(&c.ChallengeID, &c.CreatedAt)
			if err != nil {
				return fmt.Errorf("failed to insert challenge: %w", err)
			}
		}

		return nil
	})
}

func (r *Repository) GetChallenge(ctx context.Context, challengeID int64) (*model.Challenge, error) {
	var c Challenge
	query, args, err := squirrel.
		Select("challenge_id", "start_time", "duration", "length", "difficulty", "earning_points", "type", "created_at").
		From("challenges").
		Where(squirrel.Eq{"challenge_id": challengeID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &c, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &model.Challenge{
		ChallengeID:   c.ChallengeID,
		StartTime:     c.StartTime,
		Duration:      c.Duration,
		Length:        c.Length,
		Difficulty:    c.Difficulty,
		EarningPoints: c.EarningPoints,
		Type:          c.Type,
		CreatedAt:     c.CreatedAt,
	}, nil
}

// GetActiveTeamChallenge returns the team's newest incomplete team challenge.
func (r *Repository) GetActiveTeamChallenge(ctx context.Context, teamID int64) (*model.TeamChallenge, error) {
	var tc TeamChallenge
	query, args, err := squirrel.
		Select("team_challenge_id", "team_id", "challenge_id", "iscompleted", "multiplier", "bonus", "created_at").
		From("team_challenges").
		Where(squirrel.Eq{"team_id": teamID, "iscompleted": false}).
		OrderBy("created_at DESC", "team_challenge_id DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &tc, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return tc.toModel(), nil
}

func (r *Repository) TeamChallengeExists(ctx context.Context, teamID, challengeID int64) (bool, error) {
	query, args, err := squirrel.
		Select("1").
		Prefix("SELECT EXISTS (").
		From("team_challenges").
		Where(squirrel.Eq{"team_id": teamID, "challenge_id": challengeID}).
		Suffix(")").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, err
	}

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, args...); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *Repository) CreateTeamChallenge(ctx context.Context, tc *model.TeamChallenge) error {
	query, args, err := squirrel.
		Insert("team_challenges").
		SetMap(map[string]interface{}{
			"team_id":      tc.TeamID,
			"challenge_id": tc.ChallengeID,
			"iscompleted":  false,
			"bonus":        tc.Bonus,
			"multiplier":   tc.Multiplier,
		}).
		Suffix("RETURNING team_challenge_id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build team challenge insert query: %w", err)
	}

	err = r.db.QueryRowxContext(ctx, query, args...).Scan(&tc.TeamChallengeID, &tc.CreatedAt)
	if err != nil {
		if constraint, ok := violatedConstraint(err); ok {
			switch constraint {
			case constraintTeamChallenge:
				return ErrAlreadyAssigned
			case constraintOneIncomplete:
				return ErrActiveChallengeExists
			}
		}
		return fmt.Errorf("failed to insert team challenge: %w", err)
	}

	tc.IsCompleted = false
	return nil
}

// MarkTeamChallengeCompleted sets iscompleted and reports whether this call flipped it.
// A row that is already complete is left untouched.
func (r *Repository) MarkTeamChallengeCompleted(ctx context.Context, teamChallengeID int64) (bool, error) {
	query, args, err := squirrel.
		Update("team_challenges").
		Set("iscompleted", true).
		Where(squirrel.Eq{"team_challenge_id": teamChallengeID, "iscompleted": false}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

// GetLeagueChallengeScores lists every team challenge of the league's teams with the
// challenge's earning points and the owning team's streak bonus.
func (r *Repository) GetLeagueChallengeScores(ctx context.Context, leagueRoomID int64) ([]*model.TeamChallengeScore, error) {
	query, args, err := squirrel.Select(
		"tc.team_id",
		"tc.iscompleted",
		"tc.multiplier",
		"c.earning_points",
		"t.streak_bonus_points",
	).
		From("team_challenges tc").
		Join("teams t ON t.team_id = tc.team_id").
		Join("challenges c ON c.challenge_id = tc.challenge_id").
		Where(squirrel.Eq{"t.league_room_id": leagueRoomID}).
		OrderBy("tc.team_id", "tc.team_challenge_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build league scores query: %w", err)
	}

	var rows []teamChallengeScore
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get league scores: %w", err)
	}

	scores := make([]*model.TeamChallengeScore, len(rows))
	for i, row := range rows {
		scores[i] = &model.TeamChallengeScore{
			TeamID:            row.TeamID,
			IsCompleted:       row.IsCompleted,
			Multiplier:        row.Multiplier,
			EarningPoints:     row.EarningPoints,
			StreakBonusPoints: row.StreakBonusPoints,
		}
	}

	return scores, nil
}
