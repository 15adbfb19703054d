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
	"github.com/lib/pq"
)

type Team struct {
	TeamID             int64      `db:"team_id"`
	TeamName           string     `db:"team_name"`
	LeagueRoomID       *int64     `db:"league_room_id"`
	CurrentStreak      int        `db:"current_streak"`
	LastCompletionDate *time.Time `db:"last_completion_date"`
	StreakBonusPoints  int        `db:"streak_bonus_points"`
	CreatedAt          time.Time  `db:"created_at"`
}

func (t *Team) toModel() *model.Team {
	return &model.Team{
		TeamID:             t.TeamID,
		TeamName:           t.TeamName,
		LeagueRoomID:       t.LeagueRoomID,
		CurrentStreak:      t.CurrentStreak,
		LastCompletionDate: t.LastCompletionDate,
		StreakBonusPoints:  t.StreakBonusPoints,
		CreatedAt:          t.CreatedAt,
	}
}

type teamMembership struct {
	TeamMembershipID int64      `db:"team_membership_id"`
	TeamID           int64      `db:"team_id"`
	UserID           int64      `db:"user_id"`
	DateJoined       time.Time  `db:"date_joined"`
	DateLeft         *time.Time `db:"date_left"`
}

type leagueTeam struct {
	TeamID      int64          `db:"team_id"`
	TeamName    string         `db:"team_name"`
	MemberIDs   pq.Int64Array  `db:"member_ids"`
	MemberNames pq.StringArray `db:"member_names"`
}

var teamColumns = []string{
	"team_id",
	"team_name",
	"league_room_id",
	"current_streak",
	"last_completion_date",
	"streak_bonus_points",
	"created_at",
}

// CreateTeam inserts the team and one active membership per user in a single transaction.
func (r *Repository) CreateTeam(ctx context.Context, team *model.Team, userIDs []int64) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		countQuery, countArgs, err := squirrel.
			Select("count(*)").
			From("team_memberships").
			Where(squirrel.Eq{"user_id": userIDs, "date_left": nil}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build membership check query: %w", err)
		}

		var active int
		if err := tx.GetContext(ctx, &active, countQuery, countArgs...); err != nil {
			return fmt.Errorf("failed to check active memberships: %w", err)
		}
		if active > 0 {
			return ErrAlreadyOnTeam
		}

		teamQuery, teamArgs, err := squirrel.
			Insert("teams").
			SetMap(map[string]interface{}{
				"team_name":      team.TeamName,
				"league_room_id": team.LeagueRoomID,
			}).
			Suffix("RETURNING team_id, current_streak, streak_bonus_points, created_at").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build team insert query: %w", err)
		}

		err = tx.QueryRowxContext(ctx, teamQuery, teamArgs...).
			Scan(&team.TeamID, &team.CurrentStreak, &team.StreakBonusPoints, &team.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert team: %w", err)
		}

		dateJoined := time.Now().UTC().Truncate(24 * time.Hour)
		builder := squirrel.
			Insert("team_memberships").
			Columns("team_id", "user_id", "date_joined")
		for _, userID := range userIDs {
			builder = builder.Values(team.TeamID, userID, dateJoined)
		}

		membershipQuery, membershipArgs, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build membership insert query: %w", err)
		}

		_, err = tx.ExecContext(ctx, membershipQuery, membershipArgs...)
		if err != nil {
			if constraint, ok := violatedConstraint(err); ok && constraint == constraintOneActiveTeam {
				return ErrAlreadyOnTeam
			}
			return fmt.Errorf("failed to insert team memberships: %w", err)
		}

		return nil
	})
}

func (r *Repository) GetActiveMemberships(ctx context.Context, userID int64) ([]*model.TeamMembership, error) {
	query, args, err := squirrel.
		Select("team_membership_id", "team_id", "user_id", "date_joined", "date_left").
		From("team_memberships").
		Where(squirrel.Eq{"user_id": userID, "date_left": nil}).
		OrderBy("team_membership_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build membership query: %w", err)
	}

	var memberships []teamMembership
	err = r.db.SelectContext(ctx, &memberships, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get active memberships: %w", err)
	}

	out := make([]*model.TeamMembership, len(memberships))
	for i, m := range memberships {
		out[i] = &model.TeamMembership{
			TeamMembershipID: m.TeamMembershipID,
			TeamID:           m.TeamID,
			UserID:           m.UserID,
			DateJoined:       m.DateJoined,
			DateLeft:         m.DateLeft,
		}
	}

	return out, nil
}

func (r *Repository) GetTeam(ctx context.Context, teamID int64) (*model.Team, error) {
	var team Team
	query, args, err := squirrel.
		Select(teamColumns...).
		From("teams").
		Where(squirrel.Eq{"team_id": teamID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &team, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return team.toModel(), nil
}

// ListTeamsWithCompletion returns every team that has completed at least one challenge.
func (r *Repository) ListTeamsWithCompletion(ctx context.Context) ([]*model.Team, error) {
	query, args, err := squirrel.
		Select(teamColumns...).
		From("teams").
		Where(squirrel.NotEq{"last_completion_date": nil}).
		OrderBy("team_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build teams query: %w", err)
	}

	var teams []Team
	err = r.db.SelectContext(ctx, &teams, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	out := make([]*model.Team, len(teams))
	for i := range teams {
		out[i] = teams[i].toModel()
	}

	return out, nil
}

// ResetTeamStreak zeroes a nonzero streak. It reports false when the streak was already zero,
// so concurrent runs do not count the same team twice.
func (r *Repository) ResetTeamStreak(ctx context.Context, teamID int64) (bool, error) {
	query, args, err := squirrel.
		Update("teams").
		Set("current_streak", 0).
		Where(squirrel.Eq{"team_id": teamID}).
		Where(squirrel.NotEq{"current_streak": 0}).
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

func (r *Repository) UpdateTeamStreak(ctx context.Context, streak *model.TeamStreak) error {
	query, args, err := squirrel.
		Update("teams").
		SetMap(map[string]interface{}{
			"current_streak":       streak.CurrentStreak,
			"last_completion_date": streak.LastCompletionDate,
			"streak_bonus_points":  streak.StreakBonusPoints,
		}).
		Where(squirrel.Eq{"team_id": streak.TeamID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *Repository) GetLeagueTeams(ctx context.Context, leagueRoomID int64) ([]*model.LeagueTeam, error) {
	query, args, err := squirrel.Select(
		"t.team_id",
		"t.team_name",
		"array_agg(u.user_id ORDER BY u.user_id) FILTER (WHERE u.user_id IS NOT NULL) AS member_ids",
		"array_agg(u.name ORDER BY u.user_id) FILTER (WHERE u.user_id IS NOT NULL) AS member_names",
	).
		From("teams t").
		LeftJoin("team_memberships tm ON tm.team_id = t.team_id AND tm.date_left IS NULL").
		LeftJoin("users u ON u.user_id = tm.user_id").
		Where(squirrel.Eq{"t.league_room_id": leagueRoomID}).
		GroupBy("t.team_id", "t.team_name").
		OrderBy("t.team_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build league teams query: %w", err)
	}

	var rows []leagueTeam
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get league teams: %w", err)
	}

	teams := make([]*model.LeagueTeam, len(rows))
	for i, row := range rows {
		members := make([]model.TeamMember, len(row.MemberIDs))
		for j := range row.MemberIDs {
			members[j] = model.TeamMember{
				UserID: row.MemberIDs[j],
				Name:   row.MemberNames[j],
			}
		}

		teams[i] = &model.LeagueTeam{
			TeamID:   row.TeamID,
			TeamName: row.TeamName,
			Members:  members,
		}
	}

	return teams, nil
}
