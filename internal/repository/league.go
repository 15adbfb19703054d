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

// waitingRoomJoinLock keys the transaction-scoped advisory lock held while a join counts and
// fills a room.
const waitingRoomJoinLock int64 = 0x77616974696e67

type waitingRoomEntry struct {
	WaitingRoomID int64     `db:"waiting_room_id"`
	UserID        int64     `db:"user_id"`
	LeagueRoomID  *int64    `db:"league_room_id"`
	CreatedAt     time.Time `db:"created_at"`
}

type activeLeagueRoom struct {
	WaitingRoomID int64     `db:"waiting_room_id"`
	LeagueRoomID  int64     `db:"league_room_id"`
	CreatedAt     time.Time `db:"created_at"`
}

func (w *waitingRoomEntry) toModel() *model.WaitingRoomEntry {
	return &model.WaitingRoomEntry{
		WaitingRoomID: w.WaitingRoomID,
		UserID:        w.UserID,
		LeagueRoomID:  w.LeagueRoomID,
		CreatedAt:     w.CreatedAt,
	}
}

func (r *Repository) GetOpenWaitingRoom(ctx context.Context, userID int64) (*model.WaitingRoomEntry, error) {
	return r.getOpenWaitingRoom(ctx, r.db, userID)
}

func (r *Repository) getOpenWaitingRoom(ctx context.Context, q sqlx.QueryerContext, userID int64) (*model.WaitingRoomEntry, error) {
	var entry waitingRoomEntry
	query, args, err := squirrel.
		Select("waiting_room_id", "user_id", "league_room_id", "created_at").
		From("waiting_rooms").
		Where(squirrel.Eq{"user_id": userID, "league_room_id": nil}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = sqlx.GetContext(ctx, q, &entry, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return entry.toModel(), nil
}

// JoinWaitingRoom places the user into the newest open waiting room that still has room for
// them, opening a new one when every open room is full. Joins are serialized so two concurrent
// joins cannot both take the last seat of a room.
func (r *Repository) JoinWaitingRoom(ctx context.Context, userID int64, capacity int) (*model.WaitingRoomEntry, error) {
	var joined *model.WaitingRoomEntry

	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", waitingRoomJoinLock); err != nil {
			return fmt.Errorf("failed to lock waiting rooms: %w", err)
		}

		existing, err := r.getOpenWaitingRoom(ctx, tx, userID)
		if err == nil {
			joined = existing
			return nil
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}

		roomQuery, roomArgs, err := squirrel.
			Select("waiting_room_id").
			From("waiting_rooms").
			Where(squirrel.Eq{"league_room_id": nil}).
			GroupBy("waiting_room_id").
			Having("count(*) < ?", capacity).
			OrderBy("waiting_room_id DESC").
			Limit(1).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build open room query: %w", err)
		}

		var roomID int64
		err = tx.GetContext(ctx, &roomID, roomQuery, roomArgs...)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("failed to find open waiting room: %w", err)
			}
			if err := tx.GetContext(ctx, &roomID, "SELECT nextval('waiting_room_id_seq')"); err != nil {
				return fmt.Errorf("failed to allocate waiting room id: %w", err)
			}
		}

		insertQuery, insertArgs, err := squirrel.
			Insert("waiting_rooms").
			Columns("waiting_room_id", "user_id").
			Values(roomID, userID).
			Suffix("RETURNING waiting_room_id, user_id, league_room_id, created_at").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build waiting room insert query: %w", err)
		}

		var entry waitingRoomEntry
		err = tx.QueryRowxContext(ctx, insertQuery, insertArgs...).StructScan(&entry)
		if err != nil {
			if constraint, ok := violatedConstraint(err); ok && constraint == constraintOneOpenWaitingRow {
				return ErrAlreadyWaiting
			}
			return fmt.Errorf("failed to join waiting room: %w", err)
		}

		joined = entry.toModel()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return joined, nil
}

func (r *Repository) GetWaitingRoomUsers(ctx context.Context, waitingRoomID int64) ([]*model.User, error) {
	query, args, err := squirrel.
		Select("u.user_id", "u.name", "u.email", "u.created_at").
		From("waiting_rooms wr").
		Join("users u ON u.user_id = wr.user_id").
		Where(squirrel.Eq{"wr.waiting_room_id": waitingRoomID}).
		OrderBy("wr.created_at", "u.user_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build waiting room users query: %w", err)
	}

	var users []User
	err = r.db.SelectContext(ctx, &users, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get waiting room users: %w", err)
	}

	out := make([]*model.User, len(users))
	for i := range users {
		out[i] = users[i].toModel()
	}

	return out, nil
}

// PromoteWaitingRoom creates a league room and moves every still-open row of the waiting room
// into it. When another request promoted the room first nothing moves and the whole
// transaction is rolled back with ErrWaitingRoomPromoted.
func (r *Repository) PromoteWaitingRoom(ctx context.Context, waitingRoomID int64, leagueRoomName string) (*model.LeaguePromotion, error) {
	var promotion *model.LeaguePromotion

	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		roomQuery, roomArgs, err := squirrel.
			Insert("league_rooms").
			Columns("league_room_name").
			Values(leagueRoomName).
			Suffix("RETURNING league_room_id, league_room_name, created_at").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build league room insert query: %w", err)
		}

		room := &model.LeagueRoom{}
		err = tx.QueryRowxContext(ctx, roomQuery, roomArgs...).
			Scan(&room.LeagueRoomID, &room.LeagueRoomName, &room.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create league room: %w", err)
		}

		moveQuery, moveArgs, err := squirrel.
			Update("waiting_rooms").
			Set("league_room_id", room.LeagueRoomID).
			Where(squirrel.Eq{"waiting_room_id": waitingRoomID, "league_room_id": nil}).
			Suffix("RETURNING user_id").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build waiting room update query: %w", err)
		}

		var moved []int64
		if err := tx.SelectContext(ctx, &moved, moveQuery, moveArgs...); err != nil {
			return fmt.Errorf("failed to move waiting room users: %w", err)
		}
		if len(moved) == 0 {
			return ErrWaitingRoomPromoted
		}

		promotion = &model.LeaguePromotion{
			LeagueRoom:      room,
			WaitingRoomID:   waitingRoomID,
			TotalUsersMoved: len(moved),
			MovedUserIDs:    moved,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return promotion, nil
}

// GetActiveLeagueRoom returns the user's newest league room created at or after since.
func (r *Repository) GetActiveLeagueRoom(ctx context.Context, userID int64, since time.Time) (*model.ActiveLeagueRoom, error) {
	var room activeLeagueRoom
	query, args, err := squirrel.
		Select("wr.waiting_room_id", "lr.league_room_id", "lr.created_at").
		From("waiting_rooms wr").
		Join("league_rooms lr ON lr.league_room_id = wr.league_room_id").
		Where(squirrel.Eq{"wr.user_id": userID}).
		Where(squirrel.GtOrEq{"lr.created_at": since}).
		OrderBy("lr.created_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &room, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &model.ActiveLeagueRoom{
		WaitingRoomID: room.WaitingRoomID,
		LeagueRoomID:  room.LeagueRoomID,
		CreatedAt:     room.CreatedAt,
	}, nil
}
