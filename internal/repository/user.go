package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"challenge_league_api/internal/model"

	"github.com/Masterminds/squirrel"
)

type User struct {
	UserID       int64     `db:"user_id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

func (u *User) toModel() *model.User {
	return &model.User{
		UserID:       u.UserID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	query, args, err := squirrel.
		Insert("users").
		SetMap(map[string]interface{}{
			"name":          user.Name,
			"email":         user.Email,
			"password_hash": user.PasswordHash,
		}).
		Suffix("RETURNING user_id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build user insert query: %w", err)
	}

	err = r.db.QueryRowxContext(ctx, query, args...).Scan(&user.UserID, &user.CreatedAt)
	if err != nil {
		if constraint, ok := violatedConstraint(err); ok && constraint == constraintUserEmail {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

func (r *Repository) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	return r.getUser(ctx, squirrel.Eq{"user_id": userID})
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getUser(ctx, squirrel.Eq{"email": email})
}

func (r *Repository) getUser(ctx context.Context, where squirrel.Eq) (*model.User, error) {
	var user User
	query, args, err := squirrel.
		Select("user_id", "name", "email", "password_hash", "created_at").
		From("users").
		Where(where).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &user, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return user.toModel(), nil
}

func (r *Repository) GetUsersByIDs(ctx context.Context, userIDs []int64) ([]*model.User, error) {
	query, args, err := squirrel.
		Select("user_id", "name", "email", "created_at").
		From("users").
		Where(squirrel.Eq{"user_id": userIDs}).
		OrderBy("user_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build users query: %w", err)
	}

	var users []User
	err = r.db.SelectContext(ctx, &users, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	out := make([]*model.User, len(users))
	for i := range users {
		out[i] = users[i].toModel()
	}

	return out, nil
}
