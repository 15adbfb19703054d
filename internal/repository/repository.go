package repository

import (
	"context"
	"fmt"
	"time"

	"challenge_league_api/pkg/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	ErrNotFound = errors.New("not found")

	ErrEmailTaken            = errors.New("email already registered")
	ErrAlreadyOnTeam         = errors.New("user already on an active team")
	ErrAlreadyAssigned       = errors.New("challenge already assigned to team")
	ErrActiveChallengeExists = errors.New("team already has an incomplete challenge")
	ErrAlreadyWaiting        = errors.New("user already in an open waiting room")
	ErrWaitingRoomPromoted   = errors.New("waiting room already promoted")
)

const uniqueViolationCode = "23505"

// Constraint and index names declared in migrations/000001_init_schema.up.sql.
const (
	constraintUserEmail         = "users_email_key"
	constraintOneActiveTeam     = "team_memberships_one_active_team"
	constraintTeamChallenge     = "team_challenges_team_challenge_unique"
	constraintOneIncomplete     = "team_challenges_one_incomplete"
	constraintOneOpenWaitingRow = "waiting_rooms_one_open_room"
)

type Repository struct {
	db *sqlx.DB
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) Transaction(ctx context.Context, t func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	err = t(tx)
	if err != nil {
		txErr := tx.Rollback()
		if txErr != nil {
			return errors.Wrapf(err, "rollback error: %v", txErr)
		}
		return err
	}
	return tx.Commit()
}

type Config struct {
	Host            string        `json:"host"`
	Port            string        `json:"port"`
	User            string        `json:"user"`
	Password        string        `json:"password"`
	Name            string        `json:"name"`
	SSLMode         string        `json:"sslMode"`
	MaxOpenConns    int           `json:"maxOpenConns"`
	ConnMaxLifetime time.Duration `json:"connMaxLifetime"`
	MigrationsPath  string        `json:"migrationsPath"`
}

func New(cfg Config) (*Repository, error) {
	url := cfg.GetDatabaseURL()
	db, err := sqlx.Connect("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	err = db.Ping()
	if err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Logger().Info("Connected to database successfully")

	return &Repository{
		db: db,
	}, nil
}

// Migrate applies pending up migrations. The schema carries the unique indexes that
// serialize concurrent duplicate writes, so the service refuses to start without it.
func Migrate(cfg Config) error {
	path := cfg.MigrationsPath
	if path == "" {
		path = "migrations"
	}

	m, err := migrate.New("file://"+path, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err == nil {
		logger.Logger().Info("Database schema is up to date",
			zap.Uint("version", version),
			zap.Bool("dirty", dirty))
	}

	return nil
}

func (c *Config) GetDatabaseURL() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Name,
		sslMode,
	)
}

// violatedConstraint reports the constraint name when err is a unique violation.
func violatedConstraint(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return pgErr.ConstraintName, true
	}
	return "", false
}
