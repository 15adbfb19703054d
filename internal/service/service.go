package service

import (
	"context"
	"errors"
	"time"

	"challenge_league_api/internal/model"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrChallengeNotFound   = errors.New("challenge not found")
	ErrEmailTaken          = errors.New("user already exists with this email")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrPasswordTooLong     = errors.New("password must be at most 72 bytes")
	ErrNoActiveTeam        = errors.New("user is not part of any active team")
	ErrMultipleActiveTeams = errors.New("user belongs to multiple active teams")
	ErrNoActiveChallenge   = errors.New("no active team challenge found for this team")
	ErrActiveChallenge     = errors.New("team already has an active challenge")
	ErrAlreadyAssigned     = errors.New("this challenge is already assigned to the team")
	ErrActiveContribution  = errors.New("user is already part of an active team challenge")
	ErrInvalidTeamMembers  = errors.New("one or more user_ids are invalid")
	ErrAlreadyOnTeam       = errors.New("user already on an active team")
	ErrNoWaitingRoom       = errors.New("no active waiting room found for this user")
	ErrWaitingRoomPromoted = errors.New("waiting room already promoted")
)

// Clock lets tests pin "now" for date arithmetic.
type Clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}

type UserServiceI interface {
	RegisterUser(ctx context.Context, name, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.LoginResult, error)
	Logout(ctx context.Context, userID int64) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

type TokenIssuer interface {
	Issue(userID int64, email string) (string, time.Time, error)
}

type ContributionServiceI interface {
	RecordContribution(ctx context.Context, in *model.ContributionInput) (*model.ContributionResult, error)
}

type ContributionRepository interface {
	GetActiveMemberships(ctx context.Context, userID int64) ([]*model.TeamMembership, error)
	GetActiveTeamChallenge(ctx context.Context, teamID int64) (*model.TeamChallenge, error)
	CreateContribution(ctx context.Context, c *model.UserContribution) error
	GetContributionDistances(ctx context.Context, teamChallengeID int64) ([]float64, error)
	GetChallenge(ctx context.Context, challengeID int64) (*model.Challenge, error)
	MarkTeamChallengeCompleted(ctx context.Context, teamChallengeID int64) (bool, error)
	GetTeam(ctx context.Context, teamID int64) (*model.Team, error)
	UpdateTeamStreak(ctx context.Context, streak *model.TeamStreak) error
}

type StreakServiceI interface {
	ResetStreaks(ctx context.Context) (int, error)
}

type StreakRepository interface {
	ListTeamsWithCompletion(ctx context.Context) ([]*model.Team, error)
	ResetTeamStreak(ctx context.Context, teamID int64) (bool, error)
}

type PointsServiceI interface {
	GetTeamPoints(ctx context.Context, leagueRoomID int64) ([]*model.TeamPoints, error)
}

type PointsRepository interface {
	GetLeagueChallengeScores(ctx context.Context, leagueRoomID int64) ([]*model.TeamChallengeScore, error)
}

type ChallengeServiceI interface {
	AddChallenge(ctx context.Context, challenge *model.Challenge) (*model.Challenge, error)
	CreateDailyChallenges(ctx context.Context) ([]*model.Challenge, error)
	AssignChallenge(ctx context.Context, userID, challengeID int64, multiplier *float64) (*model.TeamChallenge, error)
}

type ChallengeRepository interface {
	CreateChallenges(ctx context.Context, challenges []*model.Challenge) error
	GetChallenge(ctx context.Context, challengeID int64) (*model.Challenge, error)
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
	GetActiveMemberships(ctx context.Context, userID int64) ([]*model.TeamMembership, error)
	GetActiveTeamChallenge(ctx context.Context, teamID int64) (*model.TeamChallenge, error)
	TeamChallengeExists(ctx context.Context, teamID, challengeID int64) (bool, error)
	HasActiveContribution(ctx context.Context, userID int64) (bool, error)
	CreateTeamChallenge(ctx context.Context, tc *model.TeamChallenge) error
}

type TeamServiceI interface {
	CreateTeam(ctx context.Context, userIDs []int64, leagueRoomID *int64) (*model.Team, error)
	GetLeagueTeams(ctx context.Context, leagueRoomID int64) ([]*model.LeagueTeam, error)
}

type TeamRepository interface {
	GetUsersByIDs(ctx context.Context, userIDs []int64) ([]*model.User, error)
	CreateTeam(ctx context.Context, team *model.Team, userIDs []int64) error
	GetLeagueTeams(ctx context.Context, leagueRoomID int64) ([]*model.LeagueTeam, error)
}

type LeagueServiceI interface {
	JoinWaitingRoom(ctx context.Context, userID int64) (*model.WaitingRoomEntry, error)
	GetWaitingRoomID(ctx context.Context, userID int64) (*int64, error)
	GetWaitingRoomUsers(ctx context.Context, waitingRoomID int64) ([]*model.User, error)
	CreateLeagueRoom(ctx context.Context, userID int64) (*model.LeaguePromotion, error)
	GetActiveLeagueRoom(ctx context.Context, userID int64) (*model.ActiveLeagueRoom, error)
}

type LeagueRepository interface {
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
	GetOpenWaitingRoom(ctx context.Context, userID int64) (*model.WaitingRoomEntry, error)
	JoinWaitingRoom(ctx context.Context, userID int64, capacity int) (*model.WaitingRoomEntry, error)
	GetWaitingRoomUsers(ctx context.Context, waitingRoomID int64) ([]*model.User, error)
	PromoteWaitingRoom(ctx context.Context, waitingRoomID int64, leagueRoomName string) (*model.LeaguePromotion, error)
	GetActiveLeagueRoom(ctx context.Context, userID int64, since time.Time) (*model.ActiveLeagueRoom, error)
}
