package model

import "time"

type Team struct {
	TeamID             int64
	TeamName           string
	LeagueRoomID       *int64
	CurrentStreak      int
	LastCompletionDate *time.Time
	StreakBonusPoints  int
	CreatedAt          time.Time
}

type TeamMembership struct {
	TeamMembershipID int64
	TeamID           int64
	UserID           int64
	DateJoined       time.Time
	DateLeft         *time.Time
}

type TeamMember struct {
	UserID int64
	Name   string
}

type LeagueTeam struct {
	TeamID   int64
	TeamName string
	Members  []TeamMember
}

// TeamStreak is the streak state written back after a completion or a reset.
type TeamStreak struct {
	TeamID             int64
	CurrentStreak      int
	LastCompletionDate *time.Time
	StreakBonusPoints  int
}

type TeamPoints struct {
	TeamID              int64
	TotalPoints         float64
	CompletedChallenges int
	StreakBonus         int
}
