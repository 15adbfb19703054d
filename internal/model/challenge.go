package model

import "time"

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

type Challenge struct {
	ChallengeID   int64
	StartTime     time.Time
	Duration      int
	Length        float64
	Difficulty    string
	EarningPoints int
	Type          *string
	CreatedAt     time.Time
}

type TeamChallenge struct {
	TeamChallengeID int64
	TeamID          int64
	ChallengeID     int64
	IsCompleted     bool
	Multiplier      *float64
	Bonus           bool
	CreatedAt       time.Time
}

// TeamChallengeScore is one team_challenges row joined with the points it can earn.
type TeamChallengeScore struct {
	TeamID            int64
	IsCompleted       bool
	Multiplier        *float64
	EarningPoints     int
	StreakBonusPoints int
}
