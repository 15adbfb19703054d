package model

import "time"

type UserContribution struct {
	UserContributionID  int64
	TeamChallengeID     int64
	UserID              int64
	StartTime           time.Time
	EndTime             time.Time
	StartLatitude       float64
	StartLongitude      float64
	EndLatitude         float64
	EndLongitude        float64
	DistanceCovered     float64
	Active              bool
	ContributionDetails string
	CreatedAt           time.Time
}

type ContributionInput struct {
	UserID          int64
	StartTime       time.Time
	EndTime         time.Time
	StartLatitude   float64
	StartLongitude  float64
	EndLatitude     float64
	EndLongitude    float64
	DistanceCovered float64
}

type ContributionResult struct {
	Contribution       *UserContribution
	TeamChallengeID    int64
	ChallengeCompleted bool
	TotalDistanceKm    float64
	RequiredDistanceKm float64
}
