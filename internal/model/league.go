package model

import "time"

type LeagueRoom struct {
	LeagueRoomID   int64
	LeagueRoomName string
	CreatedAt      time.Time
}

type WaitingRoomEntry struct {
	WaitingRoomID int64
	UserID        int64
	LeagueRoomID  *int64
	CreatedAt     time.Time
}

type LeaguePromotion struct {
	LeagueRoom      *LeagueRoom
	WaitingRoomID   int64
	TotalUsersMoved int
	MovedUserIDs    []int64
}

type ActiveLeagueRoom struct {
	WaitingRoomID int64
	LeagueRoomID  int64
	CreatedAt     time.Time
}
