package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"challenge_league_api/internal/model"
	"challenge_league_api/internal/repository"
)

const activeLeagueWindow = 7 * day

type LeagueService struct {
	repo     LeagueRepository
	capacity int
	now      Clock
}

func NewLeagueService(repo LeagueRepository, waitingRoomCapacity int) *LeagueService {
	return &LeagueService{
		repo:     repo,
		capacity: waitingRoomCapacity,
		now:      utcNow,
	}
}

func (s *LeagueService) ensureUser(ctx context.Context, userID int64) error {
	_, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}
	return nil
}

// JoinWaitingRoom is idempotent: a user already waiting gets their current room back.
func (s *LeagueService) JoinWaitingRoom(ctx context.Context, userID int64) (*model.WaitingRoomEntry, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	entry, err := s.repo.JoinWaitingRoom(ctx, userID, s.capacity)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyWaiting) {
			return s.repo.GetOpenWaitingRoom(ctx, userID)
		}
		return nil, fmt.Errorf("failed to join waiting room: %w", err)
	}

	return entry, nil
}

// GetWaitingRoomID returns nil when the user is not waiting in any open room.
func (s *LeagueService) GetWaitingRoomID(ctx context.Context, userID int64) (*int64, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	entry, err := s.repo.GetOpenWaitingRoom(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get waiting room: %w", err)
	}

	return &entry.WaitingRoomID, nil
}

func (s *LeagueService) GetWaitingRoomUsers(ctx context.Context, waitingRoomID int64) ([]*model.User, error) {
	users, err := s.repo.GetWaitingRoomUsers(ctx, waitingRoomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get waiting room users: %w", err)
	}
	return users, nil
}

func (s *LeagueService) CreateLeagueRoom(ctx context.Context, userID int64) (*model.LeaguePromotion, error) {
	entry, err := s.repo.GetOpenWaitingRoom(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoWaitingRoom
		}
		return nil, fmt.Errorf("failed to get waiting room: %w", err)
	}

	name := "New League Room - " + s.now().Format(time.RFC3339)
	promotion, err := s.repo.PromoteWaitingRoom(ctx, entry.WaitingRoomID, name)
	if err != nil {
		if errors.Is(err, repository.ErrWaitingRoomPromoted) {
			return nil, ErrWaitingRoomPromoted
		}
		return nil, fmt.Errorf("failed to promote waiting room: %w", err)
	}

	return promotion, nil
}

// GetActiveLeagueRoom returns nil when the user has no league room from the last seven days.
func (s *LeagueService) GetActiveLeagueRoom(ctx context.Context, userID int64) (*model.ActiveLeagueRoom, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	room, err := s.repo.GetActiveLeagueRoom(ctx, userID, s.now().Add(-activeLeagueWindow))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active league room: %w", err)
	}

	return room, nil
}
