package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"challenge_league_api/internal/model"
	"challenge_league_api/internal/repository"
)

type TeamService struct {
	repo TeamRepository
}

func NewTeamService(repo TeamRepository) *TeamService {
	return &TeamService{
		repo: repo,
	}
}

// CreateTeam forms a team named after its members, in request order, joined by " & ".
func (s *TeamService) CreateTeam(ctx context.Context, userIDs []int64, leagueRoomID *int64) (*model.Team, error) {
	users, err := s.repo.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	if len(users) != len(userIDs) {
		return nil, ErrInvalidTeamMembers
	}

	names := make(map[int64]string, len(users))
	for _, u := range users {
		names[u.UserID] = u.Name
	}

	parts := make([]string, len(userIDs))
	for i, id := range userIDs {
		parts[i] = names[id]
	}

	team := &model.Team{
		TeamName:     strings.Join(parts, " & "),
		LeagueRoomID: leagueRoomID,
	}

	err = s.repo.CreateTeam(ctx, team, userIDs)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyOnTeam) {
			return nil, ErrAlreadyOnTeam
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	return team, nil
}

func (s *TeamService) GetLeagueTeams(ctx context.Context, leagueRoomID int64) ([]*model.LeagueTeam, error) {
	teams, err := s.repo.GetLeagueTeams(ctx, leagueRoomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get league teams: %w", err)
	}
	return teams, nil
}
