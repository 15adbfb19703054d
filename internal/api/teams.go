package api

import (
	"errors"
	"net/http"

	"challenge_league_api/internal/middleware"
	"challenge_league_api/internal/service"

	"github.com/gin-gonic/gin"
)

type teamRoutes struct {
	ts service.TeamServiceI
}

func NewTeamRoutes(handler *gin.RouterGroup, ts service.TeamServiceI, a *middleware.Authorization) {
	r := &teamRoutes{ts: ts}
	h := handler.Group("")
	h.Use(a.Authenticate())
	{
		h.POST("/create_team", r.CreateTeam)
		h.POST("/get_league_teams", r.GetLeagueTeams)
	}
}

type CreateTeamRequest struct {
	UserIDs      []int64 `json:"user_ids" binding:"required,min=1,unique,dive,gt=0"`
	LeagueRoomID *int64  `json:"league_room_id"`
}

func (req *CreateTeamRequest) Validate() []string {
	return nil
}

func (r *teamRoutes) CreateTeam(c *gin.Context) {
	var req CreateTeamRequest
	if !bindRequest(c, &req) {
		return
	}

	team, err := r.ts.CreateTeam(c.Request.Context(), req.UserIDs, req.LeagueRoomID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTeamMembers):
			c.JSON(http.StatusBadRequest, gin.H{"error": "One or more user_ids are invalid"})
		case errors.Is(err, service.ErrAlreadyOnTeam):
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already on an active team"})
		default:
			internalError(c, "Error creating team", err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"team_id":   team.TeamID,
		"team_name": team.TeamName,
		"members":   req.UserIDs,
	})
}

type LeagueTeamsRequest struct {
	LeagueRoomID *int64 `json:"league_room_id" binding:"required"`
}

func (req *LeagueTeamsRequest) Validate() []string {
	return nil
}

type TeamMemberResponse struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
}

type LeagueTeamResponse struct {
	TeamID   int64                `json:"team_id"`
	TeamName string               `json:"team_name"`
	Members  []TeamMemberResponse `json:"members"`
}

func (r *teamRoutes) GetLeagueTeams(c *gin.Context) {
	var req LeagueTeamsRequest
	if !bindRequest(c, &req) {
		return
	}

	teams, err := r.ts.GetLeagueTeams(c.Request.Context(), *req.LeagueRoomID)
	if err != nil {
		internalError(c, "Error fetching league teams", err)
		return
	}

	out := make([]LeagueTeamResponse, len(teams))
	for i, t := range teams {
		members := make([]TeamMemberResponse, len(t.Members))
		for j, m := range t.Members {
			members[j] = TeamMemberResponse{UserID: m.UserID, Name: m.Name}
		}
		out[i] = LeagueTeamResponse{
			TeamID:   t.TeamID,
			TeamName: t.TeamName,
			Members:  members,
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": out})
}
