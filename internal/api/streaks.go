package api

import (
	"net/http"

	"challenge_league_api/internal/middleware"
	"challenge_league_api/internal/service"

	"github.com/gin-gonic/gin"
)

type scoringRoutes struct {
	ss service.StreakServiceI
	ps service.PointsServiceI
}

func NewScoringRoutes(handler *gin.RouterGroup, ss service.StreakServiceI, ps service.PointsServiceI, a *middleware.Authorization) {
	r := &scoringRoutes{ss: ss, ps: ps}
	h := handler.Group("")
	h.Use(a.Authenticate())
	{
		h.POST("/get_team_points", r.GetTeamPoints)
	}

	admin := handler.Group("")
	admin.Use(a.AdminOnly())
	{
		admin.POST("/reset_streak", r.ResetStreaks)
	}
}

func (r *scoringRoutes) ResetStreaks(c *gin.Context) {
	updated, err := r.ss.ResetStreaks(c.Request.Context())
	if err != nil {
		internalError(c, "Error updating team streaks", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Streaks updated",
		"teamsUpdated": updated,
	})
}

type TeamPointsRequest struct {
	LeagueRoomID *int64 `json:"league_room_id" binding:"required"`
}

func (req *TeamPointsRequest) Validate() []string {
	return nil
}

type TeamPointsResponse struct {
	TeamID              int64   `json:"team_id"`
	TotalPoints         float64 `json:"total_points"`
	CompletedChallenges int     `json:"completed_challenges"`
	StreakBonus         int     `json:"streak_bonus"`
}

func (r *scoringRoutes) GetTeamPoints(c *gin.Context) {
	var req TeamPointsRequest
	if !bindRequest(c, &req) {
		return
	}

	points, err := r.ps.GetTeamPoints(c.Request.Context(), *req.LeagueRoomID)
	if err != nil {
		internalError(c, "Error fetching team points", err)
		return
	}

	out := make([]TeamPointsResponse, len(points))
	for i, p := range points {
		out[i] = TeamPointsResponse{
			TeamID:              p.TeamID,
			TotalPoints:         p.TotalPoints,
			CompletedChallenges: p.CompletedChallenges,
			StreakBonus:         p.StreakBonus,
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": out})
}
