package api

import (
	"errors"
	"net/http"
	"time"

	"challenge_league_api/internal/middleware"
	"challenge_league_api/internal/model"
	"challenge_league_api/internal/service"
	"challenge_league_api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type contributionRoutes struct {
	cs service.ContributionServiceI
}

func NewContributionRoutes(handler *gin.RouterGroup, cs service.ContributionServiceI, a *middleware.Authorization) {
	r := &contributionRoutes{cs: cs}
	h := handler.Group("")
	h.Use(a.Authenticate())
	{
		h.POST("/create_user_contribution", r.RecordContribution)
		h.POST("/complete_team_challenge", r.RecordContribution)
	}
}

type ContributionRequest struct {
	UserID          *int64   `json:"user_id" binding:"required"`
	StartTime       *string  `json:"start_time" binding:"required"`
	EndTime         *string  `json:"end_time" binding:"required"`
	StartLatitude   *float64 `json:"start_latitude" binding:"required,gte=-90,lte=90"`
	StartLongitude  *float64 `json:"start_longitude" binding:"required,gte=-180,lte=180"`
	EndLatitude     *float64 `json:"end_latitude" binding:"required,gte=-90,lte=90"`
	EndLongitude    *float64 `json:"end_longitude" binding:"required,gte=-180,lte=180"`
	DistanceCovered *float64 `json:"distance_covered" binding:"required,gte=0"`

	start time.Time
	end   time.Time
}

func (req *ContributionRequest) Validate() []string {
	var details []string
	req.start = parseTimestamp("start_time", req.StartTime, &details)
	req.end = parseTimestamp("end_time", req.EndTime, &details)
	if len(details) == 0 && req.end.Before(req.start) {
		details = append(details, "end_time must not be before start_time")
	}
	return details
}

type ContributionResponse struct {
	UserContributionID  int64     `json:"user_contribution_id"`
	TeamChallengeID     int64     `json:"team_challenge_id"`
	UserID              int64     `json:"user_id"`
	StartTime           time.Time `json:"start_time"`
	EndTime             time.Time `json:"end_time"`
	StartLatitude       float64   `json:"start_latitude"`
	StartLongitude      float64   `json:"start_longitude"`
	EndLatitude         float64   `json:"end_latitude"`
	EndLongitude        float64   `json:"end_longitude"`
	DistanceCovered     float64   `json:"distance_covered"`
	Active              bool      `json:"active"`
	ContributionDetails string    `json:"contribution_details"`
	CreatedAt           time.Time `json:"created_at"`
	ChallengeCompleted  bool      `json:"challenge_completed"`
	TotalDistanceKm     float64   `json:"total_distance_km"`
	RequiredDistanceKm  float64   `json:"required_distance_km"`
}

func (r *contributionRoutes) RecordContribution(c *gin.Context) {
	log := logger.Logger()

	var req ContributionRequest
	if !bindRequest(c, &req) {
		return
	}
	if !authorizeUser(c, *req.UserID) {
		return
	}

	result, err := r.cs.RecordContribution(c.Request.Context(), &model.ContributionInput{
		UserID:          *req.UserID,
		StartTime:       req.start,
		EndTime:         req.end,
		StartLatitude:   *req.StartLatitude,
		StartLongitude:  *req.StartLongitude,
		EndLatitude:     *req.EndLatitude,
		EndLongitude:    *req.EndLongitude,
		DistanceCovered: *req.DistanceCovered,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoActiveTeam):
			c.JSON(http.StatusBadRequest, gin.H{"error": "User is not part of any active team"})
		case errors.Is(err, service.ErrMultipleActiveTeams):
			c.JSON(http.StatusBadRequest, gin.H{"error": "User belongs to multiple active teams"})
		case errors.Is(err, service.ErrNoActiveChallenge):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No active team challenge found for this team"})
		case errors.Is(err, service.ErrChallengeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
		default:
			internalError(c, "Error recording user contribution", err)
		}
		return
	}

	log.Info("contribution recorded",
		zap.Int64("user_id", *req.UserID),
		zap.Int64("team_challenge_id", result.TeamChallengeID),
		zap.Bool("challenge_completed", result.ChallengeCompleted))

	uc := result.Contribution
	c.JSON(http.StatusCreated, gin.H{"data": ContributionResponse{
		UserContributionID:  uc.UserContributionID,
		TeamChallengeID:     result.TeamChallengeID,
		UserID:              uc.UserID,
		StartTime:           uc.StartTime,
		EndTime:             uc.EndTime,
		StartLatitude:       uc.StartLatitude,
		StartLongitude:      uc.StartLongitude,
		EndLatitude:         uc.EndLatitude,
		EndLongitude:        uc.EndLongitude,
		DistanceCovered:     uc.DistanceCovered,
		Active:              uc.Active,
		ContributionDetails: uc.ContributionDetails,
		CreatedAt:           uc.CreatedAt,
		ChallengeCompleted:  result.ChallengeCompleted,
		TotalDistanceKm:     result.TotalDistanceKm,
		RequiredDistanceKm:  result.RequiredDistanceKm,
	}})
}
