package api

import (
	"errors"
	"net/http"
	"time"

	"challenge_league_api/internal/middleware"
	"challenge_league_api/internal/model"
	"challenge_league_api/internal/service"

	"github.com/gin-gonic/gin"
)

type challengeRoutes struct {
	cs service.ChallengeServiceI
}

func NewChallengeRoutes(handler *gin.RouterGroup, cs service.ChallengeServiceI, a *middleware.Authorization) {
	r := &challengeRoutes{cs: cs}
	h := handler.Group("")
	h.Use(a.Authenticate())
	{
		h.POST("/assign_challenge_to_team", r.AssignChallenge)
	}

	admin := handler.Group("")
	admin.Use(a.AdminOnly())
	{
		admin.POST("/add_challenge", r.AddChallenge)
		admin.POST("/create_daily_challenges", r.CreateDailyChallenges)
	}
}

type ChallengeResponse struct {
	ChallengeID   int64     `json:"challenge_id"`
	StartTime     time.Time `json:"start_time"`
	Duration      int       `json:"duration"`
	Length        float64   `json:"length"`
	Difficulty    string    `json:"difficulty"`
	EarningPoints int       `json:"earning_points"`
	Type          *string   `json:"type"`
	CreatedAt     time.Time `json:"created_at"`
}

func newChallengeResponse(ch *model.Challenge) ChallengeResponse {
	return ChallengeResponse{
		ChallengeID:   ch.ChallengeID,
		StartTime:     ch.StartTime,
		Duration:      ch.Duration,
		Length:        ch.Length,
		Difficulty:    ch.Difficulty,
		EarningPoints: ch.EarningPoints,
		Type:          ch.Type,
		CreatedAt:     ch.CreatedAt,
	}
}

type AddChallengeRequest struct {
	StartTime     *string  `json:"start_time" binding:"required"`
	Duration      *int     `json:"duration" binding:"required,gt=0"`
	Length        *float64 `json:"length" binding:"required,gt=0"`
	Difficulty    *string  `json:"difficulty" binding:"required,oneof=easy medium hard"`
	EarningPoints *int     `json:"earning_points" binding:"required,gte=0"`
	Type          *string  `json:"type"`

	start time.Time
}

func (req *AddChallengeRequest) Validate() []string {
	var details []string
	req.start = parseTimestamp("start_time", req.StartTime, &details)
	return details
}

func (r *challengeRoutes) AddChallenge(c *gin.Context) {
	var req AddChallengeRequest
	if !bindRequest(c, &req) {
		return
	}

	challenge, err := r.cs.AddChallenge(c.Request.Context(), &model.Challenge{
		StartTime:     req.start,
		Duration:      *req.Duration,
		Length:        *req.Length,
		Difficulty:    *req.Difficulty,
		EarningPoints: *req.EarningPoints,
		Type:          req.Type,
	})
	if err != nil {
		internalError(c, "Error creating challenge", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": newChallengeResponse(challenge)})
}

func (r *challengeRoutes) CreateDailyChallenges(c *gin.Context) {
	challenges, err := r.cs.CreateDailyChallenges(c.Request.Context())
	if err != nil {
		internalError(c, "Error creating daily challenges", err)
		return
	}

	out := make([]ChallengeResponse, len(challenges))
	for i, ch := range challenges {
		out[i] = newChallengeResponse(ch)
	}

	c.JSON(http.StatusCreated, gin.H{"data": out})
}

type AssignChallengeRequest struct {
	UserID      *int64   `json:"user_id" binding:"required"`
	ChallengeID *int64   `json:"challenge_id" binding:"required"`
	Multiplier  *float64 `json:"multiplier" binding:"omitempty,gte=0"`
}

func (req *AssignChallengeRequest) Validate() []string {
	return nil
}

func (r *challengeRoutes) AssignChallenge(c *gin.Context) {
	var req AssignChallengeRequest
	if !bindRequest(c, &req) {
		return
	}
	if !authorizeUser(c, *req.UserID) {
		return
	}

	tc, err := r.cs.AssignChallenge(c.Request.Context(), *req.UserID, *req.ChallengeID, req.Multiplier)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, service.ErrChallengeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
		case errors.Is(err, service.ErrNoActiveTeam):
			c.JSON(http.StatusBadRequest, gin.H{"error": "User is not part of any active team"})
		case errors.Is(err, service.ErrMultipleActiveTeams):
			c.JSON(http.StatusBadRequest, gin.H{"error": "User belongs to multiple active teams"})
		case errors.Is(err, service.ErrActiveChallenge):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Team already has an active challenge"})
		case errors.Is(err, service.ErrAlreadyAssigned):
			c.JSON(http.StatusBadRequest, gin.H{"error": "This challenge is already assigned to the team"})
		case errors.Is(err, service.ErrActiveContribution):
			c.JSON(http.StatusBadRequest, gin.H{"error": "User is already part of an active team challenge"})
		default:
			internalError(c, "Failed to create team challenge", err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":           "Team challenge successfully created",
		"team_challenge_id": tc.TeamChallengeID,
	})
}
