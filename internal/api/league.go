package api

import (
	"errors"
	"net/http"

	"challenge_league_api/internal/middleware"
	"challenge_league_api/internal/service"
	"challenge_league_api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type leagueRoutes struct {
	ls service.LeagueServiceI
}

func NewLeagueRoutes(handler *gin.RouterGroup, ls service.LeagueServiceI, a *middleware.Authorization) {
	r := &leagueRoutes{ls: ls}
	h := handler.Group("")
	h.Use(a.Authenticate())
	{
		h.POST("/join_waiting_room", r.JoinWaitingRoom)
		h.POST("/get_waiting_room_id", r.GetWaitingRoomID)
		h.POST("/get_waiting_room_users", r.GetWaitingRoomUsers)
		h.POST("/create_league_room", r.CreateLeagueRoom)
		h.POST("/get_active_league_room_id", r.GetActiveLeagueRoom)
	}
}

type UserIDRequest struct {
	UserID *int64 `json:"user_id" binding:"required"`
}

func (req *UserIDRequest) Validate() []string {
	return nil
}

func (r *leagueRoutes) bindUser(c *gin.Context) (int64, bool) {
	var req UserIDRequest
	if !bindRequest(c, &req) {
		return 0, false
	}
	if !authorizeUser(c, *req.UserID) {
		return 0, false
	}
	return *req.UserID, true
}

func (r *leagueRoutes) JoinWaitingRoom(c *gin.Context) {
	userID, ok := r.bindUser(c)
	if !ok {
		return
	}

	entry, err := r.ls.JoinWaitingRoom(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		internalError(c, "Error joining waiting room", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Joined waiting room",
		"waiting_room_id": entry.WaitingRoomID,
	})
}

func (r *leagueRoutes) GetWaitingRoomID(c *gin.Context) {
	userID, ok := r.bindUser(c)
	if !ok {
		return
	}

	id, err := r.ls.GetWaitingRoomID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		internalError(c, "Error fetching waiting room", err)
		return
	}

	if id == nil {
		c.JSON(http.StatusOK, gin.H{
			"message":         "No open waiting room found",
			"waiting_room_id": nil,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Existing waiting room found",
		"waiting_room_id": *id,
	})
}

type WaitingRoomUsersRequest struct {
	WaitingRoomID *int64 `json:"waiting_room_id" binding:"required"`
}

func (req *WaitingRoomUsersRequest) Validate() []string {
	return nil
}

func (r *leagueRoutes) GetWaitingRoomUsers(c *gin.Context) {
	var req WaitingRoomUsersRequest
	if !bindRequest(c, &req) {
		return
	}

	users, err := r.ls.GetWaitingRoomUsers(c.Request.Context(), *req.WaitingRoomID)
	if err != nil {
		internalError(c, "Error fetching waiting room users", err)
		return
	}

	out := make([]TeamMemberResponse, len(users))
	for i, u := range users {
		out[i] = TeamMemberResponse{UserID: u.UserID, Name: u.Name}
	}

	c.JSON(http.StatusOK, gin.H{"data": out})
}

func (r *leagueRoutes) CreateLeagueRoom(c *gin.Context) {
	log := logger.Logger()

	userID, ok := r.bindUser(c)
	if !ok {
		return
	}

	promotion, err := r.ls.CreateLeagueRoom(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoWaitingRoom):
			c.JSON(http.StatusNotFound, gin.H{"error": "No active waiting room found for this user"})
		case errors.Is(err, service.ErrWaitingRoomPromoted):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Waiting room already promoted"})
		default:
			internalError(c, "Error creating league room", err)
		}
		return
	}

	log.Info("waiting room promoted",
		zap.Int64("waiting_room_id", promotion.WaitingRoomID),
		zap.Int64("league_room_id", promotion.LeagueRoom.LeagueRoomID),
		zap.Int("users_moved", promotion.TotalUsersMoved))

	c.JSON(http.StatusCreated, gin.H{
		"message":           "Successfully moved users to new league room",
		"league_room_id":    promotion.LeagueRoom.LeagueRoomID,
		"league_room_name":  promotion.LeagueRoom.LeagueRoomName,
		"waiting_room_id":   promotion.WaitingRoomID,
		"total_users_moved": promotion.TotalUsersMoved,
		"moved_user_ids":    promotion.MovedUserIDs,
	})
}

func (r *leagueRoutes) GetActiveLeagueRoom(c *gin.Context) {
	userID, ok := r.bindUser(c)
	if !ok {
		return
	}

	room, err := r.ls.GetActiveLeagueRoom(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		internalError(c, "Error fetching active league room", err)
		return
	}

	if room == nil {
		c.JSON(http.StatusOK, gin.H{
			"message":        "No active league room found for this user within the last 7 days",
			"league_room_id": nil,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Active league room found",
		"waiting_room_id": room.WaitingRoomID,
		"league_room_id":  room.LeagueRoomID,
		"created_at":      room.CreatedAt,
	})
}
