package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"challenge_league_api/internal/middleware"
	"challenge_league_api/internal/service"
	"challenge_league_api/pkg/auth"
	"challenge_league_api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type userRoutes struct {
	us service.UserServiceI
}

// NewUserRoutes leaves registration and login open; logout goes through the token check.
func NewUserRoutes(handler *gin.RouterGroup, us service.UserServiceI, a *middleware.Authorization) {
	r := &userRoutes{us: us}
	handler.POST("/register_user", r.RegisterUser)
	handler.POST("/user_login", r.Login)

	h := handler.Group("")
	h.Use(a.Authenticate())
	{
		h.POST("/user_logout", r.Logout)
	}
}

type RegisterUserRequest struct {
	Name     *string `json:"name" binding:"required"`
	Email    *string `json:"email" binding:"required,email"`
	Password *string `json:"password" binding:"required,min=8"`
}

func (req *RegisterUserRequest) Validate() []string {
	var details []string
	if strings.TrimSpace(*req.Name) == "" {
		details = append(details, "name must not be empty")
	}
	if len(*req.Password) > auth.MaxPasswordBytes {
		details = append(details, fmt.Sprintf("password must be at most %d bytes", auth.MaxPasswordBytes))
	}
	return details
}

func (r *userRoutes) RegisterUser(c *gin.Context) {
	log := logger.Logger()

	var req RegisterUserRequest
	if !bindRequest(c, &req) {
		return
	}

	user, err := r.us.RegisterUser(c.Request.Context(), *req.Name, *req.Email, *req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists with this email."})
			return
		}
		if errors.Is(err, service.ErrPasswordTooLong) {
			invalidParameters(c, []string{err.Error()})
			return
		}
		internalError(c, "Error registering user", err)
		return
	}

	log.Info("user registered", zap.Int64("user_id", user.UserID))

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully.",
		"user_id": user.UserID,
		"email":   user.Email,
	})
}

type LoginRequest struct {
	Email    *string `json:"email" binding:"required"`
	Password *string `json:"password" binding:"required"`
}

func (req *LoginRequest) Validate() []string {
	return nil
}

type LoginResponse struct {
	UserID      int64     `json:"user_id"`
	Email       string    `json:"email"`
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (r *userRoutes) Login(c *gin.Context) {
	var req LoginRequest
	if !bindRequest(c, &req) {
		return
	}

	result, err := r.us.Login(c.Request.Context(), *req.Email, *req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password."})
			return
		}
		internalError(c, "Error logging in", err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		UserID:      result.UserID,
		Email:       result.Email,
		AccessToken: result.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   result.ExpiresAt,
	})
}

func (r *userRoutes) Logout(c *gin.Context) {
	var req UserIDRequest
	if !bindRequest(c, &req) {
		return
	}
	if !authorizeUser(c, *req.UserID) {
		return
	}

	err := r.us.Logout(c.Request.Context(), *req.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		internalError(c, "Error logging out", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User logged out successfully."})
}
