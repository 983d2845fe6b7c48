package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/internal/models"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/internal/service"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/pkg/logger"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/pkg/middleware"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	service *service.UserService
	mailer  *service.MailService
	logger  *logger.Logger
}

// NewAuthHandler creates a new auth handler. The mailer may be nil
// when SMTP is not configured.
func NewAuthHandler(userService *service.UserService, mailer *service.MailService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		service: userService,
		mailer:  mailer,
		logger:  logger,
	}
}

// Signup handles user registration
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Error binding JSON for signup", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	user, token, err := h.service.CreateUser(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "A user with this email already exists"})
		case errors.Is(err, service.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"error": "The provided role is invalid"})
		default:
			h.logger.Error("Error creating user", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user account"})
		}
		return
	}

	// Welcome mail is best-effort; signup never fails on SMTP.
	if h.mailer != nil {
		if err := h.mailer.SendWelcome(user.Email, user.Name); err != nil {
			h.logger.Warn("Welcome email not sent", "userID", user.ID)
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  user.ToResponse(),
		"token": token,
	})
}

// Login handles user authentication
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Error binding JSON for login", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	user, token, err := h.service.Login(&req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		h.logger.Error("Error during login", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred during login"})
		return
	}

	h.logger.Info("User logged in successfully",
		"userID", user.ID,
		"email", user.Email,
	)

	c.JSON(http.StatusOK, gin.H{
		"user":  user.ToResponse(),
		"token": token,
	})
}

// Me returns the current authenticated user
func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	user, err := h.service.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.logger.Error("Error fetching current user", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user.ToResponse()})
}
