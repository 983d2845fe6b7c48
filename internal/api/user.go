package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/internal/models"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/internal/service"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/pkg/logger"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/pkg/middleware"
)

// UserController serves profile viewing and editing.
type UserController struct {
	users  *service.UserService
	posts  *service.PostService
	logger *logger.Logger
}

func NewUserController(users *service.UserService, posts *service.PostService, logger *logger.Logger) *UserController {
	return &UserController{users: users, posts: posts, logger: logger}
}

func (ctrl *UserController) RegisterRoutes(group *gin.RouterGroup) {
	userGroup := group.Group("/users")
	{
		userGroup.GET("/search", ctrl.Search)
		userGroup.GET("/recent", ctrl.Recent)
		userGroup.GET("/:userId", ctrl.GetProfile)
		userGroup.PUT("/me", ctrl.UpdateProfile)
		userGroup.GET("/me/profile-views", ctrl.ProfileViews)
	}
}

// GetProfile returns a member's profile and records the view for the
// "who viewed me" feature.
func (ctrl *UserController) GetProfile(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	user, err := ctrl.users.GetUserByID(uint(userID))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		ctrl.logger.LogError(err, "Failed to fetch profile", "userId", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	viewer := middleware.CurrentUserID(c)
	if err := ctrl.posts.RecordProfileView(uint(userID), viewer); err != nil {
		ctrl.logger.Warn("Profile view not recorded", "owner", userID, "viewer", viewer)
	}

	c.JSON(http.StatusOK, gin.H{"user": user.ToResponse()})
}

// Search finds members by name for the connection directory.
func (ctrl *UserController) Search(c *gin.Context) {
	query := c.Query("q")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	users, err := ctrl.users.Search(query, limit)
	if err != nil {
		if errors.Is(err, service.ErrEmptySearchQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
			return
		}
		ctrl.logger.LogError(err, "User search failed", "query", query)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": toUserResponses(users)})
}

// Recent lists the newest members.
func (ctrl *UserController) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	users, err := ctrl.users.Recent(limit)
	if err != nil {
		ctrl.logger.LogError(err, "Failed to list recent members")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list recent members"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": toUserResponses(users)})
}

// UpdateProfile applies the editable fields to the requester's own
// profile.
func (ctrl *UserController) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID := middleware.CurrentUserID(c)
	user, err := ctrl.users.UpdateProfile(userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		ctrl.logger.LogError(err, "Failed to update profile", "userId", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user.ToResponse()})
}

func toUserResponses(users []models.User) []models.UserResponse {
	responses := make([]models.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, u.ToResponse())
	}
	return responses
}

// ProfileViews lists who viewed the requester's profile recently.
func (ctrl *UserController) ProfileViews(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	views, err := ctrl.posts.ProfileViews(userID, 50)
	if err != nil {
		ctrl.logger.LogError(err, "Failed to list profile views", "userId", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list profile views"})
		return
	}
	c.JSON(http.StatusOK, views)
}
