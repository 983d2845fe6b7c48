package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/internal/service"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/pkg/logger"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/pkg/middleware"
)

// ConnectionController manages the member connection graph.
type ConnectionController struct {
	connections *service.ConnectionService
	logger      *logger.Logger
}

func NewConnectionController(connections *service.ConnectionService, logger *logger.Logger) *ConnectionController {
	return &ConnectionController{connections: connections, logger: logger}
}

func (ctrl *ConnectionController) RegisterRoutes(group *gin.RouterGroup) {
	connGroup := group.Group("/connections")
	{
		connGroup.GET("", ctrl.List)
		connGroup.GET("/suggestions", ctrl.Suggestions)
		connGroup.POST("/:userId", ctrl.Connect)
		connGroup.DELETE("/:userId", ctrl.Disconnect)
	}
}

func (ctrl *ConnectionController) List(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	connections, err := ctrl.connections.List(userID)
	if err != nil {
		ctrl.logger.LogError(err, "Failed to list connections", "userId", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list connections"})
		return
	}

	c.JSON(http.StatusOK, toUserResponses(connections))
}

func (ctrl *ConnectionController) Suggestions(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	users, err := ctrl.connections.Suggestions(userID, 20)
	if err != nil {
		ctrl.logger.LogError(err, "Failed to list suggestions", "userId", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list suggestions"})
		return
	}

	c.JSON(http.StatusOK, toUserResponses(users))
}

func (ctrl *ConnectionController) Connect(c *gin.Context) {
	otherID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	userID := middleware.CurrentUserID(c)
	switch err := ctrl.connections.Connect(userID, uint(otherID)); {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Connection added"})
	case errors.Is(err, service.ErrSelfConnection):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot connect to yourself"})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	default:
		ctrl.logger.LogError(err, "Failed to add connection", "userId", userID, "other", otherID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add connection"})
	}
}

func (ctrl *ConnectionController) Disconnect(c *gin.Context) {
	otherID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	userID := middleware.CurrentUserID(c)
	switch err := ctrl.connections.Disconnect(userID, uint(otherID)); {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Connection removed"})
	case errors.Is(err, service.ErrNotConnected):
		c.JSON(http.StatusBadRequest, gin.H{"error": "You are not connected with this user"})
	default:
		ctrl.logger.LogError(err, "Failed to remove connection", "userId", userID, "other", otherID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove connection"})
	}
}
