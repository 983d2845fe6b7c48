package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/internal/service"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/pkg/logger"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/pkg/middleware"
)

// MailController implements the mail-a-member feature: an
// authenticated member emails one of their connections.
type MailController struct {
	mailer      *service.MailService
	users       *service.UserService
	connections *service.ConnectionService
	logger      *logger.Logger
}

func NewMailController(mailer *service.MailService, users *service.UserService, connections *service.ConnectionService, logger *logger.Logger) *MailController {
	return &MailController{
		mailer:      mailer,
		users:       users,
		connections: connections,
		logger:      logger,
	}
}

func (ctrl *MailController) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/mail", ctrl.Send)
}

type sendMailRequest struct {
	Recipient uint   `json:"recipient" binding:"required"`
	Subject   string `json:"subject" binding:"required"`
	Body      string `json:"body" binding:"required"`
}

// Send emails a connection. Only mutual connections may be mailed, so
// the feature cannot be used to spam arbitrary members.
func (ctrl *MailController) Send(c *gin.Context) {
	if ctrl.mailer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Email is not configured"})
		return
	}

	var req sendMailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Recipient, subject and body are required"})
		return
	}

	senderID := middleware.CurrentUserID(c)
	connected, err := ctrl.connections.IsConnected(senderID, req.Recipient)
	if err != nil {
		ctrl.logger.LogError(err, "Failed to check connection", "sender", senderID, "recipient", req.Recipient)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}
	if !connected {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only email your connections"})
		return
	}

	sender, err := ctrl.users.GetUserByID(senderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}
	recipient, err := ctrl.users.GetUserByID(req.Recipient)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipient not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}

	if err := ctrl.mailer.SendMemberMessage(recipient.Email, sender.Name, sender.Email, req.Subject, req.Body); err != nil {
		ctrl.logger.LogError(err, "Failed to send member email", "sender", senderID, "recipient", req.Recipient)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Email could not be delivered"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email sent"})
}
