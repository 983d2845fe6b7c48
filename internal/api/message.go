package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/internal/models"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/internal/service"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/pkg/logger"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/pkg/middleware"
)

// MessageController exposes the durable messaging operations over
// HTTP: history, create (no live push), delete, mark-read and the
// unread summary.
type MessageController struct {
	messages *service.MessageService
	logger   *logger.Logger
}

func NewMessageController(messages *service.MessageService, logger *logger.Logger) *MessageController {
	return &MessageController{messages: messages, logger: logger}
}

// RegisterRoutes registers the routes for the message controller
func (ctrl *MessageController) RegisterRoutes(group *gin.RouterGroup) {
	msgGroup := group.Group("/messages")
	{
		msgGroup.GET("/unread", ctrl.UnreadSummary)
		msgGroup.POST("/mark-read", ctrl.MarkRead)
		msgGroup.GET("/group/:chatId", ctrl.GroupHistory)
		msgGroup.GET("/:userId", ctrl.DirectHistory)
		msgGroup.POST("", ctrl.Create)
		msgGroup.DELETE("/:messageId", ctrl.Delete)
	}
}

// DirectHistory returns the conversation between the requester and
// another user, oldest first, capped at 100 entries.
func (ctrl *MessageController) DirectHistory(c *gin.Context) {
	requester := middleware.CurrentUserID(c)
	otherID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	messages, err := ctrl.messages.HistoryBetween(requester, uint(otherID), 0)
	if err != nil {
		ctrl.logger.LogError(err, "Failed to fetch message history", "requester", requester, "other", otherID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch message history"})
		return
	}

	c.JSON(http.StatusOK, messages)
}

// GroupHistory returns a group thread with sender names attached.
func (ctrl *MessageController) GroupHistory(c *gin.Context) {
	chatID := c.Param("chatId")
	if chatID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Chat ID is required"})
		return
	}

	messages, err := ctrl.messages.ChannelHistory(chatID, 0)
	if err != nil {
		ctrl.logger.LogError(err, "Failed to fetch group history", "chatId", chatID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group message history"})
		return
	}

	c.JSON(http.StatusOK, messages)
}

// Create persists a message through the durable path only; no live
// push is attempted. A duplicate is reported as created so retries
// after a dropped response stay idempotent for the client.
func (ctrl *MessageController) Create(c *gin.Context) {
	var req models.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Recipient and content are required"})
		return
	}

	sender := middleware.CurrentUserID(c)
	message, err := ctrl.messages.Record(sender, req.Recipient, req.Content, time.Time{}, req.ChatID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyContent), errors.Is(err, service.ErrRecipientRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrUnknownRecipient):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Recipient does not exist"})
		case errors.Is(err, service.ErrDuplicateMessage):
			c.JSON(http.StatusCreated, gin.H{"status": "already recorded"})
		default:
			ctrl.logger.LogError(err, "Failed to store message", "sender", sender)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store message"})
		}
		return
	}

	c.JSON(http.StatusCreated, message)
}

// Delete removes a message; only its sender may do so.
func (ctrl *MessageController) Delete(c *gin.Context) {
	messageID, err := strconv.ParseUint(c.Param("messageId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	requester := middleware.CurrentUserID(c)
	switch err := ctrl.messages.Delete(uint(messageID), requester); {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Message deleted successfully"})
	case errors.Is(err, service.ErrMessageNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
	case errors.Is(err, service.ErrNotMessageOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the sender can delete a message"})
	default:
		ctrl.logger.LogError(err, "Failed to delete message", "messageId", messageID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
	}
}

// MarkRead flips unread messages from the listed senders to the
// requester and reports how many rows changed.
func (ctrl *MessageController) MarkRead(c *gin.Context) {
	var req models.MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "senderIds array is required"})
		return
	}

	requester := middleware.CurrentUserID(c)
	count, err := ctrl.messages.MarkRead(requester, req.SenderIDs)
	if err != nil {
		ctrl.logger.LogError(err, "Failed to mark messages read", "requester", requester)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark messages as read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": count})
}

// UnreadSummary returns the unread badge counts grouped by sender.
func (ctrl *MessageController) UnreadSummary(c *gin.Context) {
	requester := middleware.CurrentUserID(c)
	counts, err := ctrl.messages.UnreadCounts(requester)
	if err != nil {
		ctrl.logger.LogError(err, "Failed to compute unread counts", "requester", requester)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get unread messages"})
		return
	}

	c.JSON(http.StatusOK, counts)
}
