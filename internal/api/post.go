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

// PostController serves the feed: posts, likes and comments.
type PostController struct {
	posts  *service.PostService
	logger *logger.Logger
}

func NewPostController(posts *service.PostService, logger *logger.Logger) *PostController {
	return &PostController{posts: posts, logger: logger}
}

func (ctrl *PostController) RegisterRoutes(group *gin.RouterGroup) {
	postGroup := group.Group("/posts")
	{
		postGroup.GET("", ctrl.Feed)
		postGroup.POST("", ctrl.Create)
		postGroup.DELETE("/:postId", ctrl.Delete)
		postGroup.POST("/:postId/like", ctrl.Like)
		postGroup.DELETE("/:postId/like", ctrl.Unlike)
		postGroup.POST("/:postId/comments", ctrl.Comment)
		postGroup.GET("/:postId/comments", ctrl.Comments)
		postGroup.DELETE("/:postId/comments/:commentId", ctrl.DeleteComment)
	}
}

func (ctrl *PostController) Feed(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	posts, err := ctrl.posts.Feed(limit, offset)
	if err != nil {
		ctrl.logger.LogError(err, "Failed to load feed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load feed"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (ctrl *PostController) Create(c *gin.Context) {
	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Post content is required"})
		return
	}

	authorID := middleware.CurrentUserID(c)
	post, err := ctrl.posts.CreatePost(authorID, &req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyPost) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Post content is empty"})
			return
		}
		ctrl.logger.LogError(err, "Failed to create post", "author", authorID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (ctrl *PostController) Delete(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("postId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	requester := middleware.CurrentUserID(c)
	switch err := ctrl.posts.DeletePost(uint(postID), requester); {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
	case errors.Is(err, service.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
	case errors.Is(err, service.ErrNotPostOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author can delete a post"})
	default:
		ctrl.logger.LogError(err, "Failed to delete post", "postId", postID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
	}
}

func (ctrl *PostController) Like(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("postId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	userID := middleware.CurrentUserID(c)
	if err := ctrl.posts.Like(uint(postID), userID); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		ctrl.logger.LogError(err, "Failed to like post", "postId", postID, "userId", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post liked"})
}

func (ctrl *PostController) Unlike(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("postId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	userID := middleware.CurrentUserID(c)
	if err := ctrl.posts.Unlike(uint(postID), userID); err != nil {
		ctrl.logger.LogError(err, "Failed to unlike post", "postId", postID, "userId", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlike post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Like removed"})
}

func (ctrl *PostController) Comment(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("postId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment content is required"})
		return
	}

	authorID := middleware.CurrentUserID(c)
	comment, err := ctrl.posts.Comment(uint(postID), authorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		case errors.Is(err, service.ErrEmptyComment):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Comment content is empty"})
		default:
			ctrl.logger.LogError(err, "Failed to add comment", "postId", postID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		}
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (ctrl *PostController) Comments(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("postId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	comments, err := ctrl.posts.Comments(uint(postID))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		ctrl.logger.LogError(err, "Failed to list comments", "postId", postID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list comments"})
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (ctrl *PostController) DeleteComment(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("commentId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	requester := middleware.CurrentUserID(c)
	switch err := ctrl.posts.DeleteComment(uint(commentID), requester); {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
	case errors.Is(err, service.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
	case errors.Is(err, service.ErrNotCommentOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author can delete a comment"})
	default:
		ctrl.logger.LogError(err, "Failed to delete comment", "commentId", commentID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
	}
}
