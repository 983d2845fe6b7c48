package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/internal/models"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/internal/repository"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/shared/redis"

	"gorm.io/gorm"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrNotPostOwner = errors.New("only the author may delete a post")
	ErrEmptyPost    = errors.New("post content is empty")
	ErrEmptyComment = errors.New("comment content is empty")

	ErrCommentNotFound = errors.New("comment not found")
	ErrNotCommentOwner = errors.New("only the author may delete a comment")
)

// profileViewWindow is how long a repeat view of the same profile by
// the same viewer is suppressed.
const profileViewWindow = 12 * time.Hour

// defaultFeedPageSize is the fallback feed page when none is
// configured.
const defaultFeedPageSize = 20

// maxFeedPageSize caps the page size a client may request.
const maxFeedPageSize = 50

// PostService handles the feed: posts, likes, comments, and profile
// view tracking.
type PostService struct {
	repo     repository.PostRepository
	cache    *redis.Client
	pageSize int
}

// NewPostService builds the feed service. pageSize zero or negative
// falls back to the default page.
func NewPostService(repo repository.PostRepository, cache *redis.Client, pageSize int) *PostService {
	if pageSize <= 0 {
		pageSize = defaultFeedPageSize
	}
	return &PostService{repo: repo, cache: cache, pageSize: pageSize}
}

func (s *PostService) CreatePost(authorID uint, req *models.CreatePostRequest) (*models.Post, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyPost
	}
	post := &models.Post{
		AuthorID: authorID,
		Content:  content,
		ImageURL: req.ImageURL,
	}
	if err := s.repo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Feed(limit, offset int) ([]models.Post, error) {
	if limit <= 0 || limit > maxFeedPageSize {
		limit = s.pageSize
	}
	return s.repo.ListRecent(limit, offset)
}

func (s *PostService) DeletePost(postID, requesterID uint) error {
	post, err := s.repo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	if post.AuthorID != requesterID {
		return ErrNotPostOwner
	}
	return s.repo.Delete(postID)
}

// Like is idempotent: the unique (post, user) index turns a repeat
// like into a no-op.
func (s *PostService) Like(postID, userID uint) error {
	if _, err := s.repo.GetByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	err := s.repo.AddLike(&models.Like{PostID: postID, UserID: userID})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

func (s *PostService) Unlike(postID, userID uint) error {
	return s.repo.RemoveLike(postID, userID)
}

func (s *PostService) Comment(postID, authorID uint, req *models.CreateCommentRequest) (*models.Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyComment
	}
	if _, err := s.repo.GetByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	comment := &models.Comment{PostID: postID, AuthorID: authorID, Content: content}
	if err := s.repo.AddComment(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Comments lists a post's comments oldest first.
func (s *PostService) Comments(postID uint) ([]models.Comment, error) {
	if _, err := s.repo.GetByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return s.repo.ListComments(postID)
}

// DeleteComment removes a comment. Only its author may delete it.
func (s *PostService) DeleteComment(commentID, requesterID uint) error {
	comment, err := s.repo.GetComment(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	if comment.AuthorID != requesterID {
		return ErrNotCommentOwner
	}
	return s.repo.DeleteComment(commentID)
}

// RecordProfileView stores a profile view unless the same viewer hit
// the same profile within the dedupe window. Redis holds the window
// marker; with no cache configured every view is recorded.
func (s *PostService) RecordProfileView(ownerID, viewerID uint) error {
	if ownerID == viewerID {
		return nil
	}
	key := fmt.Sprintf("profile-view:%d:%d", ownerID, viewerID)
	if s.cache != nil {
		if seen, err := s.cache.Get(key); err == nil && seen != "" {
			return nil
		}
	}
	view := &models.ProfileView{OwnerID: ownerID, ViewerID: viewerID, ViewedAt: time.Now()}
	if err := s.repo.RecordProfileView(view); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Set(key, "1", profileViewWindow)
	}
	return nil
}

func (s *PostService) ProfileViews(ownerID uint, limit int) ([]models.ProfileView, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListProfileViews(ownerID, limit)
}
