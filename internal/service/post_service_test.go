package service

import (
	"testing"

	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakePostRepo struct {
	posts         map[uint]*models.Post
	likes         map[uint]map[uint]bool
	comments      []models.Comment
	views         []models.ProfileView
	nextID        uint
	nextCommentID uint
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{
		posts:         make(map[uint]*models.Post),
		likes:         make(map[uint]map[uint]bool),
		nextID:        1,
		nextCommentID: 1,
	}
}

func (r *fakePostRepo) Create(post *models.Post) error {
	post.ID = r.nextID
	r.nextID++
	r.posts[post.ID] = post
	return nil
}

func (r *fakePostRepo) GetByID(id uint) (*models.Post, error) {
	if p, ok := r.posts[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePostRepo) ListRecent(limit, offset int) ([]models.Post, error) {
	var out []models.Post
	for _, p := range r.posts {
		out = append(out, *p)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakePostRepo) Delete(id uint) error {
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) AddLike(like *models.Like) error {
	if r.likes[like.PostID][like.UserID] {
		return gorm.ErrDuplicatedKey
	}
	if r.likes[like.PostID] == nil {
		r.likes[like.PostID] = make(map[uint]bool)
	}
	r.likes[like.PostID][like.UserID] = true
	return nil
}

func (r *fakePostRepo) RemoveLike(postID, userID uint) error {
	delete(r.likes[postID], userID)
	return nil
}

func (r *fakePostRepo) AddComment(comment *models.Comment) error {
	comment.ID = r.nextCommentID
	r.nextCommentID++
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *fakePostRepo) ListComments(postID uint) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakePostRepo) GetComment(id uint) (*models.Comment, error) {
	for _, c := range r.comments {
		if c.ID == id {
			comment := c
			return &comment, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePostRepo) DeleteComment(id uint) error {
	for i, c := range r.comments {
		if c.ID == id {
			r.comments = append(r.comments[:i], r.comments[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakePostRepo) RecordProfileView(view *models.ProfileView) error {
	r.views = append(r.views, *view)
	return nil
}

func (r *fakePostRepo) ListProfileViews(ownerID uint, limit int) ([]models.ProfileView, error) {
	var out []models.ProfileView
	for _, v := range r.views {
		if v.OwnerID == ownerID {
			out = append(out, v)
		}
	}
	return out, nil
}

func newTestPostService() (*PostService, *fakePostRepo) {
	repo := newFakePostRepo()
	return NewPostService(repo, nil, 0), repo
}

func TestCreatePostRejectsEmptyContent(t *testing.T) {
	svc, _ := newTestPostService()

	_, err := svc.CreatePost(1, &models.CreatePostRequest{Content: "   "})
	assert.ErrorIs(t, err, ErrEmptyPost)
}

func TestDeletePostRequiresAuthor(t *testing.T) {
	svc, _ := newTestPostService()

	post, err := svc.CreatePost(1, &models.CreatePostRequest{Content: "hello feed"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeletePost(post.ID, 2), ErrNotPostOwner)
	require.NoError(t, svc.DeletePost(post.ID, 1))
	assert.ErrorIs(t, svc.DeletePost(post.ID, 1), ErrPostNotFound)
}

func TestLikeIsIdempotent(t *testing.T) {
	svc, repo := newTestPostService()

	post, err := svc.CreatePost(1, &models.CreatePostRequest{Content: "hello"})
	require.NoError(t, err)

	require.NoError(t, svc.Like(post.ID, 2))
	require.NoError(t, svc.Like(post.ID, 2), "repeat like is a no-op, not an error")
	assert.Len(t, repo.likes[post.ID], 1)

	assert.ErrorIs(t, svc.Like(99, 2), ErrPostNotFound)
}

func TestCommentRequiresExistingPost(t *testing.T) {
	svc, _ := newTestPostService()

	_, err := svc.Comment(99, 1, &models.CreateCommentRequest{Content: "nice"})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestCommentsListOnExistingPost(t *testing.T) {
	svc, _ := newTestPostService()

	post, err := svc.CreatePost(1, &models.CreatePostRequest{Content: "hello feed"})
	require.NoError(t, err)

	_, err = svc.Comment(post.ID, 2, &models.CreateCommentRequest{Content: "first"})
	require.NoError(t, err)
	_, err = svc.Comment(post.ID, 3, &models.CreateCommentRequest{Content: "second"})
	require.NoError(t, err)

	comments, err := svc.Comments(post.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 2)

	_, err = svc.Comments(99)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestDeleteCommentRequiresAuthor(t *testing.T) {
	svc, repo := newTestPostService()

	post, err := svc.CreatePost(1, &models.CreatePostRequest{Content: "hello feed"})
	require.NoError(t, err)

	comment, err := svc.Comment(post.ID, 2, &models.CreateCommentRequest{Content: "nice"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteComment(comment.ID, 1), ErrNotCommentOwner)
	assert.Len(t, repo.comments, 1)

	require.NoError(t, svc.DeleteComment(comment.ID, 2))
	assert.Empty(t, repo.comments)

	assert.ErrorIs(t, svc.DeleteComment(comment.ID, 2), ErrCommentNotFound)
}

func TestFeedUsesConfiguredPageSize(t *testing.T) {
	repo := newFakePostRepo()
	svc := NewPostService(repo, nil, 3)

	for i := 0; i < 6; i++ {
		_, err := svc.CreatePost(1, &models.CreatePostRequest{Content: "post"})
		require.NoError(t, err)
	}

	// No explicit limit falls back to the configured page.
	posts, err := svc.Feed(0, 0)
	require.NoError(t, err)
	assert.Len(t, posts, 3)

	// An oversized request is clamped back to the configured page.
	posts, err = svc.Feed(maxFeedPageSize+1, 0)
	require.NoError(t, err)
	assert.Len(t, posts, 3)

	// An in-range explicit limit wins over the configured page.
	posts, err = svc.Feed(5, 0)
	require.NoError(t, err)
	assert.Len(t, posts, 5)
}

func TestRecordProfileViewSkipsSelf(t *testing.T) {
	svc, repo := newTestPostService()

	require.NoError(t, svc.RecordProfileView(1, 1))
	assert.Empty(t, repo.views, "viewing your own profile is not recorded")

	require.NoError(t, svc.RecordProfileView(1, 2))
	require.Len(t, repo.views, 1)
	assert.Equal(t, uint(2), repo.views[0].ViewerID)
}
