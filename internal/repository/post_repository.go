package repository

import (
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/internal/models"

	"gorm.io/gorm"
)

type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id uint) (*models.Post, error)
	ListRecent(limit, offset int) ([]models.Post, error)
	Delete(id uint) error
	AddLike(like *models.Like) error
	RemoveLike(postID, userID uint) error
	AddComment(comment *models.Comment) error
	ListComments(postID uint) ([]models.Comment, error)
	GetComment(id uint) (*models.Comment, error)
	DeleteComment(id uint) error
	RecordProfileView(view *models.ProfileView) error
	ListProfileViews(ownerID uint, limit int) ([]models.ProfileView, error)
}

type GormPostRepository struct {
	db *gorm.DB
}

func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

func (r *GormPostRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *GormPostRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Likes").Preload("Comments").First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *GormPostRepository) ListRecent(limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Preload("Likes").Preload("Comments").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *GormPostRepository) Delete(id uint) error {
	return r.db.Delete(&models.Post{}, id).Error
}

func (r *GormPostRepository) AddLike(like *models.Like) error {
	return r.db.Create(like).Error
}

func (r *GormPostRepository) RemoveLike(postID, userID uint) error {
	return r.db.Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Like{}).Error
}

func (r *GormPostRepository) AddComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *GormPostRepository) ListComments(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *GormPostRepository) GetComment(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *GormPostRepository) DeleteComment(id uint) error {
	return r.db.Delete(&models.Comment{}, id).Error
}

func (r *GormPostRepository) RecordProfileView(view *models.ProfileView) error {
	return r.db.Create(view).Error
}

func (r *GormPostRepository) ListProfileViews(ownerID uint, limit int) ([]models.ProfileView, error) {
	var views []models.ProfileView
	err := r.db.Where("owner_id = ?", ownerID).
		Order("viewed_at DESC").
		Limit(limit).
		Find(&views).Error
	return views, err
}
