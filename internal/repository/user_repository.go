package repository

import (
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/internal/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	Update(user *models.User) error
	Exists(id uint) (bool, error)
	SearchByName(query string, limit int) ([]models.User, error)
	ListRecent(limit int) ([]models.User, error)
	ListConnections(userID uint) ([]models.User, error)
	AddConnection(userID, otherID uint) error
	RemoveConnection(userID, otherID uint) error
	ListSuggestions(userID uint, limit int) ([]models.User, error)
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *GormUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *GormUserRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// SearchByName finds members whose name contains the query,
// case-insensitively.
func (r *GormUserRepository) SearchByName(query string, limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("name ILIKE ?", "%"+query+"%").
		Order("name ASC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

// ListRecent returns the newest accounts first.
func (r *GormUserRepository) ListRecent(limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.Order("created_at DESC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *GormUserRepository) ListConnections(userID uint) ([]models.User, error) {
	user := models.User{ID: userID}
	var connections []models.User
	err := r.db.Model(&user).Association("Connections").Find(&connections)
	return connections, err
}

// AddConnection links both directions so each side sees the other in
// their connection list.
func (r *GormUserRepository) AddConnection(userID, otherID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{ID: userID}).
			Association("Connections").Append(&models.User{ID: otherID}); err != nil {
			return err
		}
		return tx.Model(&models.User{ID: otherID}).
			Association("Connections").Append(&models.User{ID: userID})
	})
}

func (r *GormUserRepository) RemoveConnection(userID, otherID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{ID: userID}).
			Association("Connections").Delete(&models.User{ID: otherID}); err != nil {
			return err
		}
		return tx.Model(&models.User{ID: otherID}).
			Association("Connections").Delete(&models.User{ID: userID})
	})
}

// ListSuggestions returns members the user is not yet connected to,
// newest accounts first.
func (r *GormUserRepository) ListSuggestions(userID uint, limit int) ([]models.User, error) {
	var users []models.User
	sub := r.db.Table("user_connections").
		Select("connection_id").
		Where("user_id = ?", userID)
	err := r.db.Where("id != ?", userID).
		Where("id NOT IN (?)", sub).
		Order("created_at DESC").
		Limit(limit).
		Find(&users).Error
	return users, err
}
