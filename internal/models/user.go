package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User represents a member of the portal, either a current student or
// an alumnus.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `json:"name"`
	Email          string    `gorm:"uniqueIndex" json:"email"`
	Password       string    `json:"-"` // Never return password in JSON
	Role           string    `json:"role" gorm:"default:student"` // student or alumni
	Headline       string    `json:"headline,omitempty"`
	About          string    `json:"about,omitempty" gorm:"type:text"`
	Skills         string    `json:"skills,omitempty" gorm:"type:text"` // comma-separated
	GraduationYear int       `json:"graduationYear,omitempty"`
	AvatarURL      string    `json:"avatarUrl,omitempty"`
	Connections    []*User   `json:"-" gorm:"many2many:user_connections;joinForeignKey:user_id;joinReferences:connection_id"`
	LastLogin      time.Time `json:"last_login,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateUserRequest is the request structure for signup
type CreateUserRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8"`
	Role           string `json:"role,omitempty"`
	GraduationYear int    `json:"graduationYear,omitempty"`
}

// LoginRequest is the request structure for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries the editable profile fields
type UpdateProfileRequest struct {
	Name           string `json:"name,omitempty"`
	Headline       string `json:"headline,omitempty"`
	About          string `json:"about,omitempty"`
	Skills         string `json:"skills,omitempty"`
	GraduationYear int    `json:"graduationYear,omitempty"`
	AvatarURL      string `json:"avatarUrl,omitempty"`
}

// UserResponse is the response structure for user data (without sensitive info)
type UserResponse struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	Headline       string    `json:"headline,omitempty"`
	About          string    `json:"about,omitempty"`
	Skills         string    `json:"skills,omitempty"`
	GraduationYear int       `json:"graduationYear,omitempty"`
	AvatarURL      string    `json:"avatarUrl,omitempty"`
	LastLogin      time.Time `json:"last_login,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// HashPassword hashes a password for storage
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with a hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// BeforeCreate is a GORM hook to hash the password before saving
func (u *User) BeforeCreate(tx *gorm.DB) error {
	hashedPassword, err := HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashedPassword

	if u.Role == "" {
		u.Role = "student"
	}

	return nil
}

// ToResponse converts a User model to a UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Role:           u.Role,
		Headline:       u.Headline,
		About:          u.About,
		Skills:         u.Skills,
		GraduationYear: u.GraduationYear,
		AvatarURL:      u.AvatarURL,
		LastLogin:      u.LastLogin,
		CreatedAt:      u.CreatedAt,
	}
}
