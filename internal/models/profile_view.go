package models

import (
	"time"
)

// ProfileView records one member viewing another member's profile.
// Repeat views inside the dedupe window are filtered out before a row
// is written.
type ProfileView struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	OwnerID  uint      `json:"ownerId" gorm:"not null;index"`
	ViewerID uint      `json:"viewerId" gorm:"not null;index"`
	ViewedAt time.Time `json:"viewedAt"`
}
