package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role represents user role types
type Role string

const (
	RoleUser      Role = "USER"
	RoleModerator Role = "MODERATOR"
	RoleAdmin     Role = "ADMIN"
)

// ValidRole reports whether r is one of the closed role set.
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// User represents a registered user
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:uuid"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"` // never exposed in JSON
	Avatar       *string   `json:"avatar" gorm:"default:null"`
	Role         Role      `json:"role" gorm:"type:varchar(10);default:'USER'"`
	IsBlocked    bool      `json:"isBlocked" gorm:"default:false"`
	LastActive   time.Time `json:"lastActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName sets the table name for User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUID so ids work the same on postgres and sqlite.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.LastActive.IsZero() {
		u.LastActive = time.Now()
	}
	return nil
}
