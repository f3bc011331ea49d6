package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Template represents a reusable form definition owned by a user
type Template struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description" gorm:"type:text"`
	Topic       string     `json:"topic" gorm:"default:null"`
	ImageURL    string     `json:"imageUrl" gorm:"default:null"`
	IsPublic    bool       `json:"isPublic" gorm:"default:false;index"`
	OwnerID     string     `json:"ownerId" gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	// Relations
	Owner        User             `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Questions    []Question       `json:"questions,omitempty" gorm:"foreignKey:TemplateID"`
	Tags         []Tag            `json:"tags,omitempty" gorm:"many2many:template_tags;"`
	AllowedUsers []TemplateAccess `json:"allowedUsers,omitempty" gorm:"foreignKey:TemplateID"`
}

// TableName sets the table name for Template model
func (Template) TableName() string {
	return "templates"
}

func (t *Template) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// TemplateAccess grants a user read/fill access to a private template
type TemplateAccess struct {
	TemplateID string    `json:"templateId" gorm:"primaryKey;type:uuid"`
	UserID     string    `json:"userId" gorm:"primaryKey;type:uuid"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TableName sets the table name for TemplateAccess model
func (TemplateAccess) TableName() string {
	return "template_accesses"
}
