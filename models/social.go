package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like marks that a user liked a template; presence of the row is the state.
// The composite primary key makes a second like from the same user a
// conflict, which the toggle uses as its atomicity signal.
type Like struct {
	TemplateID string    `json:"templateId" gorm:"primaryKey;type:uuid"`
	UserID     string    `json:"userId" gorm:"primaryKey;type:uuid"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TableName sets the table name for Like model
func (Like) TableName() string {
	return "likes"
}

// Comment is an append-only note on a template
type Comment struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid"`
	TemplateID string    `json:"templateId" gorm:"type:uuid;not null;index"`
	AuthorID   string    `json:"authorId" gorm:"type:uuid;not null;index"`
	Text       string    `json:"text" gorm:"type:text;not null"`
	CreatedAt  time.Time `json:"createdAt"`

	Author *User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

// TableName sets the table name for Comment model
func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Tag carries a denormalized usage count, recomputed after template
// deletions so concurrent deletes cannot drift it.
type Tag struct {
	ID    string `json:"id" gorm:"primaryKey;type:uuid"`
	Name  string `json:"name" gorm:"uniqueIndex;not null"`
	Count int    `json:"count" gorm:"default:0"`
}

// TableName sets the table name for Tag model
func (Tag) TableName() string {
	return "tags"
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
