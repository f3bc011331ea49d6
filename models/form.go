package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Form is one user's submission instance against a template.
// Completed is monotonic draft -> completed; the only demotion happens when
// a template edit removes answers a completed form depended on.
type Form struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid"`
	TemplateID string    `json:"templateId" gorm:"type:uuid;not null;index"`
	AuthorID   string    `json:"authorId" gorm:"type:uuid;not null;index"`
	Completed  bool      `json:"completed" gorm:"default:false"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Template Template `json:"template,omitempty" gorm:"foreignKey:TemplateID"`
	Answers  []Answer `json:"answers,omitempty" gorm:"foreignKey:FormID"`
}

// TableName sets the table name for Form model
func (Form) TableName() string {
	return "forms"
}

func (f *Form) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// Answer is one question's recorded response within a form. The composite
// primary key enforces at most one answer per (form, question) pair.
type Answer struct {
	FormID     string      `json:"formId" gorm:"primaryKey;type:uuid"`
	QuestionID string      `json:"questionId" gorm:"primaryKey;type:uuid"`
	Value      AnswerValue `json:"value" gorm:"type:text"`
	UpdatedAt  time.Time   `json:"updatedAt"`

	Question *Question `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
}

// TableName sets the table name for Answer model
func (Answer) TableName() string {
	return "answers"
}
