package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuestionType represents the input kind of a question
type QuestionType string

const (
	QuestionText     QuestionType = "TEXT"
	QuestionTextarea QuestionType = "TEXTAREA"
	QuestionNumber   QuestionType = "NUMBER"
	QuestionCheckbox QuestionType = "CHECKBOX"
	QuestionSelect   QuestionType = "SELECT"
	QuestionRadio    QuestionType = "RADIO"
)

// ValidQuestionType reports whether t is one of the closed type set.
func ValidQuestionType(t QuestionType) bool {
	switch t {
	case QuestionText, QuestionTextarea, QuestionNumber,
		QuestionCheckbox, QuestionSelect, QuestionRadio:
		return true
	}
	return false
}

// HasOptions reports whether the question type carries an option list.
// Options are an enforced invariant: required for these types, forbidden
// for all others.
func (t QuestionType) HasOptions() bool {
	return t == QuestionSelect || t == QuestionRadio || t == QuestionCheckbox
}

// Question belongs to a template; order defines the canonical display order
type Question struct {
	ID             string       `json:"id" gorm:"primaryKey;type:uuid"`
	TemplateID     string       `json:"templateId" gorm:"type:uuid;not null;index"`
	Title          string       `json:"title" gorm:"not null"`
	Description    string       `json:"description" gorm:"type:text"`
	Type           QuestionType `json:"type" gorm:"type:varchar(10);not null"`
	IsRequired     bool         `json:"isRequired" gorm:"default:false"`
	DisplayInTable bool         `json:"displayInTable" gorm:"default:true"`
	Order          int          `json:"order" gorm:"column:display_order;not null"`

	Options []QuestionOption `json:"options,omitempty" gorm:"foreignKey:QuestionID"`
}

// TableName sets the table name for Question model
func (Question) TableName() string {
	return "questions"
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

// QuestionOption is one selectable value of a SELECT/RADIO/CHECKBOX question
type QuestionOption struct {
	ID         string `json:"id" gorm:"primaryKey;type:uuid"`
	QuestionID string `json:"questionId" gorm:"type:uuid;not null;index"`
	Value      string `json:"value" gorm:"not null"`
	Order      int    `json:"order" gorm:"column:display_order;not null"`
}

// TableName sets the table name for QuestionOption model
func (QuestionOption) TableName() string {
	return "question_options"
}

func (o *QuestionOption) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
