package dto

import "github.com/formbuilder-api/models"

// QuestionInput is one question in a create/replace payload. Options are
// plain values; ids are regenerated on every full replace.
type QuestionInput struct {
	Title          string              `json:"title" binding:"required"`
	Description    string              `json:"description"`
	Type           models.QuestionType `json:"type" binding:"required"`
	IsRequired     bool                `json:"isRequired"`
	DisplayInTable bool                `json:"displayInTable"`
	Options        []string            `json:"options"`
}

// CreateTemplateRequest creates a template with its full question set
type CreateTemplateRequest struct {
	Title          string          `json:"title" binding:"required"`
	Description    string          `json:"description"`
	Topic          string          `json:"topic"`
	ImageURL       string          `json:"imageUrl"`
	IsPublic       bool            `json:"isPublic"`
	TagNames       []string        `json:"tags"`
	AllowedUserIDs []string        `json:"allowedUserIds"`
	Questions      []QuestionInput `json:"questions"`
}

// UpdateTemplateRequest fully replaces metadata, questions and tags
type UpdateTemplateRequest struct {
	Title          string          `json:"title" binding:"required"`
	Description    string          `json:"description"`
	Topic          string          `json:"topic"`
	ImageURL       string          `json:"imageUrl"`
	IsPublic       bool            `json:"isPublic"`
	TagNames       []string        `json:"tags"`
	AllowedUserIDs []string        `json:"allowedUserIds"`
	Questions      []QuestionInput `json:"questions"`
}

// BulkDeleteRequest deletes several templates in one call
type BulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// GrantAccessRequest adds a user to a template's allow list
type GrantAccessRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// TemplateFilter carries list parameters for template queries
type TemplateFilter struct {
	ListQuery
	OwnerID string
}
