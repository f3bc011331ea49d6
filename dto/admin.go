package dto

import "github.com/formbuilder-api/models"

// UpdateRoleRequest changes a user's role
type UpdateRoleRequest struct {
	Role models.Role `json:"role" binding:"required"`
}

// UpdateBlockRequest toggles a user's blocked flag
type UpdateBlockRequest struct {
	Blocked *bool `json:"blocked" binding:"required"`
}

// CreateCommentRequest adds a comment to a template
type CreateCommentRequest struct {
	TemplateID string `json:"templateId" binding:"required"`
	Text       string `json:"text" binding:"required"`
}

// UpdateTagRequest creates a tag or bumps its usage count
type UpdateTagRequest struct {
	Name string `json:"name" binding:"required"`
}
