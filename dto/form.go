package dto

import "github.com/formbuilder-api/models"

// AnswerInput is one incoming answer, upserted by question id
type AnswerInput struct {
	QuestionID string             `json:"questionId" binding:"required"`
	Value      models.AnswerValue `json:"value"`
}

// UpdateFormRequest upserts answers and optionally completes the form
type UpdateFormRequest struct {
	Answers   []AnswerInput `json:"answers"`
	Completed *bool         `json:"completed"`
}
