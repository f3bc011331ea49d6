package services

import (
	"errors"
	"strings"

	"github.com/formbuilder-api/apperrors"
	"github.com/formbuilder-api/dto"
	"github.com/formbuilder-api/models"
	"github.com/formbuilder-api/realtime"
	"github.com/formbuilder-api/repositories"
	"gorm.io/gorm"
)

// CommentService handles template comments and their fan-out
type CommentService struct {
	commentRepo  *repositories.CommentRepository
	templateRepo *repositories.TemplateRepository
	hub          *realtime.Hub
}

// NewCommentService creates a new comment service instance
func NewCommentService() *CommentService {
	return &CommentService{
		commentRepo:  repositories.NewCommentRepository(),
		templateRepo: repositories.NewTemplateRepository(),
		hub:          realtime.Default(),
	}
}

// ListByTemplate returns a template's comments, newest first. Public read.
func (s *CommentService) ListByTemplate(templateID string) ([]models.Comment, error) {
	return s.commentRepo.FindByTemplate(templateID)
}

// Add appends a comment and broadcasts it to the template's subscribers.
// Delivery is fire-and-forget relative to the caller.
func (s *CommentService) Add(actor *models.User, req dto.CreateCommentRequest) (*models.Comment, error) {
	if err := CheckActor(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, apperrors.NewValidation("comment text is required")
	}
	if _, err := s.templateRepo.FindByID(req.TemplateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	comment := models.Comment{
		TemplateID: req.TemplateID,
		AuthorID:   actor.ID,
		Text:       req.Text,
	}
	comment, err := s.commentRepo.Create(comment)
	if err != nil {
		return nil, err
	}

	s.hub.Publish(realtime.Event{
		Type:       realtime.EventNewComment,
		TemplateID: comment.TemplateID,
		Payload:    comment,
	})
	return &comment, nil
}

// Delete removes a comment; author or admin only
func (s *CommentService) Delete(actor *models.User, id string) error {
	comment, err := s.commentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}

	if err := CheckActor(actor); err != nil {
		return err
	}
	if comment.AuthorID != actor.ID && actor.Role != models.RoleAdmin {
		return apperrors.ErrForbidden
	}

	if err := s.commentRepo.Delete(id); err != nil {
		return err
	}

	s.hub.Publish(realtime.Event{
		Type:       realtime.EventCommentDeleted,
		TemplateID: comment.TemplateID,
		Payload:    map[string]string{"id": comment.ID},
	})
	return nil
}
