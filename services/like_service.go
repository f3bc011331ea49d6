package services

import (
	"errors"

	"github.com/formbuilder-api/apperrors"
	"github.com/formbuilder-api/models"
	"github.com/formbuilder-api/realtime"
	"github.com/formbuilder-api/repositories"
	"gorm.io/gorm"
)

// LikeService handles the like toggle and counters
type LikeService struct {
	likeRepo     *repositories.LikeRepository
	templateRepo *repositories.TemplateRepository
	hub          *realtime.Hub
}

// NewLikeService creates a new like service instance
func NewLikeService() *LikeService {
	return &LikeService{
		likeRepo:     repositories.NewLikeRepository(),
		templateRepo: repositories.NewTemplateRepository(),
		hub:          realtime.Default(),
	}
}

// ToggleResult reports the state after a toggle
type ToggleResult struct {
	Liked bool  `json:"liked"`
	Count int64 `json:"count"`
}

// Toggle flips the actor's like on a template. The insert runs with
// ON CONFLICT DO NOTHING; zero rows affected means the like already existed
// and is deleted instead. No check-then-act window.
func (s *LikeService) Toggle(actor *models.User, templateID string) (*ToggleResult, error) {
	if err := CheckActor(actor); err != nil {
		return nil, err
	}
	if _, err := s.templateRepo.FindByID(templateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	inserted, err := s.likeRepo.TryInsert(templateID, actor.ID)
	if err != nil {
		return nil, err
	}
	if !inserted {
		if err := s.likeRepo.Delete(templateID, actor.ID); err != nil {
			return nil, err
		}
	}

	count, err := s.likeRepo.Count(templateID)
	if err != nil {
		return nil, err
	}

	result := &ToggleResult{Liked: inserted, Count: count}
	s.hub.Publish(realtime.Event{
		Type:       realtime.EventLikeUpdated,
		TemplateID: templateID,
		Payload:    result,
	})
	return result, nil
}

// Count returns the number of distinct users liking a template
func (s *LikeService) Count(templateID string) (int64, error) {
	return s.likeRepo.Count(templateID)
}

// Status reports whether the actor currently likes the template
func (s *LikeService) Status(actor *models.User, templateID string) (bool, error) {
	if err := CheckActor(actor); err != nil {
		return false, err
	}
	return s.likeRepo.Exists(templateID, actor.ID)
}
