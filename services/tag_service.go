package services

import (
	"errors"

	"github.com/formbuilder-api/apperrors"
	"github.com/formbuilder-api/models"
	"github.com/formbuilder-api/repositories"
	"gorm.io/gorm"
)

// TagService handles tag search and usage counting
type TagService struct {
	tagRepo *repositories.TagRepository
}

// NewTagService creates a new tag service instance
func NewTagService() *TagService {
	return &TagService{
		tagRepo: repositories.NewTagRepository(),
	}
}

// Search returns tags matching the query, most used first
func (s *TagService) Search(search string, limit int) ([]models.Tag, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return s.tagRepo.Search(search, limit)
}

// Update creates a tag or bumps its usage count. Names are normalized to
// their slug form so "Go Lang" and "go-lang" land on the same tag.
func (s *TagService) Update(name string) (*models.Tag, error) {
	normalized := NormalizeTagName(name)
	if len(normalized) < 2 {
		return nil, apperrors.NewValidation("tag name is too short")
	}

	tag, err := s.tagRepo.FindByName(normalized)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		tag, err = s.tagRepo.Create(models.Tag{Name: normalized, Count: 1})
		if err != nil {
			return nil, err
		}
		return &tag, nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.tagRepo.IncrementCount(tag.ID); err != nil {
		return nil, err
	}
	tag.Count++
	return &tag, nil
}
