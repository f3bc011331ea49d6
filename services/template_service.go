package services

import (
	"errors"
	"strings"

	"github.com/formbuilder-api/apperrors"
	"github.com/formbuilder-api/database"
	"github.com/formbuilder-api/dto"
	"github.com/formbuilder-api/models"
	"github.com/formbuilder-api/repositories"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// TemplateService handles business logic for templates
type TemplateService struct {
	templateRepo *repositories.TemplateRepository
}

// NewTemplateService creates a new template service instance
func NewTemplateService() *TemplateService {
	return &TemplateService{
		templateRepo: repositories.NewTemplateRepository(),
	}
}

// validateQuestions enforces the option invariant: option lists are required
// for SELECT/RADIO/CHECKBOX and forbidden for every other type.
func validateQuestions(questions []dto.QuestionInput) error {
	for i, q := range questions {
		if !models.ValidQuestionType(q.Type) {
			return apperrors.NewValidation("question %d: unknown type %q", i, q.Type)
		}
		if strings.TrimSpace(q.Title) == "" {
			return apperrors.NewValidation("question %d: title is required", i)
		}
		if q.Type.HasOptions() && len(q.Options) == 0 {
			return apperrors.NewValidation("question %d: type %s requires options", i, q.Type)
		}
		if !q.Type.HasOptions() && len(q.Options) > 0 {
			return apperrors.NewValidation("question %d: type %s must not carry options", i, q.Type)
		}
	}
	return nil
}

// buildQuestions materializes question inputs with contiguous order 0..n-1
func buildQuestions(templateID string, inputs []dto.QuestionInput) []models.Question {
	questions := make([]models.Question, 0, len(inputs))
	for i, in := range inputs {
		q := models.Question{
			TemplateID:     templateID,
			Title:          in.Title,
			Description:    in.Description,
			Type:           in.Type,
			IsRequired:     in.IsRequired,
			DisplayInTable: in.DisplayInTable,
			Order:          i,
		}
		for j, value := range in.Options {
			q.Options = append(q.Options, models.QuestionOption{Value: value, Order: j})
		}
		questions = append(questions, q)
	}
	return questions
}

// NormalizeTagName folds a raw tag into its canonical slug form
func NormalizeTagName(name string) string {
	return slug.Make(strings.TrimSpace(name))
}

// ensureTagTx finds or creates a tag by normalized name inside tx
func ensureTagTx(tx *gorm.DB, name string) (models.Tag, error) {
	var tag models.Tag
	err := tx.First(&tag, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		tag = models.Tag{Name: name}
		err = tx.Create(&tag).Error
	}
	return tag, err
}

// attachTagsTx links normalized tag names to a template and bumps each
// tag's usage count eagerly.
func attachTagsTx(tx *gorm.DB, templateID string, tagNames []string) error {
	seen := map[string]bool{}
	for _, raw := range tagNames {
		name := NormalizeTagName(raw)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		tag, err := ensureTagTx(tx, name)
		if err != nil {
			return err
		}
		if err := tx.Exec("INSERT INTO template_tags (template_id, tag_id) VALUES (?, ?)", templateID, tag.ID).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Tag{}).Where("id = ?", tag.ID).
			UpdateColumn("count", gorm.Expr("count + 1")).Error; err != nil {
			return err
		}
	}
	return nil
}

// Create builds the full template aggregate in one transaction
func (s *TemplateService) Create(actor *models.User, req dto.CreateTemplateRequest) (*models.Template, error) {
	if err := CheckActor(actor); err != nil {
		return nil, err
	}
	if err := validateQuestions(req.Questions); err != nil {
		return nil, err
	}

	template := models.Template{
		Title:       req.Title,
		Description: req.Description,
		Topic:       req.Topic,
		ImageURL:    req.ImageURL,
		IsPublic:    req.IsPublic,
		OwnerID:     actor.ID,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&template).Error; err != nil {
			return err
		}

		questions := buildQuestions(template.ID, req.Questions)
		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
		}

		for _, userID := range req.AllowedUserIDs {
			access := models.TemplateAccess{TemplateID: template.ID, UserID: userID}
			if err := tx.Create(&access).Error; err != nil {
				return err
			}
		}

		return attachTagsTx(tx, template.ID, req.TagNames)
	})
	if err != nil {
		return nil, err
	}

	full, err := s.templateRepo.FindFullByID(template.ID)
	if err != nil {
		return nil, err
	}
	return &full, nil
}

// GetByID returns a template when the actor may read it
func (s *TemplateService) GetByID(actor *models.User, id string) (*models.Template, error) {
	template, err := s.templateRepo.FindFullByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	allowListed := false
	if actor != nil {
		allowListed, err = s.templateRepo.HasAccessEntry(id, actor.ID)
		if err != nil {
			return nil, err
		}
	}
	if err := CanReadTemplate(actor, template, allowListed); err != nil {
		return nil, err
	}
	return &template, nil
}

// ListPublic returns the paginated public listing
func (s *TemplateService) ListPublic(filter dto.TemplateFilter) (dto.Paginated[models.Template], error) {
	filter.Normalize()
	templates, total, err := s.templateRepo.FindWithPagination(filter, true)
	if err != nil {
		return dto.Paginated[models.Template]{}, err
	}
	return dto.NewPaginated(templates, total, filter.Page, filter.Limit), nil
}

// ListOwned returns the actor's own templates, paginated
func (s *TemplateService) ListOwned(actor *models.User, filter dto.TemplateFilter) (dto.Paginated[models.Template], error) {
	if err := CheckActor(actor); err != nil {
		return dto.Paginated[models.Template]{}, err
	}
	filter.Normalize()
	filter.OwnerID = actor.ID
	templates, total, err := s.templateRepo.FindWithPagination(filter, false)
	if err != nil {
		return dto.Paginated[models.Template]{}, err
	}
	return dto.NewPaginated(templates, total, filter.Page, filter.Limit), nil
}

// Update fully replaces the template's metadata, question set and tag links.
// Old questions and their answers are removed in the same transaction;
// completed forms that lose required coverage are demoted back to draft so
// the completed-implies-covered invariant keeps holding.
func (s *TemplateService) Update(actor *models.User, id string, req dto.UpdateTemplateRequest) (*models.Template, error) {
	template, err := s.templateRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	if err := CanWriteTemplate(actor, template); err != nil {
		return nil, err
	}
	if err := validateQuestions(req.Questions); err != nil {
		return nil, err
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"title":       req.Title,
			"description": req.Description,
			"topic":       req.Topic,
			"image_url":   req.ImageURL,
			"is_public":   req.IsPublic,
		}
		if err := tx.Model(&models.Template{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}

		// Drop the old structure: options, answers referencing the old
		// questions, then the questions themselves
		var oldQuestionIDs []string
		if err := tx.Model(&models.Question{}).Where("template_id = ?", id).
			Pluck("id", &oldQuestionIDs).Error; err != nil {
			return err
		}
		if len(oldQuestionIDs) > 0 {
			if err := tx.Where("question_id IN ?", oldQuestionIDs).Delete(&models.QuestionOption{}).Error; err != nil {
				return err
			}
			if err := tx.Where("question_id IN ?", oldQuestionIDs).Delete(&models.Answer{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", oldQuestionIDs).Delete(&models.Question{}).Error; err != nil {
				return err
			}
		}

		questions := buildQuestions(id, req.Questions)
		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
		}

		// Replace tag links and recompute counts for everything touched
		var oldTagIDs []string
		if err := tx.Table("template_tags").Where("template_id = ?", id).
			Pluck("tag_id", &oldTagIDs).Error; err != nil {
			return err
		}
		if len(oldTagIDs) > 0 {
			if err := tx.Exec("DELETE FROM template_tags WHERE template_id = ?", id).Error; err != nil {
				return err
			}
		}
		if err := attachTagsTx(tx, id, req.TagNames); err != nil {
			return err
		}
		if err := recountTemplateTagsTx(tx, oldTagIDs); err != nil {
			return err
		}

		if req.AllowedUserIDs != nil {
			if err := tx.Where("template_id = ?", id).Delete(&models.TemplateAccess{}).Error; err != nil {
				return err
			}
			for _, userID := range req.AllowedUserIDs {
				access := models.TemplateAccess{TemplateID: id, UserID: userID}
				if err := tx.Create(&access).Error; err != nil {
					return err
				}
			}
		}

		return demoteUncoveredFormsTx(tx, id, questions)
	})
	if err != nil {
		return nil, err
	}

	full, err := s.templateRepo.FindFullByID(id)
	if err != nil {
		return nil, err
	}
	return &full, nil
}

// recountTemplateTagsTx recomputes usage counts for tags detached by a
// structure replace.
func recountTemplateTagsTx(tx *gorm.DB, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}
	return tx.Model(&models.Tag{}).
		Where("id IN ?", tagIDs).
		Update("count", gorm.Expr("(SELECT COUNT(*) FROM template_tags WHERE template_tags.tag_id = tags.id)")).Error
}

// demoteUncoveredFormsTx resets completed forms to draft when the new
// question set leaves a required question without a non-empty answer.
func demoteUncoveredFormsTx(tx *gorm.DB, templateID string, questions []models.Question) error {
	requiredIDs := make([]string, 0)
	for _, q := range questions {
		if q.IsRequired {
			requiredIDs = append(requiredIDs, q.ID)
		}
	}
	if len(requiredIDs) == 0 {
		return nil
	}

	var completedForms []models.Form
	if err := tx.Preload("Answers").
		Where("template_id = ? AND completed = ?", templateID, true).
		Find(&completedForms).Error; err != nil {
		return err
	}

	for _, form := range completedForms {
		answered := map[string]bool{}
		for _, a := range form.Answers {
			if !a.Value.IsEmpty() {
				answered[a.QuestionID] = true
			}
		}
		covered := true
		for _, qid := range requiredIDs {
			if !answered[qid] {
				covered = false
				break
			}
		}
		if !covered {
			if err := tx.Model(&models.Form{}).Where("id = ?", form.ID).
				Update("completed", false).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// AppendQuestion adds one question at the end of the template's order
func (s *TemplateService) AppendQuestion(actor *models.User, templateID string, input dto.QuestionInput) (*models.Question, error) {
	template, err := s.templateRepo.FindByID(templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	if err := CanWriteTemplate(actor, template); err != nil {
		return nil, err
	}
	if err := validateQuestions([]dto.QuestionInput{input}); err != nil {
		return nil, err
	}

	maxOrder, err := s.templateRepo.MaxQuestionOrder(templateID)
	if err != nil {
		return nil, err
	}

	question := models.Question{
		TemplateID:     templateID,
		Title:          input.Title,
		Description:    input.Description,
		Type:           input.Type,
		IsRequired:     input.IsRequired,
		DisplayInTable: input.DisplayInTable,
		Order:          maxOrder + 1,
	}
	for j, value := range input.Options {
		question.Options = append(question.Options, models.QuestionOption{Value: value, Order: j})
	}

	if err := database.DB.Create(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// Delete removes one template after an ownership check
func (s *TemplateService) Delete(actor *models.User, id string) error {
	return s.BulkDelete(actor, []string{id})
}

// BulkDelete removes several templates; every id must resolve and be owned
// by the actor (or the actor is admin) before anything is deleted.
func (s *TemplateService) BulkDelete(actor *models.User, ids []string) error {
	if err := CheckActor(actor); err != nil {
		return err
	}
	if len(ids) == 0 {
		return apperrors.NewValidation("no template ids given")
	}

	for _, id := range ids {
		template, err := s.templateRepo.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}
		if err := CanWriteTemplate(actor, template); err != nil {
			return err
		}
	}

	return s.templateRepo.BulkDelete(ids)
}

// GrantAccess adds a user to a private template's allow list
func (s *TemplateService) GrantAccess(actor *models.User, templateID, userID string) error {
	template, err := s.templateRepo.FindByID(templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}
	if err := CanWriteTemplate(actor, template); err != nil {
		return err
	}
	if _, err := GetUser(userID); err != nil {
		return err
	}
	return s.templateRepo.GrantAccess(templateID, userID)
}

// RevokeAccess removes a user from the allow list
func (s *TemplateService) RevokeAccess(actor *models.User, templateID, userID string) error {
	template, err := s.templateRepo.FindByID(templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}
	if err := CanWriteTemplate(actor, template); err != nil {
		return err
	}
	return s.templateRepo.RevokeAccess(templateID, userID)
}
