package services

import (
	"errors"

	"github.com/formbuilder-api/apperrors"
	"github.com/formbuilder-api/database"
	"github.com/formbuilder-api/dto"
	"github.com/formbuilder-api/models"
	"github.com/formbuilder-api/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FormService handles the form lifecycle and the answer consistency rules
type FormService struct {
	formRepo     *repositories.FormRepository
	templateRepo *repositories.TemplateRepository
}

// NewFormService creates a new form service instance
func NewFormService() *FormService {
	return &FormService{
		formRepo:     repositories.NewFormRepository(),
		templateRepo: repositories.NewTemplateRepository(),
	}
}

// Create opens a draft form against a template the actor may read. One
// empty answer row is pre-seeded per current question, so every later write
// is an upsert by (form, question) identity.
func (s *FormService) Create(actor *models.User, templateID string) (*models.Form, error) {
	if err := CheckActor(actor); err != nil {
		return nil, err
	}

	template, err := s.templateRepo.FindFullByID(templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	allowListed, err := s.templateRepo.HasAccessEntry(templateID, actor.ID)
	if err != nil {
		return nil, err
	}
	if err := CanReadTemplate(actor, template, allowListed); err != nil {
		return nil, err
	}

	form := models.Form{
		TemplateID: templateID,
		AuthorID:   actor.ID,
		Completed:  false,
	}
	for _, q := range template.Questions {
		form.Answers = append(form.Answers, models.Answer{QuestionID: q.ID})
	}

	form, err = s.formRepo.Create(form)
	if err != nil {
		return nil, err
	}
	return &form, nil
}

// Get returns one form with answers; author or admin only
func (s *FormService) Get(actor *models.User, id string) (*models.Form, error) {
	form, err := s.formRepo.FindFullByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	if err := CanWriteForm(actor, form); err != nil {
		return nil, err
	}
	return &form, nil
}

// ListMine returns the actor's submissions, newest first
func (s *FormService) ListMine(actor *models.User) ([]models.Form, error) {
	if err := CheckActor(actor); err != nil {
		return nil, err
	}
	return s.formRepo.FindByAuthor(actor.ID)
}

// ListByTemplate returns every form for a template: the coarser results
// view, available to the template owner or an admin only.
func (s *FormService) ListByTemplate(actor *models.User, templateID string) ([]models.Form, error) {
	template, err := s.templateRepo.FindByID(templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	if err := CanViewTemplateForms(actor, template); err != nil {
		return nil, err
	}
	return s.formRepo.FindByTemplate(templateID)
}

// UpdateAnswers upserts the incoming answers keyed by (form, question) and
// optionally flips the form to completed. The whole batch plus the flag
// mutation is one transaction: if the required-coverage gate rejects the
// completion, none of the upserts survive either.
func (s *FormService) UpdateAnswers(actor *models.User, formID string, req dto.UpdateFormRequest) (*models.Form, error) {
	form, err := s.formRepo.FindByID(formID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	if err := CanWriteForm(actor, form); err != nil {
		return nil, err
	}
	if req.Completed != nil && !*req.Completed && form.Completed {
		return nil, apperrors.NewValidation("a completed form cannot revert to draft")
	}

	var questions []models.Question
	if err := database.DB.Where("template_id = ?", form.TemplateID).Find(&questions).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	// Validate before mutating anything
	for _, in := range req.Answers {
		q, ok := byID[in.QuestionID]
		if !ok {
			return nil, apperrors.NewValidation("question %s does not belong to this form's template", in.QuestionID)
		}
		if err := in.Value.MatchesType(q.Type); err != nil {
			return nil, apperrors.NewValidation("question %s: %v", in.QuestionID, err)
		}
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		for _, in := range req.Answers {
			answer := models.Answer{
				FormID:     formID,
				QuestionID: in.QuestionID,
				Value:      in.Value,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "form_id"}, {Name: "question_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&answer).Error; err != nil {
				return err
			}
		}

		if req.Completed != nil && *req.Completed && !form.Completed {
			missing, err := uncoveredRequiredTx(tx, formID, questions)
			if err != nil {
				return err
			}
			if len(missing) > 0 {
				return apperrors.NewValidationDetails(
					"required questions are unanswered",
					map[string]interface{}{"questionIds": missing},
				)
			}
			if err := tx.Model(&models.Form{}).Where("id = ?", formID).
				Update("completed", true).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.formRepo.FindFullByID(formID)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// uncoveredRequiredTx lists required question ids without a non-empty answer
// for the form, evaluated inside the surrounding transaction so it sees the
// just-upserted values.
func uncoveredRequiredTx(tx *gorm.DB, formID string, questions []models.Question) ([]string, error) {
	var answers []models.Answer
	if err := tx.Where("form_id = ?", formID).Find(&answers).Error; err != nil {
		return nil, err
	}

	answered := map[string]bool{}
	for _, a := range answers {
		if !a.Value.IsEmpty() {
			answered[a.QuestionID] = true
		}
	}

	var missing []string
	for _, q := range questions {
		if q.IsRequired && !answered[q.ID] {
			missing = append(missing, q.ID)
		}
	}
	return missing, nil
}

// Delete removes a form and its answers; author or admin only
func (s *FormService) Delete(actor *models.User, id string) error {
	form, err := s.formRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}
	if err := CanWriteForm(actor, form); err != nil {
		return err
	}
	return s.formRepo.Delete(id)
}
