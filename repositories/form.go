package repositories

import (
	"time"

	"github.com/formbuilder-api/database"
	"github.com/formbuilder-api/models"
	"gorm.io/gorm"
)

// FormRepository handles database operations for forms and answers
type FormRepository struct{}

// NewFormRepository creates a new form repository instance
func NewFormRepository() *FormRepository {
	return &FormRepository{}
}

// FindByID retrieves a form without relations
func (r *FormRepository) FindByID(id string) (models.Form, error) {
	var form models.Form
	result := database.DB.First(&form, "id = ?", id)
	return form, result.Error
}

// FindFullByID retrieves a form with its answers and their questions
func (r *FormRepository) FindFullByID(id string) (models.Form, error) {
	var form models.Form
	result := database.DB.
		Preload("Template").
		Preload("Answers").
		Preload("Answers.Question").
		First(&form, "id = ?", id)
	return form, result.Error
}

// FindByAuthor retrieves all forms a user submitted, newest first
func (r *FormRepository) FindByAuthor(authorID string) ([]models.Form, error) {
	var forms []models.Form
	result := database.DB.
		Preload("Template").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&forms)
	return forms, result.Error
}

// FindByTemplate retrieves all forms submitted against a template, with
// answers, for the results/analytics views
func (r *FormRepository) FindByTemplate(templateID string) ([]models.Form, error) {
	var forms []models.Form
	result := database.DB.
		Preload("Answers").
		Where("template_id = ?", templateID).
		Order("created_at DESC").
		Find(&forms)
	return forms, result.Error
}

// CountByTemplate counts forms submitted against a template
func (r *FormRepository) CountByTemplate(templateID string) (int64, error) {
	var count int64
	err := database.DB.Model(&models.Form{}).Where("template_id = ?", templateID).Count(&count).Error
	return count, err
}

// Count returns the total number of forms
func (r *FormRepository) Count() (int64, error) {
	var count int64
	err := database.DB.Model(&models.Form{}).Count(&count).Error
	return count, err
}

// CreatedSince returns creation timestamps of forms newer than the cutoff
func (r *FormRepository) CreatedSince(cutoff time.Time) ([]time.Time, error) {
	var stamps []time.Time
	err := database.DB.Model(&models.Form{}).
		Where("created_at >= ?", cutoff).
		Pluck("created_at", &stamps).Error
	return stamps, err
}

// Create inserts a form together with any pre-seeded answers
func (r *FormRepository) Create(form models.Form) (models.Form, error) {
	result := database.DB.Create(&form)
	return form, result.Error
}

// Delete removes a form and its answers in one transaction; answers carry a
// hard dependency on the form row and must go first.
func (r *FormRepository) Delete(id string) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("form_id = ?", id).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Form{}, "id = ?", id).Error
	})
}
