package repositories

import (
	"github.com/formbuilder-api/database"
	"github.com/formbuilder-api/dto"
	"github.com/formbuilder-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TemplateRepository handles database operations for templates
type TemplateRepository struct{}

// NewTemplateRepository creates a new template repository instance
func NewTemplateRepository() *TemplateRepository {
	return &TemplateRepository{}
}

// fullPreload loads the aggregate the way list/detail responses need it
func fullPreload(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("Tags").
		Preload("AllowedUsers")
}

// FindByID retrieves a template by its ID, without relations
func (r *TemplateRepository) FindByID(id string) (models.Template, error) {
	var template models.Template
	result := database.DB.First(&template, "id = ?", id)
	return template, result.Error
}

// FindFullByID retrieves a template with questions, options, tags and allow list
func (r *TemplateRepository) FindFullByID(id string) (models.Template, error) {
	var template models.Template
	result := fullPreload(database.DB).First(&template, "id = ?", id)
	return template, result.Error
}

// Create inserts a template together with its questions, options and tag links
func (r *TemplateRepository) Create(template models.Template) (models.Template, error) {
	result := database.DB.Create(&template)
	return template, result.Error
}

// Save persists metadata changes on the template row itself
func (r *TemplateRepository) Save(template *models.Template) error {
	return database.DB.Save(template).Error
}

// HasAccessEntry checks the allow list for a (template, user) pair
func (r *TemplateRepository) HasAccessEntry(templateID, userID string) (bool, error) {
	var count int64
	err := database.DB.Model(&models.TemplateAccess{}).
		Where("template_id = ? AND user_id = ?", templateID, userID).
		Count(&count).Error
	return count > 0, err
}

// GrantAccess adds a user to the allow list; adding twice is a no-op
func (r *TemplateRepository) GrantAccess(templateID, userID string) error {
	access := models.TemplateAccess{TemplateID: templateID, UserID: userID}
	return database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&access).Error
}

// RevokeAccess removes a user from the allow list
func (r *TemplateRepository) RevokeAccess(templateID, userID string) error {
	return database.DB.
		Where("template_id = ? AND user_id = ?", templateID, userID).
		Delete(&models.TemplateAccess{}).Error
}

// MaxQuestionOrder returns the highest order value among a template's questions,
// or -1 when it has none.
func (r *TemplateRepository) MaxQuestionOrder(templateID string) (int, error) {
	var max *int
	err := database.DB.Model(&models.Question{}).
		Where("template_id = ?", templateID).
		Select("MAX(display_order)").Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return -1, nil
	}
	return *max, nil
}

// Count returns the total number of templates
func (r *TemplateRepository) Count() (int64, error) {
	var count int64
	err := database.DB.Model(&models.Template{}).Count(&count).Error
	return count, err
}

// templateSearchClause matches free text across title, description, topic
// and attached tag names.
const templateSearchClause = `(LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(topic) LIKE ? ` +
	`OR id IN (SELECT template_id FROM template_tags ` +
	`JOIN tags ON tags.id = template_tags.tag_id WHERE LOWER(tags.name) LIKE ?))`

// likeCountExpr orders the "popular" sort without a separate query
const likeCountExpr = "(SELECT COUNT(*) FROM likes WHERE likes.template_id = templates.id) DESC"

// FindWithPagination retrieves templates with pagination, free-text filtering
// and newest|popular sorting. OwnerID narrows to one owner; public narrows
// to the public listing.
func (r *TemplateRepository) FindWithPagination(filter dto.TemplateFilter, public bool) ([]models.Template, int64, error) {
	var templates []models.Template
	var totalCount int64

	db := database.DB.Model(&models.Template{})
	if public {
		db = db.Where("is_public = ?", true)
	}
	if filter.OwnerID != "" {
		db = db.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.Search != "" {
		pattern := "%" + lowered(filter.Search) + "%"
		db = db.Where(templateSearchClause, pattern, pattern, pattern, pattern)
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	if filter.Sort == "popular" {
		db = db.Order(likeCountExpr)
	} else {
		db = db.Order("created_at DESC")
	}

	err := fullPreload(db).Limit(filter.Limit).Offset(filter.Offset()).Find(&templates).Error
	if err != nil {
		return nil, 0, err
	}

	return templates, totalCount, nil
}

// Delete removes a template and all dependent rows in one transaction, then
// recomputes the usage counts of the tags it carried.
func (r *TemplateRepository) Delete(id string) error {
	return r.BulkDelete([]string{id})
}

// BulkDelete removes several templates with the same cascade as Delete
func (r *TemplateRepository) BulkDelete(ids []string) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		tagIDs, err := deleteTemplatesTx(tx, ids)
		if err != nil {
			return err
		}
		return recountTagsTx(tx, tagIDs)
	})
}

// deleteTemplatesTx deletes templates and every dependent row inside tx,
// returning the ids of tags whose counts need recomputing. Shared with the
// user cascade.
func deleteTemplatesTx(tx *gorm.DB, templateIDs []string) ([]string, error) {
	if len(templateIDs) == 0 {
		return nil, nil
	}

	var tagIDs []string
	if err := tx.Table("template_tags").
		Where("template_id IN ?", templateIDs).
		Distinct().Pluck("tag_id", &tagIDs).Error; err != nil {
		return nil, err
	}

	// Answers hang off forms; forms hang off the template
	var formIDs []string
	if err := tx.Model(&models.Form{}).
		Where("template_id IN ?", templateIDs).
		Pluck("id", &formIDs).Error; err != nil {
		return nil, err
	}
	if len(formIDs) > 0 {
		if err := tx.Where("form_id IN ?", formIDs).Delete(&models.Answer{}).Error; err != nil {
			return nil, err
		}
		if err := tx.Where("id IN ?", formIDs).Delete(&models.Form{}).Error; err != nil {
			return nil, err
		}
	}

	var questionIDs []string
	if err := tx.Model(&models.Question{}).
		Where("template_id IN ?", templateIDs).
		Pluck("id", &questionIDs).Error; err != nil {
		return nil, err
	}
	if len(questionIDs) > 0 {
		if err := tx.Where("question_id IN ?", questionIDs).Delete(&models.QuestionOption{}).Error; err != nil {
			return nil, err
		}
		if err := tx.Where("id IN ?", questionIDs).Delete(&models.Question{}).Error; err != nil {
			return nil, err
		}
	}

	for _, table := range []interface{}{&models.Like{}, &models.Comment{}, &models.TemplateAccess{}} {
		if err := tx.Where("template_id IN ?", templateIDs).Delete(table).Error; err != nil {
			return nil, err
		}
	}
	if err := tx.Exec("DELETE FROM template_tags WHERE template_id IN ?", templateIDs).Error; err != nil {
		return nil, err
	}

	if err := tx.Where("id IN ?", templateIDs).Delete(&models.Template{}).Error; err != nil {
		return nil, err
	}

	return tagIDs, nil
}

// recountTagsTx recomputes usage counts from surviving associations rather
// than decrementing, so concurrent deletes touching the same tag cannot
// drift the counter.
func recountTagsTx(tx *gorm.DB, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}
	return tx.Model(&models.Tag{}).
		Where("id IN ?", tagIDs).
		Update("count", gorm.Expr("(SELECT COUNT(*) FROM template_tags WHERE template_tags.tag_id = tags.id)")).Error
}
