package repositories

import (
	"github.com/formbuilder-api/database"
	"github.com/formbuilder-api/models"
	"gorm.io/gorm"
)

// TagRepository handles database operations for tags
type TagRepository struct{}

// NewTagRepository creates a new tag repository instance
func NewTagRepository() *TagRepository {
	return &TagRepository{}
}

// Search retrieves tags matching the query, most used first
func (r *TagRepository) Search(search string, limit int) ([]models.Tag, error) {
	var tags []models.Tag
	db := database.DB.Model(&models.Tag{})
	if search != "" {
		db = db.Where("LOWER(name) LIKE ?", "%"+lowered(search)+"%")
	}
	result := db.Order("count DESC").Limit(limit).Find(&tags)
	return tags, result.Error
}

// FindByName retrieves a tag by its unique name
func (r *TagRepository) FindByName(name string) (models.Tag, error) {
	var tag models.Tag
	result := database.DB.First(&tag, "name = ?", name)
	return tag, result.Error
}

// Create inserts a new tag
func (r *TagRepository) Create(tag models.Tag) (models.Tag, error) {
	result := database.DB.Create(&tag)
	return tag, result.Error
}

// IncrementCount bumps a tag's usage counter by one
func (r *TagRepository) IncrementCount(id string) error {
	return database.DB.Model(&models.Tag{}).
		Where("id = ?", id).
		UpdateColumn("count", gorm.Expr("count + 1")).Error
}
