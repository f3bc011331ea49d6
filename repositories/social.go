package repositories

import (
	"github.com/formbuilder-api/database"
	"github.com/formbuilder-api/models"
	"gorm.io/gorm/clause"
)

// LikeRepository handles database operations for likes
type LikeRepository struct{}

// NewLikeRepository creates a new like repository instance
func NewLikeRepository() *LikeRepository {
	return &LikeRepository{}
}

// TryInsert attempts to create the like and reports whether a row was
// actually written. ON CONFLICT DO NOTHING makes the existence check and the
// insert a single atomic statement, which is what keeps concurrent toggles
// from double-counting.
func (r *LikeRepository) TryInsert(templateID, userID string) (bool, error) {
	like := models.Like{TemplateID: templateID, UserID: userID}
	result := database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete removes the like row for a (template, user) pair
func (r *LikeRepository) Delete(templateID, userID string) error {
	return database.DB.
		Where("template_id = ? AND user_id = ?", templateID, userID).
		Delete(&models.Like{}).Error
}

// Count returns the number of distinct users currently liking the template
func (r *LikeRepository) Count(templateID string) (int64, error) {
	var count int64
	err := database.DB.Model(&models.Like{}).Where("template_id = ?", templateID).Count(&count).Error
	return count, err
}

// Exists checks whether the user currently likes the template
func (r *LikeRepository) Exists(templateID, userID string) (bool, error) {
	var count int64
	err := database.DB.Model(&models.Like{}).
		Where("template_id = ? AND user_id = ?", templateID, userID).
		Count(&count).Error
	return count > 0, err
}

// CommentRepository handles database operations for comments
type CommentRepository struct{}

// NewCommentRepository creates a new comment repository instance
func NewCommentRepository() *CommentRepository {
	return &CommentRepository{}
}

// FindByID retrieves a comment by its ID
func (r *CommentRepository) FindByID(id string) (models.Comment, error) {
	var comment models.Comment
	result := database.DB.First(&comment, "id = ?", id)
	return comment, result.Error
}

// FindByTemplate retrieves a template's comments newest first, with authors
func (r *CommentRepository) FindByTemplate(templateID string) ([]models.Comment, error) {
	var comments []models.Comment
	result := database.DB.
		Preload("Author").
		Where("template_id = ?", templateID).
		Order("created_at DESC").
		Find(&comments)
	return comments, result.Error
}

// Create inserts a new comment and reloads it with its author
func (r *CommentRepository) Create(comment models.Comment) (models.Comment, error) {
	if err := database.DB.Create(&comment).Error; err != nil {
		return comment, err
	}
	err := database.DB.Preload("Author").First(&comment, "id = ?", comment.ID).Error
	return comment, err
}

// Delete removes a comment
func (r *CommentRepository) Delete(id string) error {
	return database.DB.Delete(&models.Comment{}, "id = ?", id).Error
}
