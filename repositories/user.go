package repositories

import (
	"time"

	"github.com/formbuilder-api/database"
	"github.com/formbuilder-api/models"
	"gorm.io/gorm"
)

// UserRepository handles database operations for users
type UserRepository struct{}

// NewUserRepository creates a new user repository instance
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// FindByID retrieves a user by its ID
func (r *UserRepository) FindByID(id string) (models.User, error) {
	var user models.User
	result := database.DB.First(&user, "id = ?", id)
	return user, result.Error
}

// FindByEmail retrieves a user by email
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	result := database.DB.First(&user, "email = ?", email)
	return user, result.Error
}

// EmailExists checks whether an email is already registered
func (r *UserRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := database.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// Create inserts a new user into the database
func (r *UserRepository) Create(user models.User) (models.User, error) {
	result := database.DB.Create(&user)
	return user, result.Error
}

// UpdateFields applies a partial update to a user
func (r *UserRepository) UpdateFields(id string, fields map[string]interface{}) error {
	return database.DB.Model(&models.User{}).Where("id = ?", id).Updates(fields).Error
}

// TouchLastActive bumps lastActive to now. Best effort: callers run it in a
// goroutine and only log failures.
func (r *UserRepository) TouchLastActive(id string) error {
	return database.DB.Model(&models.User{}).
		Where("id = ?", id).
		Update("last_active", time.Now()).Error
}

// FindWithPagination retrieves users with pagination and name/email search
func (r *UserRepository) FindWithPagination(page, limit int, search string) ([]models.User, int64, error) {
	var users []models.User
	var totalCount int64

	db := database.DB.Model(&models.User{})

	if search != "" {
		pattern := "%" + search + "%"
		db = db.Where("(name LIKE ? OR email LIKE ?)", pattern, pattern)
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at desc").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, totalCount, nil
}

// CountActiveSince counts users seen after the given time
func (r *UserRepository) CountActiveSince(since time.Time) (int64, error) {
	var count int64
	err := database.DB.Model(&models.User{}).Where("last_active >= ?", since).Count(&count).Error
	return count, err
}

// Count returns the total number of users
func (r *UserRepository) Count() (int64, error) {
	var count int64
	err := database.DB.Model(&models.User{}).Count(&count).Error
	return count, err
}

// DeleteCascade removes a user and everything they own in one transaction:
// comments, likes, forms with answers, owned templates (full template
// cascade each), and allow-list entries. Tag counts are recomputed for tags
// touched by the deleted templates.
func (r *UserRepository) DeleteCascade(id string) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("author_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}

		// Forms the user submitted against anyone's templates
		var formIDs []string
		if err := tx.Model(&models.Form{}).Where("author_id = ?", id).Pluck("id", &formIDs).Error; err != nil {
			return err
		}
		if len(formIDs) > 0 {
			if err := tx.Where("form_id IN ?", formIDs).Delete(&models.Answer{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", formIDs).Delete(&models.Form{}).Error; err != nil {
				return err
			}
		}

		// Owned templates cascade like a normal template delete
		var templateIDs []string
		if err := tx.Model(&models.Template{}).Where("owner_id = ?", id).Pluck("id", &templateIDs).Error; err != nil {
			return err
		}
		tagIDs, err := deleteTemplatesTx(tx, templateIDs)
		if err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.TemplateAccess{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.User{}, "id = ?", id).Error; err != nil {
			return err
		}

		return recountTagsTx(tx, tagIDs)
	})
}
