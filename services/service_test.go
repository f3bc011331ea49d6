package services

import (
	"testing"

	"github.com/formbuilder-api/database"
	"github.com/formbuilder-api/dto"
	"github.com/formbuilder-api/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the global connection at a fresh in-memory SQLite
// database for the duration of one test.
func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, database.Migrate(db))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		sqlDB.Close()
	})
}

func createTestUser(t *testing.T, name string, role models.Role) *models.User {
	t.Helper()
	user := models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return &user
}

func createTestTemplate(t *testing.T, owner *models.User, isPublic bool, questions []dto.QuestionInput) *models.Template {
	t.Helper()
	svc := NewTemplateService()
	template, err := svc.Create(owner, dto.CreateTemplateRequest{
		Title:     "Test template",
		IsPublic:  isPublic,
		Questions: questions,
	})
	require.NoError(t, err)
	return template
}

func textQuestion(title string, required bool) dto.QuestionInput {
	return dto.QuestionInput{
		Title:      title,
		Type:       models.QuestionText,
		IsRequired: required,
	}
}
