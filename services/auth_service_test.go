package services

import (
	"testing"

	"github.com/formbuilder-api/apperrors"
	"github.com/formbuilder-api/database"
	"github.com/formbuilder-api/dto"
	"github.com/formbuilder-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_ISSUER", "formbuilder-test")
}

func TestRegisterAndLogin(t *testing.T) {
	setupTestDB(t)
	setupAuthEnv(t)

	user, err := Register(dto.RegisterRequest{
		Name:     "Ann",
		Email:    "ann@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	// Duplicate email is a conflict
	_, err = Register(dto.RegisterRequest{Name: "Ann2", Email: "ann@example.com", Password: "secret2"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	resp, err := Login(dto.LoginRequest{Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)

	claims, err := ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, string(models.RoleUser), claims.Role)
}

func TestLoginFailures(t *testing.T) {
	setupTestDB(t)
	setupAuthEnv(t)

	_, err := Register(dto.RegisterRequest{Name: "Bob", Email: "bob@example.com", Password: "secret1"})
	require.NoError(t, err)

	// Wrong password and unknown email produce the same opaque error
	_, err = Login(dto.LoginRequest{Email: "bob@example.com", Password: "wrong"})
	_, ok := apperrors.IsValidation(err)
	assert.True(t, ok)

	_, err = Login(dto.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	_, ok = apperrors.IsValidation(err)
	assert.True(t, ok)

	// Blocked users cannot log in even with valid credentials
	require.NoError(t, database.DB.Exec("UPDATE users SET is_blocked = ? WHERE email = ?", true, "bob@example.com").Error)
	_, err = Login(dto.LoginRequest{Email: "bob@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	setupAuthEnv(t)

	token, _, err := GenerateToken("u1", "u1@example.com", string(models.RoleUser))
	require.NoError(t, err)

	_, err = ValidateToken(token + "x")
	assert.Error(t, err)

	// A token signed under a different secret must not validate
	t.Setenv("JWT_SECRET", "other-secret")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestUpdateProfileRotatesTokenOnPasswordChange(t *testing.T) {
	setupTestDB(t)
	setupAuthEnv(t)

	user, err := Register(dto.RegisterRequest{Name: "Cay", Email: "cay@example.com", Password: "secret1"})
	require.NoError(t, err)

	name := "Cay Updated"
	resp, err := UpdateProfile(user, dto.UpdateProfileRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Cay Updated", resp.User.Name)
	assert.Empty(t, resp.Token, "name change alone must not mint a token")

	password := "newsecret"
	resp, err = UpdateProfile(user, dto.UpdateProfileRequest{Password: &password})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = Login(dto.LoginRequest{Email: "cay@example.com", Password: "newsecret"})
	assert.NoError(t, err)

	short := "abc"
	_, err = UpdateProfile(user, dto.UpdateProfileRequest{Password: &short})
	_, ok := apperrors.IsValidation(err)
	assert.True(t, ok)
}

func TestDeleteAccountCascades(t *testing.T) {
	setupTestDB(t)
	setupAuthEnv(t)

	user, err := Register(dto.RegisterRequest{Name: "Dee", Email: "dee@example.com", Password: "secret1"})
	require.NoError(t, err)
	template := createTestTemplate(t, user, true, []dto.QuestionInput{textQuestion("Q", false)})

	other := createTestUser(t, "other", models.RoleUser)
	formSvc := NewFormService()
	_, err = formSvc.Create(other, template.ID)
	require.NoError(t, err)

	require.NoError(t, DeleteAccount(user))

	_, err = GetUser(user.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Owned templates go down with the account, taking other users' forms
	// on those templates along.
	templateSvc := NewTemplateService()
	_, err = templateSvc.GetByID(other, template.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	forms, err := formSvc.ListMine(other)
	require.NoError(t, err)
	assert.Empty(t, forms)
}
