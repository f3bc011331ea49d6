package services

import (
	"testing"

	"github.com/formbuilder-api/apperrors"
	"github.com/formbuilder-api/dto"
	"github.com/formbuilder-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminListUsers(t *testing.T) {
	setupTestDB(t)
	admin := createTestUser(t, "admin", models.RoleAdmin)
	createTestUser(t, "alice", models.RoleUser)
	createTestUser(t, "bob", models.RoleUser)

	svc := NewAdminService()

	page, err := svc.ListUsers(admin, dto.ListQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Pagination.Total)

	page, err = svc.ListUsers(admin, dto.ListQuery{Page: 1, Limit: 10, Search: "ali"})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "alice", page.Data[0].Name)

	_, err = svc.ListUsers(createTestUser(t, "pleb", models.RoleUser), dto.ListQuery{})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestAdminSetRole(t *testing.T) {
	setupTestDB(t)
	admin := createTestUser(t, "admin", models.RoleAdmin)
	target := createTestUser(t, "target", models.RoleUser)

	svc := NewAdminService()

	require.NoError(t, svc.SetRole(admin, target.ID, models.RoleModerator))
	updated, err := GetUser(target.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleModerator, updated.Role)

	_, ok := apperrors.IsValidation(svc.SetRole(admin, target.ID, "WIZARD"))
	assert.True(t, ok)

	// An admin cannot demote themselves
	assert.ErrorIs(t, svc.SetRole(admin, admin.ID, models.RoleUser), apperrors.ErrForbidden)
	require.NoError(t, svc.SetRole(admin, admin.ID, models.RoleAdmin))

	assert.ErrorIs(t, svc.SetRole(admin, "missing", models.RoleUser), apperrors.ErrNotFound)
}

func TestAdminSetBlocked(t *testing.T) {
	setupTestDB(t)
	admin := createTestUser(t, "admin", models.RoleAdmin)
	target := createTestUser(t, "target", models.RoleUser)

	svc := NewAdminService()

	require.NoError(t, svc.SetBlocked(admin, target.ID, true))
	blocked, err := GetUser(target.ID)
	require.NoError(t, err)
	assert.True(t, blocked.IsBlocked)

	// Blocked users fail the baseline actor check everywhere
	assert.ErrorIs(t, CheckActor(blocked), apperrors.ErrForbidden)

	require.NoError(t, svc.SetBlocked(admin, target.ID, false))

	// Self-blocking would lock the admin out
	assert.ErrorIs(t, svc.SetBlocked(admin, admin.ID, true), apperrors.ErrForbidden)
}

func TestAdminDeleteUser(t *testing.T) {
	setupTestDB(t)
	admin := createTestUser(t, "admin", models.RoleAdmin)
	target := createTestUser(t, "target", models.RoleUser)
	template := createTestTemplate(t, target, true, nil)

	svc := NewAdminService()
	require.NoError(t, svc.DeleteUser(admin, target.ID))

	_, err := GetUser(target.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = NewTemplateService().GetByID(admin, template.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.ErrorIs(t, svc.DeleteUser(admin, target.ID), apperrors.ErrNotFound)
}
