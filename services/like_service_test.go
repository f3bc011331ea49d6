package services

import (
	"testing"

	"github.com/formbuilder-api/apperrors"
	"github.com/formbuilder-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeToggleRoundTrip(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner", models.RoleUser)
	fan := createTestUser(t, "fan", models.RoleUser)
	template := createTestTemplate(t, owner, true, nil)

	svc := NewLikeService()

	result, err := svc.Toggle(fan, template.ID)
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, int64(1), result.Count)

	liked, err := svc.Status(fan, template.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	result, err = svc.Toggle(fan, template.ID)
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, int64(0), result.Count)

	liked, err = svc.Status(fan, template.ID)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestLikeCountIsPerUser(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner", models.RoleUser)
	template := createTestTemplate(t, owner, true, nil)

	svc := NewLikeService()
	for _, name := range []string{"a", "b", "c"} {
		fan := createTestUser(t, name, models.RoleUser)
		_, err := svc.Toggle(fan, template.ID)
		require.NoError(t, err)
	}

	count, err := svc.Count(template.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestLikeUnknownTemplate(t *testing.T) {
	setupTestDB(t)
	fan := createTestUser(t, "fan", models.RoleUser)

	svc := NewLikeService()
	_, err := svc.Toggle(fan, "no-such-template")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
