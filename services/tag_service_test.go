package services

import (
	"testing"

	"github.com/formbuilder-api/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagUpdateNormalizesAndCounts(t *testing.T) {
	setupTestDB(t)
	svc := NewTagService()

	tag, err := svc.Update("Go Lang")
	require.NoError(t, err)
	assert.Equal(t, "go-lang", tag.Name)
	assert.Equal(t, 1, tag.Count)

	// Different spellings of the same slug land on the same tag
	tag, err = svc.Update("go-lang")
	require.NoError(t, err)
	assert.Equal(t, 2, tag.Count)

	_, err = svc.Update("x")
	_, ok := apperrors.IsValidation(err)
	assert.True(t, ok)
}

func TestTagSearchOrdersByUsage(t *testing.T) {
	setupTestDB(t)
	svc := NewTagService()

	for i := 0; i < 3; i++ {
		_, err := svc.Update("popular")
		require.NoError(t, err)
	}
	_, err := svc.Update("rare")
	require.NoError(t, err)

	tags, err := svc.Search("", 10)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "popular", tags[0].Name)

	tags, err = svc.Search("rar", 10)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "rare", tags[0].Name)
}
