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

func TestTemplateCreateValidatesOptions(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner", models.RoleUser)
	svc := NewTemplateService()

	_, err := svc.Create(owner, dto.CreateTemplateRequest{
		Title: "Bad",
		Questions: []dto.QuestionInput{
			{Title: "Pick one", Type: models.QuestionRadio},
		},
	})
	_, ok := apperrors.IsValidation(err)
	assert.True(t, ok, "choice question without options must be rejected")

	_, err = svc.Create(owner, dto.CreateTemplateRequest{
		Title: "Bad",
		Questions: []dto.QuestionInput{
			{Title: "Free text", Type: models.QuestionText, Options: []string{"a"}},
		},
	})
	_, ok = apperrors.IsValidation(err)
	assert.True(t, ok, "non-choice question with options must be rejected")

	template, err := svc.Create(owner, dto.CreateTemplateRequest{
		Title: "Good",
		Questions: []dto.QuestionInput{
			{Title: "Pick one", Type: models.QuestionRadio, Options: []string{"yes", "no"}},
		},
	})
	require.NoError(t, err)
	require.Len(t, template.Questions, 1)
	assert.Len(t, template.Questions[0].Options, 2)
}

func TestTemplateUpdateReplacesQuestions(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner", models.RoleUser)
	template := createTestTemplate(t, owner, true, []dto.QuestionInput{
		textQuestion("Old A", false),
		textQuestion("Old B", false),
	})
	oldIDs := []string{template.Questions[0].ID, template.Questions[1].ID}

	svc := NewTemplateService()
	updated, err := svc.Update(owner, template.ID, dto.UpdateTemplateRequest{
		Title:    "Renamed",
		IsPublic: true,
		Questions: []dto.QuestionInput{
			textQuestion("New A", false),
			textQuestion("New B", false),
			textQuestion("New C", false),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Title)
	require.Len(t, updated.Questions, 3)
	for i, q := range updated.Questions {
		assert.Equal(t, i, q.Order)
		assert.NotContains(t, oldIDs, q.ID)
	}

	var count int64
	require.NoError(t, database.DB.Model(&models.Question{}).
		Where("id IN ?", oldIDs).Count(&count).Error)
	assert.Zero(t, count)
}

func TestTemplateUpdateDemotesUncoveredForms(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner", models.RoleUser)
	template := createTestTemplate(t, owner, true, []dto.QuestionInput{
		textQuestion("Name", true),
	})

	formSvc := NewFormService()
	form, err := formSvc.Create(owner, template.ID)
	require.NoError(t, err)
	completed := true
	_, err = formSvc.UpdateAnswers(owner, form.ID, dto.UpdateFormRequest{
		Answers:   []dto.AnswerInput{{QuestionID: template.Questions[0].ID, Value: models.TextValue("Ann")}},
		Completed: &completed,
	})
	require.NoError(t, err)

	// Replacing the question set orphans the old answer, so the completed
	// form no longer covers the new required question and drops to draft.
	svc := NewTemplateService()
	_, err = svc.Update(owner, template.ID, dto.UpdateTemplateRequest{
		Title:    template.Title,
		IsPublic: true,
		Questions: []dto.QuestionInput{
			textQuestion("Full name", true),
		},
	})
	require.NoError(t, err)

	var reloaded models.Form
	require.NoError(t, database.DB.First(&reloaded, "id = ?", form.ID).Error)
	assert.False(t, reloaded.Completed)
}

func TestTemplateAppendQuestionOrder(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner", models.RoleUser)
	template := createTestTemplate(t, owner, true, []dto.QuestionInput{
		textQuestion("First", false),
		textQuestion("Second", false),
	})

	svc := NewTemplateService()
	question, err := svc.AppendQuestion(owner, template.ID, textQuestion("Third", false))
	require.NoError(t, err)
	assert.Equal(t, 2, question.Order)

	empty := createTestTemplate(t, owner, true, nil)
	question, err = svc.AppendQuestion(owner, empty.ID, textQuestion("First", false))
	require.NoError(t, err)
	assert.Equal(t, 0, question.Order)
}

func TestTemplateDeleteCascades(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner", models.RoleUser)
	fan := createTestUser(t, "fan", models.RoleUser)

	svc := NewTemplateService()
	template, err := svc.Create(owner, dto.CreateTemplateRequest{
		Title:    "Doomed",
		IsPublic: true,
		TagNames: []string{"survey"},
		Questions: []dto.QuestionInput{
			textQuestion("Name", false),
		},
	})
	require.NoError(t, err)

	keeper := createTestTemplate(t, owner, true, nil)
	_, err = svc.Update(owner, keeper.ID, dto.UpdateTemplateRequest{
		Title:    keeper.Title,
		IsPublic: true,
		TagNames: []string{"survey"},
	})
	require.NoError(t, err)

	formSvc := NewFormService()
	form, err := formSvc.Create(fan, template.ID)
	require.NoError(t, err)
	_, err = formSvc.UpdateAnswers(fan, form.ID, dto.UpdateFormRequest{
		Answers: []dto.AnswerInput{{QuestionID: template.Questions[0].ID, Value: models.TextValue("Bob")}},
	})
	require.NoError(t, err)

	likeSvc := NewLikeService()
	_, err = likeSvc.Toggle(fan, template.ID)
	require.NoError(t, err)
	commentSvc := NewCommentService()
	_, err = commentSvc.Add(fan, dto.CreateCommentRequest{TemplateID: template.ID, Text: "nice"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(owner, template.ID))

	for _, probe := range []struct {
		name  string
		model interface{}
		where string
	}{
		{"questions", &models.Question{}, "template_id = ?"},
		{"forms", &models.Form{}, "template_id = ?"},
		{"likes", &models.Like{}, "template_id = ?"},
		{"comments", &models.Comment{}, "template_id = ?"},
	} {
		var count int64
		require.NoError(t, database.DB.Model(probe.model).Where(probe.where, template.ID).Count(&count).Error)
		assert.Zero(t, count, "leftover %s after delete", probe.name)
	}
	var answers int64
	require.NoError(t, database.DB.Model(&models.Answer{}).Where("form_id = ?", form.ID).Count(&answers).Error)
	assert.Zero(t, answers)

	// The shared tag survives with its count recomputed from the one
	// remaining association.
	var tag models.Tag
	require.NoError(t, database.DB.First(&tag, "name = ?", "survey").Error)
	assert.Equal(t, 1, tag.Count)
}

func TestTemplateBulkDeleteIsAllOrNothing(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner", models.RoleUser)
	other := createTestUser(t, "other", models.RoleUser)

	mine := createTestTemplate(t, owner, true, nil)
	theirs := createTestTemplate(t, other, true, nil)

	svc := NewTemplateService()
	err := svc.BulkDelete(owner, []string{mine.ID, theirs.ID})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// The authorization failure must leave both templates untouched
	var count int64
	require.NoError(t, database.DB.Model(&models.Template{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestTemplateVisibility(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner", models.RoleUser)
	guest := createTestUser(t, "guest", models.RoleUser)
	private := createTestTemplate(t, owner, false, nil)

	svc := NewTemplateService()

	_, err := svc.GetByID(nil, private.ID)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	_, err = svc.GetByID(guest, private.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	require.NoError(t, svc.GrantAccess(owner, private.ID, guest.ID))
	_, err = svc.GetByID(guest, private.ID)
	assert.NoError(t, err)

	// Granting twice is idempotent
	require.NoError(t, svc.GrantAccess(owner, private.ID, guest.ID))

	require.NoError(t, svc.RevokeAccess(owner, private.ID, guest.ID))
	_, err = svc.GetByID(guest, private.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestTagNormalization(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Customer Feedback", "customer-feedback"},
		{"  GO  ", "go"},
		{"Déjà Vu", "deja-vu"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeTagName(tt.in))
	}
}
