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

func boolPtr(b bool) *bool { return &b }

func TestFormCreatePreSeedsAnswers(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner", models.RoleUser)
	template := createTestTemplate(t, owner, true, []dto.QuestionInput{
		textQuestion("Name", true),
		textQuestion("Feedback", false),
	})

	svc := NewFormService()
	form, err := svc.Create(owner, template.ID)
	require.NoError(t, err)

	assert.False(t, form.Completed)
	assert.Len(t, form.Answers, 2)
	for _, a := range form.Answers {
		assert.True(t, a.Value.IsEmpty())
	}
}

func TestFormCreateRespectsAllowList(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner", models.RoleUser)
	guest := createTestUser(t, "guest", models.RoleUser)
	template := createTestTemplate(t, owner, false, []dto.QuestionInput{
		textQuestion("Name", true),
	})

	formSvc := NewFormService()
	_, err := formSvc.Create(guest, template.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	templateSvc := NewTemplateService()
	require.NoError(t, templateSvc.GrantAccess(owner, template.ID, guest.ID))

	form, err := formSvc.Create(guest, template.ID)
	require.NoError(t, err)
	assert.Equal(t, guest.ID, form.AuthorID)
}

func TestFormUpdateUpsertsByQuestion(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner", models.RoleUser)
	template := createTestTemplate(t, owner, true, []dto.QuestionInput{
		textQuestion("Name", true),
	})
	question := template.Questions[0]

	svc := NewFormService()
	form, err := svc.Create(owner, template.ID)
	require.NoError(t, err)

	_, err = svc.UpdateAnswers(owner, form.ID, dto.UpdateFormRequest{
		Answers: []dto.AnswerInput{{QuestionID: question.ID, Value: models.TextValue("first")}},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateAnswers(owner, form.ID, dto.UpdateFormRequest{
		Answers: []dto.AnswerInput{{QuestionID: question.ID, Value: models.TextValue("second")}},
	})
	require.NoError(t, err)

	// Still exactly one row per (form, question), holding the latest value
	var count int64
	require.NoError(t, database.DB.Model(&models.Answer{}).
		Where("form_id = ? AND question_id = ?", form.ID, question.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.Len(t, updated.Answers, 1)
	require.NotNil(t, updated.Answers[0].Value.Text)
	assert.Equal(t, "second", *updated.Answers[0].Value.Text)
}

func TestFormCompletionRequiresCoverage(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner", models.RoleUser)
	template := createTestTemplate(t, owner, true, []dto.QuestionInput{
		textQuestion("Name", true),
		textQuestion("Feedback", false),
	})
	required := template.Questions[0]
	optional := template.Questions[1]

	svc := NewFormService()
	form, err := svc.Create(owner, template.ID)
	require.NoError(t, err)

	// Completing with the required question still empty must fail and roll
	// back the optional answer written in the same batch.
	_, err = svc.UpdateAnswers(owner, form.ID, dto.UpdateFormRequest{
		Answers:   []dto.AnswerInput{{QuestionID: optional.ID, Value: models.TextValue("nice")}},
		Completed: boolPtr(true),
	})
	require.Error(t, err)
	verr, ok := apperrors.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, []string{required.ID}, verr.Details["questionIds"])

	reloaded, err := svc.Get(owner, form.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.Completed)
	for _, a := range reloaded.Answers {
		assert.True(t, a.Value.IsEmpty(), "rejected batch must not persist")
	}

	// With the required answer present the same request succeeds
	completed, err := svc.UpdateAnswers(owner, form.ID, dto.UpdateFormRequest{
		Answers: []dto.AnswerInput{
			{QuestionID: required.ID, Value: models.TextValue("Ann")},
			{QuestionID: optional.ID, Value: models.TextValue("nice")},
		},
		Completed: boolPtr(true),
	})
	require.NoError(t, err)
	assert.True(t, completed.Completed)

	// A completed form cannot revert to draft
	_, err = svc.UpdateAnswers(owner, form.ID, dto.UpdateFormRequest{Completed: boolPtr(false)})
	_, ok = apperrors.IsValidation(err)
	assert.True(t, ok)
}

func TestFormUpdateRejectsMismatchedValue(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner", models.RoleUser)
	template := createTestTemplate(t, owner, true, []dto.QuestionInput{
		{Title: "Age", Type: models.QuestionNumber, IsRequired: false},
	})

	svc := NewFormService()
	form, err := svc.Create(owner, template.ID)
	require.NoError(t, err)

	_, err = svc.UpdateAnswers(owner, form.ID, dto.UpdateFormRequest{
		Answers: []dto.AnswerInput{{QuestionID: template.Questions[0].ID, Value: models.TextValue("forty")}},
	})
	_, ok := apperrors.IsValidation(err)
	assert.True(t, ok)

	_, err = svc.UpdateAnswers(owner, form.ID, dto.UpdateFormRequest{
		Answers: []dto.AnswerInput{{QuestionID: "missing", Value: models.TextValue("x")}},
	})
	_, ok = apperrors.IsValidation(err)
	assert.True(t, ok)
}

func TestFormAccessRules(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner", models.RoleUser)
	author := createTestUser(t, "author", models.RoleUser)
	admin := createTestUser(t, "admin", models.RoleAdmin)
	template := createTestTemplate(t, owner, true, []dto.QuestionInput{
		textQuestion("Name", false),
	})

	svc := NewFormService()
	form, err := svc.Create(author, template.ID)
	require.NoError(t, err)

	// The template owner may list forms but not read or edit one directly
	_, err = svc.Get(owner, form.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	forms, err := svc.ListByTemplate(owner, template.ID)
	require.NoError(t, err)
	assert.Len(t, forms, 1)

	_, err = svc.ListByTemplate(author, template.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = svc.Get(admin, form.ID)
	assert.NoError(t, err)

	require.NoError(t, svc.Delete(author, form.ID))
	_, err = svc.Get(author, form.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
