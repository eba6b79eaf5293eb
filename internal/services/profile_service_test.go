package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mawuli-dev/glambook/internal/models"
	"github.com/mawuli-dev/glambook/internal/templates"
)

func TestGetOrInitProfileFreshRecord(t *testing.T) {
	repo := newFakeProfileRepo()
	ps := NewProfileService(repo, nil)

	id := uuid.New()
	profile, err := ps.GetOrInitProfile(context.Background(), id, "sarah@example.com", "")
	require.NoError(t, err)

	assert.Equal(t, id, profile.ID)
	assert.Equal(t, "sarah@example.com", profile.Email)
	assert.Equal(t, templates.DefaultID(), profile.ProfileTemplate)
	assert.NotNil(t, profile.SocialAccounts)
}

func TestGetOrInitProfileDefaultsEmptyTemplate(t *testing.T) {
	repo := newFakeProfileRepo()
	ps := NewProfileService(repo, nil)

	// A pre-migration row with no template id loads with the default.
	id := uuid.New()
	repo.profiles[id] = &models.Profile{ID: id, FullName: "Sarah Johnson"}

	profile, err := ps.GetOrInitProfile(context.Background(), id, "", "")
	require.NoError(t, err)
	assert.Equal(t, templates.DefaultID(), profile.ProfileTemplate)
	assert.Equal(t, "Sarah Johnson", profile.FullName)
}

func TestSaveProfileNormalizes(t *testing.T) {
	repo := newFakeProfileRepo()
	ps := NewProfileService(repo, nil)

	profile := &models.Profile{
		ID:            uuid.New(),
		FullName:      "Sarah Johnson",
		AvailableDays: []string{"Friday", "Monday", "Monday", "Funday"},
	}

	saved, err := ps.SaveProfile(context.Background(), profile, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"Monday", "Friday"}, saved.AvailableDays)
	assert.Equal(t, templates.DefaultID(), saved.ProfileTemplate)
	assert.False(t, saved.UpdatedAt.IsZero())
	assert.Equal(t, 1, repo.upsertCalls)
}

func TestSaveProfileRejectsOversizedPortfolio(t *testing.T) {
	repo := newFakeProfileRepo()
	ps := NewProfileService(repo, nil)

	profile := &models.Profile{
		ID:              uuid.New(),
		PortfolioImages: make([]string, models.MaxPortfolioImages+1),
	}

	_, err := ps.SaveProfile(context.Background(), profile, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrPortfolioFull))
	assert.Zero(t, repo.upsertCalls)
}

func TestUpdateFieldsRejectsOversizedPortfolio(t *testing.T) {
	repo := newFakeProfileRepo()
	ps := NewProfileService(repo, nil)

	id := uuid.New()
	repo.profiles[id] = &models.Profile{ID: id}

	// A decoded JSON body carries the list as []interface{}
	oversized := make([]interface{}, models.MaxPortfolioImages+1)
	for i := range oversized {
		oversized[i] = "img.jpg"
	}

	_, err := ps.UpdateFields(context.Background(), map[string]interface{}{
		"portfolio_images": oversized,
	}, id, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrPortfolioFull))
	assert.Empty(t, repo.updatedFields, "oversized portfolio must never reach the store")
}

func TestUpdateFieldsNormalizes(t *testing.T) {
	repo := newFakeProfileRepo()
	ps := NewProfileService(repo, nil)

	id := uuid.New()
	repo.profiles[id] = &models.Profile{ID: id}

	_, err := ps.UpdateFields(context.Background(), map[string]interface{}{
		"available_days":   []interface{}{"Friday", "Monday", "Monday", "Funday"},
		"profile_template": "vintage",
	}, id, "")
	require.NoError(t, err)

	require.Len(t, repo.updatedFields, 1)
	fields := repo.updatedFields[0]
	assert.Equal(t, []string{"Monday", "Friday"}, fields["available_days"])
	assert.Equal(t, templates.DefaultID(), fields["profile_template"])
	assert.NotNil(t, fields["updated_at"])
}

func TestAddPortfolioImageRejectsWhenFull(t *testing.T) {
	repo := newFakeProfileRepo()
	// A nil cloudinary client proves the cap check runs before any upload.
	ps := NewProfileService(repo, nil)

	id := uuid.New()
	repo.profiles[id] = &models.Profile{
		ID:              id,
		PortfolioImages: make([]string, models.MaxPortfolioImages),
	}

	_, err := ps.AddPortfolioImage(context.Background(), id, nil, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrPortfolioFull))
}

func TestRemovePortfolioImageOutOfRange(t *testing.T) {
	repo := newFakeProfileRepo()
	ps := NewProfileService(repo, nil)

	id := uuid.New()
	repo.profiles[id] = &models.Profile{ID: id, PortfolioImages: []string{"a.jpg"}}

	_, err := ps.RemovePortfolioImage(context.Background(), id, 3, "")
	assert.Error(t, err)
}

func TestSignUpRejectsWeakCredentials(t *testing.T) {
	ps := NewProfileService(newFakeProfileRepo(), nil)

	_, err := ps.SignUp(context.Background(), "not-an-email", "Str0ng!Pass")
	assert.Error(t, err)

	_, err = ps.SignUp(context.Background(), "sarah@example.com", "weak")
	assert.Error(t, err)
}
