package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/google/uuid"
	"github.com/mawuli-dev/glambook/internal/helpers"
	"github.com/mawuli-dev/glambook/internal/models"
	"github.com/mawuli-dev/glambook/internal/templates"
)

type ProfileService struct {
	profileRepo models.ProfileRepo
	cld         *cloudinary.Cloudinary
}

func NewProfileService(profileRepo models.ProfileRepo, cld *cloudinary.Cloudinary) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		cld:         cld,
	}
}

func (ps *ProfileService) SignUp(ctx context.Context, email, password string) (interface{}, error) {
	if err := models.Validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("invalid email format: %v", err)
	}
	if !helpers.IsPasswordStrong(password) {
		return nil, fmt.Errorf("password is not strong enough")
	}
	return ps.profileRepo.SignUp(ctx, email, password)
}

func (ps *ProfileService) Authenticate(ctx context.Context, email, password string) (interface{}, error) {
	if err := models.Validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("invalid email format: %v", err)
	}
	if err := models.Validate.Var(password, "required,min=8"); err != nil {
		return nil, fmt.Errorf("invalid password format: %v", err)
	}
	response, err := ps.profileRepo.Authenticate(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %v", err)
	}
	return response, nil
}

func (ps *ProfileService) RefreshToken(ctx context.Context, refreshToken string) (interface{}, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("refresh token is required")
	}
	response, err := ps.profileRepo.RefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("token refresh failed: %v", err)
	}
	return response, nil
}

func (ps *ProfileService) GetGoogleAuthURL(redirectTo string) string {
	return ps.profileRepo.GoogleAuthURL(redirectTo)
}

// GetOrInitProfile loads the owner's record, or hands back a fresh in-memory
// record when none was saved yet. The template id is never empty in the
// owner-facing record; it defaults to the registry default.
func (ps *ProfileService) GetOrInitProfile(ctx context.Context, id uuid.UUID, email, accessToken string) (*models.Profile, error) {
	profile, err := ps.profileRepo.GetOwnProfile(ctx, id, accessToken)
	if err != nil {
		if errors.Is(err, models.ErrProfileNotFound) {
			return &models.Profile{
				ID:              id,
				Email:           email,
				SocialAccounts:  map[string]string{},
				ProfileTemplate: templates.DefaultID(),
			}, nil
		}
		return nil, fmt.Errorf("failed to get profile: %v", err)
	}
	if profile.ProfileTemplate == "" {
		profile.ProfileTemplate = templates.DefaultID()
	}
	return profile, nil
}

// SaveProfile validates and upserts the whole form. The portfolio cap is
// enforced here too, so an oversized payload never reaches the store.
func (ps *ProfileService) SaveProfile(ctx context.Context, profile *models.Profile, accessToken string) (*models.Profile, error) {
	if profile.ID == uuid.Nil {
		return nil, fmt.Errorf("profile id is required")
	}
	if len(profile.PortfolioImages) > models.MaxPortfolioImages {
		return nil, models.ErrPortfolioFull
	}
	if err := models.Validate.Struct(profile); err != nil {
		return nil, err
	}

	profile.AvailableDays = models.NormalizeDays(profile.AvailableDays)
	if profile.ProfileTemplate == "" {
		profile.ProfileTemplate = templates.DefaultID()
	}

	now := time.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	saved, err := ps.profileRepo.UpsertProfile(ctx, profile, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to save profile: %v", err)
	}
	return saved, nil
}

// UpdateFields applies a partial update. Partial writes honor the same
// invariants as a full save: the portfolio cap, canonical day order and a
// registered template id.
func (ps *ProfileService) UpdateFields(ctx context.Context, fields map[string]interface{}, id uuid.UUID, accessToken string) (*models.Profile, error) {
	if raw, ok := fields["portfolio_images"]; ok {
		images, ok := stringSlice(raw)
		if !ok {
			return nil, fmt.Errorf("portfolio_images must be a list of image URLs")
		}
		if len(images) > models.MaxPortfolioImages {
			return nil, models.ErrPortfolioFull
		}
		fields["portfolio_images"] = images
	}
	if raw, ok := fields["available_days"]; ok {
		days, ok := stringSlice(raw)
		if !ok {
			return nil, fmt.Errorf("available_days must be a list of day names")
		}
		fields["available_days"] = models.NormalizeDays(days)
	}
	if raw, ok := fields["profile_template"]; ok {
		tpl, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("profile_template must be a string")
		}
		fields["profile_template"] = templates.Resolve(tpl).ID
	}

	now := time.Now()
	fields["updated_at"] = now

	updated, err := ps.profileRepo.UpdateProfileFields(ctx, fields, id, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %v", err)
	}
	return updated, nil
}

// stringSlice accepts both a typed slice and the []interface{} a decoded
// JSON body carries.
func stringSlice(v interface{}) ([]string, bool) {
	switch s := v.(type) {
	case []string:
		return s, true
	case []interface{}:
		out := make([]string, 0, len(s))
		for _, e := range s {
			str, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	}
	return nil, false
}

// AddPortfolioImage enforces the cap BEFORE uploading so a rejected add never
// costs an upload, then appends the returned URL and persists the new order.
func (ps *ProfileService) AddPortfolioImage(ctx context.Context, id uuid.UUID, file interface{}, accessToken string) (string, error) {
	profile, err := ps.GetOrInitProfile(ctx, id, "", accessToken)
	if err != nil {
		return "", err
	}

	if !profile.CanAddPortfolioImage() {
		return "", models.ErrPortfolioFull
	}

	url, err := helpers.UploadImage(ctx, ps.cld, file, helpers.PortfolioFolder)
	if err != nil {
		return "", fmt.Errorf("failed to upload portfolio image: %v", err)
	}

	if err := profile.AddPortfolioImage(url); err != nil {
		return "", err
	}

	if err := ps.upsertField(ctx, id, "portfolio_images", profile.PortfolioImages, accessToken); err != nil {
		return "", err
	}

	return url, nil
}

// upsertField persists a single field keyed by owner id, creating the row if
// the owner never completed a full save.
func (ps *ProfileService) upsertField(ctx context.Context, id uuid.UUID, field string, value interface{}, accessToken string) error {
	err := ps.profileRepo.UpsertFields(ctx, id, map[string]interface{}{
		field:        value,
		"updated_at": time.Now(),
	}, accessToken)
	if err != nil {
		return fmt.Errorf("failed to persist %s: %v", field, err)
	}
	return nil
}

func (ps *ProfileService) RemovePortfolioImage(ctx context.Context, id uuid.UUID, index int, accessToken string) (*models.Profile, error) {
	profile, err := ps.profileRepo.GetOwnProfile(ctx, id, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %v", err)
	}

	if index < 0 || index >= len(profile.PortfolioImages) {
		return nil, fmt.Errorf("image index out of range")
	}
	profile.RemovePortfolioImage(index)

	return ps.UpdateFields(ctx, map[string]interface{}{
		"portfolio_images": profile.PortfolioImages,
	}, id, accessToken)
}

func (ps *ProfileService) UploadAvatar(ctx context.Context, id uuid.UUID, file interface{}, accessToken string) (string, error) {
	url, err := helpers.UploadImage(ctx, ps.cld, file, helpers.AvatarFolder)
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %v", err)
	}

	if err := ps.upsertField(ctx, id, "avatar_url", url, accessToken); err != nil {
		return "", err
	}
	return url, nil
}

func (ps *ProfileService) UploadBanner(ctx context.Context, id uuid.UUID, file interface{}, accessToken string) (string, error) {
	url, err := helpers.UploadImage(ctx, ps.cld, file, helpers.BannerFolder)
	if err != nil {
		return "", fmt.Errorf("failed to upload banner: %v", err)
	}

	if err := ps.upsertField(ctx, id, "banner_url", url, accessToken); err != nil {
		return "", err
	}
	return url, nil
}
