package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/gotrue-go/types"
)

// ownColumns is every column of the owner's private record.
const ownColumns = "id,email,full_name,phone,city,category,services,price_range,bio," +
	"portfolio_images,available_days,avatar_url,banner_url,social_accounts," +
	"expected_payment_amount,profile_template,created_at,updated_at"

// publicColumns deliberately excludes email and phone. The privacy filter
// lives here, at the read boundary, never in the rendering layer.
const publicColumns = "id,full_name,city,category,services,price_range,bio," +
	"portfolio_images,available_days,avatar_url,banner_url,social_accounts," +
	"expected_payment_amount,profile_template"

// ErrProfileNotFound distinguishes an absent row from a transient fetch
// failure; callers map it to a stable not-found state, not an error page.
var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepo interface {
	SignUp(ctx context.Context, email, password string) (interface{}, error)
	Authenticate(ctx context.Context, email, password string) (interface{}, error)
	RefreshToken(ctx context.Context, refreshToken string) (interface{}, error)
	GoogleAuthURL(redirectTo string) string

	GetOwnProfile(ctx context.Context, id uuid.UUID, accessToken string) (*Profile, error)
	UpsertProfile(ctx context.Context, profile *Profile, accessToken string) (*Profile, error)
	UpdateProfileFields(ctx context.Context, fields map[string]interface{}, id uuid.UUID, accessToken string) (*Profile, error)
	UpsertFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}, accessToken string) error
	SetTemplate(ctx context.Context, id uuid.UUID, templateID string, accessToken string) error
	GetPublicProfile(ctx context.Context, ownerID uuid.UUID) (*PublicProfile, error)
}

func ConvertToProfile(raw map[string]interface{}) (*Profile, error) {
	profileBytes, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal raw profile: %v", err)
	}

	profile := &Profile{}
	if err := json.Unmarshal(profileBytes, profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal to profile struct: %v", err)
	}

	return profile, nil
}

func (su *SupabaseRepo) SignUp(ctx context.Context, email, password string) (interface{}, error) {
	signed := types.SignupRequest{
		Email:    email,
		Password: password,
	}

	res, err := su.supabaseClient.Auth.Signup(signed)
	if err != nil {
		return nil, fmt.Errorf("failed to sign up: %v", err)
	}
	return res, nil
}

func (su *SupabaseRepo) Authenticate(ctx context.Context, email, password string) (interface{}, error) {
	resp, err := su.supabaseClient.Auth.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate: %v", err)
	}
	return resp, nil
}

func (su *SupabaseRepo) RefreshToken(ctx context.Context, refreshToken string) (interface{}, error) {
	resp, err := su.supabaseClient.Auth.RefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %v", err)
	}
	return resp, nil
}

// GoogleAuthURL builds the Supabase OAuth authorize URL for the Google
// provider. Token exchange happens client-side via URL fragments.
func (su *SupabaseRepo) GoogleAuthURL(redirectTo string) string {
	return fmt.Sprintf("%s/auth/v1/authorize?provider=google&redirect_to=%s", su.url, redirectTo)
}

func (su *SupabaseRepo) GetOwnProfile(ctx context.Context, id uuid.UUID, accessToken string) (*Profile, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid UUID")
	}

	client := su.supabaseClient
	if accessToken != "" {
		authClient, err := su.GetAuthenticatedClient(accessToken)
		if err != nil {
			return nil, fmt.Errorf("failed to create authenticated client: %v", err)
		}
		client = authClient
	}

	raw, status, err := client.From(ProfileTable).
		Select(ownColumns, "", false).
		Eq("id", id.String()).
		Execute()
	if err != nil {
		if status != 0 {
			return nil, fmt.Errorf("postgrest error: status=%d body=%s err=%v", status, string(raw), err)
		}
		return nil, fmt.Errorf("failed to get profile: %v", err)
	}

	// Supabase returns an array even for single results
	var profiles []Profile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile rows: %v", err)
	}

	if len(profiles) == 0 {
		return nil, ErrProfileNotFound
	}

	return &profiles[0], nil
}

func (su *SupabaseRepo) UpsertProfile(ctx context.Context, profile *Profile, accessToken string) (*Profile, error) {
	if profile.ID == uuid.Nil {
		return nil, fmt.Errorf("invalid UUID")
	}

	client := su.supabaseClient
	if accessToken != "" {
		authClient, err := su.GetAuthenticatedClient(accessToken)
		if err != nil {
			return nil, fmt.Errorf("failed to create authenticated client: %v", err)
		}
		client = authClient
	}

	raw, _, err := client.From(ProfileTable).
		Upsert(profile, "id", "", "exact").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %v", err)
	}

	var profiles []Profile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal upserted profile: %v", err)
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("no profile data returned after upsert")
	}

	return &profiles[0], nil
}

func (su *SupabaseRepo) UpdateProfileFields(ctx context.Context, fields map[string]interface{}, id uuid.UUID, accessToken string) (*Profile, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid UUID")
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	client := su.supabaseClient
	if accessToken != "" {
		authClient, err := su.GetAuthenticatedClient(accessToken)
		if err != nil {
			return nil, fmt.Errorf("failed to create authenticated client: %v", err)
		}
		client = authClient
	}

	raw, count, err := client.From(ProfileTable).
		Update(fields, "", "exact").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %v", err)
	}

	if count == 0 {
		return nil, ErrProfileNotFound
	}

	var rawProfiles []map[string]interface{}
	if err := json.Unmarshal(raw, &rawProfiles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated profile: %v", err)
	}

	if len(rawProfiles) == 0 {
		return nil, fmt.Errorf("no profile data returned after update")
	}

	updated, err := ConvertToProfile(rawProfiles[0])
	if err != nil {
		return nil, fmt.Errorf("failed to convert updated profile data: %v", err)
	}

	return updated, nil
}

// UpsertFields writes a handful of fields keyed by owner id, creating the row
// if the owner never saved a full form. Used for uploads, which land before
// the first full save.
func (su *SupabaseRepo) UpsertFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}, accessToken string) error {
	if id == uuid.Nil {
		return fmt.Errorf("invalid UUID")
	}
	if len(fields) == 0 {
		return fmt.Errorf("no fields to upsert")
	}

	client := su.supabaseClient
	if accessToken != "" {
		authClient, err := su.GetAuthenticatedClient(accessToken)
		if err != nil {
			return fmt.Errorf("failed to create authenticated client: %v", err)
		}
		client = authClient
	}

	row := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		row[k] = v
	}
	row["id"] = id.String()

	_, _, err := client.From(ProfileTable).
		Upsert(row, "id", "", "exact").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to upsert fields: %v", err)
	}
	return nil
}

// SetTemplate persists the template choice as a single-field write, decoupled
// from the rest of the form. A row is created if the owner never saved before.
func (su *SupabaseRepo) SetTemplate(ctx context.Context, id uuid.UUID, templateID string, accessToken string) error {
	if id == uuid.Nil {
		return fmt.Errorf("invalid UUID")
	}

	client := su.supabaseClient
	if accessToken != "" {
		authClient, err := su.GetAuthenticatedClient(accessToken)
		if err != nil {
			return fmt.Errorf("failed to create authenticated client: %v", err)
		}
		client = authClient
	}

	row := map[string]interface{}{
		"id":               id.String(),
		"profile_template": templateID,
	}

	_, _, err := client.From(ProfileTable).
		Upsert(row, "id", "", "exact").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to persist template selection: %v", err)
	}

	return nil
}

// GetPublicProfile reads the privacy-filtered projection. It uses the anon
// client on purpose: the public page is unauthenticated.
func (su *SupabaseRepo) GetPublicProfile(ctx context.Context, ownerID uuid.UUID) (*PublicProfile, error) {
	if ownerID == uuid.Nil {
		return nil, fmt.Errorf("invalid UUID")
	}

	raw, status, err := su.supabaseClient.From(ProfileTable).
		Select(publicColumns, "", false).
		Eq("id", ownerID.String()).
		Execute()
	if err != nil {
		if status != 0 {
			return nil, fmt.Errorf("postgrest error: status=%d body=%s err=%v", status, string(raw), err)
		}
		return nil, fmt.Errorf("failed to get public profile: %v", err)
	}

	var profiles []PublicProfile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal public profile rows: %v", err)
	}

	if len(profiles) == 0 {
		return nil, ErrProfileNotFound
	}

	return &profiles[0], nil
}
