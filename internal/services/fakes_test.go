package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mawuli-dev/glambook/internal/models"
)

// fakeProfileRepo records writes so tests can assert exactly which fields a
// service persisted.
type fakeProfileRepo struct {
	profiles map[uuid.UUID]*models.Profile

	setTemplateCalls []setTemplateCall
	setTemplateErr   error
	upsertCalls      int
	updatedFields    []map[string]interface{}
}

type setTemplateCall struct {
	ID          uuid.UUID
	TemplateID  string
	AccessToken string
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*models.Profile)}
}

func (f *fakeProfileRepo) SignUp(ctx context.Context, email, password string) (interface{}, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeProfileRepo) Authenticate(ctx context.Context, email, password string) (interface{}, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeProfileRepo) RefreshToken(ctx context.Context, refreshToken string) (interface{}, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeProfileRepo) GoogleAuthURL(redirectTo string) string { return "" }

func (f *fakeProfileRepo) GetOwnProfile(ctx context.Context, id uuid.UUID, accessToken string) (*models.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, models.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileRepo) UpsertProfile(ctx context.Context, profile *models.Profile, accessToken string) (*models.Profile, error) {
	f.upsertCalls++
	cp := *profile
	f.profiles[profile.ID] = &cp
	return profile, nil
}

func (f *fakeProfileRepo) UpdateProfileFields(ctx context.Context, fields map[string]interface{}, id uuid.UUID, accessToken string) (*models.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, models.ErrProfileNotFound
	}
	f.updatedFields = append(f.updatedFields, fields)
	return p, nil
}

func (f *fakeProfileRepo) UpsertFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}, accessToken string) error {
	return nil
}

func (f *fakeProfileRepo) SetTemplate(ctx context.Context, id uuid.UUID, templateID string, accessToken string) error {
	f.setTemplateCalls = append(f.setTemplateCalls, setTemplateCall{ID: id, TemplateID: templateID, AccessToken: accessToken})
	return f.setTemplateErr
}

func (f *fakeProfileRepo) GetPublicProfile(ctx context.Context, ownerID uuid.UUID) (*models.PublicProfile, error) {
	p, ok := f.profiles[ownerID]
	if !ok {
		return nil, models.ErrProfileNotFound
	}
	return p.Public(), nil
}

type recordedEvent struct {
	Kind      string
	OwnerID   uuid.UUID
	Template  string
	Requested string
}

type fakeEventRepo struct {
	events []recordedEvent
}

func (f *fakeEventRepo) RecordSelection(ctx context.Context, ownerID uuid.UUID, templateID string) error {
	f.events = append(f.events, recordedEvent{Kind: models.TemplateEventSelected, OwnerID: ownerID, Template: templateID})
	return nil
}

func (f *fakeEventRepo) RecordFallback(ctx context.Context, ownerID uuid.UUID, requested, resolved string) error {
	f.events = append(f.events, recordedEvent{Kind: models.TemplateEventFallback, OwnerID: ownerID, Template: resolved, Requested: requested})
	return nil
}

func (f *fakeEventRepo) GetTemplateEvents(ctx context.Context, ownerID uuid.UUID, limit int) ([]*models.TemplateEvent, error) {
	var out []*models.TemplateEvent
	for _, e := range f.events {
		if e.OwnerID != ownerID {
			continue
		}
		out = append(out, &models.TemplateEvent{
			OwnerID:    e.OwnerID,
			Kind:       e.Kind,
			TemplateID: e.Template,
			Requested:  e.Requested,
		})
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeViewsRepo struct {
	tracked  []*models.ProfileView
	trackErr error
	stats    *models.ProfileViewStats
}

func (f *fakeViewsRepo) TrackProfileView(ctx context.Context, view *models.ProfileView) error {
	if f.trackErr != nil {
		return f.trackErr
	}
	f.tracked = append(f.tracked, view)
	return nil
}

func (f *fakeViewsRepo) GetProfileViewStats(ctx context.Context, ownerID string) (*models.ProfileViewStats, error) {
	if f.stats != nil {
		return f.stats, nil
	}
	return &models.ProfileViewStats{OwnerID: ownerID}, nil
}

func (f *fakeViewsRepo) EnsureIndexes(ctx context.Context) error { return nil }
