package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mawuli-dev/glambook/internal/models"
	"github.com/mawuli-dev/glambook/internal/templates"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSelectionFixture() (*SelectionService, *fakeProfileRepo, *fakeEventRepo) {
	logger := testLogger()
	repo := newFakeProfileRepo()
	events := &fakeEventRepo{}
	renderer := templates.NewRenderer(logger)
	return NewSelectionService(repo, events, renderer, logger), repo, events
}

func browsingSession(record *models.Profile) *EditingSession {
	sess := NewEditingSession(record, "tok-123")
	sess.state = SelectorBrowsing
	return sess
}

func TestCatalogOrder(t *testing.T) {
	ss, _, _ := newSelectionFixture()

	catalog := ss.Catalog()
	require.Len(t, catalog, 3)
	assert.Equal(t, templates.TemplateClassic, catalog[0].ID)
	assert.Equal(t, templates.TemplateModern, catalog[1].ID)
	assert.Equal(t, templates.TemplateMinimal, catalog[2].ID)
}

func TestSelectorStateTransitions(t *testing.T) {
	ss, _, _ := newSelectionFixture()
	sess := NewEditingSession(&models.Profile{ID: uuid.New()}, "")

	assert.Equal(t, SelectorIdle, sess.State())

	ss.OpenSelector(sess)
	assert.Equal(t, SelectorBrowsing, sess.State())

	ss.CloseSelector(sess)
	assert.Equal(t, SelectorIdle, sess.State())
}

func TestNewEditingSessionDefaultsTemplate(t *testing.T) {
	sess := NewEditingSession(&models.Profile{ID: uuid.New()}, "")
	assert.Equal(t, templates.DefaultID(), sess.Record.ProfileTemplate)

	keep := &models.Profile{ID: uuid.New(), ProfileTemplate: templates.TemplateModern}
	sess = NewEditingSession(keep, "")
	assert.Equal(t, templates.TemplateModern, sess.Record.ProfileTemplate)
}

func TestPreviewUsesDraftWithoutPersisting(t *testing.T) {
	ss, repo, _ := newSelectionFixture()

	// The bio below was never saved; the preview must still show it.
	record := &models.Profile{
		ID:              uuid.New(),
		FullName:        "Sarah Johnson",
		Bio:             "unsaved draft bio",
		ProfileTemplate: templates.TemplateClassic,
	}
	sess := browsingSession(record)

	pres := ss.Preview(context.Background(), sess, templates.TemplateModern)
	assert.Equal(t, templates.TemplateModern, pres.TemplateID)
	assert.Equal(t, templates.ContextPreview, pres.Context)

	assert.Equal(t, "unsaved draft bio", pres.Hero.Tagline, "preview should render the in-memory draft")

	// Previewing changes nothing: not the session's selection, not the store.
	assert.Equal(t, templates.TemplateClassic, sess.Record.ProfileTemplate)
	assert.Equal(t, SelectorBrowsing, sess.State())
	assert.Empty(t, repo.setTemplateCalls)
	assert.Zero(t, repo.upsertCalls)
}

func TestSelectPersistsSingleField(t *testing.T) {
	ss, repo, events := newSelectionFixture()

	record := &models.Profile{
		ID:              uuid.New(),
		FullName:        "Sarah Johnson",
		Bio:             "unsaved draft bio",
		ProfileTemplate: templates.TemplateClassic,
	}
	sess := browsingSession(record)

	err := ss.Select(context.Background(), sess, templates.TemplateMinimal)
	require.NoError(t, err)

	assert.Equal(t, templates.TemplateMinimal, sess.Record.ProfileTemplate)
	assert.Equal(t, SelectorIdle, sess.State())

	// Exactly one single-field write, nothing else touched the store.
	require.Len(t, repo.setTemplateCalls, 1)
	call := repo.setTemplateCalls[0]
	assert.Equal(t, record.ID, call.ID)
	assert.Equal(t, templates.TemplateMinimal, call.TemplateID)
	assert.Equal(t, "tok-123", call.AccessToken)
	assert.Zero(t, repo.upsertCalls)

	require.Len(t, events.events, 1)
	assert.Equal(t, models.TemplateEventSelected, events.events[0].Kind)
	assert.Equal(t, templates.TemplateMinimal, events.events[0].Template)
}

func TestSelectKeepsSelectionOnPersistFailure(t *testing.T) {
	ss, repo, _ := newSelectionFixture()
	repo.setTemplateErr = errors.New("connection reset")

	record := &models.Profile{ID: uuid.New(), ProfileTemplate: templates.TemplateClassic}
	sess := browsingSession(record)

	err := ss.Select(context.Background(), sess, templates.TemplateModern)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template selected but not saved")

	// The user's intent survives the failed write; the next full save
	// carries it.
	assert.Equal(t, templates.TemplateModern, sess.Record.ProfileTemplate)
	assert.Equal(t, SelectorIdle, sess.State())
}

func TestHistoryReturnsAuditTrail(t *testing.T) {
	ss, _, _ := newSelectionFixture()

	record := &models.Profile{ID: uuid.New(), ProfileTemplate: templates.TemplateClassic}
	sess := browsingSession(record)

	require.NoError(t, ss.Select(context.Background(), sess, templates.TemplateModern))
	ss.OpenSelector(sess)
	require.NoError(t, ss.Select(context.Background(), sess, "vintage"))

	history, err := ss.History(context.Background(), record.ID, 0)
	require.NoError(t, err)
	require.Len(t, history, 3)

	// Another owner's trail stays invisible
	other, err := ss.History(context.Background(), uuid.New(), 0)
	require.NoError(t, err)
	assert.Empty(t, other)

	limited, err := ss.History(context.Background(), record.ID, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestHistoryUnconfigured(t *testing.T) {
	logger := testLogger()
	ss := NewSelectionService(newFakeProfileRepo(), nil, templates.NewRenderer(logger), logger)

	_, err := ss.History(context.Background(), uuid.New(), 0)
	assert.Error(t, err)
}

func TestSelectUnknownIDResolvesAndAudits(t *testing.T) {
	ss, repo, events := newSelectionFixture()

	record := &models.Profile{ID: uuid.New(), ProfileTemplate: templates.TemplateClassic}
	sess := browsingSession(record)

	err := ss.Select(context.Background(), sess, "vintage")
	require.NoError(t, err)

	assert.Equal(t, templates.DefaultID(), sess.Record.ProfileTemplate)
	require.Len(t, repo.setTemplateCalls, 1)
	assert.Equal(t, templates.DefaultID(), repo.setTemplateCalls[0].TemplateID)

	require.Len(t, events.events, 2)
	assert.Equal(t, models.TemplateEventFallback, events.events[0].Kind)
	assert.Equal(t, "vintage", events.events[0].Requested)
	assert.Equal(t, models.TemplateEventSelected, events.events[1].Kind)
}
