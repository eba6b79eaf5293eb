package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mawuli-dev/glambook/internal/models"
	"github.com/mawuli-dev/glambook/internal/templates"
)

type SelectorState string

const (
	SelectorIdle     SelectorState = "idle"
	SelectorBrowsing SelectorState = "browsing"
)

// EditingSession owns the in-memory, possibly-unsaved record of the owner
// currently editing. There is no ambient profile state anywhere; everything
// the selector touches flows through this object.
type EditingSession struct {
	OwnerID     uuid.UUID
	AccessToken string
	Record      *models.Profile
	state       SelectorState
}

func NewEditingSession(record *models.Profile, accessToken string) *EditingSession {
	if record.ProfileTemplate == "" {
		record.ProfileTemplate = templates.DefaultID()
	}
	return &EditingSession{
		OwnerID:     record.ID,
		AccessToken: accessToken,
		Record:      record,
		state:       SelectorIdle,
	}
}

func (s *EditingSession) State() SelectorState {
	return s.state
}

// SelectionService lets the owner browse the template catalog with live
// previews of their own in-progress record, and persists the chosen id as a
// single-field write decoupled from the rest of the form.
type SelectionService struct {
	profileRepo models.ProfileRepo
	events      models.TemplateEventRepo
	renderer    *templates.Renderer
	logger      *slog.Logger
}

func NewSelectionService(profileRepo models.ProfileRepo, events models.TemplateEventRepo, renderer *templates.Renderer, logger *slog.Logger) *SelectionService {
	return &SelectionService{
		profileRepo: profileRepo,
		events:      events,
		renderer:    renderer,
		logger:      logger,
	}
}

// Catalog returns the selectable templates in display order.
func (ss *SelectionService) Catalog() []templates.Descriptor {
	return templates.Descriptors()
}

// History returns the owner's selection and fallback audit trail, newest
// first.
func (ss *SelectionService) History(ctx context.Context, ownerID uuid.UUID, limit int) ([]*models.TemplateEvent, error) {
	if ss.events == nil {
		return nil, fmt.Errorf("template events are not configured")
	}
	return ss.events.GetTemplateEvents(ctx, ownerID, limit)
}

// OpenSelector transitions idle -> browsing. No side effect beyond state.
func (ss *SelectionService) OpenSelector(sess *EditingSession) {
	sess.state = SelectorBrowsing
}

// CloseSelector abandons browsing without changing the selection.
func (ss *SelectionService) CloseSelector(sess *EditingSession) {
	sess.state = SelectorIdle
}

// Preview renders the requested template against the session's current
// in-memory record at preview context. Pure; persisted state is untouched.
func (ss *SelectionService) Preview(ctx context.Context, sess *EditingSession, templateID string) templates.Presentation {
	record := sess.Record.Public()
	record.ProfileTemplate = templateID
	return ss.renderer.Render(ctx, record, templates.ContextPreview, EntryActions(record))
}

// Select sets the template on the in-memory record and persists that single
// field immediately, independent of whether the rest of the form was saved.
// On persistence failure the in-memory selection stands — it is the user's
// intent, and the next full save retries it.
func (ss *SelectionService) Select(ctx context.Context, sess *EditingSession, templateID string) error {
	resolved := templates.Resolve(templateID).ID
	if resolved != templateID {
		// Only reachable if a caller bypasses the catalog; resolve
		// defensively rather than persisting a broken id.
		ss.logger.Warn("Select called with unknown template id",
			"owner_id", sess.OwnerID,
			"requested", templateID,
			"resolved", resolved,
		)
		if ss.events != nil {
			if err := ss.events.RecordFallback(ctx, sess.OwnerID, templateID, resolved); err != nil {
				ss.logger.Warn("Failed to record fallback event", "error", err)
			}
		}
	}

	sess.Record.ProfileTemplate = resolved
	sess.state = SelectorIdle

	if err := ss.profileRepo.SetTemplate(ctx, sess.OwnerID, resolved, sess.AccessToken); err != nil {
		return fmt.Errorf("template selected but not saved: %v", err)
	}

	if ss.events != nil {
		if err := ss.events.RecordSelection(ctx, sess.OwnerID, resolved); err != nil {
			ss.logger.Warn("Failed to record selection event", "error", err)
		}
	}
	return nil
}
