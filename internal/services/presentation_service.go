package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mawuli-dev/glambook/internal/models"
	"github.com/mawuli-dev/glambook/internal/templates"
)

// PublicPage is the response body of the public profile route: the rendered
// presentation plus the collaborator entry payloads and the shared overlay
// image sequence.
type PublicPage struct {
	Presentation templates.Presentation `json:"presentation"`
	// OverlayImages backs the shared full-image viewer. It is the full
	// ordered portfolio regardless of template, since the overlay is a
	// cross-template concern; at most one image is enlarged at a time.
	OverlayImages []string              `json:"overlay_images,omitempty"`
	Booking       templates.EntryAction `json:"booking"`
	Payment       templates.EntryAction `json:"payment"`
}

// EntryActions builds the injected booking and payment capabilities for a
// record. Templates place these without knowing either collaborator.
func EntryActions(p *models.PublicProfile) []templates.EntryAction {
	providerName := p.FullName
	if providerName == "" {
		providerName = "Provider"
	}

	return []templates.EntryAction{
		{
			Kind:  "book",
			Label: "Book Me",
			Payload: map[string]interface{}{
				"provider_id": p.ID.String(),
			},
		},
		{
			Kind:  "pay",
			Label: "Pay Now",
			Payload: map[string]interface{}{
				"provider_id":     p.ID.String(),
				"provider_name":   providerName,
				"expected_amount": p.ExpectedPaymentAmount,
			},
		},
	}
}

// PresentationService is the public host: it reads the privacy-filtered
// record, renders it at public context and tracks anonymous page views.
type PresentationService struct {
	profileRepo models.ProfileRepo
	views       models.ProfileViewsRepo
	renderer    *templates.Renderer
	logger      *slog.Logger
}

func NewPresentationService(profileRepo models.ProfileRepo, views models.ProfileViewsRepo, renderer *templates.Renderer, logger *slog.Logger) *PresentationService {
	return &PresentationService{
		profileRepo: profileRepo,
		views:       views,
		renderer:    renderer,
		logger:      logger,
	}
}

// GetPublicPage returns the rendered page for an owner id, or
// models.ErrProfileNotFound for the stable not-found state.
func (ps *PresentationService) GetPublicPage(ctx context.Context, ownerID uuid.UUID) (*PublicPage, error) {
	profile, err := ps.profileRepo.GetPublicProfile(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	actions := EntryActions(profile)
	presentation := ps.renderer.Render(ctx, profile, templates.ContextPublic, actions)

	overlay := profile.PortfolioImages
	if len(overlay) > models.MaxPortfolioImages {
		overlay = overlay[:models.MaxPortfolioImages]
	}

	return &PublicPage{
		Presentation:  presentation,
		OverlayImages: overlay,
		Booking:       actions[0],
		Payment:       actions[1],
	}, nil
}

// TrackView records one anonymous visit. Failures are logged, never surfaced:
// view stats must not break the public page.
func (ps *PresentationService) TrackView(ctx context.Context, ownerID uuid.UUID, sessionID, ip, userAgent string) {
	if ps.views == nil || sessionID == "" {
		return
	}
	view := &models.ProfileView{
		OwnerID:   ownerID.String(),
		SessionID: sessionID,
		IPAddress: ip,
		UserAgent: userAgent,
	}
	if err := ps.views.TrackProfileView(ctx, view); err != nil {
		ps.logger.Warn("Failed to track profile view", "owner_id", ownerID, "error", err)
	}
}

func (ps *PresentationService) ViewStats(ctx context.Context, ownerID uuid.UUID) (*models.ProfileViewStats, error) {
	if ps.views == nil {
		return nil, fmt.Errorf("view tracking is not configured")
	}
	return ps.views.GetProfileViewStats(ctx, ownerID.String())
}
