package templates

import (
	"context"
	"log/slog"

	"github.com/mawuli-dev/glambook/internal/models"
)

// FallbackFunc is notified when a stored template id had to degrade to the
// default. The degradation itself stays silent to viewers.
type FallbackFunc func(ctx context.Context, ownerID, requested, resolved string)

// Renderer dispatches a record to its selected template variant. Resolution
// is total, so Render never fails: an invalid or absent id renders with the
// default template.
type Renderer struct {
	logger     *slog.Logger
	onFallback FallbackFunc
}

func NewRenderer(logger *slog.Logger) *Renderer {
	return &Renderer{logger: logger}
}

// WithFallbackHook registers an observer for silent fallbacks.
func (r *Renderer) WithFallbackHook(fn FallbackFunc) *Renderer {
	r.onFallback = fn
	return r
}

func (r *Renderer) Render(ctx context.Context, p *models.PublicProfile, rc Context, actions []EntryAction) Presentation {
	requested := p.ProfileTemplate
	descriptor := Resolve(requested)

	if requested != "" && requested != descriptor.ID {
		if r.logger != nil {
			r.logger.Warn("Unknown template id, rendering default",
				"owner_id", p.ID,
				"requested", requested,
				"resolved", descriptor.ID,
			)
		}
		if r.onFallback != nil {
			r.onFallback(ctx, p.ID.String(), requested, descriptor.ID)
		}
	}

	return descriptor.Render(p, rc, actions)
}
