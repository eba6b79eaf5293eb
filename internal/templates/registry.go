package templates

import (
	"github.com/mawuli-dev/glambook/internal/models"
)

// RenderFunc projects a privacy-filtered record into a presentation tree.
// It must be total: absent optional fields become placeholders, never errors.
type RenderFunc func(p *models.PublicProfile, rc Context, actions []EntryAction) Presentation

// Descriptor is one registered presentation variant. Descriptors are defined
// at startup and immutable thereafter; a record references one by ID.
type Descriptor struct {
	ID          string     `json:"id"`
	DisplayName string     `json:"display_name"`
	Description string     `json:"description"`
	Render      RenderFunc `json:"-"`
}

const (
	TemplateClassic = "classic"
	TemplateModern  = "modern"
	TemplateMinimal = "minimal"
)

// registry order defines display order in the selection UI. The first entry
// doubles as the fallback for any unknown or absent template id.
var registry = []Descriptor{
	{
		ID:          TemplateClassic,
		DisplayName: "Classic",
		Description: "Banner hero with a masonry portfolio and a sidebar of quick info.",
		Render:      renderClassic,
	},
	{
		ID:          TemplateModern,
		DisplayName: "Modern Card",
		Description: "Everything on a single elevated card with a compact portfolio grid.",
		Render:      renderModern,
	},
	{
		ID:          TemplateMinimal,
		DisplayName: "Minimal Elegant",
		Description: "Centered layout with social links and a square portfolio grid.",
		Render:      renderMinimal,
	},
}

// DefaultID is the identifier substituted for unknown or absent template ids.
func DefaultID() string {
	return registry[0].ID
}

// Resolve is total: any id not present in the registry resolves to the
// default descriptor. A stale or corrupted record can therefore always be
// rendered.
func Resolve(id string) Descriptor {
	for _, d := range registry {
		if d.ID == id {
			return d
		}
	}
	return registry[0]
}

// Known reports whether id names a registered template.
func Known(id string) bool {
	for _, d := range registry {
		if d.ID == id {
			return true
		}
	}
	return false
}

// Descriptors returns the catalog in display order. The slice is a copy;
// the registry itself never changes after process start.
func Descriptors() []Descriptor {
	out := make([]Descriptor, len(registry))
	copy(out, registry)
	return out
}
