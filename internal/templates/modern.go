package templates

import (
	"github.com/mawuli-dev/glambook/internal/models"
)

const modernPreviewCapacity = 4

// renderModern is the single-card layout: avatar and badges in a card header,
// availability and a compact portfolio grid in the card body.
func renderModern(p *models.PublicProfile, rc Context, actions []EntryAction) Presentation {
	pres := Presentation{
		TemplateID: TemplateModern,
		Context:    rc,
		Layout:     "card",
		Hero: Hero{
			Name:      displayName(p),
			Initial:   initial(p),
			Tagline:   p.Bio,
			AvatarURL: p.AvatarURL,
			Actions:   actions,
		},
	}

	// Category, city and price surface as header badges rather than a
	// sidebar in this layout.
	var header []Badge
	if p.Category != "" {
		header = append(header, Badge{Label: p.Category})
	}
	if p.City != "" {
		header = append(header, Badge{Label: p.City})
	}
	if p.PriceRange != "" {
		header = append(header, Badge{Label: p.PriceRange})
	}
	pres.Sections = append(pres.Sections, Section{
		Kind:   "highlights",
		Badges: header,
	})

	pres.Sections = append(pres.Sections, Section{
		Kind:   "availability",
		Title:  "Available",
		Badges: dayBadges(p.AvailableDays),
	})

	pres.Sections = append(pres.Sections, Section{
		Kind:  "portfolio",
		Title: "Portfolio",
		Tiles: portfolioTiles(p.PortfolioImages, modernPreviewCapacity, rc),
	})

	return pres
}
