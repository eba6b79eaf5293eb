package templates

import (
	"github.com/mawuli-dev/glambook/internal/models"
)

// classicPreviewCapacity bounds the portfolio prefix in compact previews.
const classicPreviewCapacity = 6

// renderClassic is the banner-hero layout: full-width banner, avatar over it,
// masonry portfolio on the left, availability and quick info in a sidebar.
func renderClassic(p *models.PublicProfile, rc Context, actions []EntryAction) Presentation {
	pres := Presentation{
		TemplateID: TemplateClassic,
		Context:    rc,
		Layout:     "banner-hero",
		Hero: Hero{
			Name:      displayName(p),
			Initial:   initial(p),
			Tagline:   p.Bio,
			AvatarURL: p.AvatarURL,
			BannerURL: p.BannerURL,
			Actions:   actions,
		},
	}

	pres.Sections = append(pres.Sections, Section{
		Kind:  "portfolio",
		Title: "Portfolio",
		Tiles: portfolioTiles(p.PortfolioImages, classicPreviewCapacity, rc),
	})

	pres.Sections = append(pres.Sections, Section{
		Kind:   "availability",
		Title:  "Available Days",
		Badges: dayBadges(p.AvailableDays),
	})

	pres.Sections = append(pres.Sections, Section{
		Kind:  "info",
		Title: "Quick Info",
		Items: quickInfo(p),
	})

	return pres
}
