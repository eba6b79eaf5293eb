package templates

import (
	"github.com/mawuli-dev/glambook/internal/models"
)

const minimalPreviewCapacity = 3

// renderMinimal is the centered layout: avatar, name and tagline stacked,
// social links under the header, square portfolio grid at the bottom.
func renderMinimal(p *models.PublicProfile, rc Context, actions []EntryAction) Presentation {
	tagline := p.Category
	if tagline == "" {
		tagline = PlaceholderTagline
	}

	pres := Presentation{
		TemplateID: TemplateMinimal,
		Context:    rc,
		Layout:     "centered",
		Hero: Hero{
			Name:      displayName(p),
			Initial:   initial(p),
			Tagline:   tagline,
			AvatarURL: p.AvatarURL,
			Actions:   actions,
		},
	}

	pres.Sections = append(pres.Sections, Section{
		Kind:  "social",
		Links: socialLinks(p.SocialAccounts),
	})

	if p.Bio != "" {
		pres.Sections = append(pres.Sections, Section{
			Kind: "bio",
			Text: p.Bio,
		})
	}

	pres.Sections = append(pres.Sections, Section{
		Kind:   "availability",
		Badges: dayBadges(p.AvailableDays),
	})

	if p.PriceRange != "" {
		pres.Sections = append(pres.Sections, Section{
			Kind: "price",
			Text: p.PriceRange,
		})
	}

	pres.Sections = append(pres.Sections, Section{
		Kind:  "portfolio",
		Tiles: portfolioTiles(p.PortfolioImages, minimalPreviewCapacity, rc),
	})

	return pres
}
