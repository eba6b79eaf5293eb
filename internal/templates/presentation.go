// Package templates holds the registry of profile presentation variants and
// the pure render functions projecting one profile record into each of them.
package templates

import (
	"strconv"

	"github.com/mawuli-dev/glambook/internal/models"
)

// Context selects the rendering mode. Preview operates on the owner's
// in-progress record with compact grids; Public renders the persisted,
// privacy-filtered record with full grids.
type Context string

const (
	ContextPreview Context = "preview"
	ContextPublic  Context = "public"
)

// Placeholders substituted for absent optional fields so layout never breaks.
const (
	PlaceholderName    = "Your Name"
	PlaceholderTagline = "Beauty Professional"
)

// EntryAction is an injected capability, not navigation. The host wires it
// to the booking or payment collaborator; templates only place it.
type EntryAction struct {
	Kind    string                 `json:"kind"`
	Label   string                 `json:"label"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// Presentation is the abstract renderable tree a template produces. It is
// deliberately not tied to any UI technology; clients paint it.
type Presentation struct {
	TemplateID string    `json:"template_id"`
	Context    Context   `json:"context"`
	Layout     string    `json:"layout"`
	Hero       Hero      `json:"hero"`
	Sections   []Section `json:"sections"`
}

type Hero struct {
	Name      string        `json:"name"`
	Initial   string        `json:"initial"`
	Tagline   string        `json:"tagline,omitempty"`
	AvatarURL string        `json:"avatar_url,omitempty"`
	BannerURL string        `json:"banner_url,omitempty"`
	Actions   []EntryAction `json:"actions"`
}

type Section struct {
	Kind   string       `json:"kind"`
	Title  string       `json:"title,omitempty"`
	Text   string       `json:"text,omitempty"`
	Tiles  []ImageTile  `json:"tiles,omitempty"`
	Badges []Badge      `json:"badges,omitempty"`
	Items  []InfoItem   `json:"items,omitempty"`
	Links  []SocialLink `json:"links,omitempty"`
}

// ImageTile is one cell of a portfolio grid. Placeholder tiles keep the grid
// shape stable when fewer images exist than the grid capacity.
type ImageTile struct {
	URL         string `json:"url,omitempty"`
	Alt         string `json:"alt"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

type Badge struct {
	Label  string `json:"label"`
	Active bool   `json:"active,omitempty"`
}

type InfoItem struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type SocialLink struct {
	Platform string `json:"platform"`
	Handle   string `json:"handle"`
}

// displayName falls back to the named placeholder, never an empty string.
func displayName(p *models.PublicProfile) string {
	if p.FullName == "" {
		return PlaceholderName
	}
	return p.FullName
}

// initial is the single-letter avatar fallback glyph.
func initial(p *models.PublicProfile) string {
	if p.FullName == "" {
		return "U"
	}
	return string([]rune(p.FullName)[0])
}

// portfolioTiles builds the grid tiles for a template of the given capacity.
// Preview takes a bounded prefix; public renders the full ordered sequence.
// Either way the grid is padded with placeholder tiles up to capacity.
func portfolioTiles(images []string, capacity int, rc Context) []ImageTile {
	if rc == ContextPreview && len(images) > capacity {
		images = images[:capacity]
	}
	if len(images) > models.MaxPortfolioImages {
		images = images[:models.MaxPortfolioImages]
	}

	tiles := make([]ImageTile, 0, max(len(images), capacity))
	for i, url := range images {
		tiles = append(tiles, ImageTile{URL: url, Alt: tileAlt(i)})
	}
	for i := len(tiles); i < capacity; i++ {
		tiles = append(tiles, ImageTile{Alt: "Empty slot", Placeholder: true})
	}
	return tiles
}

func tileAlt(i int) string {
	return "Portfolio " + strconv.Itoa(i+1)
}

// dayBadges renders the availability set in canonical week order regardless
// of insertion order.
func dayBadges(days []string) []Badge {
	normalized := models.NormalizeDays(days)
	badges := make([]Badge, 0, len(normalized))
	for _, d := range normalized {
		badges = append(badges, Badge{Label: d, Active: true})
	}
	return badges
}

// socialLinks keeps only known platforms with a non-empty value, in fixed
// platform order. Unknown keys are ignored for forward compatibility.
func socialLinks(accounts map[string]string) []SocialLink {
	var links []SocialLink
	for _, platform := range models.SocialPlatforms {
		if handle := accounts[platform]; handle != "" {
			links = append(links, SocialLink{Platform: platform, Handle: handle})
		}
	}
	return links
}

// quickInfo lists only the fields that are present.
func quickInfo(p *models.PublicProfile) []InfoItem {
	var items []InfoItem
	if p.Category != "" {
		items = append(items, InfoItem{Label: "Category", Value: p.Category})
	}
	if p.City != "" {
		items = append(items, InfoItem{Label: "Location", Value: p.City})
	}
	if p.Services != "" {
		items = append(items, InfoItem{Label: "Services", Value: p.Services})
	}
	if p.PriceRange != "" {
		items = append(items, InfoItem{Label: "Price Range", Value: p.PriceRange})
	}
	return items
}
