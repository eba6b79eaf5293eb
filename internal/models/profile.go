package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// MaxPortfolioImages caps the portfolio regardless of how images arrive.
const MaxPortfolioImages = 10

// ErrPortfolioFull is returned before any upload is attempted when the
// portfolio already holds MaxPortfolioImages entries.
var ErrPortfolioFull = errors.New("portfolio is full: maximum of 10 images")

// WeekDays is the canonical display order for available_days badges.
var WeekDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// SocialPlatforms is the fixed set of supported social account keys, in
// display order. Unknown keys in a stored record are ignored when rendering.
var SocialPlatforms = []string{"instagram", "twitter", "facebook", "linkedin", "youtube"}

// Categories offered to the editor's category select.
var Categories = []string{
	"Makeup", "Hair Styling", "Bridal Makeup", "Nail Art", "Skincare",
	"Massage Therapy", "Waxing & Hair Removal", "Eyelash Extensions",
	"Brow Shaping", "Spa Treatments", "Beauty Consulting", "Other",
}

// PriceRanges offered to the editor's price select. "Custom" lets the owner
// type a free-form value.
var PriceRanges = []string{
	"₹500 - ₹1,000", "₹1,000 - ₹2,500", "₹2,500 - ₹5,000", "₹5,000+", "Custom",
}

// Profile is the owner's canonical record. The id equals the owning account
// id. Email is private and must never leave through the public read path.
type Profile struct {
	ID                    uuid.UUID         `db:"id" json:"id"`
	FullName              string            `db:"full_name" json:"full_name,omitempty"`
	Phone                 string            `db:"phone" json:"phone,omitempty"`
	City                  string            `db:"city" json:"city,omitempty"`
	Category              string            `db:"category" json:"category,omitempty"`
	Services              string            `db:"services" json:"services,omitempty"`
	PriceRange            string            `db:"price_range" json:"price_range,omitempty"`
	Bio                   string            `db:"bio" json:"bio,omitempty"`
	PortfolioImages       []string          `db:"portfolio_images" json:"portfolio_images,omitempty" validate:"max=10"`
	AvailableDays         []string          `db:"available_days" json:"available_days,omitempty" validate:"max=7"`
	AvatarURL             string            `db:"avatar_url" json:"avatar_url,omitempty"`
	BannerURL             string            `db:"banner_url" json:"banner_url,omitempty"`
	SocialAccounts        map[string]string `db:"social_accounts" json:"social_accounts,omitempty"`
	ExpectedPaymentAmount float64           `db:"expected_payment_amount" json:"expected_payment_amount,omitempty" validate:"gte=0"`
	ProfileTemplate       string            `db:"profile_template" json:"profile_template,omitempty"`
	Email                 string            `db:"email" json:"email,omitempty"`
	CreatedAt             time.Time         `db:"created_at" json:"created_at,omitempty"`
	UpdatedAt             time.Time         `db:"updated_at" json:"updated_at,omitempty"`
}

// PublicProfile is the privacy-filtered projection served to third parties.
// It has no Email field at all, so a leak cannot survive marshalling even if
// the read boundary were bypassed.
type PublicProfile struct {
	ID                    uuid.UUID         `json:"id"`
	FullName              string            `json:"full_name,omitempty"`
	City                  string            `json:"city,omitempty"`
	Category              string            `json:"category,omitempty"`
	Services              string            `json:"services,omitempty"`
	PriceRange            string            `json:"price_range,omitempty"`
	Bio                   string            `json:"bio,omitempty"`
	PortfolioImages       []string          `json:"portfolio_images,omitempty"`
	AvailableDays         []string          `json:"available_days,omitempty"`
	AvatarURL             string            `json:"avatar_url,omitempty"`
	BannerURL             string            `json:"banner_url,omitempty"`
	SocialAccounts        map[string]string `json:"social_accounts,omitempty"`
	ExpectedPaymentAmount float64           `json:"expected_payment_amount,omitempty"`
	ProfileTemplate       string            `json:"profile_template,omitempty"`
}

// Public projects the owner record into its public shape. Phone and email
// stay behind; everything a template renders comes through here.
func (p *Profile) Public() *PublicProfile {
	return &PublicProfile{
		ID:                    p.ID,
		FullName:              p.FullName,
		City:                  p.City,
		Category:              p.Category,
		Services:              p.Services,
		PriceRange:            p.PriceRange,
		Bio:                   p.Bio,
		PortfolioImages:       p.PortfolioImages,
		AvailableDays:         p.AvailableDays,
		AvatarURL:             p.AvatarURL,
		BannerURL:             p.BannerURL,
		SocialAccounts:        p.SocialAccounts,
		ExpectedPaymentAmount: p.ExpectedPaymentAmount,
		ProfileTemplate:       p.ProfileTemplate,
	}
}

// AddPortfolioImage appends an uploaded image URL, enforcing the cap. The
// caller is expected to check CanAddPortfolioImage before uploading so a
// rejected add never costs an upload.
func (p *Profile) AddPortfolioImage(url string) error {
	if len(p.PortfolioImages) >= MaxPortfolioImages {
		return ErrPortfolioFull
	}
	p.PortfolioImages = append(p.PortfolioImages, url)
	return nil
}

// CanAddPortfolioImage reports whether another image fits under the cap.
func (p *Profile) CanAddPortfolioImage() bool {
	return len(p.PortfolioImages) < MaxPortfolioImages
}

// RemovePortfolioImage drops the image at index, preserving display order of
// the rest. Out-of-range indexes are a no-op.
func (p *Profile) RemovePortfolioImage(index int) {
	if index < 0 || index >= len(p.PortfolioImages) {
		return
	}
	p.PortfolioImages = append(p.PortfolioImages[:index], p.PortfolioImages[index+1:]...)
}

// ToggleDay adds the day to the availability set or removes it if present.
// Unknown day names are ignored.
func (p *Profile) ToggleDay(day string) {
	if !isWeekDay(day) {
		return
	}
	for i, d := range p.AvailableDays {
		if d == day {
			p.AvailableDays = append(p.AvailableDays[:i], p.AvailableDays[i+1:]...)
			return
		}
	}
	p.AvailableDays = append(p.AvailableDays, day)
}

// NormalizeDays deduplicates a stored day set, drops unknown names and
// returns the remainder in canonical Monday..Sunday order.
func NormalizeDays(days []string) []string {
	present := make(map[string]bool, len(days))
	for _, d := range days {
		present[d] = true
	}
	var out []string
	for _, d := range WeekDays {
		if present[d] {
			out = append(out, d)
		}
	}
	return out
}

func isWeekDay(day string) bool {
	for _, d := range WeekDays {
		if d == day {
			return true
		}
	}
	return false
}
