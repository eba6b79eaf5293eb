package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestAddPortfolioImageCap(t *testing.T) {
	p := &Profile{ID: uuid.New()}
	for i := 0; i < MaxPortfolioImages; i++ {
		if err := p.AddPortfolioImage("https://cdn.example/img.jpg"); err != nil {
			t.Fatalf("image %d rejected: %v", i+1, err)
		}
	}
	if p.CanAddPortfolioImage() {
		t.Error("CanAddPortfolioImage = true with a full portfolio")
	}

	err := p.AddPortfolioImage("https://cdn.example/eleventh.jpg")
	if !errors.Is(err, ErrPortfolioFull) {
		t.Fatalf("11th image: got %v, want ErrPortfolioFull", err)
	}
	if len(p.PortfolioImages) != MaxPortfolioImages {
		t.Errorf("portfolio grew past the cap: %d images", len(p.PortfolioImages))
	}
}

func TestRemovePortfolioImage(t *testing.T) {
	p := &Profile{PortfolioImages: []string{"a.jpg", "b.jpg", "c.jpg"}}

	p.RemovePortfolioImage(1)
	if len(p.PortfolioImages) != 2 || p.PortfolioImages[0] != "a.jpg" || p.PortfolioImages[1] != "c.jpg" {
		t.Errorf("after removing index 1: %v", p.PortfolioImages)
	}

	// Out-of-range indexes leave the slice untouched.
	p.RemovePortfolioImage(-1)
	p.RemovePortfolioImage(5)
	if len(p.PortfolioImages) != 2 {
		t.Errorf("out-of-range remove changed the portfolio: %v", p.PortfolioImages)
	}
}

func TestPublicStripsContactFields(t *testing.T) {
	p := &Profile{
		ID:       uuid.New(),
		FullName: "Sarah Johnson",
		Email:    "sarah@example.com",
		Phone:    "+91 98765 43210",
		City:     "Mumbai",
	}

	pub := p.Public()
	raw, err := json.Marshal(pub)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), "sarah@example.com") {
		t.Error("public projection leaked the email address")
	}
	if strings.Contains(string(raw), "98765") {
		t.Error("public projection leaked the phone number")
	}
	if pub.FullName != p.FullName || pub.City != p.City {
		t.Error("public projection dropped displayable fields")
	}
}

func TestToggleDay(t *testing.T) {
	p := &Profile{}

	p.ToggleDay("Monday")
	p.ToggleDay("Friday")
	if len(p.AvailableDays) != 2 {
		t.Fatalf("after two toggles: %v", p.AvailableDays)
	}

	p.ToggleDay("Monday")
	if len(p.AvailableDays) != 1 || p.AvailableDays[0] != "Friday" {
		t.Errorf("toggle off failed: %v", p.AvailableDays)
	}

	p.ToggleDay("Funday")
	if len(p.AvailableDays) != 1 {
		t.Errorf("unknown day was stored: %v", p.AvailableDays)
	}
}

func TestNormalizeDays(t *testing.T) {
	got := NormalizeDays([]string{"Sunday", "Monday", "Monday", "Funday", "Wednesday"})
	want := []string{"Monday", "Wednesday", "Sunday"}
	if len(got) != len(want) {
		t.Fatalf("NormalizeDays = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("NormalizeDays = %v, want %v", got, want)
		}
	}

	if out := NormalizeDays(nil); out != nil {
		t.Errorf("NormalizeDays(nil) = %v, want nil", out)
	}
}

func TestProfileValidation(t *testing.T) {
	p := &Profile{ID: uuid.New(), ExpectedPaymentAmount: -50}
	if err := Validate.Struct(p); err == nil {
		t.Error("negative expected payment amount passed validation")
	}

	p.ExpectedPaymentAmount = 1500
	p.PortfolioImages = make([]string, MaxPortfolioImages+1)
	if err := Validate.Struct(p); err == nil {
		t.Error("oversized portfolio passed validation")
	}

	p.PortfolioImages = p.PortfolioImages[:MaxPortfolioImages]
	if err := Validate.Struct(p); err != nil {
		t.Errorf("valid profile rejected: %v", err)
	}
}
