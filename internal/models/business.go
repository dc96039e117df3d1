package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// BrandVoice is the tone a business wants its copy written in.
type BrandVoice string

const (
	VoiceProfessional  BrandVoice = "professional"
	VoiceFriendly      BrandVoice = "friendly"
	VoiceAuthoritative BrandVoice = "authoritative"
	VoiceCasual        BrandVoice = "casual"
)

// Valid reports whether v is a known voice.
func (v BrandVoice) Valid() bool {
	switch v {
	case VoiceProfessional, VoiceFriendly, VoiceAuthoritative, VoiceCasual:
		return true
	}
	return false
}

// Business is the intake record for a local business.
type Business struct {
	bun.BaseModel `bun:"table:businesses,alias:b"`

	ID                  int64      `bun:"id,pk,autoincrement" json:"id"`
	Name                string     `bun:"name,notnull" json:"name"`
	Industry            string     `bun:"industry,notnull" json:"industry"`
	PrimaryLocation     string     `bun:"primary_location,notnull" json:"primary_location"`
	WebsiteURL          *string    `bun:"website_url" json:"website_url,omitempty"`
	Phone               *string    `bun:"phone" json:"phone,omitempty"`
	Email               *string    `bun:"email" json:"email,omitempty"`
	Description         *string    `bun:"description" json:"description,omitempty"`
	UniqueSellingPoints StringList `bun:"unique_selling_points,type:jsonb" json:"unique_selling_points"`
	TargetAudience      *string    `bun:"target_audience" json:"target_audience,omitempty"`
	BrandVoice          BrandVoice `bun:"brand_voice,notnull,default:'professional'" json:"brand_voice"`
	CreatedAt           time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt           time.Time  `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// CreateBusinessRequest is the intake form payload.
type CreateBusinessRequest struct {
	Name                string     `json:"name"`
	Industry            string     `json:"industry"`
	PrimaryLocation     string     `json:"primary_location"`
	WebsiteURL          string     `json:"website_url,omitempty"`
	Phone               string     `json:"phone,omitempty"`
	Email               string     `json:"email,omitempty"`
	Description         string     `json:"description,omitempty"`
	UniqueSellingPoints StringList `json:"unique_selling_points,omitempty"`
	TargetAudience      string     `json:"target_audience,omitempty"`
	BrandVoice          BrandVoice `json:"brand_voice,omitempty"`
}

// Validate checks required intake fields.
func (r CreateBusinessRequest) Validate() error {
	var missing []string
	if strings.TrimSpace(r.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(r.Industry) == "" {
		missing = append(missing, "industry")
	}
	if strings.TrimSpace(r.PrimaryLocation) == "" {
		missing = append(missing, "primary_location")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	if r.BrandVoice != "" && !r.BrandVoice.Valid() {
		return fmt.Errorf("brand_voice must be one of: professional, friendly, authoritative, casual")
	}
	return nil
}

// ToModel converts the payload to a row, applying defaults.
func (r CreateBusinessRequest) ToModel() *Business {
	voice := r.BrandVoice
	if voice == "" {
		voice = VoiceProfessional
	}
	now := time.Now().UTC()
	return &Business{
		Name:                strings.TrimSpace(r.Name),
		Industry:            strings.TrimSpace(r.Industry),
		PrimaryLocation:     strings.TrimSpace(r.PrimaryLocation),
		WebsiteURL:          optional(r.WebsiteURL),
		Phone:               optional(r.Phone),
		Email:               optional(r.Email),
		Description:         optional(r.Description),
		UniqueSellingPoints: r.UniqueSellingPoints.Clean(),
		TargetAudience:      optional(r.TargetAudience),
		BrandVoice:          voice,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// BusinessDetail is a business with its services and areas.
type BusinessDetail struct {
	Business     *Business     `json:"business"`
	Services     []Service     `json:"services"`
	ServiceAreas []ServiceArea `json:"serviceAreas"`
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns *p or fallback when p is nil or blank.
func Deref(p *string, fallback string) string {
	if p == nil || strings.TrimSpace(*p) == "" {
		return fallback
	}
	return *p
}
