package models

import (
	"time"

	"github.com/uptrace/bun"
)

// SectionType is the page section a template produces.
type SectionType string

const (
	SectionHero         SectionType = "hero"
	SectionAbout        SectionType = "about"
	SectionServices     SectionType = "services"
	SectionTestimonials SectionType = "testimonials"
	SectionFinancing    SectionType = "financing"
	SectionServiceAreas SectionType = "service_areas"
	SectionWhyChoose    SectionType = "why_choose"
	SectionReviews      SectionType = "reviews"
)

// SectionTypes lists every section in display order.
var SectionTypes = []SectionType{
	SectionHero, SectionAbout, SectionServices, SectionTestimonials,
	SectionFinancing, SectionServiceAreas, SectionWhyChoose, SectionReviews,
}

func (s SectionType) Valid() bool {
	for _, t := range SectionTypes {
		if s == t {
			return true
		}
	}
	return false
}

// ContentTemplate is a shared body with {PLACEHOLDER} tokens.
type ContentTemplate struct {
	bun.BaseModel `bun:"table:content_templates,alias:ct"`

	ID              int64       `bun:"id,pk,autoincrement" json:"id"`
	Name            string      `bun:"name,notnull" json:"name"`
	SectionType     SectionType `bun:"section_type,notnull" json:"section_type"`
	TemplateContent string      `bun:"template_content,notnull" json:"template_content"`
	Variables       StringList  `bun:"variables,type:jsonb" json:"variables"`
	Tone            *BrandVoice `bun:"tone" json:"tone,omitempty"`
	WordCountTarget int         `bun:"word_count_target,notnull,default:150" json:"word_count_target"`
	IsActive        bool        `bun:"is_active,notnull,default:true" json:"is_active"`
	CreatedAt       time.Time   `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}
