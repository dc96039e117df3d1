package models

import (
	"time"

	"github.com/uptrace/bun"
)

// GeneratedContent is one persisted (service, area, template) output.
type GeneratedContent struct {
	bun.BaseModel `bun:"table:generated_content,alias:gc"`

	ID               int64       `bun:"id,pk,autoincrement" json:"id"`
	BusinessID       int64       `bun:"business_id,notnull" json:"business_id"`
	ServiceID        int64       `bun:"service_id,notnull" json:"service_id"`
	ServiceAreaID    int64       `bun:"service_area_id,notnull" json:"service_area_id"`
	TemplateID       int64       `bun:"template_id,notnull" json:"template_id"`
	SectionType      SectionType `bun:"section_type,notnull" json:"section_type"`
	Content          string      `bun:"content,notnull" json:"content"`
	WordCount        int         `bun:"word_count" json:"word_count"`
	SEOScore         int         `bun:"seo_score" json:"seo_score"`
	ReadabilityScore int         `bun:"readability_score" json:"readability_score"`
	Keywords         StringList  `bun:"keywords,type:jsonb" json:"keywords"`
	MetaTitle        string      `bun:"meta_title" json:"meta_title"`
	MetaDescription  string      `bun:"meta_description" json:"meta_description"`
	Enhanced         bool        `bun:"enhanced,notnull,default:false" json:"enhanced"`
	GeneratedAt      time.Time   `bun:"generated_at,notnull,default:current_timestamp" json:"generated_at"`
}

// GeneratedContentRow is a generated row joined with its service, area and template names.
type GeneratedContentRow struct {
	GeneratedContent `bun:",extend"`

	ServiceName  string `bun:"service_name" json:"service_name"`
	City         string `bun:"city" json:"city"`
	State        string `bun:"state" json:"state"`
	TemplateName string `bun:"template_name" json:"template_name"`
}

// GenerationRequest is the body of POST /content/generate.
type GenerationRequest struct {
	BusinessID      int64   `json:"businessId"`
	ServiceIDs      []int64 `json:"serviceIds"`
	ServiceAreaIDs  []int64 `json:"serviceAreaIds"`
	TemplateIDs     []int64 `json:"templateIds"`
	Tone            string  `json:"tone,omitempty"`
	WordCountTarget int     `json:"wordCountTarget,omitempty"`
	CustomPrompt    string  `json:"customPrompt,omitempty"`
}

// GeneratedItem summarises one successful combination.
type GeneratedItem struct {
	ID              int64              `json:"id"`
	Service         string             `json:"service"`
	Area            string             `json:"area"`
	Section         SectionType        `json:"section"`
	Template        string             `json:"template"`
	Content         string             `json:"content"`
	WordCount       int                `json:"wordCount"`
	SEOScore        int                `json:"seoScore"`
	KeywordDensity  map[string]float64 `json:"keywordDensity"`
	MetaTitle       string             `json:"metaTitle"`
	MetaDescription string             `json:"metaDescription"`
	Enhanced        bool               `json:"enhanced"`
}

// GenerationResult is what the orchestrator reports back.
type GenerationResult struct {
	Generated         []GeneratedItem `json:"generated"`
	TotalCombinations int             `json:"totalCombinations"`
}

// Failed is the number of attempted combinations that produced no row.
func (r *GenerationResult) Failed() int {
	return r.TotalCombinations - len(r.Generated)
}
