package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Keyword is a phrase a business tracks.
type Keyword struct {
	bun.BaseModel `bun:"table:keywords,alias:k"`

	ID               int64     `bun:"id,pk,autoincrement" json:"id"`
	BusinessID       int64     `bun:"business_id,notnull" json:"business_id"`
	Keyword          string    `bun:"keyword,notnull" json:"keyword"`
	SearchVolume     int       `bun:"search_volume,notnull,default:0" json:"search_volume"`
	CompetitionLevel string    `bun:"competition_level,notnull,default:'unknown'" json:"competition_level"`
	RelevanceScore   int       `bun:"relevance_score,notnull,default:50" json:"relevance_score"`
	IsTargetKeyword  bool      `bun:"is_target_keyword,notnull,default:true" json:"is_target_keyword"`
	CreatedAt        time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

type CreateKeywordRequest struct {
	Keyword          string `json:"keyword"`
	SearchVolume     int    `json:"searchVolume,omitempty"`
	CompetitionLevel string `json:"competitionLevel,omitempty"`
	RelevanceScore   int    `json:"relevanceScore,omitempty"`
}

// ContentMetric is an externally recorded measurement of a generated row.
type ContentMetric struct {
	bun.BaseModel `bun:"table:content_analytics,alias:ca"`

	ID                 int64     `bun:"id,pk,autoincrement" json:"id"`
	GeneratedContentID int64     `bun:"generated_content_id,notnull" json:"generated_content_id"`
	MetricType         string    `bun:"metric_type,notnull" json:"metric_type"`
	MetricValue        float64   `bun:"metric_value,notnull" json:"metric_value"`
	DateRecorded       time.Time `bun:"date_recorded,notnull,default:current_date" json:"date_recorded"`
	Source             string    `bun:"source,notnull,default:'manual'" json:"source"`
}

type TrackMetricRequest struct {
	MetricType  string   `json:"metricType"`
	MetricValue *float64 `json:"metricValue"`
	Source      string   `json:"source,omitempty"`
}

// Count rows for GROUP BY breakdowns.
type SectionCount struct {
	SectionType string `bun:"section_type" json:"section_type"`
	Count       int    `bun:"count" json:"count"`
}

type ServiceCount struct {
	ServiceName string `bun:"service_name" json:"service_name"`
	Count       int    `bun:"count" json:"count"`
}

type CityCount struct {
	City  string `bun:"city" json:"city"`
	State string `bun:"state" json:"state"`
	Count int    `bun:"count" json:"count"`
}

type SEOStats struct {
	AvgSEOScore  float64 `bun:"avg_seo_score" json:"avg_seo_score"`
	MinSEOScore  int     `bun:"min_seo_score" json:"min_seo_score"`
	MaxSEOScore  int     `bun:"max_seo_score" json:"max_seo_score"`
	AvgWordCount float64 `bun:"avg_word_count" json:"avg_word_count"`
	MinWordCount int     `bun:"min_word_count" json:"min_word_count"`
	MaxWordCount int     `bun:"max_word_count" json:"max_word_count"`
}

type DailyCount struct {
	Date  time.Time `bun:"date" json:"date"`
	Count int       `bun:"count" json:"count"`
}

type DashboardSummary struct {
	TotalContent         int `json:"totalContent"`
	TotalServices        int `json:"totalServices"`
	TotalAreas           int `json:"totalAreas"`
	PossibleCombinations int `json:"possibleCombinations"`
	CoveragePercentage   int `json:"coveragePercentage"`
	AvgSEOScore          int `json:"avgSeoScore"`
	AvgWordCount         int `json:"avgWordCount"`
}

type Dashboard struct {
	Summary          DashboardSummary      `json:"summary"`
	ContentBySection []SectionCount        `json:"contentBySection"`
	ContentByService []ServiceCount        `json:"contentByService"`
	ContentByCity    []CityCount           `json:"contentByCity"`
	SEOStats         SEOStats              `json:"seoStats"`
	RecentActivity   []DailyCount          `json:"recentActivity"`
	TopContent       []GeneratedContentRow `json:"topContent"`
}

type KeywordFrequency struct {
	Keyword   string `json:"keyword"`
	Frequency int    `json:"frequency"`
}

type KeywordAnalysis struct {
	Stored       []Keyword          `json:"stored"`
	Analysis     []KeywordFrequency `json:"analysis"`
	TotalContent int                `json:"totalContent"`
}

type CombinationPerformance struct {
	ServiceName         string     `bun:"service_name" json:"service_name"`
	City                string     `bun:"city" json:"city"`
	State               string     `bun:"state" json:"state"`
	ContentCount        int        `bun:"content_count" json:"content_count"`
	AvgSEOScore         *float64   `bun:"avg_seo_score" json:"avg_seo_score"`
	AvgWordCount        *float64   `bun:"avg_word_count" json:"avg_word_count"`
	AvgReadabilityScore *float64   `bun:"avg_readability_score" json:"avg_readability_score"`
	LastGenerated       *time.Time `bun:"last_generated" json:"last_generated"`
}

type PerformanceSummary struct {
	TotalCombinations     int `json:"totalCombinations"`
	WithContent           int `json:"withContent"`
	GapsCount             int `json:"gapsCount"`
	HighPerformersCount   int `json:"highPerformersCount"`
	NeedsImprovementCount int `json:"needsImprovementCount"`
}

type Performance struct {
	AllCombinations  []CombinationPerformance `json:"allCombinations"`
	ContentGaps      []CombinationPerformance `json:"contentGaps"`
	HighPerformers   []CombinationPerformance `json:"highPerformers"`
	NeedsImprovement []CombinationPerformance `json:"needsImprovement"`
	Summary          PerformanceSummary       `json:"summary"`
}

type ProjectStat struct {
	Status       string `bun:"status" json:"status"`
	ExportFormat string `bun:"export_format" json:"export_format"`
	Count        int    `bun:"count" json:"count"`
}

type ExportStats struct {
	ProjectStats   []ProjectStat    `json:"projectStats"`
	RecentProjects []ContentProject `json:"recentProjects"`
}

type GenerationTrend struct {
	Date         time.Time `bun:"date" json:"date"`
	ContentCount int       `bun:"content_count" json:"content_count"`
	AvgSEOScore  float64   `bun:"avg_seo_score" json:"avg_seo_score"`
	AvgWordCount float64   `bun:"avg_word_count" json:"avg_word_count"`
}

type SectionTrend struct {
	Date        time.Time `bun:"date" json:"date"`
	SectionType string    `bun:"section_type" json:"section_type"`
	Count       int       `bun:"count" json:"count"`
}

type Trends struct {
	Generation []GenerationTrend `json:"generation"`
	Sections   []SectionTrend    `json:"sections"`
	Period     string            `json:"period"`
}
