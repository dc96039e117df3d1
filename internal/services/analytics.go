package services

import (
	"context"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"seo-spinner/internal/apperr"
	"seo-spinner/internal/models"

	"github.com/uptrace/bun"
)

const (
	highPerformerScore    = 80
	needsImprovementScore = 60
	keywordAnalysisLimit  = 50
	keywordSampleSize     = 100
	dashboardActivityDays = 30
	topContentLimit       = 10
)

type AnalyticsService struct {
	db *bun.DB
}

func NewAnalyticsService(db *bun.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// Dashboard aggregates generated content for one business.
func (s *AnalyticsService) Dashboard(ctx context.Context, businessID int64) (*models.Dashboard, error) {
	d := &models.Dashboard{
		ContentBySection: make([]models.SectionCount, 0),
		ContentByService: make([]models.ServiceCount, 0),
		ContentByCity:    make([]models.CityCount, 0),
		RecentActivity:   make([]models.DailyCount, 0),
		TopContent:       make([]models.GeneratedContentRow, 0),
	}

	var counts struct {
		Content  int `bun:"content"`
		Services int `bun:"services"`
		Areas    int `bun:"areas"`
	}
	err := s.db.NewRaw(`
		SELECT
			(SELECT COUNT(*) FROM generated_content WHERE business_id = ?0) AS content,
			(SELECT COUNT(*) FROM services WHERE business_id = ?0) AS services,
			(SELECT COUNT(*) FROM service_areas WHERE business_id = ?0) AS areas
	`, businessID).Scan(ctx, &counts)
	if err != nil {
		return nil, apperr.Database("dashboard counts", err)
	}

	err = s.db.NewRaw(`
		SELECT section_type, COUNT(*) AS count
		FROM generated_content
		WHERE business_id = ?
		GROUP BY section_type
		ORDER BY count DESC
	`, businessID).Scan(ctx, &d.ContentBySection)
	if err != nil {
		return nil, apperr.Database("dashboard sections", err)
	}

	err = s.db.NewRaw(`
		SELECT s.name AS service_name, COUNT(gc.id) AS count
		FROM services s
		LEFT JOIN generated_content gc ON gc.service_id = s.id AND gc.business_id = ?0
		WHERE s.business_id = ?0
		GROUP BY s.id, s.name
		ORDER BY count DESC
	`, businessID).Scan(ctx, &d.ContentByService)
	if err != nil {
		return nil, apperr.Database("dashboard services", err)
	}

	err = s.db.NewRaw(`
		SELECT sa.city, sa.state, COUNT(gc.id) AS count
		FROM service_areas sa
		LEFT JOIN generated_content gc ON gc.service_area_id = sa.id AND gc.business_id = ?0
		WHERE sa.business_id = ?0
		GROUP BY sa.id, sa.city, sa.state
		ORDER BY count DESC
	`, businessID).Scan(ctx, &d.ContentByCity)
	if err != nil {
		return nil, apperr.Database("dashboard cities", err)
	}

	err = s.db.NewRaw(`
		SELECT
			COALESCE(AVG(seo_score), 0)  AS avg_seo_score,
			COALESCE(MIN(seo_score), 0)  AS min_seo_score,
			COALESCE(MAX(seo_score), 0)  AS max_seo_score,
			COALESCE(AVG(word_count), 0) AS avg_word_count,
			COALESCE(MIN(word_count), 0) AS min_word_count,
			COALESCE(MAX(word_count), 0) AS max_word_count
		FROM generated_content
		WHERE business_id = ?
	`, businessID).Scan(ctx, &d.SEOStats)
	if err != nil {
		return nil, apperr.Database("dashboard seo stats", err)
	}

	since := time.Now().UTC().AddDate(0, 0, -dashboardActivityDays)
	err = s.db.NewRaw(`
		SELECT DATE(generated_at) AS date, COUNT(*) AS count
		FROM generated_content
		WHERE business_id = ? AND generated_at >= ?
		GROUP BY DATE(generated_at)
		ORDER BY date DESC
	`, businessID, since).Scan(ctx, &d.RecentActivity)
	if err != nil {
		return nil, apperr.Database("dashboard activity", err)
	}

	err = joinedContent(s.db.NewSelect().Model(&d.TopContent)).
		Where("gc.business_id = ?", businessID).
		OrderExpr("gc.seo_score DESC").
		Limit(topContentLimit).
		Scan(ctx)
	if err != nil {
		return nil, apperr.Database("dashboard top content", err)
	}

	possible := counts.Services * counts.Areas
	d.Summary = models.DashboardSummary{
		TotalContent:         counts.Content,
		TotalServices:        counts.Services,
		TotalAreas:           counts.Areas,
		PossibleCombinations: possible,
		CoveragePercentage:   coveragePercent(counts.Content, possible),
		AvgSEOScore:          int(math.Round(d.SEOStats.AvgSEOScore)),
		AvgWordCount:         int(math.Round(d.SEOStats.AvgWordCount)),
	}
	return d, nil
}

// coveragePercent is content rows per service x area pair. It can exceed 100
// because every template adds a row per pair.
func coveragePercent(content, possible int) int {
	if possible <= 0 {
		return 0
	}
	return int(math.Round(float64(content) / float64(possible) * 100))
}

// Keywords returns tracked keywords and the frequency of derived keywords in recent content.
func (s *AnalyticsService) Keywords(ctx context.Context, businessID int64) (*models.KeywordAnalysis, error) {
	stored := make([]models.Keyword, 0)
	err := s.db.NewSelect().
		Model(&stored).
		Where("k.business_id = ?", businessID).
		OrderExpr("k.relevance_score DESC").
		Scan(ctx)
	if err != nil {
		return nil, apperr.Database("load keywords", err)
	}

	var recent []struct {
		Keywords models.StringList `bun:"keywords"`
	}
	err = s.db.NewSelect().
		Model((*models.GeneratedContent)(nil)).
		Column("keywords").
		Where("gc.business_id = ?", businessID).
		OrderExpr("gc.generated_at DESC").
		Limit(keywordSampleSize).
		Scan(ctx, &recent)
	if err != nil {
		return nil, apperr.Database("load content keywords", err)
	}
	lists := make([]models.StringList, len(recent))
	for i, r := range recent {
		lists[i] = r.Keywords
	}

	return &models.KeywordAnalysis{
		Stored:       stored,
		Analysis:     keywordFrequency(lists, keywordAnalysisLimit),
		TotalContent: len(lists),
	}, nil
}

// keywordFrequency counts keywords across rows, most frequent first, ties by keyword.
func keywordFrequency(lists []models.StringList, limit int) []models.KeywordFrequency {
	counts := map[string]int{}
	for _, l := range lists {
		for _, k := range l {
			if k = strings.TrimSpace(k); k != "" {
				counts[k]++
			}
		}
	}
	out := make([]models.KeywordFrequency, 0, len(counts))
	for k, n := range counts {
		out = append(out, models.KeywordFrequency{Keyword: k, Frequency: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency > out[j].Frequency
		}
		return out[i].Keyword < out[j].Keyword
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (s *AnalyticsService) AddKeyword(ctx context.Context, businessID int64, req models.CreateKeywordRequest) (*models.Keyword, error) {
	if strings.TrimSpace(req.Keyword) == "" {
		return nil, apperr.Validation("Keyword is required")
	}
	k := &models.Keyword{
		BusinessID:       businessID,
		Keyword:          strings.TrimSpace(req.Keyword),
		SearchVolume:     req.SearchVolume,
		CompetitionLevel: req.CompetitionLevel,
		RelevanceScore:   req.RelevanceScore,
		IsTargetKeyword:  true,
		CreatedAt:        time.Now().UTC(),
	}
	if k.CompetitionLevel == "" {
		k.CompetitionLevel = "unknown"
	}
	if k.RelevanceScore == 0 {
		k.RelevanceScore = 50
	}
	if _, err := s.db.NewInsert().Model(k).Returning("id").Exec(ctx); err != nil {
		return nil, apperr.Database("add keyword", err)
	}
	return k, nil
}

// Performance builds the service x area matrix and classifies each pair.
func (s *AnalyticsService) Performance(ctx context.Context, businessID int64) (*models.Performance, error) {
	rows := make([]models.CombinationPerformance, 0)
	err := s.db.NewRaw(`
		SELECT
			s.name AS service_name,
			sa.city, sa.state,
			COUNT(gc.id) AS content_count,
			AVG(gc.seo_score) AS avg_seo_score,
			AVG(gc.word_count) AS avg_word_count,
			AVG(gc.readability_score) AS avg_readability_score,
			MAX(gc.generated_at) AS last_generated
		FROM services s
		CROSS JOIN service_areas sa
		LEFT JOIN generated_content gc ON gc.service_id = s.id AND gc.service_area_id = sa.id
		WHERE s.business_id = ?0 AND sa.business_id = ?0
		GROUP BY s.id, sa.id, s.name, sa.city, sa.state
		ORDER BY content_count DESC, avg_seo_score DESC NULLS LAST
	`, businessID).Scan(ctx, &rows)
	if err != nil {
		return nil, apperr.Database("performance matrix", err)
	}
	return classifyPerformance(rows), nil
}

func classifyPerformance(rows []models.CombinationPerformance) *models.Performance {
	p := &models.Performance{
		AllCombinations:  rows,
		ContentGaps:      make([]models.CombinationPerformance, 0),
		HighPerformers:   make([]models.CombinationPerformance, 0),
		NeedsImprovement: make([]models.CombinationPerformance, 0),
	}
	for _, r := range rows {
		if r.ContentCount == 0 {
			p.ContentGaps = append(p.ContentGaps, r)
			continue
		}
		if r.AvgSEOScore == nil {
			continue
		}
		switch {
		case *r.AvgSEOScore > highPerformerScore:
			p.HighPerformers = append(p.HighPerformers, r)
		case *r.AvgSEOScore < needsImprovementScore:
			p.NeedsImprovement = append(p.NeedsImprovement, r)
		}
	}
	p.Summary = models.PerformanceSummary{
		TotalCombinations:     len(rows),
		WithContent:           len(rows) - len(p.ContentGaps),
		GapsCount:             len(p.ContentGaps),
		HighPerformersCount:   len(p.HighPerformers),
		NeedsImprovementCount: len(p.NeedsImprovement),
	}
	return p
}

func (s *AnalyticsService) Exports(ctx context.Context, businessID int64) (*models.ExportStats, error) {
	stats := &models.ExportStats{
		ProjectStats:   make([]models.ProjectStat, 0),
		RecentProjects: make([]models.ContentProject, 0),
	}
	err := s.db.NewRaw(`
		SELECT status, export_format, COUNT(*) AS count
		FROM content_projects
		WHERE business_id = ?
		GROUP BY status, export_format
	`, businessID).Scan(ctx, &stats.ProjectStats)
	if err != nil {
		return nil, apperr.Database("project stats", err)
	}

	err = s.db.NewSelect().
		Model(&stats.RecentProjects).
		Where("cp.business_id = ?", businessID).
		OrderExpr("cp.updated_at DESC").
		Limit(10).
		Scan(ctx)
	if err != nil {
		return nil, apperr.Database("recent projects", err)
	}
	return stats, nil
}

// Track records an externally observed metric for a generated row.
func (s *AnalyticsService) Track(ctx context.Context, contentID int64, req models.TrackMetricRequest) (*models.ContentMetric, error) {
	if strings.TrimSpace(req.MetricType) == "" || req.MetricValue == nil {
		return nil, apperr.Validation("Metric type and value are required")
	}
	m := &models.ContentMetric{
		GeneratedContentID: contentID,
		MetricType:         strings.TrimSpace(req.MetricType),
		MetricValue:        *req.MetricValue,
		DateRecorded:       time.Now().UTC().Truncate(24 * time.Hour),
		Source:             req.Source,
	}
	if m.Source == "" {
		m.Source = "manual"
	}
	if _, err := s.db.NewInsert().Model(m).Returning("id").Exec(ctx); err != nil {
		return nil, apperr.Database("track metric", err)
	}
	return m, nil
}

// Trends returns per-day generation and section counts over the last days.
func (s *AnalyticsService) Trends(ctx context.Context, businessID int64, days int) (*models.Trends, error) {
	if days <= 0 || days > 365 {
		days = 30
	}
	since := time.Now().UTC().AddDate(0, 0, -days)

	t := &models.Trends{
		Generation: make([]models.GenerationTrend, 0),
		Sections:   make([]models.SectionTrend, 0),
		Period:     strconv.Itoa(days) + " days",
	}
	err := s.db.NewRaw(`
		SELECT
			DATE(generated_at) AS date,
			COUNT(*) AS content_count,
			AVG(seo_score) AS avg_seo_score,
			AVG(word_count) AS avg_word_count
		FROM generated_content
		WHERE business_id = ? AND generated_at >= ?
		GROUP BY DATE(generated_at)
		ORDER BY date
	`, businessID, since).Scan(ctx, &t.Generation)
	if err != nil {
		return nil, apperr.Database("generation trends", err)
	}

	err = s.db.NewRaw(`
		SELECT DATE(generated_at) AS date, section_type, COUNT(*) AS count
		FROM generated_content
		WHERE business_id = ? AND generated_at >= ?
		GROUP BY DATE(generated_at), section_type
		ORDER BY date, section_type
	`, businessID, since).Scan(ctx, &t.Sections)
	if err != nil {
		return nil, apperr.Database("section trends", err)
	}
	return t, nil
}
