package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"seo-spinner/internal/apperr"
	"seo-spinner/internal/config"
	"seo-spinner/internal/content"
	"seo-spinner/internal/enhance"
	"seo-spinner/internal/metrics"
	"seo-spinner/internal/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// GenerationStore is the persistence the orchestrator needs.
type GenerationStore interface {
	GetBusiness(ctx context.Context, id int64) (*models.Business, error)
	ServicesByIDs(ctx context.Context, businessID int64, ids []int64) ([]models.Service, error)
	AreasByIDs(ctx context.Context, businessID int64, ids []int64) ([]models.ServiceArea, error)
	ActiveTemplatesByIDs(ctx context.Context, ids []int64) ([]models.ContentTemplate, error)
	InsertGeneratedContent(ctx context.Context, row *models.GeneratedContent) error
}

type GenerationService struct {
	store    GenerationStore
	enhancer *enhance.Enhancer
	workers  int
	dedupe   bool
	logr     *zap.Logger
}

func NewGenerationService(store GenerationStore, enhancer *enhance.Enhancer, cfg *config.Config, logr *zap.Logger) *GenerationService {
	workers := cfg.GenerationWorkers
	if workers < 1 {
		workers = 1
	}
	return &GenerationService{
		store:    store,
		enhancer: enhancer,
		workers:  workers,
		dedupe:   cfg.DedupeSelection,
		logr:     logr,
	}
}

type combo = content.Combination[models.Service, models.ServiceArea, models.ContentTemplate]

// Generate produces one GeneratedContent row per (service, area, template)
// combination. Failed combinations are logged and left out of the result;
// compare len(Generated) with TotalCombinations to detect them.
func (s *GenerationService) Generate(ctx context.Context, req models.GenerationRequest) (*models.GenerationResult, error) {
	start := time.Now()
	defer func() { metrics.GenerationDuration.Observe(time.Since(start).Seconds()) }()

	if req.BusinessID <= 0 || len(req.ServiceIDs) == 0 || len(req.ServiceAreaIDs) == 0 || len(req.TemplateIDs) == 0 {
		return nil, apperr.Validation("Missing required fields: businessId, serviceIds, serviceAreaIds, templateIds")
	}

	serviceIDs, areaIDs, templateIDs := req.ServiceIDs, req.ServiceAreaIDs, req.TemplateIDs
	if s.dedupe {
		serviceIDs, areaIDs, templateIDs = uniqueIDs(serviceIDs), uniqueIDs(areaIDs), uniqueIDs(templateIDs)
	}

	business, err := s.store.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		return nil, err
	}

	svcRows, err := s.store.ServicesByIDs(ctx, business.ID, serviceIDs)
	if err != nil {
		return nil, err
	}
	areaRows, err := s.store.AreasByIDs(ctx, business.ID, areaIDs)
	if err != nil {
		return nil, err
	}
	tmplRows, err := s.store.ActiveTemplatesByIDs(ctx, templateIDs)
	if err != nil {
		return nil, err
	}

	services := orderByIDs(serviceIDs, svcRows, func(v models.Service) int64 { return v.ID })
	areas := orderByIDs(areaIDs, areaRows, func(v models.ServiceArea) int64 { return v.ID })
	templates := orderByIDs(templateIDs, tmplRows, func(v models.ContentTemplate) int64 { return v.ID })

	s.warnUnresolved("services", serviceIDs, len(services))
	s.warnUnresolved("service areas", areaIDs, len(areas))
	s.warnUnresolved("templates", templateIDs, len(templates))

	if len(services) == 0 || len(areas) == 0 || len(templates) == 0 {
		s.logr.Warn("selection resolved to no combinations",
			zap.Int64("business_id", business.ID),
			zap.Int("services", len(services)),
			zap.Int("service_areas", len(areas)),
			zap.Int("templates", len(templates)))
		return &models.GenerationResult{Generated: []models.GeneratedItem{}, TotalCombinations: 0}, nil
	}

	total := content.Count(len(services), len(areas), len(templates))
	slots := make([]*models.GeneratedItem, total)

	run := func(c combo) {
		metrics.CombinationsAttempted.Inc()
		item, err := s.safeGenerateOne(ctx, business, c, req)
		if err != nil {
			code := "unknown"
			var ae *apperr.Error
			if errors.As(err, &ae) {
				code = string(ae.Code)
			}
			metrics.CombinationsFailed.WithLabelValues(code).Inc()
			s.logr.Error("failed to generate combination",
				zap.Int64("business_id", business.ID),
				zap.Int64("service_id", c.Service.ID),
				zap.Int64("service_area_id", c.Area.ID),
				zap.Int64("template_id", c.Template.ID),
				zap.Error(err))
			return
		}
		metrics.CombinationsGenerated.WithLabelValues(string(item.Section)).Inc()
		slots[c.Index] = item
	}

	combos := content.Product(services, areas, templates)
	if s.workers == 1 {
		for c := range combos {
			run(c)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(s.workers)
		for c := range combos {
			g.Go(func() error {
				run(c)
				return nil
			})
		}
		_ = g.Wait()
	}

	generated := make([]models.GeneratedItem, 0, total)
	for _, it := range slots {
		if it != nil {
			generated = append(generated, *it)
		}
	}

	s.logr.Info("content generation finished",
		zap.Int64("business_id", business.ID),
		zap.Int("total_combinations", total),
		zap.Int("generated", len(generated)))

	return &models.GenerationResult{Generated: generated, TotalCombinations: total}, nil
}

// safeGenerateOne turns a panic in one combination into that combination's error.
func (s *GenerationService) safeGenerateOne(ctx context.Context, b *models.Business, c combo, req models.GenerationRequest) (item *models.GeneratedItem, err error) {
	defer func() {
		if r := recover(); r != nil {
			item = nil
			err = apperr.Generation(
				fmt.Sprintf("%s / %s / %s", c.Service.Name, c.Area.Label(), c.Template.Name),
				fmt.Errorf("panic: %v", r))
		}
	}()
	return s.generateOne(ctx, b, c, req)
}

func (s *GenerationService) generateOne(ctx context.Context, b *models.Business, c combo, req models.GenerationRequest) (*models.GeneratedItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.Generation("request cancelled", err)
	}

	vars := content.BuildVariables(b, &c.Service, &c.Area)
	text := content.Substitute(c.Template.TemplateContent, vars)

	tone := strings.TrimSpace(req.Tone)
	if tone == "" {
		tone = string(b.BrandVoice)
	}
	target := req.WordCountTarget
	if target <= 0 {
		target = c.Template.WordCountTarget
	}

	text, enhanced := s.enhancer.Enhance(ctx, enhance.Input{
		Draft:           text,
		CustomPrompt:    req.CustomPrompt,
		BusinessName:    b.Name,
		Industry:        b.Industry,
		ServiceName:     c.Service.Name,
		City:            c.Area.City,
		State:           c.Area.State,
		Tone:            tone,
		WordCountTarget: target,
	})

	keywords := content.Keywords(b, &c.Service, &c.Area)
	row := &models.GeneratedContent{
		BusinessID:       b.ID,
		ServiceID:        c.Service.ID,
		ServiceAreaID:    c.Area.ID,
		TemplateID:       c.Template.ID,
		SectionType:      c.Template.SectionType,
		Content:          text,
		WordCount:        content.WordCount(text),
		SEOScore:         content.SEOScore(text, c.Service.Name, c.Area.City),
		ReadabilityScore: content.ReadabilityPlaceholder,
		Keywords:         keywords,
		MetaTitle:        content.MetaTitle(c.Service.Name, c.Area.City, c.Area.State, b.Name),
		MetaDescription:  content.MetaDescription(text),
		Enhanced:         enhanced,
		GeneratedAt:      time.Now().UTC(),
	}

	if err := s.store.InsertGeneratedContent(ctx, row); err != nil {
		return nil, apperr.Generation(fmt.Sprintf("%s / %s / %s", c.Service.Name, c.Area.Label(), c.Template.Name), err)
	}
	metrics.SEOScore.Observe(float64(row.SEOScore))

	return &models.GeneratedItem{
		ID:              row.ID,
		Service:         c.Service.Name,
		Area:            c.Area.Label(),
		Section:         row.SectionType,
		Template:        c.Template.Name,
		Content:         row.Content,
		WordCount:       row.WordCount,
		SEOScore:        row.SEOScore,
		KeywordDensity:  content.KeywordDensity(text, keywords),
		MetaTitle:       row.MetaTitle,
		MetaDescription: row.MetaDescription,
		Enhanced:        enhanced,
	}, nil
}

func (s *GenerationService) warnUnresolved(dimension string, requested []int64, resolved int) {
	if resolved < len(requested) {
		s.logr.Warn("some selected ids did not resolve and were skipped",
			zap.String("dimension", dimension),
			zap.Int64s("requested", requested),
			zap.Int("resolved", resolved))
	}
}

// uniqueIDs keeps the first occurrence of each id.
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// orderByIDs arranges rows in the order of ids. An id listed twice yields its
// row twice; ids with no row are skipped.
func orderByIDs[T any](ids []int64, rows []T, idOf func(T) int64) []T {
	byID := make(map[int64]T, len(rows))
	for _, r := range rows {
		byID[idOf(r)] = r
	}
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			out = append(out, r)
		}
	}
	return out
}
