package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"seo-spinner/internal/apperr"
	"seo-spinner/internal/config"
	"seo-spinner/internal/enhance"
	"seo-spinner/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memStore struct {
	mu        sync.Mutex
	business  *models.Business
	services  []models.Service
	areas     []models.ServiceArea
	templates []models.ContentTemplate
	inserted  []models.GeneratedContent
	nextID    int64
	failOn    func(row *models.GeneratedContent) bool
}

func (m *memStore) GetBusiness(_ context.Context, id int64) (*models.Business, error) {
	if m.business == nil || m.business.ID != id {
		return nil, apperr.NotFound("Business", fmt.Sprintf("id %d", id))
	}
	return m.business, nil
}

func (m *memStore) ServicesByIDs(_ context.Context, businessID int64, ids []int64) ([]models.Service, error) {
	var out []models.Service
	for _, s := range m.services {
		if s.BusinessID == businessID && slices.Contains(ids, s.ID) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStore) AreasByIDs(_ context.Context, businessID int64, ids []int64) ([]models.ServiceArea, error) {
	var out []models.ServiceArea
	for _, a := range m.areas {
		if a.BusinessID == businessID && slices.Contains(ids, a.ID) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memStore) ActiveTemplatesByIDs(_ context.Context, ids []int64) ([]models.ContentTemplate, error) {
	var out []models.ContentTemplate
	for _, t := range m.templates {
		if t.IsActive && slices.Contains(ids, t.ID) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memStore) InsertGeneratedContent(_ context.Context, row *models.GeneratedContent) error {
	if m.failOn != nil && m.failOn(row) {
		return errors.New("insert failed")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	row.ID = m.nextID
	m.inserted = append(m.inserted, *row)
	return nil
}

type stubGenerator struct {
	text string
	err  error
}

func (g stubGenerator) Generate(context.Context, []enhance.Message) (string, error) {
	return g.text, g.err
}

func fixtureStore() *memStore {
	return &memStore{
		business: &models.Business{ID: 1, Name: "Acme Plumbing", Industry: "Plumbing", PrimaryLocation: "Austin, TX", BrandVoice: models.VoiceFriendly},
		services: []models.Service{
			{ID: 1, BusinessID: 1, Name: "Drain Cleaning"},
			{ID: 2, BusinessID: 1, Name: "Water Heaters"},
			{ID: 9, BusinessID: 2, Name: "Other Business Service"},
		},
		areas: []models.ServiceArea{
			{ID: 1, BusinessID: 1, City: "Austin", State: "TX"},
			{ID: 2, BusinessID: 1, City: "Round Rock", State: "TX"},
			{ID: 3, BusinessID: 1, City: "Cedar Park", State: "TX"},
		},
		templates: []models.ContentTemplate{
			{ID: 1, Name: "Hero", SectionType: models.SectionHero, TemplateContent: "{COMPANY_NAME} offers {SERVICE_TYPE} in {CITY}, {STATE}.", WordCountTarget: 120, IsActive: true},
			{ID: 2, Name: "About", SectionType: models.SectionAbout, TemplateContent: "About {SERVICE_TYPE} for {TARGET_LOCATION}.", IsActive: true},
			{ID: 3, Name: "Retired", SectionType: models.SectionReviews, TemplateContent: "old", IsActive: false},
		},
	}
}

func newTestGenerationService(store GenerationStore, gen enhance.Generator, workers int) *GenerationService {
	cfg := &config.Config{GenerationWorkers: workers, DedupeSelection: true}
	enhancer := enhance.NewEnhancer(gen, time.Second, zap.NewNop())
	return NewGenerationService(store, enhancer, cfg, zap.NewNop())
}

func fullRequest() models.GenerationRequest {
	return models.GenerationRequest{
		BusinessID:     1,
		ServiceIDs:     []int64{1, 2},
		ServiceAreaIDs: []int64{1, 2, 3},
		TemplateIDs:    []int64{1, 2},
	}
}

func TestGenerate_AllCombinations(t *testing.T) {
	store := fixtureStore()
	svc := newTestGenerationService(store, nil, 1)

	res, err := svc.Generate(context.Background(), fullRequest())
	require.NoError(t, err)
	assert.Equal(t, 12, res.TotalCombinations)
	assert.Len(t, res.Generated, 12)
	assert.Zero(t, res.Failed())
	assert.Len(t, store.inserted, 12)

	first := res.Generated[0]
	assert.Equal(t, "Drain Cleaning", first.Service)
	assert.Equal(t, "Austin, TX", first.Area)
	assert.Equal(t, models.SectionHero, first.Section)
	assert.Equal(t, "Acme Plumbing offers Drain Cleaning in Austin, TX.", first.Content)
	assert.Equal(t, "Drain Cleaning in Austin, TX | Acme Plumbing", first.MetaTitle)
	assert.False(t, first.Enhanced)

	// service-major, then area, then template
	assert.Equal(t, models.SectionAbout, res.Generated[1].Section)
	assert.Equal(t, "Round Rock, TX", res.Generated[2].Area)
	assert.Equal(t, "Water Heaters", res.Generated[6].Service)

	row := store.inserted[0]
	assert.Equal(t, int64(1), row.BusinessID)
	assert.Equal(t, 75, row.ReadabilityScore)
	assert.NotEmpty(t, row.Keywords)
}

func TestGenerate_PartialFailure(t *testing.T) {
	store := fixtureStore()
	store.failOn = func(row *models.GeneratedContent) bool {
		return row.ServiceID == 2 && row.ServiceAreaID == 3 && row.TemplateID == 1
	}
	svc := newTestGenerationService(store, nil, 1)

	res, err := svc.Generate(context.Background(), fullRequest())
	require.NoError(t, err)
	assert.Equal(t, 12, res.TotalCombinations)
	assert.Len(t, res.Generated, 11)
	assert.Equal(t, 1, res.Failed())
	for _, g := range res.Generated {
		assert.False(t, g.Service == "Water Heaters" && g.Area == "Cedar Park, TX" && g.Section == models.SectionHero)
	}
}

func TestGenerate_Validation(t *testing.T) {
	svc := newTestGenerationService(fixtureStore(), nil, 1)

	cases := map[string]models.GenerationRequest{
		"no business":  {ServiceIDs: []int64{1}, ServiceAreaIDs: []int64{1}, TemplateIDs: []int64{1}},
		"no services":  {BusinessID: 1, ServiceAreaIDs: []int64{1}, TemplateIDs: []int64{1}},
		"no areas":     {BusinessID: 1, ServiceIDs: []int64{1}, TemplateIDs: []int64{1}},
		"no templates": {BusinessID: 1, ServiceIDs: []int64{1}, ServiceAreaIDs: []int64{1}},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Generate(context.Background(), req)
			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.CodeValidation))
		})
	}
}

func TestGenerate_BusinessNotFound(t *testing.T) {
	store := fixtureStore()
	svc := newTestGenerationService(store, nil, 1)

	req := fullRequest()
	req.BusinessID = 42
	_, err := svc.Generate(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
	assert.Empty(t, store.inserted)
}

func TestGenerate_UnresolvedIDs(t *testing.T) {
	store := fixtureStore()
	svc := newTestGenerationService(store, nil, 1)

	// 9 belongs to another business, 99 does not exist, 3 is inactive
	res, err := svc.Generate(context.Background(), models.GenerationRequest{
		BusinessID:     1,
		ServiceIDs:     []int64{9, 1},
		ServiceAreaIDs: []int64{99, 2},
		TemplateIDs:    []int64{3, 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalCombinations)
	require.Len(t, res.Generated, 1)
	assert.Equal(t, "Round Rock, TX", res.Generated[0].Area)
}

func TestGenerate_NothingResolves(t *testing.T) {
	store := fixtureStore()
	svc := newTestGenerationService(store, nil, 1)

	req := fullRequest()
	req.TemplateIDs = []int64{3}
	res, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Zero(t, res.TotalCombinations)
	assert.NotNil(t, res.Generated)
	assert.Empty(t, res.Generated)
	assert.Empty(t, store.inserted)
}

func TestGenerate_PanicInOneCombination(t *testing.T) {
	for _, workers := range []int{1, 4} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			store := fixtureStore()
			store.failOn = func(row *models.GeneratedContent) bool {
				if row.ServiceID == 1 && row.ServiceAreaID == 1 && row.TemplateID == 1 {
					var counts map[string]int
					counts["boom"]++
				}
				return false
			}
			svc := newTestGenerationService(store, nil, workers)

			var res *models.GenerationResult
			var err error
			require.NotPanics(t, func() {
				res, err = svc.Generate(context.Background(), fullRequest())
			})
			require.NoError(t, err)
			assert.Equal(t, 12, res.TotalCombinations)
			assert.Len(t, res.Generated, 11)
			assert.Equal(t, 1, res.Failed())
			assert.Len(t, store.inserted, 11)
		})
	}
}

func TestSafeGenerateOne_PanicBecomesGenerationError(t *testing.T) {
	store := fixtureStore()
	store.failOn = func(*models.GeneratedContent) bool { panic("store exploded") }
	svc := newTestGenerationService(store, nil, 1)

	c := combo{Service: store.services[0], Area: store.areas[0], Template: store.templates[0]}
	item, err := svc.safeGenerateOne(context.Background(), store.business, c, fullRequest())
	assert.Nil(t, item)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeGeneration))
	assert.Contains(t, errors.Unwrap(err).Error(), "panic: store exploded")
}

func TestGenerate_DedupeKeepsCallerOrder(t *testing.T) {
	store := fixtureStore()
	svc := newTestGenerationService(store, nil, 1)

	res, err := svc.Generate(context.Background(), models.GenerationRequest{
		BusinessID:     1,
		ServiceIDs:     []int64{2, 1, 2},
		ServiceAreaIDs: []int64{1, 1},
		TemplateIDs:    []int64{1},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalCombinations)
	require.Len(t, res.Generated, 2)
	assert.Equal(t, "Water Heaters", res.Generated[0].Service)
	assert.Equal(t, "Drain Cleaning", res.Generated[1].Service)
}

func TestGenerate_WithoutDedupe(t *testing.T) {
	store := fixtureStore()
	svc := newTestGenerationService(store, nil, 1)
	svc.dedupe = false

	res, err := svc.Generate(context.Background(), models.GenerationRequest{
		BusinessID:     1,
		ServiceIDs:     []int64{1, 1},
		ServiceAreaIDs: []int64{1},
		TemplateIDs:    []int64{1},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalCombinations)
	assert.Len(t, store.inserted, 2)
}

func TestGenerate_EnhancementFallback(t *testing.T) {
	store := fixtureStore()
	svc := newTestGenerationService(store, stubGenerator{err: errors.New("quota exceeded")}, 1)

	req := fullRequest()
	req.CustomPrompt = "mention same-day service"
	res, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Generated, 12)
	assert.Equal(t, "Acme Plumbing offers Drain Cleaning in Austin, TX.", res.Generated[0].Content)
	assert.False(t, res.Generated[0].Enhanced)
	assert.False(t, store.inserted[0].Enhanced)
}

func TestGenerate_Enhanced(t *testing.T) {
	store := fixtureStore()
	svc := newTestGenerationService(store, stubGenerator{text: "  Fast drain cleaning in Austin from Acme.  "}, 1)

	req := fullRequest()
	req.CustomPrompt = "mention same-day service"
	res, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Generated)
	assert.True(t, res.Generated[0].Enhanced)
	assert.Equal(t, "Fast drain cleaning in Austin from Acme.", res.Generated[0].Content)
	assert.Equal(t, 7, res.Generated[0].WordCount)
}

func TestGenerate_NoPromptSkipsEnhancement(t *testing.T) {
	svc := newTestGenerationService(fixtureStore(), stubGenerator{text: "rewritten"}, 1)

	res, err := svc.Generate(context.Background(), fullRequest())
	require.NoError(t, err)
	for _, g := range res.Generated {
		assert.False(t, g.Enhanced)
	}
}

func TestGenerate_ParallelKeepsOrder(t *testing.T) {
	seq, err := newTestGenerationService(fixtureStore(), nil, 1).Generate(context.Background(), fullRequest())
	require.NoError(t, err)

	store := fixtureStore()
	par, err := newTestGenerationService(store, nil, 4).Generate(context.Background(), fullRequest())
	require.NoError(t, err)

	require.Len(t, par.Generated, len(seq.Generated))
	for i := range seq.Generated {
		assert.Equal(t, seq.Generated[i].Service, par.Generated[i].Service)
		assert.Equal(t, seq.Generated[i].Area, par.Generated[i].Area)
		assert.Equal(t, seq.Generated[i].Section, par.Generated[i].Section)
		assert.Equal(t, seq.Generated[i].Content, par.Generated[i].Content)
	}
	assert.Len(t, store.inserted, 12)
}

func TestGenerate_CancelledContext(t *testing.T) {
	store := fixtureStore()
	svc := newTestGenerationService(store, nil, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := svc.Generate(ctx, fullRequest())
	require.NoError(t, err)
	assert.Equal(t, 12, res.TotalCombinations)
	assert.Empty(t, res.Generated)
	assert.Empty(t, store.inserted)
}

func TestUniqueIDs(t *testing.T) {
	assert.Equal(t, []int64{3, 1, 2}, uniqueIDs([]int64{3, 1, 3, 2, 1}))
	assert.Empty(t, uniqueIDs(nil))
}

func TestOrderByIDs(t *testing.T) {
	rows := []models.Service{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}
	got := orderByIDs([]int64{2, 7, 1, 2}, rows, func(s models.Service) int64 { return s.ID })
	var names []string
	for _, s := range got {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"b", "a", "b"}, names)
}
