package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"seo-spinner/internal/apperr"
	"seo-spinner/internal/models"

	"github.com/uptrace/bun"
)

// ContentStore is the bun implementation of GenerationStore.
type ContentStore struct {
	db bun.IDB
}

func NewContentStore(db bun.IDB) *ContentStore {
	return &ContentStore{db: db}
}

func (s *ContentStore) GetBusiness(ctx context.Context, id int64) (*models.Business, error) {
	var b models.Business
	err := s.db.NewSelect().Model(&b).Where("b.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Business", fmt.Sprintf("id %d", id))
		}
		return nil, apperr.Database("load business", err)
	}
	return &b, nil
}

// ServicesByIDs returns the services in ids that belong to businessID.
func (s *ContentStore) ServicesByIDs(ctx context.Context, businessID int64, ids []int64) ([]models.Service, error) {
	var rows []models.Service
	err := s.db.NewSelect().
		Model(&rows).
		Where("s.business_id = ?", businessID).
		Where("s.id IN (?)", bun.In(ids)).
		Scan(ctx)
	if err != nil {
		return nil, apperr.Database("load services", err)
	}
	return rows, nil
}

// AreasByIDs returns the service areas in ids that belong to businessID.
func (s *ContentStore) AreasByIDs(ctx context.Context, businessID int64, ids []int64) ([]models.ServiceArea, error) {
	var rows []models.ServiceArea
	err := s.db.NewSelect().
		Model(&rows).
		Where("sa.business_id = ?", businessID).
		Where("sa.id IN (?)", bun.In(ids)).
		Scan(ctx)
	if err != nil {
		return nil, apperr.Database("load service areas", err)
	}
	return rows, nil
}

func (s *ContentStore) ActiveTemplatesByIDs(ctx context.Context, ids []int64) ([]models.ContentTemplate, error) {
	var rows []models.ContentTemplate
	err := s.db.NewSelect().
		Model(&rows).
		Where("ct.id IN (?)", bun.In(ids)).
		Where("ct.is_active = TRUE").
		Scan(ctx)
	if err != nil {
		return nil, apperr.Database("load templates", err)
	}
	return rows, nil
}

// InsertGeneratedContent inserts row and sets row.ID.
func (s *ContentStore) InsertGeneratedContent(ctx context.Context, row *models.GeneratedContent) error {
	_, err := s.db.NewInsert().Model(row).Returning("id").Exec(ctx)
	if err != nil {
		return apperr.Database("insert generated content", err)
	}
	return nil
}
