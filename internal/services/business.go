package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"seo-spinner/internal/apperr"
	"seo-spinner/internal/models"

	"github.com/uptrace/bun"
)

type BusinessService struct {
	db *bun.DB
}

func NewBusinessService(db *bun.DB) *BusinessService {
	return &BusinessService{db: db}
}

// List returns all businesses, newest first.
func (s *BusinessService) List(ctx context.Context) ([]models.Business, error) {
	businesses := make([]models.Business, 0)
	if err := s.db.NewSelect().Model(&businesses).OrderExpr("b.created_at DESC").Scan(ctx); err != nil {
		return nil, apperr.Database("list businesses", err)
	}
	return businesses, nil
}

func (s *BusinessService) Create(ctx context.Context, req models.CreateBusinessRequest) (*models.Business, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err.Error())
	}
	b := req.ToModel()
	if _, err := s.db.NewInsert().Model(b).Returning("id").Exec(ctx); err != nil {
		return nil, apperr.Database("create business", err)
	}
	return b, nil
}

// Get returns a business with its services and service areas.
func (s *BusinessService) Get(ctx context.Context, id int64) (*models.BusinessDetail, error) {
	var b models.Business
	if err := s.db.NewSelect().Model(&b).Where("b.id = ?", id).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Business", fmt.Sprintf("id %d", id))
		}
		return nil, apperr.Database("load business", err)
	}

	detail := &models.BusinessDetail{
		Business:     &b,
		Services:     make([]models.Service, 0),
		ServiceAreas: make([]models.ServiceArea, 0),
	}
	if err := s.db.NewSelect().Model(&detail.Services).
		Where("s.business_id = ?", id).
		OrderExpr("s.name ASC").
		Scan(ctx); err != nil {
		return nil, apperr.Database("load services", err)
	}
	if err := s.db.NewSelect().Model(&detail.ServiceAreas).
		Where("sa.business_id = ?", id).
		OrderExpr("sa.city ASC").
		Scan(ctx); err != nil {
		return nil, apperr.Database("load service areas", err)
	}
	return detail, nil
}

func (s *BusinessService) AddService(ctx context.Context, businessID int64, req models.CreateServiceRequest) (*models.Service, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err.Error())
	}
	if err := s.requireBusiness(ctx, businessID); err != nil {
		return nil, err
	}
	svc := req.ToModel(businessID)
	if _, err := s.db.NewInsert().Model(svc).Returning("id").Exec(ctx); err != nil {
		return nil, apperr.Database("create service", err)
	}
	return svc, nil
}

// AddServicesBulk creates one service per non-blank name in a single transaction.
func (s *BusinessService) AddServicesBulk(ctx context.Context, businessID int64, names []string) ([]models.Service, error) {
	rows := make([]models.Service, 0, len(names))
	now := time.Now().UTC()
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			rows = append(rows, models.Service{BusinessID: businessID, Name: n, Benefits: models.StringList{}, CreatedAt: now})
		}
	}
	if len(rows) == 0 {
		return nil, apperr.Validation("services array is required")
	}
	if err := s.requireBusiness(ctx, businessID); err != nil {
		return nil, err
	}

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(&rows).Returning("id").Exec(ctx)
		return err
	})
	if err != nil {
		return nil, apperr.Database("bulk create services", err)
	}
	return rows, nil
}

func (s *BusinessService) DeleteService(ctx context.Context, id int64) error {
	res, err := s.db.NewDelete().Model((*models.Service)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return apperr.Database("delete service", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("Service", fmt.Sprintf("id %d", id))
	}
	return nil
}

func (s *BusinessService) requireBusiness(ctx context.Context, id int64) error {
	exists, err := s.db.NewSelect().Model((*models.Business)(nil)).Where("b.id = ?", id).Exists(ctx)
	if err != nil {
		return apperr.Database("check business", err)
	}
	if !exists {
		return apperr.NotFound("Business", fmt.Sprintf("id %d", id))
	}
	return nil
}
