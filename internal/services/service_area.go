package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"seo-spinner/internal/apperr"
	"seo-spinner/internal/models"

	"github.com/uptrace/bun"
)

type ServiceAreaService struct {
	db         *bun.DB
	businesses *BusinessService
}

func NewServiceAreaService(db *bun.DB, businesses *BusinessService) *ServiceAreaService {
	return &ServiceAreaService{db: db, businesses: businesses}
}

// AddArea creates a single service area for a business
func (s *ServiceAreaService) AddArea(ctx context.Context, businessID int64, req models.CreateServiceAreaRequest) (*models.ServiceArea, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err.Error())
	}
	if err := s.businesses.requireBusiness(ctx, businessID); err != nil {
		return nil, err
	}

	area := req.ToModel(businessID)
	if _, err := s.db.NewInsert().Model(area).Returning("id").Exec(ctx); err != nil {
		return nil, apperr.Database("create service area", err)
	}
	return area, nil
}

// AddAreasBulk creates areas from "City, State" labels
func (s *ServiceAreaService) AddAreasBulk(ctx context.Context, businessID int64, labels []string) ([]models.ServiceArea, error) {
	rows := make([]models.ServiceArea, 0, len(labels))
	now := time.Now().UTC()
	for _, label := range labels {
		if strings.TrimSpace(label) == "" {
			continue
		}
		city, state := models.ParseAreaLabel(label)
		rows = append(rows, models.ServiceArea{
			BusinessID: businessID,
			City:       city,
			State:      state,
			ZipCodes:   models.StringList{},
			CreatedAt:  now,
		})
	}
	if len(rows) == 0 {
		return nil, apperr.Validation("areas array is required")
	}
	if err := s.businesses.requireBusiness(ctx, businessID); err != nil {
		return nil, err
	}

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(&rows).Returning("id").Exec(ctx)
		return err
	})
	if err != nil {
		return nil, apperr.Database("bulk create service areas", err)
	}
	return rows, nil
}

// DeleteArea removes a service area; generated content referencing it cascades
func (s *ServiceAreaService) DeleteArea(ctx context.Context, id int64) error {
	res, err := s.db.NewDelete().Model((*models.ServiceArea)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return apperr.Database("delete service area", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("Service area", fmt.Sprintf("id %d", id))
	}
	return nil
}
