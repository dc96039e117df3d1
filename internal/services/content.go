package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"seo-spinner/internal/apperr"
	"seo-spinner/internal/models"

	"github.com/uptrace/bun"
)

type ContentService struct {
	db *bun.DB
}

func NewContentService(db *bun.DB) *ContentService {
	return &ContentService{db: db}
}

// ListTemplates returns active templates ordered by section then name.
func (s *ContentService) ListTemplates(ctx context.Context) ([]models.ContentTemplate, error) {
	templates := make([]models.ContentTemplate, 0)
	err := s.db.NewSelect().
		Model(&templates).
		Where("ct.is_active = TRUE").
		OrderExpr("ct.section_type ASC, ct.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, apperr.Database("list templates", err)
	}
	return templates, nil
}

// GeneratedQuery filters the generated content listing.
type GeneratedQuery struct {
	BusinessID int64
	Sections   []models.SectionType // empty means every section
	Limit      int
	Offset     int
}

// ListGenerated returns generated rows joined with their service, area and template names, newest first.
func (s *ContentService) ListGenerated(ctx context.Context, q GeneratedQuery) ([]models.GeneratedContentRow, error) {
	if q.Limit <= 0 || q.Limit > 500 {
		q.Limit = 50
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	rows := make([]models.GeneratedContentRow, 0)
	sel := joinedContent(s.db.NewSelect().Model(&rows)).
		Where("gc.business_id = ?", q.BusinessID)
	if len(q.Sections) > 0 {
		sel = sel.Where("gc.section_type IN (?)", bun.In(q.Sections))
	}
	err := sel.OrderExpr("gc.generated_at DESC").
		Limit(q.Limit).
		Offset(q.Offset).
		Scan(ctx)
	if err != nil {
		return nil, apperr.Database("list generated content", err)
	}
	return rows, nil
}

func joinedContent(q *bun.SelectQuery) *bun.SelectQuery {
	return q.
		ColumnExpr("gc.*").
		ColumnExpr("s.name AS service_name").
		ColumnExpr("sa.city, sa.state").
		ColumnExpr("ct.name AS template_name").
		Join("JOIN services AS s ON s.id = gc.service_id").
		Join("JOIN service_areas AS sa ON sa.id = gc.service_area_id").
		Join("JOIN content_templates AS ct ON ct.id = gc.template_id")
}

func (s *ContentService) CreateProject(ctx context.Context, req models.CreateProjectRequest) (*models.ContentProject, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err.Error())
	}
	p := req.ToModel()
	if _, err := s.db.NewInsert().Model(p).Returning("id").Exec(ctx); err != nil {
		return nil, apperr.Database("create project", err)
	}
	return p, nil
}

func (s *ContentService) ListProjects(ctx context.Context, businessID int64) ([]models.ContentProject, error) {
	projects := make([]models.ContentProject, 0)
	err := s.db.NewSelect().
		Model(&projects).
		Where("cp.business_id = ?", businessID).
		OrderExpr("cp.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, apperr.Database("list projects", err)
	}
	return projects, nil
}

func (s *ContentService) GetProject(ctx context.Context, id int64) (*models.ContentProject, error) {
	var p models.ContentProject
	if err := s.db.NewSelect().Model(&p).Where("cp.id = ?", id).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Project", fmt.Sprintf("id %d", id))
		}
		return nil, apperr.Database("load project", err)
	}
	return &p, nil
}

// AttachContent links generated rows of the project's business to the project
// and refreshes its completed count. Returns the number of newly linked rows.
func (s *ContentService) AttachContent(ctx context.Context, projectID int64, contentIDs []int64) (int, error) {
	if len(contentIDs) == 0 {
		return 0, apperr.Validation("contentIds array is required")
	}
	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return 0, err
	}

	var attached int
	err = s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var owned []int64
		if err := tx.NewSelect().
			Model((*models.GeneratedContent)(nil)).
			Column("id").
			Where("gc.business_id = ?", project.BusinessID).
			Where("gc.id IN (?)", bun.In(contentIDs)).
			Scan(ctx, &owned); err != nil {
			return err
		}
		if len(owned) == 0 {
			return nil
		}

		links := make([]models.ProjectContent, len(owned))
		for i, id := range owned {
			links[i] = models.ProjectContent{ProjectID: projectID, GeneratedContentID: id}
		}
		res, err := tx.NewInsert().Model(&links).On("CONFLICT DO NOTHING").Exec(ctx)
		if err != nil {
			return err
		}
		n, _ := res.RowsAffected()
		attached = int(n)

		_, err = tx.NewUpdate().
			Model((*models.ContentProject)(nil)).
			Set("completed_combinations = (SELECT COUNT(*) FROM project_content WHERE project_id = ?)", projectID).
			Set("status = ?", models.ProjectCompleted).
			Set("updated_at = ?", time.Now().UTC()).
			Where("id = ?", projectID).
			Exec(ctx)
		return err
	})
	if err != nil {
		return 0, apperr.Database("attach project content", err)
	}
	return attached, nil
}

// ProjectContent returns a project's rows ordered city, service, section.
func (s *ContentService) ProjectContent(ctx context.Context, projectID int64) ([]models.GeneratedContentRow, error) {
	rows := make([]models.GeneratedContentRow, 0)
	err := joinedContent(s.db.NewSelect().Model(&rows)).
		Join("JOIN project_content AS pc ON pc.generated_content_id = gc.id").
		Where("pc.project_id = ?", projectID).
		OrderExpr("sa.city ASC, s.name ASC, gc.section_type ASC").
		Scan(ctx)
	if err != nil {
		return nil, apperr.Database("load project content", err)
	}
	return rows, nil
}

// MarkExported records a completed export.
func (s *ContentService) MarkExported(ctx context.Context, projectID int64, format models.ExportFormat) error {
	_, err := s.db.NewUpdate().
		Model((*models.ContentProject)(nil)).
		Set("status = ?", models.ProjectExported).
		Set("export_format = ?", format).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", projectID).
		Exec(ctx)
	if err != nil {
		return apperr.Database("mark project exported", err)
	}
	return nil
}
