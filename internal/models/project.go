package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// ExportFormat is a supported export serialisation.
type ExportFormat string

const (
	ExportHTML     ExportFormat = "html"
	ExportMarkdown ExportFormat = "markdown"
	ExportCSV      ExportFormat = "csv"
	ExportJSON     ExportFormat = "json"
)

func (f ExportFormat) Valid() bool {
	switch f {
	case ExportHTML, ExportMarkdown, ExportCSV, ExportJSON:
		return true
	}
	return false
}

// ProjectStatus tracks a content project's lifecycle.
type ProjectStatus string

const (
	ProjectDraft      ProjectStatus = "draft"
	ProjectGenerating ProjectStatus = "generating"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectExported   ProjectStatus = "exported"
)

// ContentProject groups generated content for export.
type ContentProject struct {
	bun.BaseModel `bun:"table:content_projects,alias:cp"`

	ID                    int64         `bun:"id,pk,autoincrement" json:"id"`
	BusinessID            int64         `bun:"business_id,notnull" json:"business_id"`
	Name                  string        `bun:"name,notnull" json:"name"`
	Description           *string       `bun:"description" json:"description,omitempty"`
	Status                ProjectStatus `bun:"status,notnull,default:'draft'" json:"status"`
	TotalCombinations     int           `bun:"total_combinations,notnull,default:0" json:"total_combinations"`
	CompletedCombinations int           `bun:"completed_combinations,notnull,default:0" json:"completed_combinations"`
	ExportFormat          ExportFormat  `bun:"export_format,notnull,default:'html'" json:"export_format"`
	ExportURL             *string       `bun:"export_url" json:"export_url,omitempty"`
	CreatedAt             time.Time     `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt             time.Time     `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// ProjectContent links a project to a generated row.
type ProjectContent struct {
	bun.BaseModel `bun:"table:project_content,alias:pc"`

	ProjectID          int64 `bun:"project_id,pk" json:"project_id"`
	GeneratedContentID int64 `bun:"generated_content_id,pk" json:"generated_content_id"`
}

type CreateProjectRequest struct {
	BusinessID   int64         `json:"business_id"`
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	Status       ProjectStatus `json:"status,omitempty"`
	ExportFormat ExportFormat  `json:"export_format,omitempty"`
}

func (r CreateProjectRequest) Validate() error {
	if r.BusinessID <= 0 || strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("missing required fields: business_id, name")
	}
	if r.ExportFormat != "" && !r.ExportFormat.Valid() {
		return fmt.Errorf("export_format must be one of: html, markdown, csv, json")
	}
	return nil
}

func (r CreateProjectRequest) ToModel() *ContentProject {
	status := r.Status
	if status == "" {
		status = ProjectDraft
	}
	format := r.ExportFormat
	if format == "" {
		format = ExportHTML
	}
	now := time.Now().UTC()
	return &ContentProject{
		BusinessID:   r.BusinessID,
		Name:         strings.TrimSpace(r.Name),
		Description:  optional(r.Description),
		Status:       status,
		ExportFormat: format,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// AttachContentRequest adds generated rows to a project.
type AttachContentRequest struct {
	ContentIDs []int64 `json:"contentIds"`
}
