package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"seo-spinner/internal/apperr"
	"seo-spinner/internal/metrics"
	"seo-spinner/internal/models"

	"go.uber.org/zap"
)

// ExportFile is a rendered project export.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

type ExportService struct {
	content *ContentService
	logr    *zap.Logger
}

func NewExportService(content *ContentService, logr *zap.Logger) *ExportService {
	return &ExportService{content: content, logr: logr}
}

// Export renders every row attached to a project in the given format.
func (s *ExportService) Export(ctx context.Context, projectID int64, format models.ExportFormat) (*ExportFile, error) {
	if !format.Valid() {
		return nil, apperr.Validation("Invalid format")
	}
	project, err := s.content.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	rows, err := s.content.ProjectContent(ctx, projectID)
	if err != nil {
		return nil, err
	}

	file, err := Render(project, rows, format)
	if err != nil {
		return nil, err
	}

	if err := s.content.MarkExported(ctx, projectID, format); err != nil {
		s.logr.Warn("failed to mark project exported", zap.Int64("project_id", projectID), zap.Error(err))
	}
	metrics.ExportsTotal.WithLabelValues(string(format)).Inc()
	return file, nil
}

// Render produces the export file without touching the database.
func Render(project *models.ContentProject, rows []models.GeneratedContentRow, format models.ExportFormat) (*ExportFile, error) {
	var (
		body        []byte
		contentType string
		ext         = string(format)
		err         error
	)
	switch format {
	case models.ExportHTML:
		body, err = renderHTML(project, rows)
		contentType = "text/html; charset=utf-8"
	case models.ExportMarkdown:
		body = renderMarkdown(project, rows)
		contentType = "text/markdown; charset=utf-8"
		ext = "md"
	case models.ExportCSV:
		body, err = renderCSV(rows)
		contentType = "text/csv; charset=utf-8"
	case models.ExportJSON:
		body, err = json.MarshalIndent(map[string]any{"project": project, "content": rows}, "", "  ")
		contentType = "application/json"
	default:
		return nil, apperr.Validation("Invalid format")
	}
	if err != nil {
		return nil, fmt.Errorf("render %s export: %w", format, err)
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("%s-%s.%s", project.Name, format, ext),
		ContentType: contentType,
		Body:        body,
	}, nil
}

// pageGroup is all sections for one service in one area.
type pageGroup struct {
	Heading  string
	Sections []models.GeneratedContentRow
}

// groupPages groups rows by service, city and state, keeping first-seen order.
func groupPages(rows []models.GeneratedContentRow) []pageGroup {
	index := map[string]int{}
	var groups []pageGroup
	for _, r := range rows {
		key := r.ServiceName + "-" + r.City + "-" + r.State
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, pageGroup{Heading: fmt.Sprintf("%s in %s, %s", r.ServiceName, r.City, r.State)})
		}
		groups[i].Sections = append(groups[i].Sections, r)
	}
	return groups
}

func sectionTitle(st models.SectionType) string {
	s := string(st)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

var htmlExport = template.Must(template.New("export").Funcs(template.FuncMap{
	"title": sectionTitle,
	"paragraphs": func(s string) []string {
		return strings.Split(s, "\n")
	},
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Project.Name}} - Generated Content</title>
  <style>
    body { font-family: Arial, sans-serif; margin: 40px; line-height: 1.6; }
    .page { margin-bottom: 60px; page-break-after: always; }
    .header { border-bottom: 2px solid #333; padding-bottom: 20px; margin-bottom: 30px; }
    .section { margin-bottom: 30px; }
    .meta { background: #f5f5f5; padding: 10px; margin-bottom: 20px; }
  </style>
</head>
<body>
{{- range .Pages}}
<div class="page">
  <div class="header"><h1>{{.Heading}}</h1></div>
  {{- range .Sections}}
  <div class="section" data-section="{{.SectionType}}">
    <h2>{{title .SectionType}}</h2>
    <div class="meta">
      <strong>Meta Title:</strong> <span class="meta-title">{{.MetaTitle}}</span><br>
      <strong>Meta Description:</strong> <span class="meta-description">{{.MetaDescription}}</span>
    </div>
    <div class="content">{{range $i, $p := paragraphs .Content}}{{if $i}}<br>{{end}}{{$p}}{{end}}</div>
  </div>
  {{- end}}
</div>
{{- end}}
</body>
</html>
`))

func renderHTML(project *models.ContentProject, rows []models.GeneratedContentRow) ([]byte, error) {
	var buf bytes.Buffer
	err := htmlExport.Execute(&buf, map[string]any{
		"Project": project,
		"Pages":   groupPages(rows),
	})
	return buf.Bytes(), err
}

func renderMarkdown(project *models.ContentProject, rows []models.GeneratedContentRow) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", project.Name)
	for _, g := range groupPages(rows) {
		fmt.Fprintf(&b, "## %s\n\n", g.Heading)
		for _, r := range g.Sections {
			fmt.Fprintf(&b, "### %s\n\n", sectionTitle(r.SectionType))
			fmt.Fprintf(&b, "**Meta Title:** %s\n\n", r.MetaTitle)
			fmt.Fprintf(&b, "**Meta Description:** %s\n\n", r.MetaDescription)
			fmt.Fprintf(&b, "%s\n\n---\n\n", r.Content)
		}
	}
	return []byte(b.String())
}

var csvHeader = []string{
	"Service", "City", "State", "Section Type", "Template", "Content",
	"Word Count", "SEO Score", "Meta Title", "Meta Description",
}

func renderCSV(rows []models.GeneratedContentRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, r := range rows {
		rec := []string{
			r.ServiceName, r.City, r.State, string(r.SectionType), r.TemplateName, r.Content,
			strconv.Itoa(r.WordCount), strconv.Itoa(r.SEOScore), r.MetaTitle, r.MetaDescription,
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
