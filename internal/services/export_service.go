package services

import (
	"time"

	"github.com/google/uuid"

	"feedloop-server/internal/export"
	"feedloop-server/internal/repository"
)

// ExportService fetches the rows for a CSV export and delegates the actual
// transformation to the export package.
type ExportService struct {
	projects repository.ProjectRepository
	reports  repository.ReportRepository
}

func NewExportService(projects repository.ProjectRepository, reports repository.ReportRepository) *ExportService {
	return &ExportService{projects: projects, reports: reports}
}

// Export returns the CSV body and the download filename for a project.
// Filtering happens in the repository; the transformer only shapes rows.
func (s *ExportService) Export(projectID uuid.UUID, filter repository.ReportFilter, opts export.Options) (string, string, error) {
	project, err := s.projects.GetByID(projectID)
	if err != nil {
		return "", "", err
	}
	reports, err := s.reports.ListForExport(projectID, filter)
	if err != nil {
		return "", "", err
	}
	body := export.Generate(reports, opts)
	filename := export.Filename(project.Name, project.ID, opts.Template, time.Now())
	return body, filename, nil
}
