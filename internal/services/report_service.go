package services

import (
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"feedloop-server/internal/models"
	"feedloop-server/internal/repository"
)

// ReportService handles report submission and triage.
type ReportService struct {
	reports     repository.ReportRepository
	attachments repository.AttachmentRepository
}

func NewReportService(reports repository.ReportRepository, attachments repository.AttachmentRepository) *ReportService {
	return &ReportService{reports: reports, attachments: attachments}
}

// CreateReportInput carries a new submission from the dashboard or the
// widget. AttachmentIDs reference previously uploaded, still-unlinked
// attachments.
type CreateReportInput struct {
	Type          models.ReportType
	Priority      models.ReportPriority
	Title         string
	Description   string
	ReporterName  string
	ReporterEmail string
	Diagnostic    *models.Diagnostic
	AttachmentIDs []uuid.UUID
}

// UpdateReportInput carries triage changes; nil fields are left untouched.
type UpdateReportInput struct {
	Type        *models.ReportType
	Status      *models.ReportStatus
	Priority    *models.ReportPriority
	Title       *string
	Description *string
}

// CreateReport stores a new report and links its attachments. Linking an
// attachment that already belongs to another report fails the whole call.
func (s *ReportService) CreateReport(projectID uuid.UUID, input CreateReportInput) (*models.Report, error) {
	if input.Type == "" {
		input.Type = models.ReportTypeFeedback
	}
	if input.Priority == "" {
		input.Priority = models.ReportPriorityMedium
	}

	// Validate attachment links before creating the report row.
	var toLink []models.Attachment
	if len(input.AttachmentIDs) > 0 {
		found, err := s.attachments.GetByIDs(input.AttachmentIDs)
		if err != nil {
			return nil, err
		}
		for _, a := range found {
			if a.ReportID != nil {
				return nil, ErrAttachmentLinked
			}
		}
		toLink = found
	}

	report := &models.Report{
		ID:            uuid.New(),
		ProjectID:     projectID,
		Type:          input.Type,
		Status:        models.ReportStatusActive,
		Priority:      input.Priority,
		Title:         input.Title,
		Description:   input.Description,
		ReporterName:  input.ReporterName,
		ReporterEmail: input.ReporterEmail,
		Diagnostic:    input.Diagnostic,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := s.reports.Create(report); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create report")
	}

	for i := range toLink {
		id := report.ID
		toLink[i].ReportID = &id
		if err := s.attachments.Update(&toLink[i]); err != nil {
			return nil, pkgerrors.Wrap(err, "failed to link attachment")
		}
	}
	report.Attachments = toLink
	return report, nil
}

func (s *ReportService) GetReport(projectID, reportID uuid.UUID) (*models.Report, error) {
	return s.reports.GetByID(projectID, reportID)
}

// UpdateReport applies triage changes to an existing report.
func (s *ReportService) UpdateReport(projectID, reportID uuid.UUID, input UpdateReportInput) (*models.Report, error) {
	report, err := s.reports.GetByID(projectID, reportID)
	if err != nil {
		return nil, err
	}
	if input.Type != nil {
		report.Type = *input.Type
	}
	if input.Status != nil {
		report.Status = *input.Status
	}
	if input.Priority != nil {
		report.Priority = *input.Priority
	}
	if input.Title != nil {
		report.Title = *input.Title
	}
	if input.Description != nil {
		report.Description = *input.Description
	}
	report.UpdatedAt = time.Now()
	if err := s.reports.Update(report); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to update report")
	}
	return report, nil
}

func (s *ReportService) ListReports(projectID uuid.UUID, filter repository.ReportFilter, sort repository.ReportSort, page repository.Pagination) ([]models.Report, int64, error) {
	return s.reports.List(projectID, filter, sort, page)
}
