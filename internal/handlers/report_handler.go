package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"feedloop-server/internal/auth"
	"feedloop-server/internal/logger"
	"feedloop-server/internal/metrics"
	"feedloop-server/internal/models"
	"feedloop-server/internal/services"
)

// ReportHandler defines handlers for listing, submitting and triaging
// reports.
type ReportHandler struct {
	Service  *services.ReportService
	Projects *services.ProjectService
}

func NewReportHandler(service *services.ReportService, projects *services.ProjectService) *ReportHandler {
	return &ReportHandler{Service: service, Projects: projects}
}

type createReportRequest struct {
	Type          string             `json:"type" validate:"omitempty,oneof=bug initiative feedback"`
	Priority      string             `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	Title         string             `json:"title" validate:"required,min=1,max=500"`
	Description   string             `json:"description" validate:"max=10000"`
	ReporterName  string             `json:"reporter_name" validate:"max=200"`
	ReporterEmail string             `json:"reporter_email" validate:"omitempty,email"`
	Diagnostic    *models.Diagnostic `json:"diagnostic"`
	AttachmentIDs []string           `json:"attachment_ids" validate:"max=5,dive,uuid"`
}

type updateReportRequest struct {
	Type        *string `json:"type" validate:"omitempty,oneof=bug initiative feedback"`
	Status      *string `json:"status" validate:"omitempty,oneof=active archived"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	Title       *string `json:"title" validate:"omitempty,min=1,max=500"`
	Description *string `json:"description" validate:"omitempty,max=10000"`
}

type reportListResponse struct {
	Data  []models.Report `json:"data"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
	Total int64           `json:"total"`
}

func (r *createReportRequest) toInput() (services.CreateReportInput, error) {
	ids := make([]uuid.UUID, 0, len(r.AttachmentIDs))
	for _, raw := range r.AttachmentIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return services.CreateReportInput{}, fiber.NewError(fiber.StatusBadRequest, "invalid attachment ID")
		}
		ids = append(ids, id)
	}
	return services.CreateReportInput{
		Type:          models.ReportType(r.Type),
		Priority:      models.ReportPriority(r.Priority),
		Title:         r.Title,
		Description:   r.Description,
		ReporterName:  r.ReporterName,
		ReporterEmail: r.ReporterEmail,
		Diagnostic:    r.Diagnostic,
		AttachmentIDs: ids,
	}, nil
}

// ListReports handles GET /projects/:id/reports with pagination, filtering
// and sorting.
// @Summary List project reports
// @Tags reports
// @Produce json
// @Param id path string true "Project ID"
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size (max 100)"
// @Param filter[type] query string false "bug | initiative | feedback"
// @Param filter[status] query string false "active | archived"
// @Param filter[priority] query string false "low | medium | high | critical"
// @Param sort[column] query string false "created_at, updated_at, priority, status, type, title"
// @Param sort[direction] query string false "asc | desc"
// @Success 200 {object} reportListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /projects/{id}/reports [get]
func (h *ReportHandler) ListReports(c *fiber.Ctx) error {
	identity := auth.IdentityFromCtx(c)
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.NewError(fiber.StatusBadRequest, "invalid project ID"))
	}
	if _, _, err := h.Projects.RequireMember(projectID, identity.UserID); err != nil {
		return respondError(c, err)
	}

	filter, err := parseReportFilter(c, "filter[type]", "filter[status]", "filter[priority]")
	if err != nil {
		return respondError(c, err)
	}
	page := parsePagination(c.Query("page"), c.Query("limit"))
	sort := parseSort(c.Query("sort[column]"), c.Query("sort[direction]"))

	reports, total, err := h.Service.ListReports(projectID, filter, sort, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reportListResponse{
		Data:  reports,
		Page:  page.Page,
		Limit: page.Limit,
		Total: total,
	})
}

// CreateReport handles POST /projects/:id/reports (dashboard submissions).
// @Summary Submit a report
// @Tags reports
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param body body createReportRequest true "Report"
// @Success 201 {object} models.Report
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /projects/{id}/reports [post]
func (h *ReportHandler) CreateReport(c *fiber.Ctx) error {
	identity := auth.IdentityFromCtx(c)
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.NewError(fiber.StatusBadRequest, "invalid project ID"))
	}
	if _, _, err := h.Projects.RequireMember(projectID, identity.UserID); err != nil {
		return respondError(c, err)
	}

	var req createReportRequest
	if err := parseAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	input, err := req.toInput()
	if err != nil {
		return respondError(c, err)
	}
	if input.ReporterEmail == "" {
		input.ReporterEmail = identity.Email
	}
	if input.ReporterName == "" {
		input.ReporterName = identity.Name
	}

	report, err := h.Service.CreateReport(projectID, input)
	if err != nil {
		return respondError(c, err)
	}
	metrics.ReportsCreatedTotal.WithLabelValues("dashboard").Inc()
	logger.Info("Created report: ID=%s, Project=%s, Type=%s", report.ID, projectID, report.Type)
	return c.Status(fiber.StatusCreated).JSON(report)
}

// UpdateReport handles PUT /projects/:id/reports/:reportId (triage).
// @Summary Update a report
// @Tags reports
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param reportId path string true "Report ID"
// @Param body body updateReportRequest true "Fields to change"
// @Success 200 {object} models.Report
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /projects/{id}/reports/{reportId} [put]
func (h *ReportHandler) UpdateReport(c *fiber.Ctx) error {
	identity := auth.IdentityFromCtx(c)
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.NewError(fiber.StatusBadRequest, "invalid project ID"))
	}
	reportID, err := uuid.Parse(c.Params("reportId"))
	if err != nil {
		return respondError(c, fiber.NewError(fiber.StatusBadRequest, "invalid report ID"))
	}
	if _, _, err := h.Projects.RequireMember(projectID, identity.UserID); err != nil {
		return respondError(c, err)
	}

	var req updateReportRequest
	if err := parseAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	input := services.UpdateReportInput{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Type != nil {
		t := models.ReportType(*req.Type)
		input.Type = &t
	}
	if req.Status != nil {
		s := models.ReportStatus(*req.Status)
		input.Status = &s
	}
	if req.Priority != nil {
		p := models.ReportPriority(*req.Priority)
		input.Priority = &p
	}

	report, err := h.Service.UpdateReport(projectID, reportID, input)
	if err != nil {
		return respondError(c, err)
	}
	logger.Info("Updated report: ID=%s, Project=%s, Actor=%s", reportID, projectID, identity.UserID)
	return c.JSON(report)
}
