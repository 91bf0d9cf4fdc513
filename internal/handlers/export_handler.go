package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"feedloop-server/internal/auth"
	"feedloop-server/internal/export"
	"feedloop-server/internal/logger"
	"feedloop-server/internal/metrics"
	"feedloop-server/internal/services"
)

// ExportHandler serves project report exports as CSV downloads.
type ExportHandler struct {
	Service  *services.ExportService
	Projects *services.ProjectService
}

func NewExportHandler(service *services.ExportService, projects *services.ProjectService) *ExportHandler {
	return &ExportHandler{Service: service, Projects: projects}
}

type exportQuery struct {
	Format   string `validate:"omitempty,oneof=csv"`
	Template string `validate:"omitempty,oneof=default jira azure"`
}

// ExportReports handles GET /projects/:id/export.
// @Summary Export project reports as CSV
// @Description Exports filtered reports in one of three column layouts (default, jira, azure)
// @Tags export
// @Produce text/csv
// @Param id path string true "Project ID"
// @Param format query string false "Only csv is supported"
// @Param template query string false "default | jira | azure"
// @Param type query string false "bug | initiative | feedback"
// @Param status query string false "active | archived"
// @Param priority query string false "low | medium | high | critical"
// @Param from query string false "Inclusive start date (YYYY-MM-DD or RFC 3339)"
// @Param to query string false "Inclusive end date (YYYY-MM-DD or RFC 3339)"
// @Param include_attachments query bool false "Append the Attachments column"
// @Param include_diagnostic query bool false "Append Browser/OS/Page URL/Console Errors"
// @Success 200 {string} string "CSV body"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /projects/{id}/export [get]
func (h *ExportHandler) ExportReports(c *fiber.Ctx) error {
	identity := auth.IdentityFromCtx(c)
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.NewError(fiber.StatusBadRequest, "invalid project ID"))
	}
	if _, _, err := h.Projects.RequireMember(projectID, identity.UserID); err != nil {
		return respondError(c, err)
	}

	q := exportQuery{
		Format:   c.Query("format"),
		Template: c.Query("template"),
	}
	if err := validate.Struct(&q); err != nil {
		return respondError(c, err)
	}
	filter, err := parseReportFilter(c, "type", "status", "priority")
	if err != nil {
		return respondError(c, err)
	}
	filter.From, err = parseDate(c.Query("from"), false)
	if err != nil {
		return respondError(c, fiber.NewError(fiber.StatusBadRequest, "invalid from date"))
	}
	filter.To, err = parseDate(c.Query("to"), true)
	if err != nil {
		return respondError(c, fiber.NewError(fiber.StatusBadRequest, "invalid to date"))
	}

	opts := export.Options{
		Template:           export.ParseTemplate(q.Template),
		IncludeAttachments: c.QueryBool("include_attachments"),
		IncludeDiagnostic:  c.QueryBool("include_diagnostic"),
	}

	start := time.Now()
	body, filename, err := h.Service.Export(projectID, filter, opts)
	if err != nil {
		return respondError(c, err)
	}
	metrics.ExportDuration.Observe(time.Since(start).Seconds())
	metrics.ExportsTotal.WithLabelValues(string(opts.Template)).Inc()
	logger.Info("Exported reports: Project=%s, Template=%s, Bytes=%d", projectID, opts.Template, len(body))

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.SendString(body)
}
