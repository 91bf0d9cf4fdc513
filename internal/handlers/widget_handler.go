package handlers

import (
	"github.com/gofiber/fiber/v2"

	"feedloop-server/internal/auth"
	"feedloop-server/internal/logger"
	"feedloop-server/internal/metrics"
	"feedloop-server/internal/services"
)

// WidgetHandler accepts end-user submissions from the embeddable widget.
// Requests are authenticated by the project integration key, not a user
// session.
type WidgetHandler struct {
	Service *services.ReportService
}

func NewWidgetHandler(service *services.ReportService) *WidgetHandler {
	return &WidgetHandler{Service: service}
}

// CreateReport handles POST /widget/reports.
// @Summary Submit a report from the widget
// @Tags widget
// @Accept json
// @Produce json
// @Param X-Integration-Key header string true "Project integration key"
// @Param body body createReportRequest true "Report"
// @Success 201 {object} models.Report
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /widget/reports [post]
func (h *WidgetHandler) CreateReport(c *fiber.Ctx) error {
	project := auth.WidgetProjectFromCtx(c)

	var req createReportRequest
	if err := parseAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	input, err := req.toInput()
	if err != nil {
		return respondError(c, err)
	}

	report, err := h.Service.CreateReport(project.ID, input)
	if err != nil {
		return respondError(c, err)
	}
	metrics.ReportsCreatedTotal.WithLabelValues("widget").Inc()
	logger.Info("Widget report created: ID=%s, Project=%s, Type=%s", report.ID, project.ID, report.Type)
	return c.Status(fiber.StatusCreated).JSON(report)
}
