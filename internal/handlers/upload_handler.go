package handlers

import (
	"bytes"
	"encoding/base64"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"feedloop-server/internal/auth"
	"feedloop-server/internal/logger"
	"feedloop-server/internal/metrics"
	"feedloop-server/internal/models"
	"feedloop-server/internal/services"
)

// UploadHandler ingests attachment files and serves them back. The same
// handler backs the dashboard (/api/uploads) and the widget
// (/widget/uploads); only the route middleware differs.
type UploadHandler struct {
	Service  *services.AttachmentService
	Projects *services.ProjectService
	Reports  *services.ReportService
}

func NewUploadHandler(service *services.AttachmentService, projects *services.ProjectService, reports *services.ReportService) *UploadHandler {
	return &UploadHandler{Service: service, Projects: projects, Reports: reports}
}

type base64File struct {
	Filename    string `json:"filename" validate:"required,max=255"`
	ContentType string `json:"content_type"`
	Data        string `json:"data" validate:"required"`
}

type base64UploadRequest struct {
	Files []base64File `json:"files" validate:"required,min=1,dive"`
}

// Upload handles POST /uploads: multipart form data or a JSON body with
// base64-encoded files. Caps: 5 MB per file, 5 files per request.
// @Summary Upload attachment files
// @Tags uploads
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Success 201 {array} models.Attachment
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Router /uploads [post]
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), "multipart/form-data") {
		return h.uploadMultipart(c)
	}
	return h.uploadBase64(c)
}

func (h *UploadHandler) uploadMultipart(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return respondError(c, fiber.NewError(fiber.StatusBadRequest, "invalid multipart form"))
	}
	files := form.File["files"]
	if len(files) == 0 {
		return respondError(c, fiber.NewError(fiber.StatusBadRequest, "no files provided"))
	}
	if err := services.ValidateCount(len(files)); err != nil {
		return respondError(c, err)
	}

	created := make([]models.Attachment, 0, len(files))
	for _, fileHeader := range files {
		attachment, err := h.Service.UploadMultipart(c.Context(), fileHeader)
		if err != nil {
			return respondError(c, err)
		}
		metrics.UploadBytesTotal.Add(float64(attachment.Size))
		created = append(created, *attachment)
	}
	logger.Info("Uploaded %d attachment(s) via multipart", len(created))
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *UploadHandler) uploadBase64(c *fiber.Ctx) error {
	var req base64UploadRequest
	if err := parseAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	if err := services.ValidateCount(len(req.Files)); err != nil {
		return respondError(c, err)
	}

	created := make([]models.Attachment, 0, len(req.Files))
	for _, f := range req.Files {
		data, err := base64.StdEncoding.DecodeString(f.Data)
		if err != nil {
			return respondError(c, fiber.NewError(fiber.StatusBadRequest, "invalid base64 payload"))
		}
		attachment, err := h.Service.Upload(c.Context(), f.Filename, f.ContentType, bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return respondError(c, err)
		}
		metrics.UploadBytesTotal.Add(float64(attachment.Size))
		created = append(created, *attachment)
	}
	logger.Info("Uploaded %d attachment(s) via base64 JSON", len(created))
	return c.Status(fiber.StatusCreated).JSON(created)
}

// Download handles GET /attachments/:id/download and streams the stored
// bytes.
// @Summary Download an attachment
// @Tags uploads
// @Produce application/octet-stream
// @Param id path string true "Attachment ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Router /attachments/{id}/download [get]
func (h *UploadHandler) Download(c *fiber.Ctx) error {
	attachmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.NewError(fiber.StatusBadRequest, "invalid attachment ID"))
	}
	attachment, reader, err := h.Service.Download(c.Context(), attachmentID)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, attachment.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+attachment.Filename+`"`)
	return c.SendStream(reader, int(attachment.Size))
}

// Archive handles GET /projects/:id/reports/:reportId/attachments/archive:
// a zip bundle of every attachment linked to the report.
// @Summary Download a report's attachments as a zip archive
// @Tags uploads
// @Produce application/zip
// @Param id path string true "Project ID"
// @Param reportId path string true "Report ID"
// @Success 200 {file} binary
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /projects/{id}/reports/{reportId}/attachments/archive [get]
func (h *UploadHandler) Archive(c *fiber.Ctx) error {
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
	report, err := h.Reports.GetReport(projectID, reportID)
	if err != nil {
		return respondError(c, err)
	}

	var buf bytes.Buffer
	if err := h.Service.ArchiveForReport(c.Context(), report.ID, &buf); err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="report-`+report.ID.String()+`-attachments.zip"`)
	return c.Send(buf.Bytes())
}
