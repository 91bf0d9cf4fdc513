package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"feedloop-server/internal/auth"
	"feedloop-server/internal/logger"
	"feedloop-server/internal/services"
)

// ProjectHandler defines handlers for managing projects.
type ProjectHandler struct {
	Service *services.ProjectService
}

func NewProjectHandler(service *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{Service: service}
}

type createProjectRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// CreateProject handles POST /projects. The caller becomes the owner and the
// widget integration key is generated server-side.
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Param body body createProjectRequest true "Project attributes"
// @Success 201 {object} models.Project
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	identity := auth.IdentityFromCtx(c)

	var req createProjectRequest
	if err := parseAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	project, err := h.Service.CreateProject(identity.UserID, identity.Email, req.Name)
	if err != nil {
		return respondError(c, err)
	}
	logger.Info("Created project: ID=%s, Name=%s, Owner=%s", project.ID, project.Name, identity.UserID)
	return c.Status(fiber.StatusCreated).JSON(project)
}

// ListProjects handles GET /projects: projects owned by or shared with the
// caller.
// @Summary List accessible projects
// @Tags projects
// @Produce json
// @Success 200 {array} models.Project
// @Failure 401 {object} ErrorResponse
// @Router /projects [get]
func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	identity := auth.IdentityFromCtx(c)
	projects, err := h.Service.ListProjects(identity.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(projects)
}

// GetProject handles GET /projects/:id.
// @Summary Get a project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} models.Project
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	identity := auth.IdentityFromCtx(c)
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.NewError(fiber.StatusBadRequest, "invalid project ID"))
	}
	project, _, err := h.Service.RequireMember(projectID, identity.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(project)
}

// DeleteProject handles DELETE /projects/:id. Owner only.
// @Summary Delete a project
// @Tags projects
// @Param id path string true "Project ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *fiber.Ctx) error {
	identity := auth.IdentityFromCtx(c)
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.NewError(fiber.StatusBadRequest, "invalid project ID"))
	}
	if err := h.Service.DeleteProject(projectID, identity.UserID); err != nil {
		return respondError(c, err)
	}
	logger.Info("Deleted project: ID=%s, Actor=%s", projectID, identity.UserID)
	return c.SendStatus(fiber.StatusNoContent)
}
