package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"feedloop-server/internal/auth"
	"feedloop-server/internal/logger"
	"feedloop-server/internal/models"
	"feedloop-server/internal/services"
)

// InvitationHandler manages project memberships and pending invitations.
type InvitationHandler struct {
	Service *services.InvitationService
}

func NewInvitationHandler(service *services.InvitationService) *InvitationHandler {
	return &InvitationHandler{Service: service}
}

type inviteRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Role      string `json:"role" validate:"omitempty,oneof=member admin"`
	CanInvite bool   `json:"can_invite"`
}

type revokeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type membersResponse struct {
	Members []models.Invitation        `json:"members"`
	Pending []models.PendingInvitation `json:"pending"`
}

// Invite handles POST /projects/:id/invitations. Allowed for the owner, or
// admins holding the can_invite flag.
// @Summary Invite a user by email
// @Tags invitations
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param body body inviteRequest true "Invitation"
// @Success 201 {object} models.PendingInvitation
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /projects/{id}/invitations [post]
func (h *InvitationHandler) Invite(c *fiber.Ctx) error {
	identity := auth.IdentityFromCtx(c)
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.NewError(fiber.StatusBadRequest, "invalid project ID"))
	}

	var req inviteRequest
	if err := parseAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	pending, err := h.Service.Invite(projectID, identity.UserID, req.Email, models.MemberRole(req.Role), req.CanInvite)
	if err != nil {
		return respondError(c, err)
	}
	logger.Info("Invited %s to project %s (role=%s)", pending.Email, projectID, pending.Role)
	return c.Status(fiber.StatusCreated).JSON(pending)
}

// Revoke handles DELETE /projects/:id/invitations: removes an active member
// or revokes a pending invitation.
// @Summary Remove a member or revoke a pending invitation
// @Tags invitations
// @Accept json
// @Param id path string true "Project ID"
// @Param body body revokeRequest true "Target email"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /projects/{id}/invitations [delete]
func (h *InvitationHandler) Revoke(c *fiber.Ctx) error {
	identity := auth.IdentityFromCtx(c)
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.NewError(fiber.StatusBadRequest, "invalid project ID"))
	}

	var req revokeRequest
	if err := parseAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	if err := h.Service.Revoke(projectID, identity.UserID, req.Email); err != nil {
		return respondError(c, err)
	}
	logger.Info("Revoked membership/invitation for %s on project %s", req.Email, projectID)
	return c.SendStatus(fiber.StatusNoContent)
}

// Members handles GET /projects/:id/invitations.
// @Summary List members and pending invitations
// @Tags invitations
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} membersResponse
// @Failure 403 {object} ErrorResponse
// @Router /projects/{id}/invitations [get]
func (h *InvitationHandler) Members(c *fiber.Ctx) error {
	identity := auth.IdentityFromCtx(c)
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.NewError(fiber.StatusBadRequest, "invalid project ID"))
	}
	members, pending, err := h.Service.Members(projectID, identity.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(membersResponse{Members: members, Pending: pending})
}

// Claim handles POST /invitations/claim: converts pending invitations for
// the caller's email into active memberships. Called after registration.
// @Summary Claim pending invitations
// @Tags invitations
// @Produce json
// @Success 200 {object} map[string]int
// @Failure 401 {object} ErrorResponse
// @Router /invitations/claim [post]
func (h *InvitationHandler) Claim(c *fiber.Ctx) error {
	identity := auth.IdentityFromCtx(c)
	claimed, err := h.Service.Claim(identity.UserID, identity.Email)
	if err != nil {
		return respondError(c, err)
	}
	if claimed > 0 {
		logger.Info("User %s claimed %d invitation(s)", identity.UserID, claimed)
	}
	return c.JSON(fiber.Map{"claimed": claimed})
}
