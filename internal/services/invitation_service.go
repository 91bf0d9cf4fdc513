package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"feedloop-server/internal/models"
	"feedloop-server/internal/repository"
)

// InvitationService issues, revokes and claims project invitations. Inviting
// an email always creates a pending invitation with an expiry; the invitee
// becomes an active member when they authenticate and claim it.
type InvitationService struct {
	projects    *ProjectService
	invitations repository.InvitationRepository
	ttl         time.Duration
	now         func() time.Time
}

func NewInvitationService(projects *ProjectService, invitations repository.InvitationRepository, ttl time.Duration) *InvitationService {
	return &InvitationService{
		projects:    projects,
		invitations: invitations,
		ttl:         ttl,
		now:         time.Now,
	}
}

// canInvite reports whether the actor may issue or revoke invitations for the
// project: the owner always can, admins only with the can_invite flag.
func (s *InvitationService) canInvite(project *models.Project, actorID string) (bool, error) {
	if project.OwnerID == actorID {
		return true, nil
	}
	invitation, err := s.invitations.GetByProjectAndUser(project.ID, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return invitation.Role == models.RoleAdmin && invitation.CanInvite, nil
}

// Invite creates a pending invitation for the email.
func (s *InvitationService) Invite(projectID uuid.UUID, actorID, email string, role models.MemberRole, canInvite bool) (*models.PendingInvitation, error) {
	project, err := s.projects.GetProject(projectID)
	if err != nil {
		return nil, err
	}
	allowed, err := s.canInvite(project, actorID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrForbidden
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if strings.EqualFold(email, project.OwnerEmail) {
		return nil, ErrOwnerImmutable
	}

	if _, err := s.invitations.GetByProjectAndEmail(projectID, email); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.invitations.GetPendingByProjectAndEmail(projectID, email, s.now()); err == nil {
		return nil, ErrAlreadyInvited
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if role != models.RoleAdmin {
		role = models.RoleMember
	}
	pending := &models.PendingInvitation{
		ID:        uuid.New(),
		ProjectID: projectID,
		Email:     email,
		Role:      role,
		CanInvite: canInvite,
		ExpiresAt: s.now().Add(s.ttl),
		CreatedAt: s.now(),
	}
	if err := s.invitations.CreatePending(pending); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create pending invitation")
	}
	return pending, nil
}

// Revoke removes an active membership or a pending invitation for the email.
func (s *InvitationService) Revoke(projectID uuid.UUID, actorID, email string) error {
	project, err := s.projects.GetProject(projectID)
	if err != nil {
		return err
	}
	allowed, err := s.canInvite(project, actorID)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrForbidden
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if strings.EqualFold(email, project.OwnerEmail) {
		return ErrOwnerImmutable
	}

	active, err := s.invitations.DeleteByProjectAndEmail(projectID, email)
	if err != nil {
		return err
	}
	pending, err := s.invitations.DeletePendingByProjectAndEmail(projectID, email)
	if err != nil {
		return err
	}
	if active == 0 && pending == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Claim converts every non-expired pending invitation addressed to the
// caller's email into an active membership. Returns the number of projects
// joined.
func (s *InvitationService) Claim(userID, email string) (int, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	pending, err := s.invitations.ListPendingByEmail(email, s.now())
	if err != nil {
		return 0, err
	}

	claimed := 0
	for _, p := range pending {
		// Skip projects where the user already holds a membership.
		if _, err := s.invitations.GetByProjectAndUser(p.ProjectID, userID); err == nil {
			if err := s.invitations.DeletePending(p.ID); err != nil {
				return claimed, err
			}
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return claimed, err
		}

		invitation := &models.Invitation{
			ID:        uuid.New(),
			ProjectID: p.ProjectID,
			UserID:    userID,
			Email:     email,
			Role:      p.Role,
			CanInvite: p.CanInvite,
			CreatedAt: s.now(),
		}
		if err := s.invitations.Create(invitation); err != nil {
			return claimed, pkgerrors.Wrap(err, "failed to convert pending invitation")
		}
		if err := s.invitations.DeletePending(p.ID); err != nil {
			return claimed, err
		}
		claimed++
	}
	return claimed, nil
}

// Members lists active memberships plus non-expired pending invitations.
// Any project member may view the roster.
func (s *InvitationService) Members(projectID uuid.UUID, actorID string) ([]models.Invitation, []models.PendingInvitation, error) {
	if _, _, err := s.projects.RequireMember(projectID, actorID); err != nil {
		return nil, nil, err
	}
	active, err := s.invitations.ListByProject(projectID)
	if err != nil {
		return nil, nil, err
	}
	pending, err := s.invitations.ListPendingByProject(projectID, s.now())
	if err != nil {
		return nil, nil, err
	}
	return active, pending, nil
}

// PurgeExpired deletes pending invitations past their expiry.
func (s *InvitationService) PurgeExpired() (int64, error) {
	return s.invitations.DeleteExpiredPending(s.now())
}
