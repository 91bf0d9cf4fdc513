package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"feedloop-server/internal/models"
	"feedloop-server/internal/repository"
)

// Role is the resolved permission level of a user within a project. The
// owner role comes from the project row itself, the others from active
// invitations.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleNone   Role = ""
)

// ProjectService handles project lifecycle and membership resolution. It is
// a plain stateless struct constructed once in main and shared by reference.
type ProjectService struct {
	projects    repository.ProjectRepository
	invitations repository.InvitationRepository
}

func NewProjectService(projects repository.ProjectRepository, invitations repository.InvitationRepository) *ProjectService {
	return &ProjectService{projects: projects, invitations: invitations}
}

// CreateProject creates a project owned by the caller and generates its
// widget integration key.
func (s *ProjectService) CreateProject(ownerID, ownerEmail, name string) (*models.Project, error) {
	key, err := models.NewIntegrationKey()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to generate integration key")
	}
	project := &models.Project{
		ID:             uuid.New(),
		Name:           name,
		OwnerID:        ownerID,
		OwnerEmail:     ownerEmail,
		IntegrationKey: key,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if err := s.projects.Create(project); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create project")
	}
	return project, nil
}

func (s *ProjectService) GetProject(id uuid.UUID) (*models.Project, error) {
	return s.projects.GetByID(id)
}

func (s *ProjectService) GetProjectByIntegrationKey(key string) (*models.Project, error) {
	return s.projects.GetByIntegrationKey(key)
}

func (s *ProjectService) ListProjects(userID string) ([]models.Project, error) {
	return s.projects.ListForUser(userID)
}

// DeleteProject removes a project. Only the owner may delete.
func (s *ProjectService) DeleteProject(id uuid.UUID, actorID string) error {
	project, err := s.projects.GetByID(id)
	if err != nil {
		return err
	}
	if project.OwnerID != actorID {
		return ErrForbidden
	}
	return s.projects.Delete(id)
}

// RoleFor resolves the caller's role within the project.
func (s *ProjectService) RoleFor(project *models.Project, userID string) (Role, error) {
	if project.OwnerID == userID {
		return RoleOwner, nil
	}
	invitation, err := s.invitations.GetByProjectAndUser(project.ID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RoleNone, nil
		}
		return RoleNone, err
	}
	if invitation.Role == models.RoleAdmin {
		return RoleAdmin, nil
	}
	return RoleMember, nil
}

// RequireMember loads the project and verifies the caller holds any role in
// it, returning ErrForbidden otherwise.
func (s *ProjectService) RequireMember(projectID uuid.UUID, userID string) (*models.Project, Role, error) {
	project, err := s.projects.GetByID(projectID)
	if err != nil {
		return nil, RoleNone, err
	}
	role, err := s.RoleFor(project, userID)
	if err != nil {
		return nil, RoleNone, err
	}
	if role == RoleNone {
		return nil, RoleNone, ErrForbidden
	}
	return project, role, nil
}
