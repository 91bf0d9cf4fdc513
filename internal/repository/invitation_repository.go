package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"feedloop-server/internal/models"
)

// InvitationRepository defines database operations for active memberships and
// pending (email-only) invitations. Expired pending rows are excluded from
// every query that feeds membership decisions.
type InvitationRepository interface {
	Create(invitation *models.Invitation) error
	GetByProjectAndUser(projectID uuid.UUID, userID string) (*models.Invitation, error)
	GetByProjectAndEmail(projectID uuid.UUID, email string) (*models.Invitation, error)
	ListByProject(projectID uuid.UUID) ([]models.Invitation, error)
	DeleteByProjectAndEmail(projectID uuid.UUID, email string) (int64, error)

	CreatePending(invitation *models.PendingInvitation) error
	GetPendingByProjectAndEmail(projectID uuid.UUID, email string, now time.Time) (*models.PendingInvitation, error)
	ListPendingByEmail(email string, now time.Time) ([]models.PendingInvitation, error)
	ListPendingByProject(projectID uuid.UUID, now time.Time) ([]models.PendingInvitation, error)
	DeletePending(id uuid.UUID) error
	DeletePendingByProjectAndEmail(projectID uuid.UUID, email string) (int64, error)
	DeleteExpiredPending(now time.Time) (int64, error)
}

type InvitationRepositoryImpl struct {
	db *gorm.DB
}

func NewInvitationRepository(db *gorm.DB) *InvitationRepositoryImpl {
	return &InvitationRepositoryImpl{db: db}
}

func (r *InvitationRepositoryImpl) Create(invitation *models.Invitation) error {
	return r.db.Create(invitation).Error
}

func (r *InvitationRepositoryImpl) GetByProjectAndUser(projectID uuid.UUID, userID string) (*models.Invitation, error) {
	var invitation models.Invitation
	err := r.db.First(&invitation, "project_id = ? AND user_id = ?", projectID, userID).Error
	return &invitation, err
}

func (r *InvitationRepositoryImpl) GetByProjectAndEmail(projectID uuid.UUID, email string) (*models.Invitation, error) {
	var invitation models.Invitation
	err := r.db.First(&invitation, "project_id = ? AND email = ?", projectID, email).Error
	return &invitation, err
}

func (r *InvitationRepositoryImpl) ListByProject(projectID uuid.UUID) ([]models.Invitation, error) {
	var invitations []models.Invitation
	err := r.db.Where("project_id = ?", projectID).Order("created_at ASC").Find(&invitations).Error
	return invitations, err
}

func (r *InvitationRepositoryImpl) DeleteByProjectAndEmail(projectID uuid.UUID, email string) (int64, error) {
	res := r.db.Where("project_id = ? AND email = ?", projectID, email).Delete(&models.Invitation{})
	return res.RowsAffected, res.Error
}

func (r *InvitationRepositoryImpl) CreatePending(invitation *models.PendingInvitation) error {
	return r.db.Create(invitation).Error
}

func (r *InvitationRepositoryImpl) GetPendingByProjectAndEmail(projectID uuid.UUID, email string, now time.Time) (*models.PendingInvitation, error) {
	var invitation models.PendingInvitation
	err := r.db.First(&invitation, "project_id = ? AND email = ? AND expires_at > ?", projectID, email, now).Error
	return &invitation, err
}

func (r *InvitationRepositoryImpl) ListPendingByEmail(email string, now time.Time) ([]models.PendingInvitation, error) {
	var invitations []models.PendingInvitation
	err := r.db.Where("email = ? AND expires_at > ?", email, now).Find(&invitations).Error
	return invitations, err
}

func (r *InvitationRepositoryImpl) ListPendingByProject(projectID uuid.UUID, now time.Time) ([]models.PendingInvitation, error) {
	var invitations []models.PendingInvitation
	err := r.db.Where("project_id = ? AND expires_at > ?", projectID, now).Order("created_at ASC").Find(&invitations).Error
	return invitations, err
}

func (r *InvitationRepositoryImpl) DeletePending(id uuid.UUID) error {
	return r.db.Delete(&models.PendingInvitation{}, "id = ?", id).Error
}

func (r *InvitationRepositoryImpl) DeletePendingByProjectAndEmail(projectID uuid.UUID, email string) (int64, error) {
	res := r.db.Where("project_id = ? AND email = ?", projectID, email).Delete(&models.PendingInvitation{})
	return res.RowsAffected, res.Error
}

// DeleteExpiredPending purges pending invitations past their expiry. Queries
// already exclude expired rows, so this only reclaims storage.
func (r *InvitationRepositoryImpl) DeleteExpiredPending(now time.Time) (int64, error) {
	res := r.db.Where("expires_at <= ?", now).Delete(&models.PendingInvitation{})
	return res.RowsAffected, res.Error
}
