package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"feedloop-server/internal/models"
)

// AttachmentRepository defines database operations for attachments.
type AttachmentRepository interface {
	Create(attachment *models.Attachment) error
	GetByID(id uuid.UUID) (*models.Attachment, error)
	GetByIDs(ids []uuid.UUID) ([]models.Attachment, error)
	Update(attachment *models.Attachment) error
	ListByReport(reportID uuid.UUID) ([]models.Attachment, error)
}

type AttachmentRepositoryImpl struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) *AttachmentRepositoryImpl {
	return &AttachmentRepositoryImpl{db: db}
}

func (r *AttachmentRepositoryImpl) Create(attachment *models.Attachment) error {
	return r.db.Create(attachment).Error
}

func (r *AttachmentRepositoryImpl) GetByID(id uuid.UUID) (*models.Attachment, error) {
	var attachment models.Attachment
	err := r.db.First(&attachment, "id = ?", id).Error
	return &attachment, err
}

func (r *AttachmentRepositoryImpl) GetByIDs(ids []uuid.UUID) ([]models.Attachment, error) {
	var attachments []models.Attachment
	err := r.db.Where("id IN ?", ids).Find(&attachments).Error
	return attachments, err
}

func (r *AttachmentRepositoryImpl) Update(attachment *models.Attachment) error {
	return r.db.Save(attachment).Error
}

func (r *AttachmentRepositoryImpl) ListByReport(reportID uuid.UUID) ([]models.Attachment, error) {
	var attachments []models.Attachment
	err := r.db.Where("report_id = ?", reportID).Order("created_at ASC").Find(&attachments).Error
	return attachments, err
}
