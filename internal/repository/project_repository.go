package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"feedloop-server/internal/models"
)

// ProjectRepository defines database operations for projects.
type ProjectRepository interface {
	Create(project *models.Project) error
	GetByID(id uuid.UUID) (*models.Project, error)
	GetByIntegrationKey(key string) (*models.Project, error)
	ListForUser(userID string) ([]models.Project, error)
	Delete(id uuid.UUID) error
}

// ProjectRepositoryImpl provides methods to interact with the Project model
// in the database.
type ProjectRepositoryImpl struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepositoryImpl instance with the
// provided GORM database connection.
func NewProjectRepository(db *gorm.DB) *ProjectRepositoryImpl {
	return &ProjectRepositoryImpl{db: db}
}

func (r *ProjectRepositoryImpl) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

func (r *ProjectRepositoryImpl) GetByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	return &project, err
}

func (r *ProjectRepositoryImpl) GetByIntegrationKey(key string) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "integration_key = ?", key).Error
	return &project, err
}

// ListForUser returns projects the user owns plus projects where the user
// holds an active membership.
func (r *ProjectRepositoryImpl) ListForUser(userID string) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.
		Where("owner_id = ?", userID).
		Or("id IN (?)", r.db.Model(&models.Invitation{}).Select("project_id").Where("user_id = ?", userID)).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

// Delete removes a project together with its reports, attachments and
// invitations.
func (r *ProjectRepositoryImpl) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		reportIDs := tx.Model(&models.Report{}).Select("id").Where("project_id = ?", id)
		if err := tx.Where("report_id IN (?)", reportIDs).Delete(&models.Attachment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Report{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Invitation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.PendingInvitation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, "id = ?", id).Error
	})
}
