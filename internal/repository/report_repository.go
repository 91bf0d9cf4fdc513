package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"feedloop-server/internal/models"
)

// ReportFilter carries the optional equality filters plus the inclusive
// created_at range used by exports.
type ReportFilter struct {
	Type     string
	Status   string
	Priority string
	From     *time.Time
	To       *time.Time
}

type ReportSort struct {
	Column    string
	Direction string
}

type Pagination struct {
	Page  int
	Limit int
}

// sortColumns whitelists the columns exposed through sort[column].
var sortColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"priority":   true,
	"status":     true,
	"type":       true,
	"title":      true,
}

// ReportRepository defines database operations for reports.
type ReportRepository interface {
	Create(report *models.Report) error
	GetByID(projectID, id uuid.UUID) (*models.Report, error)
	Update(report *models.Report) error
	List(projectID uuid.UUID, filter ReportFilter, sort ReportSort, page Pagination) ([]models.Report, int64, error)
	ListForExport(projectID uuid.UUID, filter ReportFilter) ([]models.Report, error)
}

type ReportRepositoryImpl struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepositoryImpl {
	return &ReportRepositoryImpl{db: db}
}

func (r *ReportRepositoryImpl) Create(report *models.Report) error {
	return r.db.Create(report).Error
}

func (r *ReportRepositoryImpl) GetByID(projectID, id uuid.UUID) (*models.Report, error) {
	var report models.Report
	err := r.db.Preload("Attachments").
		First(&report, "id = ? AND project_id = ?", id, projectID).Error
	return &report, err
}

func (r *ReportRepositoryImpl) Update(report *models.Report) error {
	return r.db.Save(report).Error
}

func (r *ReportRepositoryImpl) applyFilter(q *gorm.DB, projectID uuid.UUID, filter ReportFilter) *gorm.DB {
	q = q.Where("project_id = ?", projectID)
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		q = q.Where("priority = ?", filter.Priority)
	}
	if filter.From != nil {
		q = q.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("created_at <= ?", *filter.To)
	}
	return q
}

// List returns one page of reports plus the total row count for the filter.
func (r *ReportRepositoryImpl) List(projectID uuid.UUID, filter ReportFilter, sort ReportSort, page Pagination) ([]models.Report, int64, error) {
	var total int64
	q := r.applyFilter(r.db.Model(&models.Report{}), projectID, filter)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column := sort.Column
	if !sortColumns[column] {
		column = "created_at"
	}
	direction := "DESC"
	if sort.Direction == "asc" {
		direction = "ASC"
	}

	var reports []models.Report
	err := r.applyFilter(r.db, projectID, filter).
		Preload("Attachments").
		Order(column + " " + direction).
		Offset((page.Page - 1) * page.Limit).
		Limit(page.Limit).
		Find(&reports).Error
	return reports, total, err
}

// ListForExport returns every matching report ordered oldest-first, with
// attachments preloaded for the optional Attachments column.
func (r *ReportRepositoryImpl) ListForExport(projectID uuid.UUID, filter ReportFilter) ([]models.Report, error) {
	var reports []models.Report
	err := r.applyFilter(r.db, projectID, filter).
		Preload("Attachments").
		Order("created_at ASC").
		Find(&reports).Error
	return reports, err
}
