package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ReportType string

const (
	ReportTypeBug        ReportType = "bug"
	ReportTypeInitiative ReportType = "initiative"
	ReportTypeFeedback   ReportType = "feedback"
)

type ReportStatus string

const (
	ReportStatusActive   ReportStatus = "active"
	ReportStatusArchived ReportStatus = "archived"
)

type ReportPriority string

const (
	ReportPriorityLow      ReportPriority = "low"
	ReportPriorityMedium   ReportPriority = "medium"
	ReportPriorityHigh     ReportPriority = "high"
	ReportPriorityCritical ReportPriority = "critical"
)

// Report is a single end-user submission belonging to exactly one project.
type Report struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID     uuid.UUID      `gorm:"type:uuid;index;not null" json:"project_id"`
	Type          ReportType     `gorm:"size:16;not null" json:"type"`
	Status        ReportStatus   `gorm:"size:16;not null" json:"status"`
	Priority      ReportPriority `gorm:"size:16;not null" json:"priority"`
	Title         string         `gorm:"not null" json:"title"`
	Description   string         `json:"description"`
	ReporterName  string         `json:"reporter_name"`
	ReporterEmail string         `json:"reporter_email"`
	Diagnostic    *Diagnostic    `gorm:"type:jsonb" json:"diagnostic,omitempty"`
	Attachments   []Attachment   `gorm:"foreignKey:ReportID" json:"attachments,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Diagnostic is the optional browser context captured by the widget at
// submission time. Stored as a single JSONB column.
type Diagnostic struct {
	UserAgent       string           `json:"user_agent,omitempty"`
	PageURL         string           `json:"page_url,omitempty"`
	ConsoleLogs     []ConsoleLog     `json:"console_logs,omitempty"`
	NetworkRequests []NetworkRequest `json:"network_requests,omitempty"`
}

type ConsoleLog struct {
	Level     string `json:"level"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

type NetworkRequest struct {
	Method     string  `json:"method"`
	URL        string  `json:"url"`
	Status     int     `json:"status"`
	DurationMs float64 `json:"duration_ms,omitempty"`
	StartedAt  int64   `json:"started_at,omitempty"`
}

func (d *Diagnostic) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported diagnostic column type %T", value)
	}
	return json.Unmarshal(raw, d)
}

func (d Diagnostic) Value() (driver.Value, error) {
	return json.Marshal(d)
}
