package models

import (
	"time"

	"github.com/google/uuid"
)

// Attachment is an uploaded file stored in object storage. ReportID is nil
// until the attachment is linked to a report; once linked it stays linked.
type Attachment struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Filename    string     `gorm:"not null" json:"filename"`
	Size        int64      `json:"size"`
	ContentType string     `json:"content_type"`
	StorageKey  string     `gorm:"not null" json:"storage_key"`
	ReportID    *uuid.UUID `gorm:"type:uuid;index" json:"report_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
