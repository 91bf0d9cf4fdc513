package models

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// Project is a feedback-collection workspace. Reports submitted through the
// embeddable widget are authenticated with the project's integration key
// rather than a user session.
type Project struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string    `gorm:"not null" json:"name"`
	OwnerID        string    `gorm:"index;not null" json:"owner_id"`
	OwnerEmail     string    `gorm:"not null" json:"owner_email"`
	IntegrationKey string    `gorm:"size:32;uniqueIndex;not null" json:"integration_key"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewIntegrationKey generates a random 32-character hex token.
func NewIntegrationKey() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
