package models

import (
	"time"

	"github.com/google/uuid"
)

type MemberRole string

const (
	RoleMember MemberRole = "member"
	RoleAdmin  MemberRole = "admin"
)

// Invitation is an active project membership. The project owner is not
// represented here; ownership lives on the project row itself.
type Invitation struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID  `gorm:"type:uuid;uniqueIndex:idx_project_user;not null" json:"project_id"`
	UserID    string     `gorm:"uniqueIndex:idx_project_user;not null" json:"user_id"`
	Email     string     `gorm:"index;not null" json:"email"`
	Role      MemberRole `gorm:"size:16;not null" json:"role"`
	CanInvite bool       `json:"can_invite"`
	CreatedAt time.Time  `json:"created_at"`
}

// PendingInvitation targets an email with no account yet. It converts to an
// Invitation when the invitee registers and claims it, and is ignored by all
// active-membership queries once ExpiresAt has passed.
type PendingInvitation struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID  `gorm:"type:uuid;uniqueIndex:idx_pending_project_email;not null" json:"project_id"`
	Email     string     `gorm:"uniqueIndex:idx_pending_project_email;not null" json:"email"`
	Role      MemberRole `gorm:"size:16;not null" json:"role"`
	CanInvite bool       `json:"can_invite"`
	ExpiresAt time.Time  `gorm:"index;not null" json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
}
