package services

import "github.com/pkg/errors"

// Sentinel errors mapped to the HTTP taxonomy at the handler boundary.
var (
	// ErrForbidden: the caller is not a member of the project or lacks the
	// required role.
	ErrForbidden = errors.New("insufficient permissions")

	// ErrOwnerImmutable: the project owner cannot be invited, removed or
	// demoted.
	ErrOwnerImmutable = errors.New("project owner cannot be invited or removed")

	// ErrAlreadyMember: the email already holds an active membership.
	ErrAlreadyMember = errors.New("user is already a project member")

	// ErrAlreadyInvited: a non-expired pending invitation for the email exists.
	ErrAlreadyInvited = errors.New("invitation already pending for this email")

	// ErrAttachmentLinked: the attachment is already linked to a report.
	ErrAttachmentLinked = errors.New("attachment is already linked to a report")

	// ErrFileTooLarge: a single uploaded file exceeds the per-file cap.
	ErrFileTooLarge = errors.New("file exceeds the maximum allowed size")

	// ErrTooManyFiles: the request carries more files than allowed.
	ErrTooManyFiles = errors.New("too many files in one request")
)
