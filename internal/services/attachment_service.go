package services

import (
	"context"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/mholt/archives"
	"github.com/minio/minio-go/v7"
	pkgerrors "github.com/pkg/errors"

	"feedloop-server/internal/models"
	"feedloop-server/internal/repository"
)

const (
	// MaxFileSize is the per-file upload cap (5 MB).
	MaxFileSize = 5 << 20
	// MaxFilesPerRequest caps how many files one upload request may carry.
	MaxFilesPerRequest = 5

	// MaxRequestBodySize bounds the whole HTTP body. A conforming upload of
	// MaxFilesPerRequest files at MaxFileSize each grows by 4/3 when
	// base64-encoded, so the limit leaves room for that plus framing.
	MaxRequestBodySize = 48 << 20
)

// AttachmentService stores uploaded files in MinIO and their metadata in the
// database. Attachments start unlinked and are bound to a report when the
// report is created.
type AttachmentService struct {
	Repo       repository.AttachmentRepository
	Minio      *minio.Client
	BucketName string
}

func NewAttachmentService(repo repository.AttachmentRepository, minioClient *minio.Client, bucketName string) *AttachmentService {
	return &AttachmentService{
		Repo:       repo,
		Minio:      minioClient,
		BucketName: bucketName,
	}
}

// ValidateCount rejects requests carrying more files than allowed.
func ValidateCount(n int) error {
	if n > MaxFilesPerRequest {
		return ErrTooManyFiles
	}
	return nil
}

// Upload stores one file. The caller supplies the decoded content; size is
// checked against the per-file cap before any bytes reach object storage.
func (s *AttachmentService) Upload(ctx context.Context, filename, contentType string, data io.Reader, size int64) (*models.Attachment, error) {
	if size > MaxFileSize {
		return nil, ErrFileTooLarge
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	attachmentID := uuid.New()
	storageKey := attachmentID.String() + filepath.Ext(filename)

	_, err := s.Minio.PutObject(ctx, s.BucketName, storageKey, data, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to upload to MinIO")
	}

	attachment := &models.Attachment{
		ID:          attachmentID,
		Filename:    filename,
		Size:        size,
		ContentType: contentType,
		StorageKey:  storageKey,
		CreatedAt:   time.Now(),
	}
	if err := s.Repo.Create(attachment); err != nil {
		// If the DB save fails, remove the object from storage to avoid an
		// orphan file.
		s.Minio.RemoveObject(ctx, s.BucketName, storageKey, minio.RemoveObjectOptions{})
		return nil, pkgerrors.Wrap(err, "failed to save attachment metadata")
	}
	return attachment, nil
}

// UploadMultipart stores one file from a multipart form part.
func (s *AttachmentService) UploadMultipart(ctx context.Context, fileHeader *multipart.FileHeader) (*models.Attachment, error) {
	if fileHeader.Size > MaxFileSize {
		return nil, ErrFileTooLarge
	}
	src, err := fileHeader.Open()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "could not open uploaded file")
	}
	defer src.Close()
	return s.Upload(ctx, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), src, fileHeader.Size)
}

// Download returns the attachment metadata and a reader over its bytes. The
// caller closes the reader.
func (s *AttachmentService) Download(ctx context.Context, id uuid.UUID) (*models.Attachment, io.ReadCloser, error) {
	attachment, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	object, err := s.Minio.GetObject(ctx, s.BucketName, attachment.StorageKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, pkgerrors.Wrap(err, "failed to retrieve file from MinIO")
	}
	return attachment, object, nil
}

// ArchiveForReport streams a zip bundle of all attachments linked to the
// report. Files are staged in a temp directory so the archive can carry the
// original filenames.
func (s *AttachmentService) ArchiveForReport(ctx context.Context, reportID uuid.UUID, out io.Writer) error {
	attachmentList, err := s.Repo.ListByReport(reportID)
	if err != nil {
		return err
	}

	tempDir, err := os.MkdirTemp("", "feedloop-archive-*")
	if err != nil {
		return pkgerrors.Wrap(err, "could not create temporary directory")
	}
	defer os.RemoveAll(tempDir)

	names := make(map[string]string, len(attachmentList))
	for _, a := range attachmentList {
		object, err := s.Minio.GetObject(ctx, s.BucketName, a.StorageKey, minio.GetObjectOptions{})
		if err != nil {
			return pkgerrors.Wrap(err, "failed to retrieve file from MinIO")
		}
		tempPath := filepath.Join(tempDir, a.ID.String())
		dst, err := os.Create(tempPath)
		if err != nil {
			object.Close()
			return pkgerrors.Wrap(err, "could not create temporary file")
		}
		_, err = io.Copy(dst, object)
		dst.Close()
		object.Close()
		if err != nil {
			return pkgerrors.Wrap(err, "failed to write attachment to disk")
		}
		names[tempPath] = a.Filename
	}

	files, err := archives.FilesFromDisk(ctx, nil, names)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to stage archive files")
	}
	if err := (archives.Zip{}).Archive(ctx, out, files); err != nil {
		return pkgerrors.Wrap(err, "failed to build attachment archive")
	}
	return nil
}
