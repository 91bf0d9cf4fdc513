package services

import (
	"context"
	"encoding/base64"
	"errors"
	"mime/multipart"
	"strings"
	"testing"
)

func TestUploadCountCap(t *testing.T) {
	if err := ValidateCount(MaxFilesPerRequest); err != nil {
		t.Errorf("count at cap should pass: %v", err)
	}
	if err := ValidateCount(MaxFilesPerRequest + 1); !errors.Is(err, ErrTooManyFiles) {
		t.Errorf("err = %v, want ErrTooManyFiles", err)
	}
}

func TestRequestBodyCoversMaxBase64Upload(t *testing.T) {
	// A request at both caps must fit within the HTTP body limit even after
	// base64 expansion, with headroom for JSON framing.
	worst := base64.StdEncoding.EncodedLen(MaxFileSize) * MaxFilesPerRequest
	if MaxRequestBodySize < worst+1<<20 {
		t.Errorf("body limit %d too small for worst-case upload of %d bytes", MaxRequestBodySize, worst)
	}
}

func TestUploadSizeCap(t *testing.T) {
	// The size check runs before any bytes reach object storage, so the
	// service never touches the nil MinIO client here.
	repo := newFakeAttachmentRepo()
	svc := NewAttachmentService(repo, nil, "attachments")

	_, err := svc.Upload(context.Background(), "huge.bin", "application/octet-stream",
		strings.NewReader(""), MaxFileSize+1)
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("err = %v, want ErrFileTooLarge", err)
	}
	if len(repo.attachments) != 0 {
		t.Errorf("oversized upload must not create metadata, got %d rows", len(repo.attachments))
	}
}

func TestUploadMultipartSizeCap(t *testing.T) {
	svc := NewAttachmentService(newFakeAttachmentRepo(), nil, "attachments")

	header := &multipart.FileHeader{Filename: "huge.bin", Size: MaxFileSize + 1}
	_, err := svc.UploadMultipart(context.Background(), header)
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("err = %v, want ErrFileTooLarge", err)
	}
}
