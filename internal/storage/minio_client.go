package storage

import (
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"feedloop-server/internal/config"
	"feedloop-server/internal/logger"
)

// NewMinioClient initializes a MinIO client and ensures the attachment
// bucket exists.
func NewMinioClient(cfg *config.Config) (*minio.Client, error) {
	minioClient, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
		Secure: cfg.Minio.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	// Ensure the bucket exists (create if not present)
	ctx := context.Background()
	exists, errBucket := minioClient.BucketExists(ctx, cfg.Minio.Bucket)
	if errBucket != nil {
		return nil, errBucket
	}
	if !exists {
		err = minioClient.MakeBucket(ctx, cfg.Minio.Bucket, minio.MakeBucketOptions{Region: ""})
		if err != nil {
			return nil, err
		}
		logger.Info("Created bucket %s", cfg.Minio.Bucket)
	}
	return minioClient, nil
}
