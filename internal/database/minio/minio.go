package minio

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/cschleeper/hotel-rating-tool/internal/config"
)

// MinioClient wraps the MinIO client with the buckets this service owns.
type MinioClient struct {
	client *minio.Client
	config config.MinioConfig
}

// Storage defines the bucket names for lookup artifacts.
var Storage = struct {
	PropertyPhotos string
	QuoteExports   string
}{
	PropertyPhotos: "property-photos",
	QuoteExports:   "quote-exports",
}

// BucketNames contains every bucket ensured at startup.
var BucketNames = []string{
	Storage.PropertyPhotos,
	Storage.QuoteExports,
}

// NewMinioClient initializes a MinIO client and ensures the service buckets
// exist.
func NewMinioClient(cfg config.MinioConfig) (*MinioClient, error) {
	endpoint := strings.TrimPrefix(cfg.MinioURL, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	isSecure, err := strconv.ParseBool(cfg.MinioSecure)
	if err != nil {
		log.Printf("Invalid value for MinIO secure flag: %v. Defaulting to false.", err)
		isSecure = false
	}

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: isSecure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := minioClient.ListBuckets(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to MinIO server: %w", err)
	}

	log.Printf("Successfully connected to MinIO at %s", cfg.MinioURL)

	mc := &MinioClient{
		client: minioClient,
		config: cfg,
	}

	if err := mc.ensureRequiredBuckets(); err != nil {
		return nil, fmt.Errorf("failed to ensure required buckets: %w", err)
	}

	return mc, nil
}

func (mc *MinioClient) ensureRequiredBuckets() error {
	ctx := context.Background()

	for _, bucketName := range BucketNames {
		exists, err := mc.client.BucketExists(ctx, bucketName)
		if err != nil {
			return fmt.Errorf("error checking bucket existence: %w", err)
		}
		if exists {
			continue
		}
		err = mc.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{
			Region: mc.config.MinioLocation,
		})
		if err != nil {
			return fmt.Errorf("error creating bucket %s: %w", bucketName, err)
		}
		log.Printf("Created bucket: %s", bucketName)
	}
	return nil
}

// UploadBytes stores raw bytes under bucketName/objectName.
func (mc *MinioClient) UploadBytes(ctx context.Context, bucketName, objectName string, data []byte, contentType string) error {
	reader := bytes.NewReader(data)
	_, err := mc.client.PutObject(ctx, bucketName, objectName, reader, int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("failed to upload bytes to %s in bucket %s: %w", objectName, bucketName, err)
	}
	return nil
}

// ArchiveLookupPhotos stores fetched property photos under a per-lookup
// prefix so underwriters can review the images the vision pass saw. Storage
// failures are logged and swallowed; archiving never blocks a lookup.
func (mc *MinioClient) ArchiveLookupPhotos(ctx context.Context, lookupID string, photos [][]byte) {
	for i, photo := range photos {
		if len(photo) == 0 {
			continue
		}
		objectName := fmt.Sprintf("%s/photo_%d", lookupID, i)
		if err := mc.UploadBytes(ctx, Storage.PropertyPhotos, objectName, photo, "application/octet-stream"); err != nil {
			log.Printf("Failed to archive lookup photo %s: %v", objectName, err)
		}
	}
}

// GetPresignedURL generates a presigned URL for temporary access to an object.
func (mc *MinioClient) GetPresignedURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error) {
	presignedURL, err := mc.client.PresignedGetObject(ctx, bucketName, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL for %s in bucket %s: %w", objectName, bucketName, err)
	}
	return presignedURL.String(), nil
}
