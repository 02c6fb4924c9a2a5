// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"

	"github.com/the-exchanger/exchanger-backend/internal/config"
	"github.com/the-exchanger/exchanger-backend/internal/models"
)

// StorageService stores listing images in S3 and returns the rich image
// record that goes into a listing's images array.
type StorageService struct {
	s3Client *s3.S3
	cfg      *config.Config
}

const (
	maxImageSize      = 10 << 20 // 10 MB
	maxImagesPerBatch = 6
)

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	if cfg.AWS.AccessKeyID == "" {
		// No credentials: local development mode, uploads are simulated.
		return &StorageService{cfg: cfg}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{s3Client: s3.New(sess), cfg: cfg}, nil
}

// UploadListingImages uploads up to maxImagesPerBatch image files and
// returns their rich image records in input order.
func (s *StorageService) UploadListingImages(files []*multipart.FileHeader) ([]models.Image, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files provided")
	}
	if len(files) > maxImagesPerBatch {
		return nil, fmt.Errorf("too many files: at most %d images per upload", maxImagesPerBatch)
	}

	images := make([]models.Image, 0, len(files))
	for _, header := range files {
		img, err := s.uploadOne(header)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

func (s *StorageService) uploadOne(header *multipart.FileHeader) (models.Image, error) {
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return models.Image{}, fmt.Errorf("only images allowed, got %s", contentType)
	}
	if header.Size > maxImageSize {
		return models.Image{}, fmt.Errorf("file %s exceeds the %d byte limit", header.Filename, maxImageSize)
	}

	file, err := header.Open()
	if err != nil {
		return models.Image{}, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return models.Image{}, fmt.Errorf("failed to read upload: %w", err)
	}

	key := s.objectKey(header.Filename)
	url, err := s.store(fileBytes, key, contentType)
	if err != nil {
		return models.Image{}, err
	}

	now := time.Now()
	return models.Image{
		Kind:       models.ImageKindRich,
		URL:        url,
		Filename:   header.Filename,
		Mimetype:   contentType,
		Size:       header.Size,
		UploadedAt: &now,
	}, nil
}

func (s *StorageService) store(fileBytes []byte, key, contentType string) (string, error) {
	if s.s3Client == nil {
		// Development fallback mirrors the S3 URL shape.
		return fmt.Sprintf("http://localhost:%s/uploads/%s", s.cfg.Server.Port, key), nil
	}

	_, err := s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	if s.cfg.AWS.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(s.cfg.AWS.CloudFrontURL, "/"), key), nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.AWS.S3Bucket, s.cfg.AWS.Region, key), nil
}

func (s *StorageService) objectKey(filename string) string {
	return fmt.Sprintf("listings/%s%s", uuid.New().String(), strings.ToLower(filepath.Ext(filename)))
}
