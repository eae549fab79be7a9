package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/lapangankita/field-booking/internal/config"
)

// Storage saves uploaded images to S3 when AWS credentials are
// configured, or to local disk otherwise.
type Storage struct {
	client *s3.Client
	bucket string
	region string

	uploadDir string
	baseURL   string
}

func New(cfg *config.Config) (*Storage, error) {
	st := &Storage{
		uploadDir: cfg.UploadDir,
		baseURL:   cfg.BaseURL,
	}

	if cfg.AWSRegion != "" && cfg.AWSAccessKey != "" && cfg.AWSSecretKey != "" && cfg.S3Bucket != "" {
		st.client = s3.New(s3.Options{
			Region: cfg.AWSRegion,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(cfg.AWSAccessKey, cfg.AWSSecretKey, ""),
			),
		})
		st.bucket = cfg.S3Bucket
		st.region = cfg.AWSRegion
		return st, nil
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	log.Println("storage: S3 not configured, using local disk")
	return st, nil
}

// SaveUpload stores a raw multipart upload (payment proofs) and
// returns its public URL.
func (s *Storage) SaveUpload(
	ctx context.Context,
	folder string,
	file *multipart.FileHeader,
) (string, error) {

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	key := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), filepath.Ext(file.Filename))
	contentType := http.DetectContentType(data)

	return s.put(ctx, key, data, contentType)
}

// SaveBytes stores already-encoded image data under the given
// extension and returns its public URL.
func (s *Storage) SaveBytes(
	ctx context.Context,
	folder string,
	ext string,
	contentType string,
	data []byte,
) (string, error) {

	key := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), ext)
	return s.put(ctx, key, data, contentType)
}

func (s *Storage) put(
	ctx context.Context,
	key string,
	data []byte,
	contentType string,
) (string, error) {

	if s.client != nil {
		_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String(contentType),
		})
		if err != nil {
			return "", fmt.Errorf("s3 put: %w", err)
		}

		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
	}

	path := filepath.Join(s.uploadDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/uploads/%s", s.baseURL, key), nil
}
