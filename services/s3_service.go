package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appConfig "github.com/ShanAhmd/HiDrawpix/config"
)

// Upload namespaces. Customer uploads are confined to order attachments;
// delivery artifacts and portfolio images require an admin.
const (
	NamespaceOrderAttachments = "order-attachments"
	NamespaceDeliveryFiles    = "delivery-files"
	NamespacePortfolioImages  = "portfolio-images"
)

// S3Interface defines the interface for binary object storage. Uploads always
// create a new object keyed by timestamp and filename; normal flow never
// overwrites. Deleting a missing object is not an error.
type S3Interface interface {
	UploadFile(fileHeader *multipart.FileHeader, namespace string) (string, error)
	DeleteFileByURL(fileURL string) error
}

// S3Service handles all S3-related operations
type S3Service struct {
	client *s3.Client
	bucket string
	region string
}

var s3ServiceInstance S3Interface

// InitS3Service initializes the S3 service with AWS credentials
func InitS3Service() (S3Interface, error) {
	cfg := appConfig.GetConfig()

	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.AWSRegion),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig)

	s3ServiceInstance = &S3Service{
		client: client,
		bucket: cfg.AWSS3Bucket,
		region: cfg.AWSRegion,
	}

	return s3ServiceInstance, nil
}

// GetS3Service returns the initialized S3 service instance
func GetS3Service() S3Interface {
	return s3ServiceInstance
}

// SetS3Service sets the S3 service instance (primarily for testing)
func SetS3Service(service S3Interface) {
	s3ServiceInstance = service
}

// UploadFile uploads a file under the given namespace and returns a stable
// public URL for it. Keys follow {namespace}/{timestamp}_{filename} so
// repeated uploads of the same file never collide.
func (s *S3Service) UploadFile(fileHeader *multipart.FileHeader, namespace string) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("warning: failed to close file: %v", closeErr)
		}
	}()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	filename := filepath.Base(fileHeader.Filename)
	key := fmt.Sprintf("%s/%d_%s", namespace, time.Now().Unix(), filename)

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = s.client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return s.objectURL(key), nil
}

// DeleteFileByURL deletes the object the URL points at. Unknown URLs and
// already-deleted objects are treated as success so record cleanup can always
// proceed.
func (s *S3Service) DeleteFileByURL(fileURL string) error {
	if fileURL == "" {
		return nil
	}

	key, err := s.keyFromURL(fileURL)
	if err != nil {
		// Not one of ours (e.g. an external link a customer pasted in).
		// Nothing to release.
		log.Printf("skipping delete of non-bucket URL %q: %v", fileURL, err)
		return nil
	}

	// S3 DeleteObject is idempotent: deleting a missing key succeeds.
	_, err = s.client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

// objectURL builds the virtual-hosted-style URL for a key.
func (s *S3Service) objectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// keyFromURL extracts the object key from a URL previously returned by
// objectURL.
func (s *S3Service) keyFromURL(fileURL string) (string, error) {
	parsed, err := url.Parse(fileURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	if !strings.HasPrefix(parsed.Host, s.bucket+".") {
		return "", fmt.Errorf("URL does not belong to bucket %s", s.bucket)
	}
	key := strings.TrimPrefix(parsed.Path, "/")
	if key == "" {
		return "", fmt.Errorf("URL has no object key")
	}
	return key, nil
}
