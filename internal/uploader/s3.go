package uploader

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// S3Uploader implements Uploader for S3-compatible storage (AWS S3,
// Cloudflare R2, or the bureau's own endpoint)
type S3Uploader struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// S3Config contains configuration for S3-compatible storage
type S3Config struct {
	// Endpoint is a custom S3-compatible endpoint URL; empty means AWS S3
	Endpoint string

	// Region for the bucket ("auto" for R2)
	Region string

	// Bucket name
	Bucket string

	// Credentials; when empty they are read from PRINT_ACCESS_KEY_ID /
	// PRINT_SECRET_ACCESS_KEY, then the standard AWS variables
	AccessKeyID     string
	SecretAccessKey string

	// BaseURL is the public URL base for uploaded files
	BaseURL string
}

// NewS3Uploader creates a new S3-compatible uploader
func NewS3Uploader(ctx context.Context, cfg S3Config) (*S3Uploader, error) {
	accessKey := cfg.AccessKeyID
	if accessKey == "" {
		accessKey = os.Getenv("PRINT_ACCESS_KEY_ID")
		if accessKey == "" {
			accessKey = os.Getenv("AWS_ACCESS_KEY_ID")
		}
	}
	secretKey := cfg.SecretAccessKey
	if secretKey == "" {
		secretKey = os.Getenv("PRINT_SECRET_ACCESS_KEY")
		if secretKey == "" {
			secretKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
		}
	}
	if accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("missing credentials: set PRINT_ACCESS_KEY_ID/PRINT_SECRET_ACCESS_KEY or AWS_ACCESS_KEY_ID/AWS_SECRET_ACCESS_KEY")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var client *s3.Client
	if cfg.Endpoint != "" {
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	} else {
		client = s3.NewFromConfig(awsCfg)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		if cfg.Endpoint != "" {
			baseURL = fmt.Sprintf("%s/%s", cfg.Endpoint, cfg.Bucket)
		} else {
			baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}

	log.Info().
		Str("bucket", cfg.Bucket).
		Str("region", cfg.Region).
		Str("endpoint", cfg.Endpoint).
		Msg("Print uploader initialized")

	return &S3Uploader{client: client, bucket: cfg.Bucket, baseURL: baseURL}, nil
}

// Upload uploads a file to S3-compatible storage
func (u *S3Uploader) Upload(ctx context.Context, key string, content io.Reader, contentType string) error {
	log.Debug().Str("key", key).Str("contentType", contentType).Msg("Uploading sheet")

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        content,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

// Exists checks if a file exists in S3-compatible storage
func (u *S3Uploader) Exists(ctx context.Context, key string) (bool, error) {
	_, err := u.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		msg := err.Error()
		if strings.Contains(msg, "NotFound") || strings.Contains(msg, "404") {
			return false, nil
		}
		return false, fmt.Errorf("failed to check existence of %s: %w", key, err)
	}
	return true, nil
}

// GetURL returns the public URL for an uploaded file
func (u *S3Uploader) GetURL(key string) string {
	return fmt.Sprintf("%s/%s", u.baseURL, key)
}
