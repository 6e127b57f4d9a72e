package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"tg-dating-backend/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const uploadURLTTL = 5 * time.Minute

// PhotoService hands out upload URLs for profile photos
type PhotoService struct {
	presign    *s3.PresignClient
	bucket     string
	publicBase string
}

// PhotoOptions configures the bucket photos are uploaded to
type PhotoOptions struct {
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	Endpoint  string
	PublicURL string
}

// NewPhotoService creates a new photo service
func NewPhotoService(ctx context.Context, opts PhotoOptions) (*PhotoService, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.AccessKey != "" && opts.SecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicBase := strings.TrimRight(opts.PublicURL, "/")
	if publicBase == "" {
		publicBase = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, opts.Region)
	}

	return &PhotoService{
		presign:    s3.NewPresignClient(client),
		bucket:     opts.Bucket,
		publicBase: publicBase,
	}, nil
}

// UploadResponse tells the client where to PUT the photo and which URL to
// store in the profile afterwards
type UploadResponse struct {
	UploadURL string `json:"upload_url"`
	PhotoURL  string `json:"photo_url"`
	PhotoID   string `json:"photo_id"`
	ExpiresIn int    `json:"expires_in"`
}

// PresignUpload generates a pre-signed PUT URL for a new profile photo
func (s *PhotoService) PresignUpload(ctx context.Context, identity models.Identity, filename, contentType string) (*UploadResponse, error) {
	if identity.IsZero() {
		return nil, ErrIdentityRequired
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}

	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	photoID := uuid.New().String()
	key := fmt.Sprintf("profiles/%s/%s%s", identity.Key(), photoID, ext)

	request, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = uploadURLTTL
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate pre-signed URL: %w", err)
	}

	return &UploadResponse{
		UploadURL: request.URL,
		PhotoURL:  s.publicBase + "/" + key,
		PhotoID:   photoID,
		ExpiresIn: int(uploadURLTTL.Seconds()),
	}, nil
}
