// Package storage implements avatar image storage on S3-compatible object
// stores (MinIO in development, S3 in production).
package storage

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

type S3Config struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	PublicHost      string
}

// AvatarStore uploads user avatars and hands back their public URL.
type AvatarStore struct {
	s3         *s3.S3
	bucket     string
	publicHost string
}

// NewAvatarStore creates an AvatarStore against the configured endpoint.
// Path-style addressing keeps MinIO URLs working.
func NewAvatarStore(cfg S3Config) (*AvatarStore, error) {
	awsCfg := &aws.Config{
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}
	if cfg.AccessKeyID != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, err
	}

	return &AvatarStore{
		s3:         s3.New(sess),
		bucket:     cfg.Bucket,
		publicHost: strings.TrimSuffix(cfg.PublicHost, "/"),
	}, nil
}

// UploadAvatar stores the image under users/<id>/<uuid><ext> and returns the
// public URL.
func (s *AvatarStore) UploadAvatar(userID uint, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("users/%d/%s%s", userID, uuid.NewString(), ext)

	_, err = s.s3.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        aws.ReadSeekCloser(src),
		ContentType: aws.String(file.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s/%s", s.publicHost, s.bucket, key), nil
}
