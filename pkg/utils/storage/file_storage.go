package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

var s3Client *s3.Client

// InitStorage builds the S3 client against the R2 endpoint configured
// in the environment.
func InitStorage() error {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			os.Getenv("R2_ACCESS_KEY"),
			os.Getenv("R2_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		return fmt.Errorf("unable to load SDK config: %v", err)
	}

	s3Client = s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", os.Getenv("R2_ACCOUNT_ID")))
		o.UsePathStyle = true
		o.Region = "auto"
	})

	return nil
}

// UploadProductPhoto stores an already-processed photo under a
// per-business prefix and returns its public URL.
func UploadProductPhoto(data *bytes.Buffer, contentType, businessName, productName, originalName string) (string, error) {
	bucket := os.Getenv("R2_BUCKET")
	if bucket == "" {
		bucket = "doceria-images"
	}

	ext := filepath.Ext(originalName)
	key := fmt.Sprintf("%s/%s/%d-%s%s",
		slug.Make(businessName),
		slug.Make(productName),
		time.Now().Unix(),
		uuid.New().String(),
		ext,
	)

	_, err := s3Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data.Bytes()),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("could not upload to storage: %v", err)
	}

	return fmt.Sprintf("%s/%s", strings.TrimRight(os.Getenv("R2_PUBLIC_URL"), "/"), key), nil
}

// DeletePhoto removes a previously uploaded photo by its public URL.
func DeletePhoto(photoURL string) error {
	bucket := os.Getenv("R2_BUCKET")
	if bucket == "" {
		bucket = "doceria-images"
	}

	key := strings.TrimPrefix(photoURL, strings.TrimRight(os.Getenv("R2_PUBLIC_URL"), "/")+"/")

	_, err := s3Client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})

	return err
}
