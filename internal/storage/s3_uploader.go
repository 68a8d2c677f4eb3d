package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Uploader stores a file and returns its public URL.
type Uploader interface {
	UploadFile(ctx context.Context, body io.Reader, filename, contentType, folder string) (string, error)
}

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader writes objects to a single bucket.
type S3Uploader struct {
	client putObjectAPI
	bucket string
	region string
}

// NewS3Uploader builds an uploader with static credentials. Empty keys fall
// back to the default AWS credential chain.
func NewS3Uploader(ctx context.Context, accessKey, secretKey, region, bucket string) (*S3Uploader, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if accessKey != "" && secretKey != "" {
		creds := credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")
		opts = append(opts, config.WithCredentialsProvider(creds))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &S3Uploader{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}, nil
}

// UploadFile stores body under folder/<uuid><ext> and returns the object URL.
func (u *S3Uploader) UploadFile(ctx context.Context, body io.Reader, filename, contentType, folder string) (string, error) {
	key := objectKey(folder, filename)

	input := &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := u.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key), nil
}

func objectKey(folder, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return path.Join(strings.Trim(folder, "/"), uuid.New().String()+ext)
}
