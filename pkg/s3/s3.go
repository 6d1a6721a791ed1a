package s3

import (
	"fmt"
	"strings"
	"time"

	"consumed/pkg/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Client turns stored object keys (avatars, cover art uploaded by users) into
// time-limited download URLs.
type Client struct {
	s3Client *s3.S3
	bucket   string
	ttl      time.Duration
}

func NewClient(cfg *config.Config) (*Client, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.AWSRegion),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		),
	}

	// Support MinIO for local development
	if cfg.AWSEndpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.AWSEndpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
		if cfg.S3UseSSL == "false" {
			awsConfig.DisableSSL = aws.Bool(true)
		}
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &Client{
		s3Client: s3.New(sess),
		bucket:   cfg.S3BucketName,
		ttl:      cfg.S3URLTTL,
	}, nil
}

// IsObjectKey reports whether ref names an object in the bucket rather than an
// absolute URL.
func IsObjectKey(ref string) bool {
	if ref == "" {
		return false
	}
	return !strings.HasPrefix(ref, "http://") && !strings.HasPrefix(ref, "https://") && !strings.HasPrefix(ref, "data:")
}

// ResolveURL returns ref unchanged unless it is an object key, in which case
// a presigned GET URL is produced. Signing happens locally.
func (c *Client) ResolveURL(ref string) (string, error) {
	if !IsObjectKey(ref) {
		return ref, nil
	}

	req, _ := c.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(strings.TrimPrefix(ref, "/")),
	})
	url, err := req.Presign(c.ttl)
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", ref, err)
	}
	return url, nil
}
