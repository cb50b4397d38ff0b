package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"resume-optimizer/internal/shared/storage/object"
)

// Options configures an S3 or S3-compatible (R2) bucket.
type Options struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Prefix          string
	PublicURL       string
	KMSKeyID        string
}

type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Store implements ObjectStore using Amazon S3 or an S3-compatible endpoint.
type Store struct {
	client    objectAPI
	presign   func(ctx context.Context, params *s3.GetObjectInput, ttl time.Duration) (string, error)
	bucket    string
	prefix    string
	publicURL string
	kmsKeyID  string
	useSSE    bool
}

// New creates a new S3-backed object store.
func New(ctx context.Context, opts Options) (*Store, error) {
	if strings.TrimSpace(opts.Bucket) == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if region := resolveRegion(opts); region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return newFromConfig(cfg, opts), nil
}

func newFromConfig(cfg aws.Config, opts Options) *Store {
	endpoint := resolveEndpoint(opts.Endpoint, opts.AccountID)
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	presigner := s3.NewPresignClient(client)

	return &Store{
		client: client,
		presign: func(ctx context.Context, params *s3.GetObjectInput, ttl time.Duration) (string, error) {
			req, err := presigner.PresignGetObject(ctx, params, s3.WithPresignExpires(ttl))
			if err != nil {
				return "", err
			}
			return req.URL, nil
		},
		bucket:    strings.TrimSpace(opts.Bucket),
		prefix:    normalizePrefix(opts.Prefix),
		publicURL: strings.TrimRight(strings.TrimSpace(opts.PublicURL), "/"),
		kmsKeyID:  strings.TrimSpace(opts.KMSKeyID),
		useSSE:    endpoint == "",
	}
}

// Put uploads the reader contents to the bucket under key.
func (s *Store) Put(ctx context.Context, key string, contentType string, r io.Reader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	body, size, err := buffer(r)
	if err != nil {
		return "", 0, fmt.Errorf("read body: %w", err)
	}

	objectKey := applyPrefix(s.prefix, key)
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectKey),
		Body:          body,
		ContentLength: aws.Int64(size),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if s.useSSE {
		if s.kmsKeyID != "" {
			input.ServerSideEncryption = s3types.ServerSideEncryptionAwsKms
			input.SSEKMSKeyId = aws.String(s.kmsKeyID)
		} else {
			input.ServerSideEncryption = s3types.ServerSideEncryptionAes256
		}
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", 0, fmt.Errorf("s3 put object bucket=%s key=%s: %w", s.bucket, objectKey, err)
	}
	return s.objectURL(objectKey), size, nil
}

// Open downloads a stored object for reading.
func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	objectKey := applyPrefix(s.prefix, key)
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		var missing *s3types.NoSuchKey
		if errors.As(err, &missing) {
			return nil, object.ErrNotFound
		}
		return nil, fmt.Errorf("s3 get object bucket=%s key=%s: %w", s.bucket, objectKey, err)
	}
	return out.Body, nil
}

// PresignGet returns a time-limited GET URL for key.
func (s *Store) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = time.Hour
	}
	objectKey := applyPrefix(s.prefix, key)
	url, err := s.presign(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	}, ttl)
	if err != nil {
		return "", fmt.Errorf("s3 presign bucket=%s key=%s: %w", s.bucket, objectKey, err)
	}
	return url, nil
}

// Delete removes key from the bucket. S3 treats missing keys as success.
func (s *Store) Delete(ctx context.Context, key string) error {
	objectKey := applyPrefix(s.prefix, key)
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("s3 delete object bucket=%s key=%s: %w", s.bucket, objectKey, err)
	}
	return nil
}

func (s *Store) Backend() string { return object.BackendS3 }

func (s *Store) objectURL(objectKey string) string {
	if s.publicURL != "" {
		return s.publicURL + "/" + objectKey
	}
	return "s3://" + s.bucket + "/" + objectKey
}

// resolveEndpoint derives the R2 endpoint from an account ID when no explicit endpoint is set.
// resolveRegion returns the configured region, "auto" for custom endpoints
// such as R2, and "" to leave plain AWS on the SDK's region chain.
func resolveRegion(opts Options) string {
	if region := strings.TrimSpace(opts.Region); region != "" {
		return region
	}
	if resolveEndpoint(opts.Endpoint, opts.AccountID) != "" {
		return "auto"
	}
	return ""
}

func resolveEndpoint(endpoint, accountID string) string {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if endpoint != "" {
		return endpoint
	}
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return ""
	}
	return "https://" + accountID + ".r2.cloudflarestorage.com"
}

// buffer reads r fully so the SDK gets a seekable body with a known length.
func buffer(r io.Reader) (*bytes.Reader, int64, error) {
	if br, ok := r.(*bytes.Reader); ok {
		return br, int64(br.Len()), nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, err
	}
	return bytes.NewReader(data), int64(len(data)), nil
}

func normalizePrefix(prefix string) string {
	return strings.Trim(strings.TrimSpace(prefix), "/")
}

func applyPrefix(prefix, key string) string {
	cleanPrefix := strings.Trim(prefix, "/")
	cleanKey := strings.TrimLeft(key, "/")
	if cleanPrefix == "" {
		return cleanKey
	}
	if cleanKey == "" {
		return cleanPrefix
	}
	return cleanPrefix + "/" + cleanKey
}

var _ object.ObjectStore = (*Store)(nil)
