package blob

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// OSSStore puts blobs into an Aliyun OSS bucket.
type OSSStore struct {
	bucket   *oss.Bucket
	endpoint string
	name     string
	baseURL  string
}

type OSSConfig struct {
	Endpoint        string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	// PublicBaseURL overrides the default https://{bucket}.{endpoint} origin, e.g. for a CDN.
	PublicBaseURL string
}

func NewOSSStore(cfg OSSConfig) (*OSSStore, error) {
	if cfg.Endpoint == "" || cfg.AccessKeyID == "" || cfg.AccessKeySecret == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("oss endpoint, credentials and bucket are required")
	}

	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("creating oss client: %w", err)
	}

	bucket, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("opening oss bucket: %w", err)
	}

	return &OSSStore{
		bucket:   bucket,
		endpoint: cfg.Endpoint,
		name:     cfg.Bucket,
		baseURL:  strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

func (s *OSSStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (Object, error) {
	if err := validateKey(key); err != nil {
		return Object{}, err
	}
	if size > MaxObjectSize {
		return Object{}, ErrTooLarge
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}
	if err := s.bucket.PutObject(key, r, opts...); err != nil {
		return Object{}, fmt.Errorf("putting oss object: %w", err)
	}

	return Object{Key: key, URL: s.PublicURL(key)}, nil
}

func (s *OSSStore) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := s.bucket.DeleteObject(key, oss.WithContext(ctx)); err != nil {
		return fmt.Errorf("deleting oss object: %w", err)
	}
	return nil
}

func (s *OSSStore) PublicURL(key string) string {
	return ossPublicURL(s.baseURL, s.endpoint, s.name, key)
}

func ossPublicURL(baseURL, endpoint, bucket, key string) string {
	if baseURL != "" {
		return baseURL + "/" + key
	}
	host := strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", bucket, strings.TrimRight(host, "/"), key)
}
