package upload

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Destination prefixes for the two image variants.
const (
	ProfileImagePrefix = "profileImages/"
	PostImagePrefix    = "postImages/"
)

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// BlobStore streams binary objects to blob storage with fractional progress
// and yields the object's durable retrieval URL on completion.
type BlobStore interface {
	Upload(ctx context.Context, key string, src io.Reader, size int64, contentType string, onProgress func(int)) (string, error)
}

// Uploader is the minio-backed BlobStore.
type Uploader struct {
	cfg    Config
	client *minio.Client
}

func New(cfg Config) (*Uploader, error) {
	client, err := minio.New(strings.TrimPrefix(cfg.Endpoint, "http://"), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &Uploader{cfg: cfg, client: client}, nil
}

func (u *Uploader) EnsureBucket(ctx context.Context) error {
	exists, err := u.client.BucketExists(ctx, u.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := u.client.MakeBucket(ctx, u.cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

// Upload streams src under key and reports integer-percentage progress
// through onProgress (nil to skip). Progress values are strictly increasing
// and 100 is always reported before Upload returns successfully. A failure
// mid-transfer is returned as-is; no partial-object cleanup is attempted and
// no retry happens here — retry policy belongs to the caller.
func (u *Uploader) Upload(ctx context.Context, key string, src io.Reader, size int64, contentType string, onProgress func(int)) (string, error) {
	reader := newProgressReader(src, size, onProgress)

	_, err := u.client.PutObject(ctx, u.cfg.Bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	reader.finish()
	return u.objectURL(key), nil
}

func (u *Uploader) objectURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", u.client.EndpointURL(), u.cfg.Bucket, key)
}

var _ BlobStore = (*Uploader)(nil)
