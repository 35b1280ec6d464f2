package s3

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/mwantia/vsh/data"
)

// objectFile is the name of the JSON document describing the object whose
// path is the enclosing prefix.
const objectFile = ".object.json"

type S3Backend struct {
	mu sync.RWMutex

	client     *minio.Client
	bucketName string
	prefix     string
}

func NewS3Backend(endpoint, bucketName, prefix, accessKey, secretKey string, useSsl bool) (*S3Backend, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSsl,
	})
	if err != nil {
		return nil, err
	}

	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}

	return &S3Backend{
		client:     client,
		bucketName: bucketName,
		prefix:     prefix,
	}, nil
}

// Returns the identifier name defined for this backend
func (*S3Backend) Name() string {
	return "s3"
}

// Open is part of the lifecycle behavious and gets called when opening this backend.
func (sb *S3Backend) Open(ctx context.Context) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	exists, err := sb.client.BucketExists(ctx, sb.bucketName)
	if err != nil {
		return err
	}

	if !exists {
		return fmt.Errorf("bucket '%s' does not exist: %w", sb.bucketName, data.ErrUnavailable)
	}

	return nil
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
func (sb *S3Backend) Close(ctx context.Context) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	return nil
}

// dirKey returns the S3 prefix below which children of path are stored.
func (sb *S3Backend) dirKey(path string) string {
	if path == "" {
		return sb.prefix
	}

	return sb.prefix + path + "/"
}

// objectKey returns the key of the document describing path.
func (sb *S3Backend) objectKey(path string) string {
	return sb.dirKey(path) + objectFile
}
