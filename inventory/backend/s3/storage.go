package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sort"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/mwantia/vsh/data"
)

func (sb *S3Backend) PutObject(ctx context.Context, obj *data.Object) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	content, err := json.Marshal(obj)
	if err != nil {
		return err
	}

	_, err = sb.client.PutObject(ctx, sb.bucketName, sb.objectKey(obj.Path), bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: "application/json",
	})

	return err
}

func (sb *S3Backend) ReadObject(ctx context.Context, path string) (*data.Object, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	return sb.readObject(ctx, sb.objectKey(path))
}

func (sb *S3Backend) ListObjects(ctx context.Context, parent string) ([]*data.Object, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	// Non-recursive listing returns one common prefix per child
	objectCh := sb.client.ListObjects(ctx, sb.bucketName, minio.ListObjectsOptions{
		Prefix:    sb.dirKey(parent),
		Recursive: false,
	})

	children := make([]*data.Object, 0)
	for info := range objectCh {
		if info.Err != nil {
			return nil, info.Err
		}
		if !strings.HasSuffix(info.Key, "/") {
			continue
		}

		obj, err := sb.readObject(ctx, info.Key+objectFile)
		if errors.Is(err, data.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		children = append(children, obj)
	}

	sort.Slice(children, func(i, j int) bool {
		return children[i].Path < children[j].Path
	})

	return children, nil
}

func (sb *S3Backend) DeleteObject(ctx context.Context, path string) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	key := sb.objectKey(path)

	if _, err := sb.client.StatObject(ctx, sb.bucketName, key, minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return data.ErrNotExist
		}
		return err
	}

	return sb.client.RemoveObject(ctx, sb.bucketName, key, minio.RemoveObjectOptions{})
}

func (sb *S3Backend) readObject(ctx context.Context, key string) (*data.Object, error) {
	object, err := sb.client.GetObject(ctx, sb.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer object.Close()

	content, err := io.ReadAll(object)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, data.ErrNotExist
		}
		return nil, err
	}

	var obj data.Object
	if err := json.Unmarshal(content, &obj); err != nil {
		return nil, err
	}

	return &obj, nil
}
