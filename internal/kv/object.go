package kv

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

const (
	contentTypeJSON = "application/json"
	noSuchKey       = "NoSuchKey"
)

// Compile-time interface checks.
var (
	_ Store = (*Object)(nil)
	_ Sizer = (*Object)(nil)
)

// Object keeps each value as an object in an S3-compatible bucket.
type Object struct {
	client *minio.Client
	bucket string
}

func NewObject(client *minio.Client, bucket string) *Object {
	return &Object{client: client, bucket: bucket}
}

// EnsureBucket creates the bucket when it does not exist.
func (o *Object) EnsureBucket(ctx context.Context) error {
	exists, err := o.client.BucketExists(ctx, o.bucket)
	if err != nil {
		return fmt.Errorf("checking bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := o.client.MakeBucket(ctx, o.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("creating bucket: %w", err)
	}
	return nil
}

func (o *Object) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	obj, err := o.client.GetObject(ctx, o.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("getting object: %w", err)
	}
	defer func() { _ = obj.Close() }()

	data, err := io.ReadAll(obj)
	if minio.ToErrorResponse(err).Code == noSuchKey {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("reading object: %w", err)
	}
	return data, nil
}

func (o *Object) Set(ctx context.Context, key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	_, err := o.client.PutObject(ctx, o.bucket, key, bytes.NewReader(value), int64(len(value)),
		minio.PutObjectOptions{ContentType: contentTypeJSON})
	if err != nil {
		return fmt.Errorf("putting object: %w", err)
	}
	return nil
}

func (o *Object) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := o.client.RemoveObject(ctx, o.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("removing object: %w", err)
	}
	return nil
}

func (o *Object) Usage(ctx context.Context, namespace string) (int64, error) {
	// stops the listing goroutine on an early return
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var total int64
	objects := o.client.ListObjects(ctx, o.bucket, minio.ListObjectsOptions{
		Prefix:    namespace + "/",
		Recursive: true,
	})
	for obj := range objects {
		if obj.Err != nil {
			return 0, fmt.Errorf("listing objects: %w", obj.Err)
		}
		total += obj.Size
	}
	return total, nil
}
