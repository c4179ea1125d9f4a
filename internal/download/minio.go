package download

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Secure    bool
}

// MinioSource serves assets from an S3 compatible bucket.
type MinioSource struct {
	client *minio.Client
	bucket string
}

func NewMinioSource(opts MinioOptions) (*MinioSource, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	return &MinioSource{client: client, bucket: opts.Bucket}, nil
}

func (s *MinioSource) Open(ctx context.Context, name string) (*Asset, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.mapErr(name, err)
	}
	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, s.mapErr(name, err)
	}
	return &Asset{Name: name, Size: info.Size, ModTime: info.LastModified, Body: obj}, nil
}

func (s *MinioSource) mapErr(name string, err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return fmt.Errorf("%w: %s", ErrAssetNotFound, name)
	}
	return fmt.Errorf("minio get %s/%s: %w", s.bucket, name, err)
}
