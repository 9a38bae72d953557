package catalog

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Source отдаёт содержимое выгрузки каталога (XLSX)
type Source interface {
	Fetch(ctx context.Context) (io.ReadCloser, error)
}

// ObjectGetter часть s3.Client, нужная для загрузки
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source читает каталог из S3
type S3Source struct {
	client ObjectGetter
	bucket string
	key    string
}

func NewS3Source(client ObjectGetter, bucket, key string) *S3Source {
	return &S3Source{client: client, bucket: bucket, key: key}
}

// Fetch скачивает объект каталога; вызывающий закрывает поток
func (s *S3Source) Fetch(ctx context.Context) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, fmt.Errorf("download s3://%s/%s: %w", s.bucket, s.key, err)
	}
	return out.Body, nil
}

// String для логов
func (s *S3Source) String() string {
	return "s3://" + s.bucket + "/" + s.key
}
