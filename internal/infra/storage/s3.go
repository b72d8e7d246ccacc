package storage

import (
	"bytes"
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cockroachdb/errors"

	"github.com/BruksfildServices01/barber-booking/internal/config"
)

// ObjectPutter é o subconjunto do cliente S3 que usamos.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Store struct {
	client  ObjectPutter
	bucket  string
	baseURL string
}

func NewS3Store(client ObjectPutter, bucket, publicBaseURL string) *S3Store {
	return &S3Store{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// NewS3Client monta o cliente com credenciais estáticas quando
// informadas; endpoint customizado habilita MinIO e afins.
func NewS3Client(cfg config.S3Config) *s3.Client {
	opts := s3.Options{
		Region: cfg.Region,
	}
	if cfg.AccessKeyID != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

// Put grava o objeto e devolve a URL pública.
func (s *S3Store) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000"),
	})
	if err != nil {
		return "", errors.Wrapf(err, "put object %s", key)
	}
	return s.PublicURL(key), nil
}

func (s *S3Store) PublicURL(key string) string {
	if s.baseURL == "" {
		return "https://" + s.bucket + ".s3.amazonaws.com/" + key
	}
	return s.baseURL + "/" + key
}
