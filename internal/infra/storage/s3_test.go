package storage

import (
	"context"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/config"
)

type mockPutter struct{ mock.Mock }

func (m *mockPutter) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*s3.PutObjectOutput)
	return out, args.Error(1)
}

func TestPutUploadsAndReturnsPublicURL(t *testing.T) {
	putter := &mockPutter{}
	putter.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		body, _ := io.ReadAll(in.Body)
		return aws.ToString(in.Bucket) == "barber-images" &&
			aws.ToString(in.Key) == "barbers/b1/x.webp" &&
			aws.ToString(in.ContentType) == "image/webp" &&
			string(body) == "data"
	})).Return(&s3.PutObjectOutput{}, nil)

	store := NewS3Store(putter, "barber-images", "https://cdn.example.com/")
	url, err := store.Put(context.Background(), "barbers/b1/x.webp", "image/webp", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/barbers/b1/x.webp", url)
	putter.AssertExpectations(t)
}

func TestPutWrapsErrors(t *testing.T) {
	putter := &mockPutter{}
	putter.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	_, err := NewS3Store(putter, "b", "").Put(context.Background(), "k", "image/webp", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "put object k")
}

func TestPublicURLDefault(t *testing.T) {
	assert.Equal(t, "https://b.s3.amazonaws.com/k", NewS3Store(nil, "b", "").PublicURL("k"))
}

func TestNewS3ClientOptions(t *testing.T) {
	c := NewS3Client(config.S3Config{Region: "sa-east-1", Endpoint: "http://localhost:9000", AccessKeyID: "id", SecretAccessKey: "secret"})
	o := c.Options()
	assert.Equal(t, "sa-east-1", o.Region)
	assert.True(t, o.UsePathStyle)
	assert.Equal(t, "http://localhost:9000", aws.ToString(o.BaseEndpoint))
}
