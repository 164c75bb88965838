package filestore

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/LogFlow-api/internal/domain"
	"github.com/jhoicas/LogFlow-api/pkg/config"
)

// fakeS3 bucket en memoria que respeta If-None-Match: *.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	puts    int
}

func newFakeS3() *fakeS3 { return &fakeS3{objects: map[string][]byte{}} }

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts++
	if _, ok := f.objects[*in.Key]; ok && in.IfNoneMatch != nil && *in.IfNoneMatch == "*" {
		return nil, &smithy.GenericAPIError{Code: "PreconditionFailed", Message: "At least one of the pre-conditions you specified did not hold"}
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*in.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

// ────────────────────────────────────────────────────────────────────────────────
// S3Store
// ────────────────────────────────────────────────────────────────────────────────

func TestS3Store_SaveOpenDelete(t *testing.T) {
	ctx := context.Background()
	fake := newFakeS3()
	store := NewS3StoreWithClient(fake, "uploads", 0)

	key, err := store.Save(ctx, "excel_uploads/inventory/a.xlsx", []byte("hoja"))
	require.NoError(t, err)
	assert.Equal(t, "excel_uploads/inventory/a.xlsx", key)

	data, err := store.Open(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "hoja", string(data))

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Open(ctx, key)
	assert.ErrorIs(t, err, domain.ErrFileNotFound)
}

func TestS3Store_SaveColision_Reintenta(t *testing.T) {
	ctx := context.Background()
	fake := newFakeS3()
	store := NewS3StoreWithClient(fake, "uploads", 0)

	first, err := store.Save(ctx, "excel_uploads/orders/o.xlsx", []byte("1"))
	require.NoError(t, err)
	second, err := store.Save(ctx, "excel_uploads/orders/o.xlsx", []byte("2"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, 3, fake.puts, "un intento fallido por precondición y uno exitoso")
	assert.Len(t, fake.objects, 2)
}

func TestNewS3Store_RequiereBucket(t *testing.T) {
	_, err := NewS3Store(context.Background(), config.StorageConfig{Driver: "s3"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket is required")
}

func TestNewS3Store_ConfigValida(t *testing.T) {
	store, err := NewS3Store(context.Background(), config.StorageConfig{
		Driver:       "s3",
		Bucket:       "uploads",
		Endpoint:     "localhost:9000",
		AccessKey:    "key",
		SecretKey:    "secret",
		UsePathStyle: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "uploads", store.bucket)
}
