package minio

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/grago/blobstore"
)

// TestStore_Integration runs against a MinIO endpoint and is skipped unless
// GRAGO_MINIO_ENDPOINT is set (e.g. "localhost:9000").
func TestStore_Integration(t *testing.T) {
	endpoint := os.Getenv("GRAGO_MINIO_ENDPOINT")
	if endpoint == "" {
		t.Skip("GRAGO_MINIO_ENDPOINT not set")
	}
	bucket := os.Getenv("GRAGO_MINIO_BUCKET")
	if bucket == "" {
		bucket = "grago-test"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds: credentials.NewStaticV4(
			os.Getenv("GRAGO_MINIO_ACCESS_KEY"),
			os.Getenv("GRAGO_MINIO_SECRET_KEY"),
			"",
		),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	store := NewStore(client, bucket, "grago-test/")

	name := "snapshots/it-" + time.Now().UTC().Format("20060102T150405")
	defer func() { _ = store.Delete(ctx, name) }()

	require.NoError(t, store.Put(ctx, name, []byte("payload")))

	got, err := store.Get(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)

	require.NoError(t, store.Delete(ctx, name))
	_, err = store.Get(ctx, name)
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
