package memory_test

import (
	"context"
	"testing"

	"github.com/aryarajalves/zapflow/pkg/adapters/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlobStore_UploadAndGet(t *testing.T) {
	store := memory.NewBlobStore()
	data := []byte("jpeg bytes")

	ref, err := store.Upload(context.Background(), data, "image/jpeg")
	require.NoError(t, err)
	require.NotEmpty(t, ref.URL)

	got, ok := store.Get(ref.URL)
	require.True(t, ok)
	assert.Equal(t, data, got)

	// Stored bytes are a copy, not an alias of the caller's slice.
	data[0] = 'X'
	got, _ = store.Get(ref.URL)
	assert.Equal(t, byte('j'), got[0])

	_, ok = store.Get("mem://unknown")
	assert.False(t, ok)
	_, ok = store.Get("https://elsewhere/x")
	assert.False(t, ok)
}
