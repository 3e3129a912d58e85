package memory

import (
	"context"
	"sync"

	"github.com/aryarajalves/zapflow/pkg/ports"
	"github.com/google/uuid"
)

// BlobStore implements ports.BlobStore in memory. Blobs are addressed by a
// generated ID under the mem:// scheme; bytes stay in the process.
type BlobStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewBlobStore creates a new in-memory blob store.
func NewBlobStore() *BlobStore {
	return &BlobStore{blobs: make(map[string][]byte)}
}

// Upload stores a copy of the blob and returns its reference.
func (b *BlobStore) Upload(ctx context.Context, data []byte, mime string) (ports.BlobRef, error) {
	id := uuid.NewString()
	stored := make([]byte, len(data))
	copy(stored, data)

	b.mu.Lock()
	b.blobs[id] = stored
	b.mu.Unlock()

	return ports.BlobRef{URL: "mem://" + id, Filename: id}, nil
}

// Get returns the stored bytes for a previously returned reference URL.
func (b *BlobStore) Get(url string) ([]byte, bool) {
	const scheme = "mem://"
	if len(url) <= len(scheme) || url[:len(scheme)] != scheme {
		return nil, false
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	data, ok := b.blobs[url[len(scheme):]]
	return data, ok
}
