package seam

import (
	"bytes"
	"context"
	"image"
	"sync"
	"testing"

	"github.com/disintegration/imaging"
)

// memStorage keeps written objects in memory. A non-nil failWith makes every
// Put fail; onPut runs before each write.
type memStorage struct {
	mu       sync.Mutex
	objects  map[string][]byte
	failWith error
	onPut    func(key string)
}

func newMemStorage() *memStorage {
	return &memStorage{objects: make(map[string][]byte)}
}

func (m *memStorage) Put(ctx context.Context, key string, data []byte) (string, error) {
	if m.onPut != nil {
		m.onPut(key)
	}
	if m.failWith != nil {
		return "", m.failWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = append([]byte(nil), data...)
	return "mem://" + key, nil
}

// decode reads back a stored image.
func (m *memStorage) decode(t *testing.T, key string) image.Image {
	t.Helper()
	m.mu.Lock()
	data, ok := m.objects[key]
	m.mu.Unlock()
	if !ok {
		t.Fatalf("no object stored under %q", key)
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode %q: %v", key, err)
	}
	return img
}
