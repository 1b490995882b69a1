package storage

import (
	"context"
	"sync"
	"time"
)

// MemoryArchive keeps archived exports in process memory. It serves local
// development and tests when no bucket is configured.
type MemoryArchive struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

type memoryObject struct {
	data        []byte
	contentType string
}

// NewMemoryArchive creates an empty archive
func NewMemoryArchive() *MemoryArchive {
	return &MemoryArchive{objects: make(map[string]memoryObject)}
}

// Key returns name unchanged
func (m *MemoryArchive) Key(name string) string {
	return name
}

// Store keeps a copy of data under key
func (m *MemoryArchive) Store(_ context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return ErrKeyRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memoryObject{data: append([]byte(nil), data...), contentType: contentType}
	return nil
}

// DownloadURL returns a memory:// pseudo URL for key
func (m *MemoryArchive) DownloadURL(_ context.Context, key string) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, ErrKeyRequired
	}
	return "memory://" + key, time.Now().Add(time.Hour), nil
}

// Object returns the stored bytes and content type of key
func (m *MemoryArchive) Object(key string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	return obj.data, obj.contentType, ok
}

// Len returns the number of stored objects
func (m *MemoryArchive) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
