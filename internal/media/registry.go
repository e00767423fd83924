package media

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// HandlePrefix marks registry-issued handles
const HandlePrefix = "blob:"

var (
	// ErrUnknownHandle is returned for handles that were never issued or were released
	ErrUnknownHandle = errors.New("unknown media handle")

	// ErrEmptyData is returned when creating a handle for an empty buffer
	ErrEmptyData = errors.New("media data is empty")
)

type resource struct {
	name string
	data []byte
}

// Registry issues and resolves media handles
type Registry struct {
	mu        sync.RWMutex
	resources map[string]*resource
	released  int
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		resources: make(map[string]*resource),
	}
}

// Create registers data and returns a fresh handle for it
func (r *Registry) Create(data []byte, name string) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyData
	}
	url := generateHandle()

	r.mu.Lock()
	r.resources[url] = &resource{name: name, data: data}
	r.mu.Unlock()

	return url, nil
}

// CreateFromFile reads a file and registers its contents
func (r *Registry) CreateFromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read media file: %w", err)
	}
	return r.Create(data, filepath.Base(path))
}

// Bytes returns the buffer behind a live handle
func (r *Registry) Bytes(url string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.resources[url]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownHandle, url)
	}
	return res.data, nil
}

// Name returns the file name recorded when the handle was created
func (r *Registry) Name(url string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if res, ok := r.resources[url]; ok {
		return res.name
	}
	return ""
}

// Release frees the buffer behind url. Releasing an unknown or already
// released handle does nothing.
func (r *Registry) Release(url string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.resources[url]; !ok {
		return
	}
	delete(r.resources, url)
	r.released++
	log.Printf("Released media handle %s", url)
}

// Live reports whether url resolves to a buffer
func (r *Registry) Live(url string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.resources[url]
	return ok
}

// LiveCount returns the number of handles not yet released
func (r *Registry) LiveCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.resources)
}

// ReleasedCount returns how many handles have been released so far
func (r *Registry) ReleasedCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.released
}

// IsHandle reports whether s looks like a registry handle
func IsHandle(s string) bool {
	return strings.HasPrefix(s, HandlePrefix) && len(s) > len(HandlePrefix)
}

// generateHandle generates a unique handle using UUID v7
func generateHandle() string {
	id, err := uuid.NewV7()
	if err != nil {
		return HandlePrefix + uuid.NewString()
	}
	return HandlePrefix + id.String()
}
