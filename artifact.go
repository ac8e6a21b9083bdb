package slideforge

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Artifact is one rendered single-page file owned by an ArtifactStore.
type Artifact struct {
	Index int
	Kind  ArtifactKind
	Path  string
}

// ArtifactStore owns the intermediate per-slide files of one run. It is
// safe for concurrent use by render workers. Every run must end with the
// store empty, whatever the outcome.
type ArtifactStore struct {
	mu    sync.Mutex
	dir   string
	files map[int]string
}

// NewArtifactStore creates a store backed by a fresh temp directory.
func NewArtifactStore() (*ArtifactStore, error) {
	dir, err := os.MkdirTemp("", "slideforge-*")
	if err != nil {
		return nil, fmt.Errorf("create artifact directory: %w", err)
	}
	return &ArtifactStore{dir: dir, files: make(map[int]string)}, nil
}

// Put persists data as the artifact for the given merge index.
func (s *ArtifactStore) Put(index int, kind ArtifactKind, data []byte) (*Artifact, error) {
	path := filepath.Join(s.dir, fmt.Sprintf("page-%04d.%s", index, kind))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, fmt.Errorf("write artifact %d: %w", index, err)
	}

	s.mu.Lock()
	s.files[index] = path
	s.mu.Unlock()

	return &Artifact{Index: index, Kind: kind, Path: path}, nil
}

// Release removes the artifact for index. Unknown indices are a no-op.
func (s *ArtifactStore) Release(index int) {
	s.mu.Lock()
	path, ok := s.files[index]
	delete(s.files, index)
	s.mu.Unlock()

	if ok {
		_ = os.Remove(path)
	}
}

// ReleaseAll removes every remaining artifact and the backing directory.
// Safe to call more than once.
func (s *ArtifactStore) ReleaseAll() {
	s.mu.Lock()
	s.files = make(map[int]string)
	s.mu.Unlock()

	_ = os.RemoveAll(s.dir)
}

// Count returns the number of artifacts currently held.
func (s *ArtifactStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}
