package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileBackend keeps settings in a YAML file.
type FileBackend struct {
	Path string
}

// NewFileBackend returns a backend reading and writing path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{Path: path}
}

// Load reads the file. A missing file yields Defaults; keys absent from the
// file keep their default values.
func (b *FileBackend) Load() (Settings, error) {
	data, err := os.ReadFile(b.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return Defaults(), nil
		}
		return Settings{}, err
	}

	s := Defaults()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse %s: %w", b.Path, err)
	}
	return s, nil
}

// Save writes s, creating the parent directory when needed.
func (b *FileBackend) Save(s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(b.Path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	return os.WriteFile(b.Path, data, 0644)
}

// MemoryBackend keeps settings in process memory. Useful for tests and for
// one-off runs that must not touch disk.
type MemoryBackend struct {
	mu    sync.Mutex
	saved *Settings
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (b *MemoryBackend) Load() (Settings, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.saved == nil {
		return Defaults(), nil
	}
	return *b.saved, nil
}

func (b *MemoryBackend) Save(s Settings) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.saved = &s
	return nil
}
