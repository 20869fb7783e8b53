package logs

import (
	"os"
	"path/filepath"
	"sync"
)

// File is a log file that syncs after every write, so the log survives a
// crash of the console.
type File struct {
	mu   sync.Mutex
	file *os.File
}

// DefaultPath is ~/.config/go-rytm/rytm.log
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "go-rytm", "rytm.log")
}

// OpenFile truncates and opens path, creating its directory
func OpenFile(path string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, err
	}
	return &File{file: f}, nil
}

func (f *File) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file == nil {
		return len(p), nil
	}
	n, err := f.file.Write(p)
	if err != nil {
		return n, err
	}
	return n, f.file.Sync()
}

// Close stops logging; later writes are dropped
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file == nil {
		return nil
	}
	err := f.file.Close()
	f.file = nil
	return err
}
