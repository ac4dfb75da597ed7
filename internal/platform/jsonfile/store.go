package jsonfile

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"
)

// ErrNotExist is returned by Read when the named file is absent.
var ErrNotExist = fs.ErrNotExist

var codec = sonic.Config{
	SortMapKeys:    true,
	ValidateString: true,
}.Froze()

// Store reads and atomically replaces JSON documents below a root directory.
type Store struct {
	root  string
	locks sync.Map
}

func NewStore(root string) *Store {
	root = strings.TrimSpace(root)
	if root == "" {
		root = "."
	}
	return &Store{root: filepath.Clean(root)}
}

func (s *Store) Root() string {
	return s.root
}

// Path resolves name below the root. Names escaping the root are rejected.
func (s *Store) Path(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("file name is required")
	}
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("file name %q must be relative", name)
	}
	full := filepath.Join(s.root, name)
	rel, err := filepath.Rel(s.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("file name %q escapes data directory", name)
	}
	return full, nil
}

func (s *Store) Read(name string, target any) error {
	raw, err := s.ReadRaw(name)
	if err != nil {
		return err
	}
	if err := codec.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (s *Store) ReadRaw(name string) ([]byte, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", name, ErrNotExist)
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return raw, nil
}

// Write encodes payload as indented JSON and replaces the file. It reports
// whether the bytes on disk changed.
func (s *Store) Write(name string, payload any) (bool, error) {
	data, err := codec.MarshalIndent(payload, "", "  ")
	if err != nil {
		return false, fmt.Errorf("encode %s: %w", name, err)
	}
	return s.WriteRaw(name, data)
}

// WriteRaw replaces the file with raw plus a trailing newline.
func (s *Store) WriteRaw(name string, raw []byte) (bool, error) {
	path, err := s.Path(name)
	if err != nil {
		return false, err
	}

	mu := s.lockFor(path)
	mu.Lock()
	defer mu.Unlock()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	_, _ = buf.Write(bytes.TrimRight(raw, "\n"))
	_ = buf.WriteByte('\n')

	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, buf.B) {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create directory for %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return false, fmt.Errorf("create temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()
	if _, err := buf.WriteTo(tmp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return false, fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return false, fmt.Errorf("close temp file for %s: %w", name, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return false, fmt.Errorf("chmod %s: %w", name, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return false, fmt.Errorf("replace %s: %w", name, err)
	}
	return true, nil
}

// ModTime reports the last modification time, or the zero time when the file is absent.
func (s *Store) ModTime(name string) (time.Time, error) {
	path, err := s.Path(name)
	if err != nil {
		return time.Time{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

func (s *Store) lockFor(path string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(path, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
