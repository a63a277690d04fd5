package imagestore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RefPrefix is the caller-visible prefix of every stored reference.
// It is part of the persisted contract: the image column of ads and
// users holds values of the form "/images/<filename>".
const RefPrefix = "/images/"

var (
	// ErrNotFound is returned by Read when the reference does not
	// resolve to an existing file.
	ErrNotFound = errors.New("imagestore: file not found")

	// ErrNoExtension is returned by GenerateName for an original
	// filename without a dot. Files without an extension are rejected
	// before anything touches disk.
	ErrNoExtension = errors.New("imagestore: filename has no extension")
)

// AttachmentError wraps a filesystem failure during a store operation.
// Write failures must surface to the caller so the owning record's
// reference is never committed ahead of the bytes.
type AttachmentError struct {
	Op   string
	Name string
	Err  error
}

func (e *AttachmentError) Error() string {
	return fmt.Sprintf("imagestore: %s %s: %v", e.Op, e.Name, e.Err)
}

func (e *AttachmentError) Unwrap() error { return e.Err }

// Store keeps image attachments as flat files under a single directory.
// File names are generated to be unique per write, so concurrent
// uploads never race on the same path; a collision on a computed name
// silently overwrites, matching the upload semantics callers expect.
type Store struct {
	Dir    string
	Logger *logrus.Logger
}

func New(dir string, logger *logrus.Logger) *Store {
	return &Store{Dir: dir, Logger: logger}
}

// GenerateName derives a fresh store filename from the uploaded file's
// original name: millisecond timestamp, a random suffix, and the
// original extension (everything after the last dot).
func GenerateName(original string) (string, error) {
	idx := strings.LastIndexByte(original, '.')
	if idx < 0 || idx == len(original)-1 {
		return "", ErrNoExtension
	}
	ext := original[idx:]
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), suffix, ext), nil
}

// Put writes data under filename and returns the stored reference.
// The backing directory is created if absent. An existing file with
// the same name is overwritten.
func (s *Store) Put(filename string, data []byte) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", &AttachmentError{Op: "mkdir", Name: s.Dir, Err: err}
	}
	path := filepath.Join(s.Dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", &AttachmentError{Op: "write", Name: filename, Err: err}
	}
	return RefPrefix + filename, nil
}

// Delete removes the file behind ref. Absence is not an error; the
// operation is idempotent. An empty ref is a no-op so callers can pass
// a record's image column without checking it first.
func (s *Store) Delete(ref string) error {
	if ref == "" {
		return nil
	}
	name, err := refFilename(ref)
	if err != nil {
		return &AttachmentError{Op: "delete", Name: ref, Err: err}
	}
	err = os.Remove(filepath.Join(s.Dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return &AttachmentError{Op: "delete", Name: name, Err: err}
	}
	return nil
}

// Read returns the bytes behind ref, or ErrNotFound when the
// reference does not resolve to an existing file.
func (s *Store) Read(ref string) ([]byte, error) {
	name, err := refFilename(ref)
	if err != nil {
		return nil, &AttachmentError{Op: "read", Name: ref, Err: err}
	}
	data, err := os.ReadFile(filepath.Join(s.Dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &AttachmentError{Op: "read", Name: name, Err: err}
	}
	return data, nil
}

var errInvalidRef = errors.New("invalid reference")

// refFilename strips the reference prefix and rejects anything that
// would escape the store directory.
func refFilename(ref string) (string, error) {
	name := strings.TrimPrefix(ref, RefPrefix)
	if name == "" || name != filepath.Base(name) {
		return "", errInvalidRef
	}
	return name, nil
}
