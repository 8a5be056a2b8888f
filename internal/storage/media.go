// Package storage stores media blobs on the local filesystem, keyed by
// file name. The core only hands byte sources to the transport; range
// handling belongs to the HTTP layer.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ErrUnsupportedMedia is returned when the uploaded bytes are not a
// recognized audio format.
var ErrUnsupportedMedia = errors.New("unsupported media type")

// ErrBlobNotFound is returned when no blob exists under the given name.
var ErrBlobNotFound = errors.New("media blob not found")

var allowedMime = map[string]bool{
	"audio/mpeg":      true,
	"audio/wave":      true,
	"audio/wav":       true,
	"audio/x-wav":     true,
	"audio/flac":      true,
	"audio/mp4":       true,
	"video/mp4":       true, // m4a containers are detected as mp4
	"audio/aac":       true,
	"audio/ogg":       true,
	"application/ogg": true,
}

// MediaStore keeps media blobs under a single directory.
type MediaStore struct {
	dir string
}

// NewMediaStore creates the store, making the directory if needed.
func NewMediaStore(dir string) (*MediaStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &MediaStore{dir: dir}, nil
}

// Save sniffs the content type of r and, if it is audio, writes it under a
// fresh name. The write goes through a temp file so a failed upload never
// leaves a partial blob under a final name.
func (s *MediaStore) Save(r io.Reader, originalName string) (string, int64, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", 0, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]

	mime := mimetype.Detect(head)
	if !allowedMime[strings.Split(mime.String(), ";")[0]] {
		return "", 0, ErrUnsupportedMedia
	}

	ext := filepath.Ext(originalName)
	if ext == "" {
		ext = mime.Extension()
	}
	fileName := uuid.New().String() + ext

	tmp, err := os.CreateTemp(s.dir, ".incoming-*")
	if err != nil {
		return "", 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, io.MultiReader(bytes.NewReader(head), r))
	if err != nil {
		tmp.Close()
		return "", 0, fmt.Errorf("write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", 0, fmt.Errorf("finalize upload: %w", err)
	}

	if err := os.Rename(tmpPath, filepath.Join(s.dir, fileName)); err != nil {
		return "", 0, fmt.Errorf("move upload: %w", err)
	}

	return fileName, size, nil
}

// Open returns a readable handle on the blob plus its absolute path.
func (s *MediaStore) Open(fileName string) (*os.File, string, error) {
	path := filepath.Join(s.dir, filepath.Base(fileName))
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", ErrBlobNotFound
		}
		return nil, "", err
	}
	return f, path, nil
}

// Remove deletes the blob. Removing a missing blob is not an error; the
// caller only cares that the blob is gone.
func (s *MediaStore) Remove(fileName string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(fileName)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ListFiles returns the names of all stored blobs, skipping in-flight
// temp files.
func (s *MediaStore) ListFiles() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".incoming-") {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}
