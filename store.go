package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Download errors, mapped to HTTP statuses by the façade.
var (
	ErrNotFound    = errors.New("file not found")
	ErrInvalidType = errors.New("invalid file type")
)

// StoredFile describes one generated video in the output directory.
type StoredFile struct {
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	Created     string `json:"created"`
	DownloadURL string `json:"download_url"`
}

// Store is the shared directory where generated videos accumulate. Files are
// only ever added, never modified, so concurrent requests cannot conflict.
type Store struct {
	root string
	log  zerolog.Logger
}

func NewStore(root string, log zerolog.Logger) *Store {
	return &Store{root: root, log: log}
}

// List enumerates the .mp4 files directly under the store root, newest
// first. A missing directory is an empty store, not an error.
func (s *Store) List() ([]StoredFile, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return []StoredFile{}, nil
		}
		return nil, fmt.Errorf("read output dir: %w", err)
	}

	type fileWithTime struct {
		file    StoredFile
		created time.Time
	}

	files := make([]fileWithTime, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".mp4") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			s.log.Warn().Err(err).Str("file", entry.Name()).Msg("skipping unreadable output file")
			continue
		}
		files = append(files, fileWithTime{
			file: StoredFile{
				Filename:    entry.Name(),
				Size:        info.Size(),
				Created:     info.ModTime().Format(time.RFC3339),
				DownloadURL: "/download/" + entry.Name(),
			},
			created: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].created.After(files[j].created)
	})

	out := make([]StoredFile, 0, len(files))
	for _, f := range files {
		out = append(out, f.file)
	}
	return out, nil
}

// Open validates a download filename and returns the absolute path to
// stream. Names that could escape the store root are rejected outright;
// then the suffix is checked, then existence.
func (s *Store) Open(filename string) (string, error) {
	if strings.ContainsAny(filename, `/\`) || strings.Contains(filename, "..") {
		return "", ErrInvalidType
	}
	if !strings.HasSuffix(filename, ".mp4") {
		return "", ErrInvalidType
	}

	path := filepath.Join(s.root, filename)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	return path, nil
}
