package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// FileKV persists session values to a single JSON file. It is the CLI
// equivalent of browser-local storage: one file per install, survives
// restarts, readable by exactly this client.
type FileKV struct {
	path string

	mu        sync.Mutex
	installID string
	values    map[string]string
}

type fileKVPayload struct {
	InstallID string            `json:"installId"`
	Values    map[string]string `json:"values"`
}

// NewFileKV loads (or creates) the store file at path. A fresh store is
// assigned a stable install ID on first use.
func NewFileKV(path string) (*FileKV, error) {
	s := &FileKV{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		s.installID = uuid.NewString()
		if err := s.flushLocked(); err != nil {
			return nil, err
		}
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var payload fileKVPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse session file: %w", err)
	}
	if payload.Values != nil {
		s.values = payload.Values
	}
	s.installID = payload.InstallID
	if s.installID == "" {
		s.installID = uuid.NewString()
		if err := s.flushLocked(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// InstallID returns the stable identifier minted when the store file was
// first created. Attached to outbound requests for server-side correlation.
func (s *FileKV) InstallID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.installID
}

func (s *FileKV) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *FileKV) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.flushLocked()
}

func (s *FileKV) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return s.flushLocked()
}

// flushLocked writes the file via rename so a crash mid-write cannot leave
// a truncated store behind. Caller holds s.mu.
func (s *FileKV) flushLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(fileKVPayload{InstallID: s.installID, Values: s.values}, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
