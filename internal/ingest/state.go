package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/MikeSquared-Agency/letterforge/internal/category"
)

const DefaultStatePath = "~/.letterforge/import-state.json"

// State tracks progress so an interrupted import can resume. Processed
// files and content hashes are kept per owner, so one state file can
// serve imports of the same directory for several owners.
type State struct {
	StartedAt       time.Time                 `json:"started_at"`
	LastProcessedAt time.Time                 `json:"last_processed_at"`
	Owners          map[string]*OwnerProgress `json:"owners"`
	SamplesSaved    int                       `json:"samples_saved"`
	Errors          []string                  `json:"errors"`

	path string
}

// LoadState reads the state file at path, or starts a fresh state when
// none exists yet.
func LoadState(path string) (*State, error) {
	p := expandHome(path)

	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{
				StartedAt: time.Now().UTC(),
				path:      p,
			}, nil
		}
		return nil, fmt.Errorf("read state: %w", err)
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}
	s.path = p
	return &s, nil
}

func (s *State) Save() error {
	s.LastProcessedAt = time.Now().UTC()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	return os.WriteFile(s.path, data, 0o644)
}

func (s *State) Path() string { return s.path }

type OwnerProgress struct {
	FilesProcessed []string `json:"files_processed"`
	ContentHashes  []string `json:"content_hashes"`
}

func (s *State) progress(owner string) *OwnerProgress {
	key := category.OwnerKey(owner)
	if s.Owners == nil {
		s.Owners = map[string]*OwnerProgress{}
	}
	p, ok := s.Owners[key]
	if !ok {
		p = &OwnerProgress{}
		s.Owners[key] = p
	}
	return p
}

func (s *State) IsProcessed(owner, path string) bool {
	p, ok := s.Owners[category.OwnerKey(owner)]
	return ok && slices.Contains(p.FilesProcessed, path)
}

func (s *State) MarkProcessed(owner, path string) {
	p := s.progress(owner)
	p.FilesProcessed = append(p.FilesProcessed, path)
}

// SeenContent reports whether a file with the same content hash was
// already imported for owner.
func (s *State) SeenContent(owner, hash string) bool {
	p, ok := s.Owners[category.OwnerKey(owner)]
	return ok && slices.Contains(p.ContentHashes, hash)
}

func (s *State) MarkContent(owner, hash string) {
	p := s.progress(owner)
	p.ContentHashes = append(p.ContentHashes, hash)
}

func (s *State) AddError(msg string) {
	s.Errors = append(s.Errors, msg)
}

func expandHome(path string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
