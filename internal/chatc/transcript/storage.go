package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound is returned when no transcript matches an ID or prefix
var ErrNotFound = errors.New("transcript not found")

// AmbiguousIDError is returned when multiple transcripts match a prefix
type AmbiguousIDError struct {
	Prefix  string
	Matches []Transcript
}

func (e *AmbiguousIDError) Error() string {
	var lines []string
	lines = append(lines, fmt.Sprintf("Ambiguous transcript ID %q. Multiple matches found:", e.Prefix))
	for _, match := range e.Matches {
		lines = append(lines, fmt.Sprintf("- %s (%s, %d messages)",
			match.SessionID,
			match.StartedAt.Format("2006-01-02"),
			match.MessageCount()))
	}
	lines = append(lines, "")
	lines = append(lines, "Please use a longer prefix or run 'chatc transcripts list'.")
	return strings.Join(lines, "\n")
}

// Storage reads and writes transcripts as JSON files in Dir
type Storage struct {
	Dir string
}

// NewStorage creates a storage rooted at dir
func NewStorage(dir string) *Storage {
	return &Storage{Dir: dir}
}

// Save writes a transcript to disk, replacing any previous version
func (s *Storage) Save(t *Transcript) error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create transcript directory: %w", err)
	}

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize transcript: %w", err)
	}

	// Write via a temporary file and rename
	path := s.path(t.SessionID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write transcript file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to write transcript file: %w", err)
	}

	return nil
}

// Load loads a transcript by full session ID
func (s *Storage) Load(id string) (*Transcript, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to read transcript file: %w", err)
	}

	var t Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse transcript file: %w", err)
	}

	return &t, nil
}

// Delete removes a transcript by full session ID
func (s *Storage) Delete(id string) error {
	if err := os.Remove(s.path(id)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return fmt.Errorf("failed to delete transcript file: %w", err)
	}
	return nil
}

// List returns all transcripts sorted by UpdatedAt (newest first).
// Unreadable files are skipped.
func (s *Storage) List() ([]Transcript, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read transcript directory: %w", err)
	}

	var transcripts []Transcript
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), ".json")
		t, err := s.Load(id)
		if err != nil {
			continue
		}
		transcripts = append(transcripts, *t)
	}

	sort.Slice(transcripts, func(i, j int) bool {
		return transcripts[i].UpdatedAt.After(transcripts[j].UpdatedAt)
	})

	return transcripts, nil
}

// Find finds a transcript by ID prefix (minimum 4 characters) or by the random
// suffix shown as its short ID. "latest" returns the most recently updated one.
func (s *Storage) Find(prefix string) (*Transcript, error) {
	if prefix == "latest" {
		return s.Latest()
	}

	if len(prefix) < 4 {
		return nil, fmt.Errorf("transcript ID prefix must be at least 4 characters (got %d)", len(prefix))
	}

	transcripts, err := s.List()
	if err != nil {
		return nil, err
	}

	var matches []Transcript
	for _, t := range transcripts {
		if t.SessionID == prefix {
			return &t, nil
		}
		if strings.HasPrefix(t.SessionID, prefix) || strings.HasPrefix(t.GetShortID(), prefix) {
			matches = append(matches, t)
		}
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s\n\nRun 'chatc transcripts list' to see available transcripts.", ErrNotFound, prefix)
	}

	if len(matches) > 1 {
		return nil, &AmbiguousIDError{
			Prefix:  prefix,
			Matches: matches,
		}
	}

	return &matches[0], nil
}

// Latest returns the most recently updated transcript
func (s *Storage) Latest() (*Transcript, error) {
	transcripts, err := s.List()
	if err != nil {
		return nil, err
	}

	if len(transcripts) == 0 {
		return nil, fmt.Errorf("%w\n\nEnable save_transcripts in the config file to record conversations.", ErrNotFound)
	}

	return &transcripts[0], nil
}

func (s *Storage) path(id string) string {
	return filepath.Join(s.Dir, filepath.Base(id)+".json")
}
