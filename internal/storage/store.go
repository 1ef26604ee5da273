// Package storage persists the record store and the per-record text blobs
// under a single data directory:
//
//	data/podcasts.json
//	data/texts/podcast_<id>.txt
//	data/audio/podcast_<id>.mp3
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gamenews/gamenews/internal/news"
)

type Store struct {
	dataDir string
}

func NewStore(dataDir string) *Store {
	return &Store{dataDir: dataDir}
}

func (s *Store) recordsPath() string {
	return filepath.Join(s.dataDir, "podcasts.json")
}

// TextPath is the text blob location for a record id.
func (s *Store) TextPath(id int) string {
	return filepath.Join(s.dataDir, "texts", fmt.Sprintf("podcast_%d.txt", id))
}

// AudioPath is the audio file location for a record id.
func (s *Store) AudioPath(id int) string {
	return filepath.Join(s.dataDir, "audio", fmt.Sprintf("podcast_%d.mp3", id))
}

// AudioDir is where synthesized audio lands; the voice stage creates it.
func (s *Store) AudioDir() string {
	return filepath.Join(s.dataDir, "audio")
}

// AudioRel is the data-dir-relative audio path persisted in a record.
func AudioRel(id int) string {
	return fmt.Sprintf("audio/podcast_%d.mp3", id)
}

// Save writes the full record set, replacing any previous one. The file is
// written to a temp name and renamed so readers never see a partial store.
func (s *Store) Save(records []news.Record) error {
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}

	tmp, err := os.CreateTemp(s.dataDir, "podcasts-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp store: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write record store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp store: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.recordsPath()); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace record store: %w", err)
	}
	return nil
}

// Load reads the record store. A missing file is not an error and yields an
// empty set; a corrupt file is reported to the caller.
func (s *Store) Load() ([]news.Record, error) {
	data, err := os.ReadFile(s.recordsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read record store: %w", err)
	}

	var records []news.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("corrupt record store %s: %w", s.recordsPath(), err)
	}
	return records, nil
}

// SaveTexts writes one plain-text blob per record for the voice stage.
func (s *Store) SaveTexts(records []news.Record) error {
	if err := os.MkdirAll(filepath.Join(s.dataDir, "texts"), 0o755); err != nil {
		return fmt.Errorf("creating texts dir: %w", err)
	}

	for _, r := range records {
		if err := os.WriteFile(s.TextPath(r.ID), []byte(r.SpeechText()), 0o644); err != nil {
			return fmt.Errorf("failed to write text for record %d: %w", r.ID, err)
		}
	}
	return nil
}
