// Cinematheca - Local Movie Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematheca

package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematheca/internal/logging"
)

// ErrSnapshotNotFound is returned when a restore references an unknown
// snapshot.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Config controls where snapshots live and how many are kept.
type Config struct {
	// Dir is the directory holding snapshot files and their metadata.
	Dir string
	// Keep is the number of snapshots retained; older ones are pruned.
	Keep int
}

// Snapshot is one retained copy of the user store.
type Snapshot struct {
	ID        string    `json:"id"`
	FileName  string    `json:"file_name"`
	CreatedAt time.Time `json:"created_at"`
	FileSize  int64     `json:"file_size"`
	Checksum  string    `json:"checksum"`
	Notes     string    `json:"notes,omitempty"`
}

// metadataStore is the on-disk index of snapshots.
type metadataStore struct {
	Snapshots []*Snapshot `json:"snapshots"`
}

// Manager creates, lists, prunes, and restores snapshots of one source file.
type Manager struct {
	cfg          Config
	source       string
	metadataFile string

	mu       sync.Mutex
	metadata *metadataStore

	logger zerolog.Logger
}

// NewManager creates a snapshot manager for the file at source, creating the
// snapshot directory if needed. Existing metadata is loaded; a missing or
// unreadable index starts empty.
func NewManager(cfg Config, source string) (*Manager, error) {
	if cfg.Dir == "" {
		return nil, errors.New("backup directory is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
		return nil, fmt.Errorf("create backup directory: %w", err)
	}

	m := &Manager{
		cfg:          cfg,
		source:       source,
		metadataFile: filepath.Join(cfg.Dir, "metadata.json"),
		logger:       logging.With().Str("component", "backup").Logger(),
	}

	if err := m.loadMetadata(); err != nil {
		m.metadata = &metadataStore{Snapshots: make([]*Snapshot, 0)}
	}
	return m, nil
}

// Create copies the current source file into a new snapshot and prunes old
// ones per the retention policy.
func (m *Manager) Create(notes string) (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.source)
	if err != nil {
		return nil, fmt.Errorf("read user store: %w", err)
	}

	id := uuid.New().String()
	now := time.Now()
	name := fmt.Sprintf("users-%s-%s.json", now.Format("20060102-150405"), id[:8])

	if err := os.WriteFile(filepath.Join(m.cfg.Dir, name), data, 0o600); err != nil {
		return nil, fmt.Errorf("write snapshot: %w", err)
	}

	sum := sha256.Sum256(data)
	snap := &Snapshot{
		ID:        id,
		FileName:  name,
		CreatedAt: now,
		FileSize:  int64(len(data)),
		Checksum:  hex.EncodeToString(sum[:]),
		Notes:     notes,
	}
	m.metadata.Snapshots = append(m.metadata.Snapshots, snap)

	m.pruneLocked()
	if err := m.saveMetadataLocked(); err != nil {
		m.logger.Warn().Err(err).Msg("snapshot metadata save failed")
	}

	m.logger.Info().Str("snapshot", name).Int64("bytes", snap.FileSize).Msg("snapshot created")
	return snap, nil
}

// Snapshots returns all snapshots, newest first.
func (m *Manager) Snapshots() []*Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*Snapshot, len(m.metadata.Snapshots))
	copy(out, m.metadata.Snapshots)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Restore writes the named snapshot back over the source file after
// verifying its checksum. The name may be a snapshot id or file name.
func (m *Manager) Restore(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var snap *Snapshot
	for _, s := range m.metadata.Snapshots {
		if s.ID == name || s.FileName == name {
			snap = s
			break
		}
	}
	if snap == nil {
		return fmt.Errorf("%w: %s", ErrSnapshotNotFound, name)
	}

	data, err := os.ReadFile(filepath.Join(m.cfg.Dir, snap.FileName))
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	sum := sha256.Sum256(data)
	if hex.EncodeToString(sum[:]) != snap.Checksum {
		return fmt.Errorf("snapshot %s is corrupted (checksum mismatch)", snap.FileName)
	}

	if err := os.WriteFile(m.source, data, 0o600); err != nil {
		return fmt.Errorf("restore user store: %w", err)
	}

	m.logger.Info().Str("snapshot", snap.FileName).Msg("user store restored")
	return nil
}

// pruneLocked drops the oldest snapshots beyond the retention count,
// removing their files. A non-positive Keep retains everything.
func (m *Manager) pruneLocked() {
	if m.cfg.Keep <= 0 {
		return
	}

	snaps := m.metadata.Snapshots
	sort.Slice(snaps, func(i, j int) bool {
		return snaps[i].CreatedAt.Before(snaps[j].CreatedAt)
	})
	for len(snaps) > m.cfg.Keep {
		old := snaps[0]
		snaps = snaps[1:]
		if err := os.Remove(filepath.Join(m.cfg.Dir, old.FileName)); err != nil && !errors.Is(err, os.ErrNotExist) {
			m.logger.Warn().Err(err).Str("snapshot", old.FileName).Msg("snapshot file removal failed")
		}
		m.logger.Debug().Str("snapshot", old.FileName).Msg("snapshot pruned")
	}
	m.metadata.Snapshots = snaps
}

// loadMetadata loads the snapshot index from disk.
func (m *Manager) loadMetadata() error {
	data, err := os.ReadFile(m.metadataFile)
	if err != nil {
		return err
	}

	var metadata metadataStore
	if err := json.Unmarshal(data, &metadata); err != nil {
		return err
	}
	if metadata.Snapshots == nil {
		metadata.Snapshots = make([]*Snapshot, 0)
	}

	m.metadata = &metadata
	return nil
}

// saveMetadataLocked writes the snapshot index (must be called with lock held).
func (m *Manager) saveMetadataLocked() error {
	data, err := json.MarshalIndent(m.metadata, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.metadataFile, data, 0o600)
}
