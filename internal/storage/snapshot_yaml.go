package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"eyecare/internal/core/model"

	"gopkg.in/yaml.v3"
)

const snapshotFileName = "state.yaml"

// ErrNoSnapshot indicates that no snapshot has been written yet.
var ErrNoSnapshot = errors.New("no snapshot")

// yamlSnapshot keeps the key names shared with the status command.
type yamlSnapshot struct {
	TimeRemaining      *int       `yaml:"timeRemaining,omitempty"`
	BreakTimeRemaining *int       `yaml:"breakTimeRemaining,omitempty"`
	IsBreakTime        *bool      `yaml:"isBreakTime,omitempty"`
	IsRunning          *bool      `yaml:"isRunning,omitempty"`
	SelectedDuration   *int       `yaml:"selectedDuration,omitempty"`
	BreakStreak        *int       `yaml:"breakStreak,omitempty"`
	LastUpdateTime     *time.Time `yaml:"lastUpdateTime,omitempty"`
}

// SnapshotFile stores the timer snapshot as a flat YAML document.
type SnapshotFile struct {
	mu   sync.Mutex
	path string
}

// NewSnapshotFile returns a store for state.yaml inside dir.
func NewSnapshotFile(dir string) *SnapshotFile {
	return &SnapshotFile{path: filepath.Join(dir, snapshotFileName)}
}

// Path returns the snapshot file location.
func (file *SnapshotFile) Path() string {
	return file.path
}

// Read returns the stored snapshot or ErrNoSnapshot.
func (file *SnapshotFile) Read() (model.Snapshot, error) {
	file.mu.Lock()
	defer file.mu.Unlock()

	rawData, err := os.ReadFile(file.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.Snapshot{}, ErrNoSnapshot
		}
		return model.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}

	var fileData yamlSnapshot
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return model.Snapshot{}, fmt.Errorf("parse snapshot yaml: %w", err)
	}

	return model.Snapshot{
		TimeRemaining:      fileData.TimeRemaining,
		BreakTimeRemaining: fileData.BreakTimeRemaining,
		IsBreakTime:        fileData.IsBreakTime,
		IsRunning:          fileData.IsRunning,
		SelectedDuration:   fileData.SelectedDuration,
		BreakStreak:        fileData.BreakStreak,
		LastUpdateTime:     fileData.LastUpdateTime,
	}, nil
}

// Load is Read with a missing file reported as an empty snapshot.
func (file *SnapshotFile) Load() (model.Snapshot, error) {
	snapshot, err := file.Read()
	if errors.Is(err, ErrNoSnapshot) {
		return model.Snapshot{}, nil
	}
	return snapshot, err
}

// Save writes the snapshot, replacing the previous one.
func (file *SnapshotFile) Save(snapshot model.Snapshot) error {
	file.mu.Lock()
	defer file.mu.Unlock()

	fileData := yamlSnapshot{
		TimeRemaining:      snapshot.TimeRemaining,
		BreakTimeRemaining: snapshot.BreakTimeRemaining,
		IsBreakTime:        snapshot.IsBreakTime,
		IsRunning:          snapshot.IsRunning,
		SelectedDuration:   snapshot.SelectedDuration,
		BreakStreak:        snapshot.BreakStreak,
	}
	if snapshot.LastUpdateTime != nil {
		lastUpdate := snapshot.LastUpdateTime.UTC()
		fileData.LastUpdateTime = &lastUpdate
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal snapshot yaml: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(file.path), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	if err := writeFileAtomic(file.path, serialized); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Remove deletes the snapshot. A missing file is not an error.
func (file *SnapshotFile) Remove() error {
	file.mu.Lock()
	defer file.mu.Unlock()
	if err := os.Remove(file.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove snapshot: %w", err)
	}
	return nil
}
