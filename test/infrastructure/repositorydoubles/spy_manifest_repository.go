//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rios0rios0/npmpick/internal/domain/entities"
	"github.com/rios0rios0/npmpick/internal/domain/repositories"
)

// SpyManifestRepository keeps package.json, its backup and CHANGELOG.md in memory.
type SpyManifestRepository struct {
	// --- state ---
	Content   []byte
	BackupOf  []byte // nil when no backup exists
	Changelog *string

	// --- errors ---
	ReadErr    error
	WriteErr   error
	BackupErr  error
	RestoreErr error

	// --- call tracking ---
	ReadCalls         int
	WriteCalls        int
	BackupCalls       int
	RestoreCalls      int
	RemoveBackupCalls int
	WrittenChangelogs []string
}

var (
	_ repositories.ManifestRepository  = (*SpyManifestRepository)(nil)
	_ repositories.ChangelogRepository = (*SpyManifestRepository)(nil)
)

// NewSpyManifestRepository creates a spy holding the given manifest content.
func NewSpyManifestRepository(content string) *SpyManifestRepository {
	return &SpyManifestRepository{Content: []byte(content)}
}

func (s *SpyManifestRepository) Read(_ context.Context, _ string) ([]byte, error) {
	s.ReadCalls++
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	return append([]byte(nil), s.Content...), nil
}

func (s *SpyManifestRepository) Write(_ context.Context, _ string, data []byte) error {
	s.WriteCalls++
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.Content = append([]byte(nil), data...)
	return nil
}

func (s *SpyManifestRepository) Backup(_ context.Context, dir string) (string, error) {
	s.BackupCalls++
	if s.BackupErr != nil {
		return "", s.BackupErr
	}
	s.BackupOf = append([]byte(nil), s.Content...)
	return s.BackupPath(dir), nil
}

func (s *SpyManifestRepository) Restore(_ context.Context, _ string, backupPath string) error {
	s.RestoreCalls++
	if s.RestoreErr != nil {
		return s.RestoreErr
	}
	if s.BackupOf == nil {
		return fmt.Errorf("no backup at %s: %w", backupPath, os.ErrNotExist)
	}
	s.Content = s.BackupOf
	s.BackupOf = nil
	return nil
}

func (s *SpyManifestRepository) RemoveBackup(_ context.Context, _ string) error {
	s.RemoveBackupCalls++
	s.BackupOf = nil
	return nil
}

func (s *SpyManifestRepository) ReadChangelog(_ context.Context, _ string) (string, bool, error) {
	if s.Changelog == nil {
		return "", false, nil
	}
	return *s.Changelog, true, nil
}

func (s *SpyManifestRepository) WriteChangelog(_ context.Context, _ string, content string) error {
	s.WrittenChangelogs = append(s.WrittenChangelogs, content)
	s.Changelog = &content
	return nil
}

// BackupPath returns the path Backup reports for dir.
func (s *SpyManifestRepository) BackupPath(dir string) string {
	return filepath.Join(dir, entities.ManifestFileName+".backup")
}

// HasBackup reports whether a backup is currently held.
func (s *SpyManifestRepository) HasBackup() bool {
	return s.BackupOf != nil
}
