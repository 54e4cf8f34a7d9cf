package manifest

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/npmpick/internal/domain/entities"
	"github.com/rios0rios0/npmpick/internal/domain/repositories"
)

const (
	backupSuffix = ".backup"
	fileMode     = 0o644
)

// FileManifestRepository stores package.json, its backup and CHANGELOG.md on a
// billy filesystem (the OS in production, memory in tests).
type FileManifestRepository struct {
	fs billy.Filesystem
}

// NewFileManifestRepository creates a repository on top of fs.
func NewFileManifestRepository(fs billy.Filesystem) *FileManifestRepository {
	return &FileManifestRepository{fs: fs}
}

var (
	_ repositories.ManifestRepository  = (*FileManifestRepository)(nil)
	_ repositories.ChangelogRepository = (*FileManifestRepository)(nil)
)

func (it *FileManifestRepository) manifestPath(dir string) string {
	return it.fs.Join(dir, entities.ManifestFileName)
}

// BackupPath returns where the backup of dir's manifest is written.
func (it *FileManifestRepository) BackupPath(dir string) string {
	return it.manifestPath(dir) + backupSuffix
}

// Read returns the raw manifest bytes.
func (it *FileManifestRepository) Read(_ context.Context, dir string) ([]byte, error) {
	return util.ReadFile(it.fs, it.manifestPath(dir))
}

// Write replaces the manifest with data.
func (it *FileManifestRepository) Write(_ context.Context, dir string, data []byte) error {
	return util.WriteFile(it.fs, it.manifestPath(dir), data, fileMode)
}

// Backup copies package.json to package.json.backup, overwriting an older backup.
func (it *FileManifestRepository) Backup(_ context.Context, dir string) (string, error) {
	backupPath := it.BackupPath(dir)
	if err := it.copyFile(it.manifestPath(dir), backupPath); err != nil {
		return "", err
	}
	return backupPath, nil
}

// Restore copies the backup over the manifest and deletes the backup. Once the
// manifest is back, a failure to delete the backup is only logged.
func (it *FileManifestRepository) Restore(ctx context.Context, dir, backupPath string) error {
	if err := it.copyFile(backupPath, it.manifestPath(dir)); err != nil {
		return err
	}
	if err := it.RemoveBackup(ctx, backupPath); err != nil {
		logger.Warnf("Restored %s but failed to remove the backup %s: %v", entities.ManifestFileName, backupPath, err)
	}
	return nil
}

// RemoveBackup deletes the backup file.
func (it *FileManifestRepository) RemoveBackup(_ context.Context, backupPath string) error {
	return it.fs.Remove(backupPath)
}

// ReadChangelog returns the changelog content and false when the project has none.
func (it *FileManifestRepository) ReadChangelog(_ context.Context, dir string) (string, bool, error) {
	content, err := util.ReadFile(it.fs, it.fs.Join(dir, entities.ChangelogFileName))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(content), true, nil
}

// WriteChangelog replaces the changelog content.
func (it *FileManifestRepository) WriteChangelog(_ context.Context, dir, content string) error {
	return util.WriteFile(it.fs, it.fs.Join(dir, entities.ChangelogFileName), []byte(content), fileMode)
}

func (it *FileManifestRepository) copyFile(from, to string) error {
	data, err := util.ReadFile(it.fs, from)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", from, err)
	}
	if err = util.WriteFile(it.fs, to, data, fileMode); err != nil {
		return fmt.Errorf("failed to write %s: %w", to, err)
	}
	return nil
}
