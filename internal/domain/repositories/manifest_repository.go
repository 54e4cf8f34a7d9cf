package repositories

import "context"

// ManifestRepository reads and writes the project's package.json and manages
// its sibling backup file. Every method takes the project directory.
type ManifestRepository interface {
	// Read returns the raw manifest bytes.
	Read(ctx context.Context, dir string) ([]byte, error)

	// Write replaces the manifest with data.
	Write(ctx context.Context, dir string, data []byte) error

	// Backup copies the manifest next to itself and returns the backup path.
	Backup(ctx context.Context, dir string) (string, error)

	// Restore copies the backup over the manifest and deletes the backup.
	// It fails only when the manifest could not be restored.
	Restore(ctx context.Context, dir, backupPath string) error

	// RemoveBackup deletes the backup file.
	RemoveBackup(ctx context.Context, backupPath string) error
}

// ChangelogRepository reads and writes the project's CHANGELOG.md.
type ChangelogRepository interface {
	// ReadChangelog returns the changelog content and false when the project has none.
	ReadChangelog(ctx context.Context, dir string) (string, bool, error)
	WriteChangelog(ctx context.Context, dir, content string) error
}
