package repositories

import "context"

// InstallerRepository runs the project's package manager install step.
type InstallerRepository interface {
	// Detect returns the name of the package manager that Install would run in dir.
	Detect(ctx context.Context, dir string) string

	// Install blocks until the install finishes. A non-zero exit is reported as
	// an error wrapping entities.ErrInstallFailed.
	Install(ctx context.Context, dir string) error
}
