package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrPromptCancelled is returned by prompters when the user aborts the prompt.
	ErrPromptCancelled = errors.New("prompt cancelled by user")
	// ErrSelectionOutsideCatalog means a selection names a package that was never offered.
	ErrSelectionOutsideCatalog = errors.New("selection contains a package outside the update catalog")
	// ErrMutationInconsistency means a selected package is declared in neither dependency section.
	ErrMutationInconsistency = errors.New("selected package is missing from the manifest")
	// ErrInstallFailed is returned by installers when the package manager exits non-zero.
	ErrInstallFailed = errors.New("package manager install failed")
	// ErrManifestInvalid is returned when package.json cannot be parsed.
	ErrManifestInvalid = errors.New("invalid manifest")
)

// ResolutionError wraps a failure of the version resolver. It aborts the run
// before any classification is attempted.
type ResolutionError struct {
	Package string // empty when the whole query failed
	Err     error
}

func (e *ResolutionError) Error() string {
	if e.Package == "" {
		return fmt.Sprintf("failed to resolve available versions: %v", e.Err)
	}
	return fmt.Sprintf("failed to resolve available versions for %q: %v", e.Package, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }
