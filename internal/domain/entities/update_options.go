package entities

// UpgradeOptions holds runtime options for a single upgrade run.
type UpgradeOptions struct {
	ProjectDir  string
	DryRun      bool
	Interactive bool     // false accepts the default selection without prompting
	SkipInstall bool     // write the manifest but do not run the package manager
	Filter      []string // only consider these packages
	Reject      []string // never consider these packages
	JSON        bool     // list output as JSON
}
