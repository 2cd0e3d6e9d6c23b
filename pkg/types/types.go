// Package types holds the shared value types passed between towboat's
// discovery, deployment, and removal stages.
package types

// Config carries a fully resolved run configuration: where the package
// lives, where its files go, which build tag is active, and the mode flags.
type Config struct {
	// PackageDir is the source directory of the package being deployed
	PackageDir string

	// StowDir is the directory containing packages
	StowDir string

	// TargetDir is the directory files are projected into
	TargetDir string

	// BuildTag selects which tag blocks and rules apply
	BuildTag string

	DryRun bool
	Force  bool
	Adopt  bool
	Remove bool
}

// DiscoveredItem is one file selected for deployment: the absolute source
// path inside the package and its target path relative to the target root.
// The list is rebuilt on every run and never persisted.
type DiscoveredItem struct {
	Source    string
	TargetRel string
}
