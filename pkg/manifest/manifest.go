// Package manifest locates and parses per-package boat.toml manifests and
// decides, per relative path, whether a file is included for a build tag
// and where it lands in the target tree.
package manifest

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/towboat/pkg/errors"
	"github.com/arthur-debert/towboat/pkg/logging"
	"github.com/arthur-debert/towboat/pkg/paths"
	toml "github.com/pelletier/go-toml/v2"
)

var log = logging.GetLogger("manifest")

// DefaultTag is the build tag implied when neither the CLI nor the
// manifest names one.
const DefaultTag = "default"

// Rule configures one relative path, which may name a file or act as a
// directory prefix. Keys in the targets table are relative to the package
// root and unique.
type Rule struct {
	// Target overrides the path the file is projected to, relative to
	// the target root. Only honored on exact file matches.
	Target string `toml:"target,omitempty"`

	// Tags is the ordered set of build tags the path is included for
	Tags []string `toml:"tags"`
}

// DefaultPolicy is the fallback applied to paths no rule covers.
type DefaultPolicy struct {
	IncludeAll bool   `toml:"include_all"`
	DefaultTag string `toml:"default_tag"`
}

// Manifest is the parsed boat.toml for one package.
type Manifest struct {
	// TargetDir optionally overrides the run's target directory.
	// "~" and "~/..." expand to the home directory.
	TargetDir string `toml:"target_dir,omitempty"`

	// BuildTags is an ordered list; its first entry is the implied
	// default tag when the CLI does not supply one.
	BuildTags []string `toml:"build_tags,omitempty"`

	// Targets maps relative-path strings to rules
	Targets map[string]Rule `toml:"targets"`

	// Default is the policy for unmatched paths
	Default DefaultPolicy `toml:"default"`
}

// HasTag reports whether the rule's tag set contains the given build tag
func (r Rule) HasTag(buildTag string) bool {
	for _, tag := range r.Tags {
		if tag == buildTag {
			return true
		}
	}
	return false
}

// Find walks from dir upward through its ancestors until a boat.toml is
// found, returning its path. The second return is false when the search
// reaches the filesystem root without a hit.
func Find(dir string) (string, bool) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		manifestPath := filepath.Join(current, paths.ManifestFileName)
		if info, err := os.Stat(manifestPath); err == nil && !info.IsDir() {
			return manifestPath, true
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}

// Parse reads and parses a boat.toml file. A missing file or malformed
// schema is a configuration error.
func Parse(path string) (*Manifest, error) {
	logger := log.With().Str("manifest", path).Logger()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestNotFound, "failed to read manifest").
			WithDetail("path", path)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestParse, "failed to parse manifest").
			WithDetail("path", path)
	}

	if m.Default.DefaultTag == "" {
		m.Default.DefaultTag = DefaultTag
	}

	logger.Debug().
		Int("rules", len(m.Targets)).
		Bool("include_all", m.Default.IncludeAll).
		Str("default_tag", m.Default.DefaultTag).
		Msg("Manifest loaded")

	return &m, nil
}
