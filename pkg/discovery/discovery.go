// Package discovery walks a package tree and produces the flat list of
// (source, target-relative) pairs a run will deploy or remove.
package discovery

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/towboat/pkg/errors"
	"github.com/arthur-debert/towboat/pkg/logging"
	"github.com/arthur-debert/towboat/pkg/manifest"
	"github.com/arthur-debert/towboat/pkg/paths"
	"github.com/arthur-debert/towboat/pkg/types"
)

var log = logging.GetLogger("discovery")

// Discover walks packageRoot and returns every file included for buildTag,
// paired with its target-relative path. A manifest governing the package
// root is required; there is no manifest-less fallback mode.
//
// Subdirectories carrying their own boat.toml are discovered independently
// as nested packages and merged into the result; the parent walk does not
// re-evaluate their files. Output order is stable within one run but
// otherwise unspecified.
func Discover(packageRoot, buildTag string) ([]types.DiscoveredItem, error) {
	root, err := filepath.Abs(packageRoot)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrPathResolve, "failed to resolve package root").
			WithDetail("package", packageRoot)
	}

	manifestPath, ok := manifest.Find(root)
	if !ok {
		return nil, errors.New(errors.ErrManifestNotFound, "no boat.toml governs this package").
			WithDetail("package", root)
	}

	m, err := manifest.Parse(manifestPath)
	if err != nil {
		return nil, err
	}

	return walk(root, m, buildTag)
}

func walk(root string, m *manifest.Manifest, buildTag string) ([]types.DiscoveredItem, error) {
	logger := log.With().Str("root", root).Str("buildTag", buildTag).Logger()

	var items []types.DiscoveredItem
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return errors.Wrap(walkErr, errors.ErrFileAccess, "failed to read directory entry").
				WithDetail("path", path)
		}
		if path == root {
			return nil
		}

		// Manifest files are never deployment candidates
		if d.Name() == paths.ManifestFileName {
			return nil
		}

		if d.IsDir() {
			// A subdirectory with its own manifest is a nested package:
			// discover it independently and skip it here.
			nestedManifest := filepath.Join(path, paths.ManifestFileName)
			if info, statErr := os.Stat(nestedManifest); statErr == nil && !info.IsDir() {
				logger.Debug().Str("nested", path).Msg("Descending into nested package")
				nested, nestedErr := Discover(path, buildTag)
				if nestedErr != nil {
					return nestedErr
				}
				items = append(items, nested...)
				return fs.SkipDir
			}
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			info, statErr := os.Stat(path)
			if statErr != nil {
				// The source tree may be partially inconsistent; a dangling
				// symlink is worth a warning, not a failed run.
				logger.Warn().Str("path", path).Msg("Skipping broken symlink")
				return nil
			}
			if info.IsDir() {
				return nil
			}
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return errors.Wrap(relErr, errors.ErrPathResolve, "source path outside package root").
				WithDetail("path", path).
				WithDetail("package", root)
		}
		rel = filepath.ToSlash(rel)

		probe := func() (string, error) {
			data, readErr := os.ReadFile(path)
			if readErr != nil {
				return "", errors.Wrap(readErr, errors.ErrFileAccess, "failed to read file for tag sniffing").
					WithDetail("path", path)
			}
			return string(data), nil
		}

		included, targetRel, resolveErr := m.Resolve(rel, buildTag, probe)
		if resolveErr != nil {
			return resolveErr
		}
		if included {
			items = append(items, types.DiscoveredItem{
				Source:    path,
				TargetRel: filepath.FromSlash(targetRel),
			})
			logger.Trace().Str("source", path).Str("target", targetRel).Msg("Included file")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug().Int("count", len(items)).Msg("Discovery complete")
	return items, nil
}
