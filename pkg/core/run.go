// Package core ties a run together: manifest lookup, build-tag and
// target-root resolution, discovery, and either deployment or removal.
package core

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/towboat/pkg/cache"
	"github.com/arthur-debert/towboat/pkg/deploy"
	"github.com/arthur-debert/towboat/pkg/discovery"
	"github.com/arthur-debert/towboat/pkg/errors"
	"github.com/arthur-debert/towboat/pkg/logging"
	"github.com/arthur-debert/towboat/pkg/manifest"
	"github.com/arthur-debert/towboat/pkg/paths"
	"github.com/arthur-debert/towboat/pkg/remove"
	"github.com/arthur-debert/towboat/pkg/types"
	"github.com/arthur-debert/towboat/pkg/ui"
)

var log = logging.GetLogger("core")

// Run executes one towboat invocation: discover the package's files for
// the effective build tag, then deploy them (or remove them, in removal
// mode). The reporter receives each item's outcome as it is decided.
func Run(cfg types.Config, reporter *ui.Reporter) error {
	if info, err := os.Stat(cfg.PackageDir); err != nil || !info.IsDir() {
		return errors.New(errors.ErrPackageNotFound, "package directory does not exist").
			WithDetail("package", cfg.PackageDir)
	}

	manifestPath, ok := manifest.Find(cfg.PackageDir)
	if !ok {
		return errors.New(errors.ErrManifestNotFound, "no boat.toml governs this package").
			WithDetail("package", cfg.PackageDir)
	}
	m, err := manifest.Parse(manifestPath)
	if err != nil {
		return err
	}

	targetRoot, err := resolveTargetRoot(cfg, m)
	if err != nil {
		return err
	}
	buildTag := resolveBuildTag(cfg, m)

	log.Info().
		Str("package", cfg.PackageDir).
		Str("stowDir", cfg.StowDir).
		Str("target", targetRoot).
		Str("buildTag", buildTag).
		Bool("dryRun", cfg.DryRun).
		Bool("remove", cfg.Remove).
		Msg("Run started")

	items, err := discovery.Discover(cfg.PackageDir, buildTag)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		reporter.NoMatches(buildTag)
		return nil
	}

	if cfg.Remove {
		if err := removeItems(items, targetRoot, cfg.DryRun, reporter); err != nil {
			return err
		}
	} else {
		c, err := cache.Load(paths.CacheFilePath())
		if err != nil {
			return err
		}
		engine := deploy.NewEngine(deploy.Options{
			TargetRoot: targetRoot,
			BuildTag:   buildTag,
			DryRun:     cfg.DryRun,
			Force:      cfg.Force,
			Adopt:      cfg.Adopt,
		}, c, reporter.Action)
		if err := engine.Deploy(items); err != nil {
			return err
		}
	}

	reporter.Summary(len(items))
	return nil
}

// removeItems deletes each item's deployed target and prunes emptied
// directory chains. The cache is deliberately left untouched.
func removeItems(items []types.DiscoveredItem, targetRoot string, dryRun bool, reporter *ui.Reporter) error {
	for _, item := range items {
		targetAbs := filepath.Join(targetRoot, item.TargetRel)
		if !dryRun {
			if err := remove.Remove(targetAbs); err != nil {
				return err
			}
		}
		reporter.Removed(targetAbs)
	}
	return nil
}

// resolveTargetRoot picks the manifest's target_dir when present,
// otherwise the configured target, expanding ~ and anchoring relative
// paths at the working directory.
func resolveTargetRoot(cfg types.Config, m *manifest.Manifest) (string, error) {
	target := cfg.TargetDir
	if m.TargetDir != "" {
		target = m.TargetDir
	}

	expanded, err := paths.ExpandHome(target)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrPathResolve, "failed to expand target directory").
			WithDetail("target", target)
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrPathResolve, "failed to resolve target directory").
			WithDetail("target", expanded)
	}
	return abs, nil
}

// resolveBuildTag prefers the explicitly requested tag, then the
// manifest's first default tag, then "default".
func resolveBuildTag(cfg types.Config, m *manifest.Manifest) string {
	if cfg.BuildTag != "" {
		return cfg.BuildTag
	}
	if len(m.BuildTags) > 0 {
		return m.BuildTags[0]
	}
	return manifest.DefaultTag
}
