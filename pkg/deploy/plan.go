package deploy

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/towboat/pkg/errors"
	"github.com/arthur-debert/towboat/pkg/hashutil"
	"github.com/arthur-debert/towboat/pkg/tagproc"
	"github.com/arthur-debert/towboat/pkg/types"
)

// Plan decides the action for one item against the current filesystem
// snapshot. It performs reads only; all mutation happens in Apply.
func (e *Engine) Plan(item types.DiscoveredItem) (*Action, error) {
	targetAbs := filepath.Join(e.opts.TargetRoot, item.TargetRel)
	action := &Action{Item: item, TargetAbs: targetAbs}

	// A discovered source that vanished mid-run means the package itself
	// is broken, not a condition to skip past.
	if _, err := os.Lstat(item.Source); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrSourceMissing, "discovered source no longer exists").
				WithDetail("source", item.Source)
		}
		return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to inspect source").
			WithDetail("source", item.Source)
	}

	canonSource, err := filepath.EvalSymlinks(item.Source)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrPathResolve, "failed to canonicalize source").
			WithDetail("source", item.Source)
	}

	// If an ancestor symlink already makes the file reachable through the
	// package, the target needs nothing.
	if reachableThroughAncestor(targetAbs, canonSource) {
		action.Outcome = OutcomeAlreadyCorrect
		return action, nil
	}

	targetInfo, targetErr := os.Lstat(targetAbs)
	targetExists := targetErr == nil

	if e.opts.Adopt && targetExists {
		action.Outcome = OutcomeAdoptedBack
		return action, nil
	}

	// The write strategy follows the source content alone, independent of
	// why discovery included the file.
	data, err := os.ReadFile(item.Source)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to read source").
			WithDetail("source", item.Source)
	}
	if tagproc.HasTag(string(data), e.opts.BuildTag) {
		action.Strategy = StrategyMaterialize
		action.Outcome = OutcomeMaterialized
	} else {
		action.Strategy = StrategySymlink
		action.Outcome = OutcomeSymlinked
	}

	if !targetExists {
		return action, nil
	}

	isSymlink := targetInfo.Mode()&os.ModeSymlink != 0
	if isSymlink {
		if resolved, linkErr := filepath.EvalSymlinks(targetAbs); linkErr == nil && resolved == canonSource {
			action.Outcome = OutcomeAlreadyCorrect
			return action, nil
		}
	}

	// ownProvenance means the cache proved the existing target is one of
	// towboat's own materializations, so replacing it needs no --force.
	ownProvenance := false
	if action.Strategy == StrategyMaterialize && !isSymlink {
		if entry, ok := e.cache.Get(targetAbs); ok {
			liveHash, hashErr := hashutil.FileChecksum(targetAbs)
			if hashErr != nil {
				return nil, errors.Wrap(hashErr, errors.ErrFileAccess, "failed to hash existing target").
					WithDetail("target", targetAbs)
			}
			if liveHash != entry.DeployedHash {
				// Drift: the target was edited after deployment
				if !e.opts.Force {
					return nil, errors.New(errors.ErrManualModification, "target was modified after deployment").
						WithDetail("target", targetAbs).
						WithDetail("remediation", "use --force to overwrite, or --adopt to pull the edits back into the package")
				}
				action.DriftForced = true
				log.Warn().Str("target", targetAbs).Msg("Overwriting manually modified target (--force)")
			} else if entry.SourceHash == hashutil.Checksum(data) && entry.BuildTag == e.opts.BuildTag {
				// Nothing changed on either side since the last deployment
				action.Outcome = OutcomeAlreadyCorrect
				return action, nil
			}
			ownProvenance = true
		}
	}

	if !ownProvenance && !e.opts.Force {
		return nil, errors.New(errors.ErrTargetExists, "target already exists").
			WithDetail("target", targetAbs).
			WithDetail("remediation", "use --force to overwrite, or --adopt to take ownership of the existing file")
	}

	action.ReplaceExisting = true
	return action, nil
}

// reachableThroughAncestor reports whether any ancestor of targetAbs is a
// symlink whose canonical resolution is a path-prefix of the source's
// canonical path, meaning the target is already reachable through it.
func reachableThroughAncestor(targetAbs, canonSource string) bool {
	for dir := filepath.Dir(targetAbs); ; {
		if info, err := os.Lstat(dir); err == nil && info.Mode()&os.ModeSymlink != 0 {
			if resolved, err := filepath.EvalSymlinks(dir); err == nil {
				if resolved == canonSource ||
					strings.HasPrefix(canonSource, resolved+string(filepath.Separator)) {
					return true
				}
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return false
		}
		dir = parent
	}
}
