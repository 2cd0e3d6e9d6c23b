package deploy

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/towboat/pkg/cache"
	"github.com/arthur-debert/towboat/pkg/errors"
	"github.com/arthur-debert/towboat/pkg/hashutil"
	"github.com/arthur-debert/towboat/pkg/tagproc"
)

// Apply performs the side effects of a planned action.
func (e *Engine) Apply(action *Action) error {
	switch action.Outcome {
	case OutcomeAlreadyCorrect:
		return nil
	case OutcomeAdoptedBack:
		return e.adopt(action)
	}

	if err := os.MkdirAll(filepath.Dir(action.TargetAbs), 0755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "failed to create target parent directory").
			WithDetail("target", action.TargetAbs)
	}

	if action.ReplaceExisting {
		if err := os.Remove(action.TargetAbs); err != nil && !os.IsNotExist(err) {
			return errors.Wrap(err, errors.ErrRemove, "failed to remove existing target").
				WithDetail("target", action.TargetAbs)
		}
	}

	if action.Strategy == StrategyMaterialize {
		return e.materialize(action)
	}
	return e.symlink(action)
}

// adopt copies the existing target's bytes back onto the source, taking
// the user's version into the package. The cache is left untouched.
func (e *Engine) adopt(action *Action) error {
	data, err := os.ReadFile(action.TargetAbs)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "failed to read target for adoption").
			WithDetail("target", action.TargetAbs)
	}

	if err := os.MkdirAll(filepath.Dir(action.Item.Source), 0755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "failed to create source parent directory").
			WithDetail("source", action.Item.Source)
	}

	if err := os.WriteFile(action.Item.Source, data, 0644); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write adopted content to source").
			WithDetail("source", action.Item.Source)
	}

	log.Info().
		Str("target", action.TargetAbs).
		Str("source", action.Item.Source).
		Msg("Adopted target back into package")
	return nil
}

// materialize writes tag-filtered source content to the target and records
// provenance plus both content hashes in the cache.
func (e *Engine) materialize(action *Action) error {
	data, err := os.ReadFile(action.Item.Source)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "failed to read source").
			WithDetail("source", action.Item.Source)
	}

	sourceHash := hashutil.Checksum(data)
	processed := tagproc.Process(string(data), e.opts.BuildTag)
	deployedHash := hashutil.Checksum([]byte(processed))

	if err := os.WriteFile(action.TargetAbs, []byte(processed), 0644); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write processed file").
			WithDetail("target", action.TargetAbs)
	}

	e.cache.Upsert(action.TargetAbs, cache.Entry{
		SourcePath:   action.Item.Source,
		SourceHash:   sourceHash,
		DeployedPath: action.TargetAbs,
		DeployedHash: deployedHash,
		BuildTag:     e.opts.BuildTag,
	})

	log.Info().
		Str("source", action.Item.Source).
		Str("target", action.TargetAbs).
		Msg("Materialized processed file")
	return nil
}

// symlink points the target at the source's canonical absolute path.
// Symlinked targets get no cache entry: they cannot drift.
func (e *Engine) symlink(action *Action) error {
	canonSource, err := filepath.EvalSymlinks(action.Item.Source)
	if err != nil {
		return errors.Wrap(err, errors.ErrPathResolve, "failed to canonicalize source").
			WithDetail("source", action.Item.Source)
	}

	if err := os.Symlink(canonSource, action.TargetAbs); err != nil {
		return errors.Wrap(err, errors.ErrSymlinkCreate, "failed to create symlink").
			WithDetail("source", canonSource).
			WithDetail("target", action.TargetAbs)
	}

	log.Info().
		Str("source", canonSource).
		Str("target", action.TargetAbs).
		Msg("Created symlink")
	return nil
}
