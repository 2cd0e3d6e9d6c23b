// Package remove undoes deployments: it deletes deployed artifacts and
// prunes the now-empty directory chains they leave behind.
package remove

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/towboat/pkg/errors"
	"github.com/arthur-debert/towboat/pkg/logging"
)

var log = logging.GetLogger("remove")

// Remove deletes the deployed artifact at targetAbs, then walks upward
// deleting each now-empty parent directory, stopping at the first
// non-empty ancestor or the filesystem root. A missing target is a no-op,
// making repeated invocations idempotent.
func Remove(targetAbs string) error {
	logger := log.With().Str("target", targetAbs).Logger()

	info, err := os.Lstat(targetAbs)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Msg("Target already absent")
			return nil
		}
		return errors.Wrap(err, errors.ErrFileAccess, "failed to inspect target").
			WithDetail("path", targetAbs)
	}

	if info.IsDir() {
		err = os.RemoveAll(targetAbs)
	} else {
		err = os.Remove(targetAbs)
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrRemove, "failed to remove target").
			WithDetail("path", targetAbs)
	}
	logger.Info().Msg("Removed target")

	return pruneEmptyParents(filepath.Dir(targetAbs))
}

// pruneEmptyParents deletes dir and each successive parent while they are
// empty.
func pruneEmptyParents(dir string) error {
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				dir = parent
				continue
			}
			return errors.Wrap(err, errors.ErrFileAccess, "failed to read directory while pruning").
				WithDetail("path", dir)
		}
		if len(entries) > 0 {
			return nil
		}

		if err := os.Remove(dir); err != nil {
			return errors.Wrap(err, errors.ErrRemove, "failed to prune empty directory").
				WithDetail("path", dir)
		}
		log.Debug().Str("path", dir).Msg("Pruned empty directory")
		dir = parent
	}
}
