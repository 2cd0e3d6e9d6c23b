// Package deploy decides and applies per-file deployment actions: project
// a package file into the target tree as a symlink, or materialize it with
// tag-filtered content, refusing to clobber files it cannot prove it owns.
//
// The work is split into a planner, which derives an Action from the
// current filesystem state without mutating anything, and an applier,
// which performs the side effects. Dry-run is planning without applying.
package deploy

import (
	"github.com/arthur-debert/towboat/pkg/cache"
	"github.com/arthur-debert/towboat/pkg/logging"
	"github.com/arthur-debert/towboat/pkg/types"
)

var log = logging.GetLogger("deploy")

// Strategy is how a planned file reaches the target tree.
type Strategy int

const (
	// StrategySymlink links the target to the unmodified source
	StrategySymlink Strategy = iota
	// StrategyMaterialize writes tag-filtered content as an independent file
	StrategyMaterialize
)

// Outcome is the terminal state an item reaches.
type Outcome string

const (
	// OutcomeAlreadyCorrect means the target already reflects the source
	OutcomeAlreadyCorrect Outcome = "already-correct"
	// OutcomeAdoptedBack means the target's bytes were pulled back into the package
	OutcomeAdoptedBack Outcome = "adopted"
	// OutcomeMaterialized means tag-filtered content was written to the target
	OutcomeMaterialized Outcome = "materialized"
	// OutcomeSymlinked means the target became a symlink to the source
	OutcomeSymlinked Outcome = "symlinked"
)

// Action is a fully decided deployment step for one discovered item.
type Action struct {
	Item      types.DiscoveredItem
	TargetAbs string
	Outcome   Outcome
	Strategy  Strategy

	// ReplaceExisting marks that an existing target must be removed
	// before writing
	ReplaceExisting bool

	// DriftForced marks that --force overrode detected manual edits
	DriftForced bool
}

// Options configures a deployment pass.
type Options struct {
	TargetRoot string
	BuildTag   string
	DryRun     bool
	Force      bool
	Adopt      bool
}

// ReportFunc receives each item's decided action as it happens.
type ReportFunc func(Action)

// Engine runs the per-item state machine over a discovered item list.
type Engine struct {
	opts   Options
	cache  *cache.Cache
	report ReportFunc
}

// NewEngine creates an Engine. The cache must already be loaded; it is
// mutated in memory during Apply and saved once at the end of a
// successful non-dry-run pass.
func NewEngine(opts Options, c *cache.Cache, report ReportFunc) *Engine {
	return &Engine{opts: opts, cache: c, report: report}
}

// Deploy processes items strictly sequentially: an item's plan can depend
// on filesystem state an earlier item created (notably ancestor symlinks).
// The first error aborts the run; items already applied stay in place.
func (e *Engine) Deploy(items []types.DiscoveredItem) error {
	logger := log.With().
		Str("targetRoot", e.opts.TargetRoot).
		Str("buildTag", e.opts.BuildTag).
		Bool("dryRun", e.opts.DryRun).
		Logger()
	logger.Debug().Int("items", len(items)).Msg("Deployment pass started")

	for _, item := range items {
		action, err := e.Plan(item)
		if err != nil {
			return err
		}
		if e.report != nil {
			e.report(*action)
		}
		if e.opts.DryRun {
			continue
		}
		if err := e.Apply(action); err != nil {
			return err
		}
	}

	if e.opts.DryRun {
		logger.Debug().Msg("Dry run complete, cache untouched")
		return nil
	}
	return e.cache.Save()
}
