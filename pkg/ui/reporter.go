package ui

import (
	"fmt"
	"io"

	"github.com/arthur-debert/towboat/pkg/deploy"
	"github.com/arthur-debert/towboat/pkg/ui/styles"
)

// Reporter prints per-item deployment outcomes as they are decided.
type Reporter struct {
	out    io.Writer
	format Format
	dryRun bool
}

// NewReporter creates a Reporter writing to out. format must already be
// resolved (not FormatAuto).
func NewReporter(out io.Writer, format Format, dryRun bool) *Reporter {
	return &Reporter{out: out, format: format, dryRun: dryRun}
}

// render applies a named style only when rich terminal output is active
func (r *Reporter) render(styleName, s string) string {
	if r.format != FormatTerminal {
		return s
	}
	return styles.GetStyle(styleName).Render(s)
}

// Action reports one decided deployment action.
func (r *Reporter) Action(action deploy.Action) {
	if action.DriftForced {
		fmt.Fprintln(r.out, r.render("Warning",
			fmt.Sprintf("Overwriting manual edits: %s", action.TargetAbs)))
	}

	switch action.Outcome {
	case deploy.OutcomeAlreadyCorrect:
		fmt.Fprintf(r.out, "%s %s\n",
			r.render("Muted", "Already deployed:"),
			r.render("FilePath", action.TargetAbs))
	case deploy.OutcomeAdoptedBack:
		fmt.Fprintf(r.out, "%s %s -> %s\n",
			r.render("Success", r.verb("Adopted", "Would adopt")),
			r.render("FilePath", action.TargetAbs),
			r.render("FilePath", action.Item.Source))
	case deploy.OutcomeMaterialized:
		fmt.Fprintf(r.out, "%s %s\n",
			r.render("Success", r.verb("Created processed file:", "Would create processed file:")),
			r.render("FilePath", action.TargetAbs))
	case deploy.OutcomeSymlinked:
		fmt.Fprintf(r.out, "%s %s\n",
			r.render("Success", r.verb("Created symlink:", "Would create symlink:")),
			r.render("FilePath", action.TargetAbs))
	}
}

// Removed reports one removed target.
func (r *Reporter) Removed(targetAbs string) {
	fmt.Fprintf(r.out, "%s %s\n",
		r.render("Success", r.verb("Removed:", "Would remove:")),
		r.render("FilePath", targetAbs))
}

// Summary reports the end-of-run line.
func (r *Reporter) Summary(count int) {
	if count == 0 {
		fmt.Fprintln(r.out, r.render("Muted", "No files matched"))
		return
	}
	if r.dryRun {
		fmt.Fprintln(r.out, r.render("Header", "Dry run completed. Run again without --dry-run to apply changes."))
		return
	}
	fmt.Fprintln(r.out, r.render("Header", fmt.Sprintf("Completed: %d file(s)", count)))
}

// NoMatches reports that discovery selected nothing for the build tag.
func (r *Reporter) NoMatches(buildTag string) {
	fmt.Fprintln(r.out, r.render("Muted",
		fmt.Sprintf("No files found matching build tag %q", buildTag)))
}

func (r *Reporter) verb(did, would string) string {
	if r.dryRun {
		return would
	}
	return did
}
