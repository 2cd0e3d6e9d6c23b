package manifest

import (
	"path"

	"github.com/arthur-debert/towboat/pkg/tagproc"
)

// ContentProbe lazily supplies a file's contents for the content-sniffing
// step of Resolve. It is only invoked when no explicit rule decides the
// path. A nil probe skips the sniff (used for paths that are not regular
// files).
type ContentProbe func() (string, error)

// Resolve decides whether relPath is included for buildTag and which
// target-relative path it maps to. Precedence is strict:
//
//  1. An exact rule for relPath: included iff the rule lists the tag;
//     the rule's target override applies.
//  2. A rule for an ancestor directory, innermost first: included iff
//     that rule lists the tag; no override inheritance.
//  3. A start marker for buildTag anywhere in the file's content.
//  4. The default policy: included iff include_all is set and the
//     requested tag equals the default tag.
func (m *Manifest) Resolve(relPath, buildTag string, probe ContentProbe) (bool, string, error) {
	relPath = path.Clean(relPath)

	if rule, ok := m.Targets[relPath]; ok {
		targetRel := relPath
		if rule.Target != "" {
			targetRel = rule.Target
		}
		return rule.HasTag(buildTag), targetRel, nil
	}

	for dir := path.Dir(relPath); dir != "." && dir != "/"; dir = path.Dir(dir) {
		if rule, ok := m.Targets[dir]; ok {
			return rule.HasTag(buildTag), relPath, nil
		}
	}

	if probe != nil {
		content, err := probe()
		if err != nil {
			return false, relPath, err
		}
		if tagproc.HasTag(content, buildTag) {
			return true, relPath, nil
		}
	}

	included := m.Default.IncludeAll && buildTag == m.Default.DefaultTag
	return included, relPath, nil
}
