// Package tagproc implements towboat's build-tag block language.
//
// A block is delimited by marker lines embedded in ordinary file content:
//
//	# {linux-
//	alias ls='ls --color=auto'
//	# -linux}
//
// The comment token preceding the marker is arbitrary, so the same syntax
// works inside shell scripts, vimrc files, git configs, and so on.
// Processing for a build tag keeps the bodies of that tag's blocks in place
// (markers dropped) and removes every other block entirely.
package tagproc

import (
	"regexp"
	"strings"
)

var (
	startMarkerRe = regexp.MustCompile(`^\s*\S+\s+\{([A-Za-z0-9][A-Za-z0-9_.-]*)-\s*$`)
	endMarkerRe   = regexp.MustCompile(`^\s*\S+\s+-([A-Za-z0-9][A-Za-z0-9_.-]*)\}\s*$`)
)

// startTag returns the tag name if the line is a block start marker
func startTag(line string) (string, bool) {
	m := startMarkerRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// endTag returns the tag name if the line is a block end marker
func endTag(line string) (string, bool) {
	m := endMarkerRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Process filters content for the given build tag. It is a pure text
// transform with no I/O.
//
// The algorithm is an explicit two-pass, two-state line scanner: the first
// pass unwraps every block whose tag matches (body survives, markers go),
// the second strips every remaining block of any tag, markers and body
// alike. Text outside any block keeps its original position. Nested or
// overlapping markers are not supported.
func Process(content, buildTag string) string {
	lines := strings.Split(content, "\n")
	lines = extractBlocks(lines, buildTag)
	lines = stripBlocks(lines)
	return strings.Join(lines, "\n")
}

// HasTag reports whether content contains a start marker for the given
// build tag. This is the sniff used both by discovery's inclusion check
// and by the deployment engine's symlink-vs-materialize decision.
func HasTag(content, buildTag string) bool {
	for _, line := range strings.Split(content, "\n") {
		if tag, ok := startTag(line); ok && tag == buildTag {
			return true
		}
	}
	return false
}

// extractBlocks unwraps every block whose tag equals buildTag: the marker
// lines are dropped and the body lines stay in place. All occurrences are
// unwrapped, not just the first.
func extractBlocks(lines []string, buildTag string) []string {
	out := make([]string, 0, len(lines))
	inBlock := false
	for _, line := range lines {
		if !inBlock {
			if tag, ok := startTag(line); ok && tag == buildTag {
				inBlock = true
				continue
			}
			out = append(out, line)
			continue
		}
		if tag, ok := endTag(line); ok && tag == buildTag {
			inBlock = false
			continue
		}
		out = append(out, line)
	}
	return out
}

// stripBlocks removes every remaining block in its entirety, regardless of
// tag name. A block ends at the first end marker line; mismatched marker
// tags are treated leniently rather than diagnosed.
func stripBlocks(lines []string) []string {
	out := make([]string, 0, len(lines))
	inBlock := false
	for _, line := range lines {
		if !inBlock {
			if _, ok := startTag(line); ok {
				inBlock = true
				continue
			}
			out = append(out, line)
			continue
		}
		if _, ok := endTag(line); ok {
			inBlock = false
		}
	}
	return out
}
