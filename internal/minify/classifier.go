package minify

import (
	"regexp"
	"strings"
)

// Classifier reduces one line of a recognized file format. It returns
// the minified line and whether the line should be kept at all.
//
// Line classification is lossy by design: a comment marker inside a
// quoted string or a here-document is indistinguishable from a real
// comment at this level. That limitation is accepted, not fixed.
type Classifier interface {
	MinifyLine(line string) (string, bool)
}

// Trailing comments are a run of whitespace followed by the comment
// marker and a space. Requiring the space keeps constructs like
// "${#var}" and vim register references out of reach.
var (
	shellTrailingRegex = regexp.MustCompile(`[ \t]+# `)
	vimTrailingRegex   = regexp.MustCompile(`[ \t]+" `)
)

// shellClassifier handles shell-style files: '#' comments, except
// shebang lines, which always survive untouched.
type shellClassifier struct{}

func (shellClassifier) MinifyLine(line string) (string, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return "", false
	}
	if strings.HasPrefix(trimmed, "#!") {
		return line, true
	}
	if strings.HasPrefix(trimmed, "#") {
		return "", false
	}
	if loc := shellTrailingRegex.FindStringIndex(line); loc != nil {
		line = strings.TrimRight(line[:loc[0]], " \t")
	}
	if strings.TrimSpace(line) == "" {
		return "", false
	}
	return line, true
}

// vimClassifier handles vim configuration: '"' comments.
type vimClassifier struct{}

func (vimClassifier) MinifyLine(line string) (string, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return "", false
	}
	if strings.HasPrefix(trimmed, `"`) {
		return "", false
	}
	if loc := vimTrailingRegex.FindStringIndex(line); loc != nil {
		line = strings.TrimRight(line[:loc[0]], " \t")
	}
	if strings.TrimSpace(line) == "" {
		return "", false
	}
	return line, true
}

// classifierFor picks the classifier for a file name. Vim configuration
// gets its own comment syntax; everything else is treated as
// shell-style, the generic fallback.
func classifierFor(name string) Classifier {
	base := strings.TrimPrefix(name, ".")
	if base == "vimrc" || strings.HasSuffix(name, ".vim") {
		return vimClassifier{}
	}
	return shellClassifier{}
}
