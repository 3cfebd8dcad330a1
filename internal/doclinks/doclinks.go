// Package doclinks checks documentation sources for links that point to the wrong documentation site or version.
package doclinks

import (
	"io/fs"
	"regexp"
	"strings"

	"github.com/PhaserEditor2D/assetprep/internal/errs"
	"github.com/PhaserEditor2D/assetprep/internal/fileutils"
	"github.com/PhaserEditor2D/assetprep/internal/logging"
)

// Kind tells how a rule treats its prefixes
type Kind string

const (
	// Allow rules require every matched URL to start with one of the prefixes
	Allow Kind = "allow"
	// Deny rules reject every matched URL that starts with one of the prefixes
	Deny Kind = "deny"
)

// Rule is one URL family
type Rule struct {
	Name     string
	Kind     Kind
	Pattern  *regexp.Regexp
	Prefixes []string
}

// NewRule compiles pattern into a rule
func NewRule(name string, kind Kind, pattern string, prefixes []string) (*Rule, error) {
	if kind != Allow && kind != Deny {
		return nil, errs.New("Unknown kind %q for rule %s", kind, name)
	}
	rx, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errs.Wrap(err, "Invalid pattern for rule %s", name)
	}
	return &Rule{Name: name, Kind: kind, Pattern: rx, Prefixes: prefixes}, nil
}

// Violates reports whether url breaks the rule. The url is expected to be a match of the rule's pattern.
func (r *Rule) Violates(url string) bool {
	prefixed := hasAnyPrefix(url, r.Prefixes)
	if r.Kind == Allow {
		return !prefixed
	}
	return prefixed
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// Violation is a URL that breaks a rule
type Violation struct {
	File string `json:"file"`
	Line int    `json:"line"`
	URL  string `json:"url"`
	Rule string `json:"rule"`
	Kind Kind   `json:"kind"`
}

// CheckContent returns the violations found in content, in line order. Within a line, violations are ordered by
// rule and then by position.
func CheckContent(file string, content []byte, rules []*Rule) []Violation {
	var result []Violation
	for i, line := range strings.Split(string(content), "\n") {
		for _, rule := range rules {
			for _, url := range rule.Pattern.FindAllString(line, -1) {
				if !rule.Violates(url) {
					continue
				}
				result = append(result, Violation{
					File: file,
					Line: i + 1,
					URL:  url,
					Rule: rule.Name,
					Kind: rule.Kind,
				})
			}
		}
	}
	return result
}

// FileResult holds the violations of a single file
type FileResult struct {
	File       string      `json:"file"`
	Violations []Violation `json:"violations"`
}

// Report is the outcome of a check run
type Report struct {
	Files  []FileResult `json:"files"`
	Failed bool         `json:"failed"`
}

// Violations returns every violation of the report, in file order
func (r *Report) Violations() []Violation {
	var result []Violation
	for _, f := range r.Files {
		result = append(result, f.Violations...)
	}
	return result
}

// Checker checks every file in FS whose path matches Pattern
type Checker struct {
	FS      fs.FS
	Pattern string
	Rules   []*Rule
}

// Check reads every matching file in sorted order and checks it against all rules. Violations never stop the run;
// only a failure to list or read files does.
func (c *Checker) Check() (*Report, error) {
	files, err := fileutils.Glob(c.FS, c.Pattern)
	if err != nil {
		return nil, errs.Wrap(err, "Could not list documentation files")
	}
	if len(files) == 0 {
		logging.Warning("No documentation files match %s", c.Pattern)
	}

	report := &Report{Files: make([]FileResult, 0, len(files))}
	for _, file := range files {
		b, err := fs.ReadFile(c.FS, file)
		if err != nil {
			return nil, errs.Wrap(err, "Could not read %s", file)
		}

		violations := CheckContent(file, b, c.Rules)
		logging.Debug("Checked %s: %d violations", file, len(violations))
		if len(violations) > 0 {
			report.Failed = true
		}
		report.Files = append(report.Files, FileResult{File: file, Violations: violations})
	}

	return report, nil
}
