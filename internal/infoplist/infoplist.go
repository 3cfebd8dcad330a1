// Package infoplist renders the versioned Info.plist files of the macOS bundles from their templates.
package infoplist

import (
	"fmt"
	"path/filepath"
	"strings"

	"howett.net/plist"

	"github.com/PhaserEditor2D/assetprep/internal/errs"
	"github.com/PhaserEditor2D/assetprep/internal/fileutils"
	"github.com/PhaserEditor2D/assetprep/internal/logging"
)

// DefaultToken is the placeholder replaced by the product version
const DefaultToken = "${ver}"

const templateSuffix = "-Info.plist-template"

// TemplatePath returns the template file for the given base name, eg. app-Info.plist-template
func TemplatePath(dir, base string) string {
	return filepath.Join(dir, base+templateSuffix)
}

// OutputPath returns the rendered file for the given version and base name, eg. v1.0.0-app-Info.plist
func OutputPath(dir, version, base string) string {
	return filepath.Join(dir, fmt.Sprintf("v%s-%s-Info.plist", version, base))
}

// Substitute replaces every occurrence of token in content with version, verbatim
func Substitute(content, token, version string) string {
	return strings.ReplaceAll(content, token, version)
}

// Rendered describes one output file
type Rendered struct {
	Template     string `json:"template"`
	Output       string `json:"output"`
	Replacements int    `json:"replacements"`
}

// Renderer renders a fixed set of templates for a given version
type Renderer struct {
	TemplateDir string
	OutputDir   string
	Templates   []string
	Token       string
	// Validate parses every rendered file as a property list before anything is written
	Validate bool
}

// Render reads and substitutes every template, then writes the outputs. Nothing is written if any template is
// missing, unreadable or, when validating, renders to an invalid property list.
func (r *Renderer) Render(version string) ([]Rendered, error) {
	token := r.Token
	if token == "" {
		token = DefaultToken
	}

	type pending struct {
		Rendered
		content []byte
	}
	var todo []pending

	for _, base := range r.Templates {
		src := TemplatePath(r.TemplateDir, base)
		b, err := fileutils.ReadFile(src)
		if err != nil {
			return nil, errs.Wrap(err, "Could not read template %s", base)
		}

		content := string(b)
		count := strings.Count(content, token)
		if count == 0 {
			logging.Warning("Template %s does not contain %s", src, token)
		}
		rendered := Substitute(content, token, version)

		if r.Validate {
			if err := validatePlist([]byte(rendered)); err != nil {
				return nil, errs.Wrap(err, "Template %s does not render to a valid property list", src)
			}
		}

		todo = append(todo, pending{
			Rendered{Template: src, Output: OutputPath(r.OutputDir, version, base), Replacements: count},
			[]byte(rendered),
		})
	}

	result := make([]Rendered, 0, len(todo))
	for _, p := range todo {
		logging.Debug("Writing %s (%d replacements)", p.Output, p.Replacements)
		if err := fileutils.WriteFile(p.Output, p.content); err != nil {
			return result, errs.Wrap(err, "Could not write %s", p.Output)
		}
		result = append(result, p.Rendered)
	}

	return result, nil
}

func validatePlist(data []byte) error {
	var v interface{}
	if _, err := plist.Unmarshal(data, &v); err != nil {
		return errs.Wrap(err, "Invalid property list")
	}
	if _, ok := v.(map[string]interface{}); !ok {
		return errs.New("Property list root is not a dictionary")
	}
	return nil
}
