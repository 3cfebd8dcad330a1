package plistgen

import (
	"fmt"
	"strings"

	"github.com/blang/semver"

	"github.com/PhaserEditor2D/assetprep/internal/config"
	"github.com/PhaserEditor2D/assetprep/internal/errs"
	"github.com/PhaserEditor2D/assetprep/internal/infoplist"
	"github.com/PhaserEditor2D/assetprep/internal/logging"
	"github.com/PhaserEditor2D/assetprep/internal/output"
	"github.com/PhaserEditor2D/assetprep/internal/primer"
	"github.com/PhaserEditor2D/assetprep/internal/prompt"
)

// VersionPrompt is shown when no version was given on the command line
const VersionPrompt = "Enter the product version (eg: 1.0.0): "

type primeable interface {
	primer.Outputer
	primer.Prompter
	primer.Configurer
}

type Params struct {
	Version string
}

type RenderPlist struct {
	out    output.Outputer
	prompt prompt.Prompter
	cfg    config.Plist
}

func New(p primeable) *RenderPlist {
	return &RenderPlist{
		out:    p.Output(),
		prompt: p.Prompt(),
		cfg:    p.Config().Plist,
	}
}

func (r *RenderPlist) Run(params *Params) error {
	version := params.Version
	if version == "" {
		v, err := r.prompt.Input(VersionPrompt, "", prompt.NoValidation)
		if err != nil {
			return errs.Wrap(err, "Could not read the product version")
		}
		version = v
	}

	version, err := checkVersion(version)
	if err != nil {
		return err
	}
	if _, err := semver.ParseTolerant(version); err != nil {
		logging.Debug("Version %s is not semver: %v", version, err)
		r.out.Notice(fmt.Sprintf("Version '%s' is not a semantic version, rendering it anyway", version))
	}

	renderer := &infoplist.Renderer{
		TemplateDir: r.cfg.TemplateDir,
		OutputDir:   r.cfg.OutputDir,
		Templates:   r.cfg.Templates,
		Token:       r.cfg.Token,
		Validate:    !r.cfg.SkipValidation,
	}
	rendered, err := renderer.Render(version)
	if err != nil {
		return errs.Wrap(err, "Could not render Info.plist files for version %s", version)
	}

	r.out.Print(&renderResult{Version: version, Files: rendered})
	return nil
}

func checkVersion(version string) (string, error) {
	version = strings.TrimSpace(version)
	if version == "" {
		return "", errs.NewUserFacing(
			"A product version is required",
			errs.SetInput(),
			errs.SetTips("Pass it with --version, eg. --version 1.0.0"),
		)
	}
	if strings.ContainsAny(version, `/\`) || version == "." || version == ".." {
		return "", errs.NewUserFacing(
			fmt.Sprintf("Invalid product version '%s', it becomes part of a file name", version),
			errs.SetInput(),
		)
	}
	return version, nil
}

type renderResult struct {
	Version string               `json:"version"`
	Files   []infoplist.Rendered `json:"files"`
}

func (r *renderResult) MarshalOutput(f output.Format) interface{} {
	if f == output.JSONFormatName {
		return r
	}
	lines := make([]string, 0, len(r.Files))
	for _, file := range r.Files {
		lines = append(lines, fmt.Sprintf("Wrote [BOLD]%s[/RESET] (%d replacements)", file.Output, file.Replacements))
	}
	return strings.Join(lines, "\n")
}
