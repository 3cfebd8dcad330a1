package linkcheck

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/PhaserEditor2D/assetprep/internal/config"
	"github.com/PhaserEditor2D/assetprep/internal/doclinks"
	"github.com/PhaserEditor2D/assetprep/internal/errs"
	"github.com/PhaserEditor2D/assetprep/internal/fileutils"
	"github.com/PhaserEditor2D/assetprep/internal/output"
	"github.com/PhaserEditor2D/assetprep/internal/primer"
)

type primeable interface {
	primer.Outputer
	primer.Configurer
}

type CheckLinks struct {
	out output.Outputer
	cfg config.Links
}

func New(p primeable) *CheckLinks {
	return &CheckLinks{
		out: p.Output(),
		cfg: p.Config().Links,
	}
}

// Run checks the documentation sources and fails with exit code 1 when any link breaks a rule. Every file is checked
// and every violation reported before failing.
func (c *CheckLinks) Run() error {
	if !fileutils.DirExists(c.cfg.Dir) {
		return errs.NewUserFacing(
			fmt.Sprintf("Documentation directory '%s' does not exist", c.cfg.Dir),
			errs.SetInput(),
			errs.SetTips("Run from the documentation root or pass --dir"),
		)
	}

	rules, err := Rules(c.cfg.Rules)
	if err != nil {
		return err
	}

	checker := &doclinks.Checker{FS: os.DirFS(c.cfg.Dir), Pattern: c.cfg.Pattern, Rules: rules}
	report, err := checker.Check()
	if err != nil {
		return errs.Wrap(err, "Could not check documentation links")
	}
	relocate(report, c.cfg.Dir)

	if c.out.Type() == output.JSONFormatName {
		c.out.Print(report)
	} else {
		c.printReport(report)
	}

	if !report.Failed {
		return nil
	}
	violations := report.Violations()
	err = errs.New("Found %d invalid links", len(violations))
	if c.out.Type() != output.JSONFormatName {
		c.out.Print(fmt.Sprintf("[ERROR]Found %d invalid links in %d files, see above[/RESET]", len(violations), failedFiles(report)))
	}
	return errs.WrapExitCode(errs.Silence(err), 1)
}

// Rules compiles the configured link rules
func Rules(configured []config.LinkRule) ([]*doclinks.Rule, error) {
	rules := make([]*doclinks.Rule, 0, len(configured))
	for _, r := range configured {
		rule, err := doclinks.NewRule(r.Name, doclinks.Kind(r.Kind), r.Pattern, r.Prefixes)
		if err != nil {
			return nil, errs.WrapUserFacing(err, "Invalid link rule "+r.Name, errs.SetInput())
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// relocate makes the report paths relative to the working directory instead of the documentation root
func relocate(report *doclinks.Report, dir string) {
	for i := range report.Files {
		f := &report.Files[i]
		f.File = filepath.Join(dir, filepath.FromSlash(f.File))
		for j := range f.Violations {
			f.Violations[j].File = f.File
		}
	}
}

func (c *CheckLinks) printReport(report *doclinks.Report) {
	for _, f := range report.Files {
		c.out.Print(fmt.Sprintf("Checking [BOLD]%s[/RESET]", f.File))
		for _, v := range f.Violations {
			c.out.Print(fmt.Sprintf("[ERROR]%s:%d: %s %s[/RESET]", v.File, v.Line, v.URL, describe(v)))
		}
	}

	if !report.Failed {
		c.out.Print(fmt.Sprintf("[GREEN]All links are valid[/RESET] (%d files checked)", len(report.Files)))
		return
	}

	tbl := &output.Table{Headers: []string{"File", "Invalid links"}, RightAligned: []int{1}}
	for _, f := range report.Files {
		if len(f.Violations) == 0 {
			continue
		}
		tbl.Rows = append(tbl.Rows, []string{f.File, strconv.Itoa(len(f.Violations))})
	}
	c.out.Print(tbl)
}

func describe(v doclinks.Violation) string {
	if v.Kind == doclinks.Allow {
		return fmt.Sprintf("does not use an accepted %s prefix", v.Rule)
	}
	return fmt.Sprintf("uses a rejected %s prefix", v.Rule)
}

func failedFiles(report *doclinks.Report) int {
	n := 0
	for _, f := range report.Files {
		if len(f.Violations) > 0 {
			n++
		}
	}
	return n
}
