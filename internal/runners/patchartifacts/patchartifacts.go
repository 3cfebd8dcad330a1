package patchartifacts

import (
	"errors"
	"fmt"

	"github.com/PhaserEditor2D/assetprep/internal/artifactmeta"
	"github.com/PhaserEditor2D/assetprep/internal/config"
	"github.com/PhaserEditor2D/assetprep/internal/errs"
	"github.com/PhaserEditor2D/assetprep/internal/output"
	"github.com/PhaserEditor2D/assetprep/internal/primer"
)

type primeable interface {
	primer.Outputer
	primer.Configurer
}

type Params struct {
	DryRun bool
}

type PatchArtifacts struct {
	out output.Outputer
	cfg config.Artifacts
}

func New(p primeable) *PatchArtifacts {
	return &PatchArtifacts{
		out: p.Output(),
		cfg: p.Config().Artifacts,
	}
}

func (p *PatchArtifacts) Run(params *Params) error {
	patcher := &artifactmeta.Patcher{
		Binary:     p.cfg.BinaryPath(),
		Descriptor: p.cfg.Descriptor,
		ArtifactID: p.cfg.ArtifactID,
		Strict:     p.cfg.Strict,
		DryRun:     params.DryRun,
	}

	outcome, err := patcher.Patch()
	var noMatch *artifactmeta.NoMatchError
	if errors.As(err, &noMatch) {
		return errs.WrapUserFacing(err,
			fmt.Sprintf("No artifact '%s' found in %s", noMatch.ArtifactID, noMatch.Descriptor),
			errs.SetTips("Check --artifact-id, or run without --strict to only warn"),
		)
	}
	if err != nil {
		return errs.Wrap(err, "Could not patch artifact metadata")
	}

	if outcome.MatchedArtifacts == 0 {
		p.out.Notice(fmt.Sprintf("No artifact '%s' found in %s, nothing was changed", outcome.ArtifactID, outcome.Descriptor))
	}

	p.out.Print(&patchResult{outcome, params.DryRun})
	return nil
}

type patchResult struct {
	*artifactmeta.Outcome
	dryRun bool
}

func (r *patchResult) MarshalOutput(f output.Format) interface{} {
	if f == output.JSONFormatName {
		return r.Outcome
	}

	summary := fmt.Sprintf("[BOLD]%s[/RESET]: size %d, md5 %s, sha-256 %s",
		r.Binary, r.Digests.Size, r.Digests.MD5, r.Digests.SHA256)
	if r.MatchedArtifacts == 0 {
		return summary
	}

	tbl := &output.Table{Headers: []string{"Property", "Old value", "New value"}}
	for _, c := range r.Changes {
		tbl.Rows = append(tbl.Rows, []string{c.Name, c.Old, c.New})
	}

	var status string
	switch {
	case r.dryRun:
		status = "Dry run, " + r.Descriptor + " was not changed:\n" + r.Diff
	case r.Written:
		status = fmt.Sprintf("[GREEN]Updated %s[/RESET] (%d matching artifacts)", r.Descriptor, r.MatchedArtifacts)
	default:
		status = fmt.Sprintf("%s is already up to date", r.Descriptor)
	}

	return summary + "\n" + tbl.Render() + "\n" + status
}
