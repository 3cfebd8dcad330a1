package cmdtree

import (
	"github.com/PhaserEditor2D/assetprep/internal/captain"
	"github.com/PhaserEditor2D/assetprep/internal/config"
	"github.com/PhaserEditor2D/assetprep/internal/primer"
	"github.com/PhaserEditor2D/assetprep/internal/runners/linkcheck"
)

func newCheckLinksCommand(prime *primer.Values) *captain.Command {
	overrides := config.Links{}

	return captain.NewCommand(
		"check-links",
		"Check the documentation sources for links to the wrong documentation site or version. Exits with 1 when "+
			"any invalid link is found.",
		[]*captain.Flag{
			{
				Name:        "dir",
				Description: "Documentation root directory",
				Value:       &overrides.Dir,
			},
			{
				Name:        "pattern",
				Description: "Files to check, relative to the documentation root, eg. *.rst or **/*.rst",
				Value:       &overrides.Pattern,
			},
		},
		func(ccmd *captain.Command, _ []string) error {
			if err := applyOverrides(prime, config.Config{Links: overrides}); err != nil {
				return err
			}
			return linkcheck.New(prime).Run()
		},
	)
}
