package cmdtree

import (
	"github.com/PhaserEditor2D/assetprep/internal/captain"
	"github.com/PhaserEditor2D/assetprep/internal/config"
	"github.com/PhaserEditor2D/assetprep/internal/primer"
	"github.com/PhaserEditor2D/assetprep/internal/runners/plistgen"
)

func newRenderPlistCommand(prime *primer.Values) *captain.Command {
	params := plistgen.Params{}
	overrides := config.Plist{}
	skipValidation := false

	return captain.NewCommand(
		"render-plist",
		"Render the versioned Info.plist files from their templates. Prompts for the version unless --version is given.",
		[]*captain.Flag{
			{
				Name:        "version",
				Description: "Product version to render, eg. 1.0.0",
				Value:       &params.Version,
			},
			{
				Name:        "template-dir",
				Description: "Directory holding the <name>-Info.plist-template files",
				Value:       &overrides.TemplateDir,
			},
			{
				Name:        "output-dir",
				Description: "Directory the rendered v<version>-<name>-Info.plist files are written to",
				Value:       &overrides.OutputDir,
			},
			{
				Name:        "no-validate",
				Description: "Do not check that the rendered files are valid property lists",
				Value:       &skipValidation,
				OnUse: func() error {
					prime.Config().Plist.SkipValidation = skipValidation
					return nil
				},
			},
		},
		func(ccmd *captain.Command, _ []string) error {
			if err := applyOverrides(prime, config.Config{Plist: overrides}); err != nil {
				return err
			}
			return plistgen.New(prime).Run(&params)
		},
	)
}
