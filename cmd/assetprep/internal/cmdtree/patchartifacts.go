package cmdtree

import (
	"github.com/PhaserEditor2D/assetprep/internal/captain"
	"github.com/PhaserEditor2D/assetprep/internal/config"
	"github.com/PhaserEditor2D/assetprep/internal/primer"
	"github.com/PhaserEditor2D/assetprep/internal/runners/patchartifacts"
)

func newPatchArtifactsCommand(prime *primer.Values) *captain.Command {
	params := patchartifacts.Params{}
	overrides := config.Artifacts{}
	strict := false

	return captain.NewCommand(
		"patch-artifacts",
		"Update the size and checksum properties of an artifact in the repository descriptor from the rebuilt binary.",
		[]*captain.Flag{
			{
				Name:        "binary",
				Description: "Binary to hash, defaults to <binary_dir>/<artifact-id>_<product-version>",
				Value:       &overrides.Binary,
			},
			{
				Name:        "descriptor",
				Description: "Repository descriptor to patch, eg. target/repository/artifacts.xml",
				Value:       &overrides.Descriptor,
			},
			{
				Name:        "artifact-id",
				Description: "Id of the artifact to patch",
				Value:       &overrides.ArtifactID,
			},
			{
				Name:        "product-version",
				Description: "Product version used to locate the binary",
				Value:       &overrides.ProductVersion,
			},
			{
				Name:        "strict",
				Description: "Fail when the descriptor has no matching artifact",
				Value:       &strict,
				OnUse: func() error {
					prime.Config().Artifacts.Strict = strict
					return nil
				},
			},
			{
				Name:        "dry-run",
				Description: "Show the changes without writing the descriptor",
				Value:       &params.DryRun,
			},
		},
		func(ccmd *captain.Command, _ []string) error {
			if err := applyOverrides(prime, config.Config{Artifacts: overrides}); err != nil {
				return err
			}
			return patchartifacts.New(prime).Run(&params)
		},
	)
}
