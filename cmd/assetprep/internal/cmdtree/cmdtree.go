package cmdtree

import (
	"github.com/PhaserEditor2D/assetprep/internal/captain"
	"github.com/PhaserEditor2D/assetprep/internal/config"
	"github.com/PhaserEditor2D/assetprep/internal/logging"
	"github.com/PhaserEditor2D/assetprep/internal/primer"
)

// CmdTree manages a tree of captain.Command instances.
type CmdTree struct {
	cmd *captain.Command
}

// New prepares a CmdTree.
func New(prime *primer.Values) *CmdTree {
	globals := newGlobalOptions()

	rootCmd := newRootCommand(globals)
	rootCmd.AddChildren(
		newRenderPlistCommand(prime),
		newCheckLinksCommand(prime),
		newPatchArtifactsCommand(prime),
	)

	return &CmdTree{
		cmd: rootCmd,
	}
}

// globalOptions mirror the flags main parses ahead of building the tree, they are declared here so every command
// accepts them and they show up in the help.
type globalOptions struct {
	Config         string
	Output         string
	Verbose        bool
	NonInteractive bool
	NoColor        bool
}

func newGlobalOptions() *globalOptions {
	return &globalOptions{}
}

func newRootCommand(globals *globalOptions) *captain.Command {
	return captain.NewCommand(
		"assetprep",
		"Prepares release assets of the editor. Renders the macOS Info.plist files, checks documentation links and "+
			"patches artifact checksums.",
		[]*captain.Flag{
			{
				Name:        "config", // Name and Shorthand should be kept in sync with cmd/assetprep/main.go
				Shorthand:   "c",
				Description: "Configuration file, defaults to " + config.DefaultFileName + " when it exists",
				Persist:     true,
				Value:       &globals.Config,
			},
			{
				Name:        "output", // Name and Shorthand should be kept in sync with cmd/assetprep/main.go
				Shorthand:   "o",
				Description: "Output format: plain or json",
				Persist:     true,
				Value:       &globals.Output,
			},
			{
				Name:        "verbose",
				Shorthand:   "v",
				Description: "Show debug logging",
				Persist:     true,
				OnUse: func() error {
					logging.CurrentHandler().SetVerbose(true)
					return nil
				},
				Value: &globals.Verbose,
			},
			{
				Name:        "non-interactive", // Name and Shorthand should be kept in sync with cmd/assetprep/main.go
				Shorthand:   "n",
				Description: "Never prompt, read answers as plain lines from stdin",
				Persist:     true,
				Value:       &globals.NonInteractive,
			},
			{
				Name:        "no-color", // Name should be kept in sync with cmd/assetprep/main.go
				Description: "Disable colored output",
				Persist:     true,
				Value:       &globals.NoColor,
			},
		},
		nil,
	)
}

// Execute runs the CmdTree using the provided CLI arguments.
func (ct *CmdTree) Execute(args []string) error {
	return ct.cmd.Execute(args)
}

// Command returns the root command
func (ct *CmdTree) Command() *captain.Command {
	return ct.cmd
}

// applyOverrides merges the flags given to a command into the loaded configuration and checks the result
func applyOverrides(prime *primer.Values, overrides config.Config) error {
	cfg := prime.Config()
	if err := cfg.Merge(overrides); err != nil {
		return err
	}
	return cfg.Validate()
}
