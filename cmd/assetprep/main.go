package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/PhaserEditor2D/assetprep/cmd/assetprep/internal/cmdtree"
	"github.com/PhaserEditor2D/assetprep/internal/config"
	"github.com/PhaserEditor2D/assetprep/internal/errs"
	"github.com/PhaserEditor2D/assetprep/internal/logging"
	"github.com/PhaserEditor2D/assetprep/internal/output"
	"github.com/PhaserEditor2D/assetprep/internal/primer"
	"github.com/PhaserEditor2D/assetprep/internal/prompt"
)

// logLevelEnvVarName names the minimal log level, eg. WARNING, when set
const logLevelEnvVarName = "ASSETPREP_LOG_LEVEL"

func main() {
	var exitCode int
	defer func() {
		if handlePanics(recover(), debug.Stack()) {
			exitCode = 1
		}
		logging.Close()
		os.Exit(exitCode)
	}()

	isInteractive := term.IsTerminal(int(os.Stdin.Fd()))
	exitCode = run(os.Args, isInteractive, os.Stdin, os.Stdout, os.Stderr)
}

func run(args []string, isInteractive bool, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := parseGlobalFlags(args[1:])
	logging.CurrentHandler().SetVerbose(flags.Verbose)
	if lvl := os.Getenv(logLevelEnvVarName); lvl != "" {
		if err := logging.SetMinimalLevelByName(lvl); err != nil {
			logging.Warning("Ignoring %s: %v", logLevelEnvVarName, err)
		}
	}
	logging.Debug("Args: %v", args)

	out, err := initOutput(flags, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", errs.JoinMessage(err))
		return 1
	}

	cfg, err := loadConfig(flags.Config)
	if err == nil {
		prompter := prompt.New(isInteractive && !flags.NonInteractive, stdin, stderr)
		cmds := cmdtree.New(primer.New(out, prompter, cfg))
		err = cmds.Execute(args[1:])
	}

	exitCode, err := unwrapError(err)
	if err != nil {
		reportError(out, err)
	}
	return exitCode
}

// globalFlags are needed before the command tree exists, so they are parsed on their own first
type globalFlags struct {
	Config         string
	Output         string
	Verbose        bool
	NonInteractive bool
	NoColor        bool
}

func parseGlobalFlags(args []string) globalFlags {
	flags := globalFlags{}
	set := pflag.NewFlagSet("global", pflag.ContinueOnError)
	set.ParseErrorsWhitelist.UnknownFlags = true
	set.SetOutput(io.Discard)
	set.Usage = func() {}

	set.StringVarP(&flags.Config, "config", "c", "", "")
	set.StringVarP(&flags.Output, "output", "o", "", "")
	set.BoolVarP(&flags.Verbose, "verbose", "v", false, "")
	set.BoolVarP(&flags.NonInteractive, "non-interactive", "n", false, "")
	set.BoolVar(&flags.NoColor, "no-color", false, "")

	// The command tree reports invalid flags
	_ = set.Parse(args)
	return flags
}

func initOutput(flags globalFlags, stdout, stderr io.Writer) (output.Outputer, error) {
	return output.New(flags.Output, &output.Config{
		OutWriter:   stdout,
		ErrWriter:   stderr,
		Colored:     !flags.NoColor && os.Getenv("NO_COLOR") == "" && isTerminal(stdout),
		Interactive: !flags.NonInteractive,
	})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load(config.DefaultFileName, false)
	}
	cfg, err := config.Load(path, true)
	if err != nil {
		return nil, errs.WrapUserFacing(err, "Could not load configuration file "+path, errs.SetInput())
	}
	return cfg, nil
}
