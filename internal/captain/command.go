package captain

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/PhaserEditor2D/assetprep/internal/errs"
	"github.com/PhaserEditor2D/assetprep/internal/logging"
)

// Executor runs a command once its flags have been parsed
type Executor func(cmd *Command, args []string) error

// Command wraps a cobra command with our flag handling and error rationalization
type Command struct {
	cobra *cobra.Command

	name  string
	flags []*Flag

	execute Executor
}

// NewCommand creates a command. The short description is the first sentence of description.
func NewCommand(name, description string, flags []*Flag, executor Executor) *Command {
	cmd := &Command{
		name:    name,
		execute: executor,
		flags:   flags,
	}

	short := description
	if idx := strings.IndexByte(description, '.'); idx > 0 {
		short = description[0:idx]
	}

	cmd.cobra = &cobra.Command{
		Use:   name,
		Short: short,
		Long:  description,

		// Silence errors and usage, we handle that ourselves
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	// commands without an executor only group children, cobra reports unknown children for them
	if executor != nil {
		cmd.cobra.RunE = cmd.runner
		cmd.cobra.Args = cobra.NoArgs
	}
	for _, flag := range flags {
		// cobra only runs the closest persistent pre-run, so only commands owning persistent flags install one
		if flag.Persist {
			cmd.cobra.PersistentPreRunE = cmd.persistRunner
			break
		}
	}

	if err := cmd.setFlags(flags); err != nil {
		panic(err)
	}

	return cmd
}

// Name returns the name the command is invoked with
func (c *Command) Name() string {
	return c.name
}

// Use returns the full invocation path of the command, eg. "assetprep render-plist"
func (c *Command) Use() string {
	return c.cobra.CommandPath()
}

// Execute parses args and runs the selected command
func (c *Command) Execute(args []string) error {
	c.cobra.SetArgs(args)
	err := c.cobra.Execute()
	c.cobra.SetArgs(nil)
	rationalizeError(&err)
	return err
}

func (c *Command) AddChildren(children ...*Command) {
	for _, child := range children {
		c.cobra.AddCommand(child.cobra)
	}
}

// Flag returns the flag definition with the given name, if this command defines it
func (c *Command) Flag(name string) *Flag {
	for _, flag := range c.flags {
		if flag.Name == name {
			return flag
		}
	}
	return nil
}

func (c *Command) persistRunner(cobraCmd *cobra.Command, args []string) error {
	return c.runFlags(cobraCmd.Flags(), true)
}

func (c *Command) runner(cobraCmd *cobra.Command, args []string) error {
	if err := c.runFlags(cobraCmd.Flags(), false); err != nil {
		return err
	}

	logging.Debug("Running %s", cobraCmd.CommandPath())
	if err := c.execute(c, args); err != nil {
		return err
	}
	return nil
}

// runFlags calls OnUse for every flag of this command that was set on the command line
func (c *Command) runFlags(set *pflag.FlagSet, persistOnly bool) error {
	var err error
	set.Visit(func(cobraFlag *pflag.Flag) {
		if err != nil {
			return
		}
		flag := c.Flag(cobraFlag.Name)
		if flag == nil || flag.OnUse == nil || flag.Persist != persistOnly {
			return
		}
		if e := flag.OnUse(); e != nil {
			err = errs.Wrap(e, "Could not apply flag --%s", flag.Name)
		}
	})
	return err
}
