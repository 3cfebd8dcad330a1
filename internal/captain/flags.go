package captain

import (
	"github.com/spf13/pflag"

	"github.com/PhaserEditor2D/assetprep/internal/errs"
)

// FlagMarshaler is a flag value with its own parsing, see pflag.Value
type FlagMarshaler pflag.Value

// Flag describes a command line flag. Value must be a *string, *bool, *int or FlagMarshaler.
type Flag struct {
	Name        string
	Shorthand   string
	Description string
	// Persist makes the flag available to all child commands
	Persist bool
	// OnUse is called when the flag was given on the command line, before the command runs
	OnUse func() error

	Value interface{}
}

func (c *Command) setFlags(flags []*Flag) error {
	for _, flag := range flags {
		flagSetter := c.cobra.Flags
		if flag.Persist {
			flagSetter = c.cobra.PersistentFlags
		}

		switch v := flag.Value.(type) {
		case *string:
			flagSetter().StringVarP(v, flag.Name, flag.Shorthand, *v, flag.Description)
		case *bool:
			flagSetter().BoolVarP(v, flag.Name, flag.Shorthand, *v, flag.Description)
		case *int:
			flagSetter().IntVarP(v, flag.Name, flag.Shorthand, *v, flag.Description)
		case FlagMarshaler:
			flagSetter().VarP(v, flag.Name, flag.Shorthand, flag.Description)
		default:
			return errs.New("flag --%s has unsupported value type %T", flag.Name, flag.Value)
		}
	}
	return nil
}
