package captain

import (
	"strings"

	"github.com/PhaserEditor2D/assetprep/internal/errs"
)

// rationalizeError turns cobra and pflag parse errors into user facing input errors
func rationalizeError(err *error) {
	if *err == nil || errs.IsUserFacing(*err) {
		return
	}

	msg := (*err).Error()
	switch {
	// pflag: fmt.Errorf("invalid argument %q for %q flag: %v", value, flagName, err)
	case strings.HasPrefix(msg, "invalid argument "):
		*err = errs.WrapUserFacing(*err, "Invalid flag value: "+strings.TrimPrefix(msg, "invalid argument "), errs.SetInput())

	// pflag: fmt.Errorf("unknown flag: --%s", name) and "unknown shorthand flag: ..."
	case strings.HasPrefix(msg, "unknown flag") || strings.HasPrefix(msg, "unknown shorthand flag"):
		*err = errs.WrapUserFacing(*err, strings.ToUpper(msg[:1])+msg[1:], errs.SetInput(),
			errs.SetTips("Run with --help to list the supported flags"))

	// cobra: fmt.Errorf("unknown command %q for %q%s", ...), also returned by cobra.NoArgs
	case strings.HasPrefix(msg, "unknown command "):
		*err = errs.WrapUserFacing(*err, "Unknown command "+strings.TrimPrefix(msg, "unknown command "), errs.SetInput(),
			errs.SetTips("Run with --help to list the available commands"))

	// pflag: fmt.Errorf("flag needs an argument: %s", ...)
	case strings.HasPrefix(msg, "flag needs an argument"):
		*err = errs.WrapUserFacing(*err, strings.ToUpper(msg[:1])+msg[1:], errs.SetInput())
	}
}
