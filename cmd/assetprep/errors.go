package main

import (
	"fmt"
	"os"

	"github.com/PhaserEditor2D/assetprep/internal/errs"
	"github.com/PhaserEditor2D/assetprep/internal/logging"
	"github.com/PhaserEditor2D/assetprep/internal/output"
)

// unwrapError returns the exit code for err, and the error that still has to be shown to the user
func unwrapError(err error) (int, error) {
	if err == nil {
		return 0, nil
	}

	// Log error if this isn't a user input error
	if !errs.IsInputError(err) {
		logging.Debug("Returning error:\n%s\nCreated at:\n%s", errs.JoinMessage(err, "\n"), errs.StackString(err))
	}

	code := errs.UnwrapExitCode(err)

	if errs.IsSilent(err) {
		logging.Debug("Suppressing silent failure: %s", errs.JoinMessage(err))
		return code, nil
	}

	return code, err
}

func reportError(out output.Outputer, err error) {
	msg, ok := errs.UserMessage(err)
	if !ok {
		msg = errs.JoinMessage(err)
	}
	out.Error(msg)

	for _, tip := range errs.Tips(err) {
		out.Notice("Tip: " + tip)
	}
}

func handlePanics(r interface{}, stack []byte) bool {
	if r == nil {
		return false
	}

	logging.Debug("Panic: %v\n%s", r, string(stack))
	fmt.Fprintf(os.Stderr, "An unexpected error occurred: %v\n", r)
	if history := logging.History(); history != "" {
		fmt.Fprintf(os.Stderr, "Recent log output:\n%s\n", history)
	}
	return true
}
