package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	survey "gopkg.in/AlecAivazis/survey.v1"

	"github.com/PhaserEditor2D/assetprep/internal/errs"
	"github.com/PhaserEditor2D/assetprep/internal/logging"
)

// Prompter is the interface used to run our prompt from, useful for mocking in tests
type Prompter interface {
	Input(message, defaultResponse string, flags ...Flag) (string, error)
	InputAndValidate(message, defaultResponse string, validator ValidatorFunc) (string, error)
}

// ValidatorFunc validates a response, returning a non-nil error to reject it
type ValidatorFunc = func(val interface{}) error

// Flag represents flags for prompt functions to change their behavior on.
type Flag int

const (
	// NoValidation don't validate the input
	NoValidation Flag = iota
	// InputRequired requires that the user provide input
	InputRequired
)

// New returns a terminal prompter when interactive, and a prompter reading plain lines from in otherwise
func New(isInteractive bool, in io.Reader, out io.Writer) Prompter {
	if isInteractive {
		return &Prompt{}
	}
	return NewLineReader(in, out)
}

// Prompt is our main prompting struct, it drives survey on an interactive terminal
type Prompt struct{}

// Input prompts the user for input
func (p *Prompt) Input(message, defaultResponse string, flags ...Flag) (string, error) {
	validator, err := processFlags(flags)
	if err != nil {
		return "", err
	}
	return p.InputAndValidate(message, defaultResponse, validator)
}

// InputAndValidate prompts an input field and allows you to specfiy a custom validation function
func (p *Prompt) InputAndValidate(message, defaultResponse string, validator ValidatorFunc) (string, error) {
	var response string
	err := survey.AskOne(&survey.Input{
		Message: message,
		Default: defaultResponse,
	}, &response, validator)
	if err != nil {
		return "", errs.Wrap(err, "Prompt failed")
	}
	return strings.TrimSpace(response), nil
}

// LineReader prompts by writing the message and reading a single line, for use when stdin is not a terminal.
// There is nobody to re-ask, so a rejected response is returned as an error.
type LineReader struct {
	in  *bufio.Reader
	out io.Writer
}

func NewLineReader(in io.Reader, out io.Writer) *LineReader {
	return &LineReader{bufio.NewReader(in), out}
}

func (l *LineReader) Input(message, defaultResponse string, flags ...Flag) (string, error) {
	validator, err := processFlags(flags)
	if err != nil {
		return "", err
	}
	return l.InputAndValidate(message, defaultResponse, validator)
}

func (l *LineReader) InputAndValidate(message, defaultResponse string, validator ValidatorFunc) (string, error) {
	fmt.Fprint(l.out, message)

	line, err := l.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		if err == io.EOF && defaultResponse != "" {
			line = ""
		} else {
			return "", errs.Wrap(err, "Could not read response")
		}
	}

	response := strings.TrimSpace(line)
	if response == "" {
		response = defaultResponse
	}
	logging.Debug("Read response %q for prompt %q", response, message)

	if validator != nil {
		if err := validator(response); err != nil {
			return "", errs.WrapUserFacing(err, err.Error(), errs.SetInput())
		}
	}
	return response, nil
}

func processFlags(flags []Flag) (ValidatorFunc, error) {
	var validators []ValidatorFunc
	for _, flag := range flags {
		switch flag {
		case InputRequired:
			validators = append(validators, ValidateRequired)
		case NoValidation:
			validators = append(validators, NoValidate)
		default:
			return nil, errs.New("Unknown Prompt flag: %d", flag)
		}
	}
	return func(val interface{}) error {
		for _, v := range validators {
			if err := v(val); err != nil {
				return err
			}
		}
		return nil
	}, nil
}
