package output

import (
	"io"

	"github.com/PhaserEditor2D/assetprep/internal/errs"
	"github.com/PhaserEditor2D/assetprep/internal/logging"
)

type Format string

// FormatName constants are tokens representing supported output formats.
const (
	PlainFormatName Format = "plain" // human readable
	JSONFormatName  Format = "json"  // plain json
)

// Outputer is the initialized formatter
type Outputer interface {
	Print(value interface{})
	Error(value interface{})
	Notice(value interface{})
	Type() Format
	Config() *Config
}

// New constructs a new Outputer according to the given format name
func New(formatName string, config *Config) (Outputer, error) {
	logging.Debug("Requested outputer for %s", formatName)

	switch Format(formatName) {
	case "", PlainFormatName:
		plain := NewPlain(config)
		return &Mediator{&plain, PlainFormatName}, nil
	case JSONFormatName:
		json := NewJSON(config)
		return &Mediator{&json, JSONFormatName}, nil
	}

	return nil, errs.NewUserFacing(
		"Unknown output format: "+formatName,
		errs.SetInput(),
		errs.SetTips("Supported formats are 'plain' and 'json'"),
	)
}

// Config is the thing we pass to Outputer constructors
type Config struct {
	OutWriter   io.Writer
	ErrWriter   io.Writer
	Colored     bool
	Interactive bool
}
