package output

import (
	"encoding/json"

	"github.com/PhaserEditor2D/assetprep/internal/logging"
)

// JSON is our JSON outputer, there's not much to it as it just marshals the value as json.
// Every value is written on its own line so a stream of values stays parseable line by line.
type JSON struct {
	cfg *Config
}

// NewJSON constructs a new JSON struct
func NewJSON(config *Config) JSON {
	return JSON{config}
}

// Type tells callers what type of outputer we are
func (f *JSON) Type() Format {
	return JSONFormatName
}

// Print will marshal and print the given value to the output writer
func (f *JSON) Print(value interface{}) {
	f.write(f.cfg.OutWriter, value)
}

// Error will marshal and print the given value to the error writer
func (f *JSON) Error(value interface{}) {
	if err, ok := value.(error); ok {
		value = err.Error()
	}
	f.write(f.cfg.ErrWriter, struct {
		Error interface{} `json:"error"`
	}{StripAny(value)})
}

// Notice is ignored by JSON, as they are considered as non-critical output and there's currently no reliable way to
// reliably know whether JSON consumers will handle it
func (f *JSON) Notice(value interface{}) {}

// Config returns the Config struct for the active instance
func (f *JSON) Config() *Config {
	return f.cfg
}

func (f *JSON) write(writer interface{ Write([]byte) (int, error) }, value interface{}) {
	b, err := json.Marshal(StripAny(value))
	if err != nil {
		logging.Error("Could not marshal value, error: %v", err)
		b = []byte(`{"error":"could not marshal output"}`)
	}
	writer.Write(append(b, '\n'))
}

// StripAny removes color tags from string values, other values are returned as-is
func StripAny(value interface{}) interface{} {
	if s, ok := value.(string); ok {
		return StripColorCodes(s)
	}
	return value
}
