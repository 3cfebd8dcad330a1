package output

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/PhaserEditor2D/assetprep/internal/logging"
)

// Plain is our plain outputer, it uses reflect to marshal the data.
// Semantic highlighting tags are supported as [NOTICE]foo[/RESET]
type Plain struct {
	cfg *Config
}

// NewPlain constructs a new Plain struct
func NewPlain(config *Config) Plain {
	return Plain{config}
}

// Type tells callers what type of outputer we are
func (f *Plain) Type() Format {
	return PlainFormatName
}

// Print will marshal and print the given value to the output writer
func (f *Plain) Print(value interface{}) {
	f.write(f.cfg.OutWriter, value)
}

// Error will marshal and print the given value to the error writer, it wraps it in the error format but otherwise the
// only thing that identifies it as an error is the channel it writes it to
func (f *Plain) Error(value interface{}) {
	v, err := sprint(value)
	if err != nil {
		v = fmt.Sprintf("%v", value)
	}
	f.writeNow(f.cfg.ErrWriter, fmt.Sprintf("[ERROR]%s[/RESET]\n", v))
}

// Notice will marshal and print the given value to the error writer, it wraps it in the notice format but otherwise the
// only thing that identifies it as an error is the channel it writes it to
func (f *Plain) Notice(value interface{}) {
	v, err := sprint(value)
	if err != nil {
		v = fmt.Sprintf("%v", value)
	}
	f.writeNow(f.cfg.ErrWriter, fmt.Sprintf("[NOTICE]%s[/RESET]\n", v))
}

// Config returns the Config struct for the active instance
func (f *Plain) Config() *Config {
	return f.cfg
}

func (f *Plain) write(writer io.Writer, value interface{}) {
	v, err := sprint(value)
	if err != nil {
		logging.Errorf("Could not sprint value: %v, error: %v", value, err)
		f.writeNow(f.cfg.ErrWriter, fmt.Sprintf("[ERROR]Could not format output: %s[/RESET]\n", err.Error()))
		return
	}
	f.writeNow(writer, v+"\n")
}

func (f *Plain) writeNow(writer io.Writer, value string) {
	if err := writeColorized(value, writer, !f.cfg.Colored); err != nil {
		logging.Errorf("Writing colored output failed: %v", err)
	}
}

func sprint(value interface{}) (string, error) {
	switch t := value.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case error:
		return t.Error(), nil
	case fmt.Stringer:
		return t.String(), nil
	}

	valueRfl := reflect.ValueOf(value)
	switch valueRfl.Kind() {
	case reflect.Ptr:
		if valueRfl.IsNil() {
			return "", nil
		}
		return sprint(valueRfl.Elem().Interface())
	case reflect.Struct:
		return sprintStruct(value)
	case reflect.Slice, reflect.Array:
		return sprintSlice(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fmt.Sprintf("%d", value), nil
	case reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%.2f", valueRfl.Float()), nil
	case reflect.Bool:
		return fmt.Sprintf("%t", valueRfl.Bool()), nil
	case reflect.String:
		return valueRfl.String(), nil
	}

	return "", fmt.Errorf("unknown type: %s", valueRfl.Type().String())
}

func sprintStruct(value interface{}) (string, error) {
	structMeta, err := parseStructMeta(value)
	if err != nil {
		return "", err
	}
	result := []string{}
	for i, value := range structMeta.values {
		stringValue, err := sprint(value)
		if err != nil {
			return "", err
		}

		result = append(result, fmt.Sprintf("%s: %s", structMeta.labels[i], stringValue))
	}
	return strings.Join(result, "\n"), nil
}

func sprintSlice(value interface{}) (string, error) {
	slice := parseSlice(value)
	if len(slice) == 0 {
		return "", nil
	}

	result := []string{}
	for _, v := range slice {
		stringValue, err := sprint(v)
		if err != nil {
			return "", err
		}

		result = append(result, stringValue)
	}

	return " - " + strings.Join(result, "\n - "), nil
}
