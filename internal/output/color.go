package output

import (
	"io"
	"regexp"

	"github.com/fatih/color"
)

var colorRx = regexp.MustCompile(`\[(BOLD|UNDERLINE|RED|GREEN|YELLOW|BLUE|MAGENTA|CYAN|WHITE|NOTICE|ERROR|/RESET)\]`)

var colorsByTag = map[string][]color.Attribute{
	"BOLD":      {color.Bold},
	"UNDERLINE": {color.Underline},
	"RED":       {color.FgRed},
	"GREEN":     {color.FgGreen},
	"YELLOW":    {color.FgYellow},
	"BLUE":      {color.FgBlue},
	"MAGENTA":   {color.FgMagenta},
	"CYAN":      {color.FgCyan},
	"WHITE":     {color.FgWhite},
	"NOTICE":    {color.FgYellow, color.Bold},
	"ERROR":     {color.FgRed, color.Bold},
}

// writeColorized will replace `[COLORNAME]foo[/RESET]` with shell colors, or strip color tags if stripColors=true
func writeColorized(value string, writer io.Writer, stripColors bool) error {
	var current *color.Color
	pos := 0

	write := func(text string) error {
		if text == "" {
			return nil
		}
		if current == nil || stripColors {
			_, err := io.WriteString(writer, text)
			return err
		}
		_, err := current.Fprint(writer, text)
		return err
	}

	for _, match := range colorRx.FindAllStringSubmatchIndex(value, -1) {
		start, end, groupStart, groupEnd := match[0], match[1], match[2], match[3]
		if err := write(value[pos:start]); err != nil {
			return err
		}

		current = nil
		if attrs, ok := colorsByTag[value[groupStart:groupEnd]]; ok {
			current = color.New(attrs...)
			current.EnableColor()
		}
		pos = end
	}

	return write(value[pos:])
}

// StripColorCodes strips color codes from a string
func StripColorCodes(value string) string {
	return colorRx.ReplaceAllString(value, "")
}
