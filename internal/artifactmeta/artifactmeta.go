// Package artifactmeta rewrites the size and checksum properties of an artifact in a repository descriptor
// (artifacts.xml) so they describe a rebuilt binary.
package artifactmeta

import (
	"bytes"
	"encoding/xml"
	"io"

	"github.com/spf13/cast"

	"github.com/PhaserEditor2D/assetprep/internal/errs"
	"github.com/PhaserEditor2D/assetprep/internal/hash"
)

const (
	artifactElement = "artifact"
	propertyElement = "property"
	idAttr          = "id"
	nameAttr        = "name"
	valueAttr       = "value"
)

// PropertyNames lists the patched properties in the order they are usually found in a descriptor
var PropertyNames = []string{
	"download.size",
	"artifact.size",
	"download.md5",
	"download.checksum.md5",
	"download.checksum.sha-256",
}

// Value returns the new value of the named property, ok is false for properties that are not patched
func Value(name string, d hash.Digests) (value string, ok bool) {
	switch name {
	case "download.size", "artifact.size":
		return cast.ToString(d.Size), true
	case "download.md5", "download.checksum.md5":
		return d.MD5, true
	case "download.checksum.sha-256":
		return d.SHA256, true
	}
	return "", false
}

// Change is a single property update
type Change struct {
	Name string `json:"name"`
	Old  string `json:"old"`
	New  string `json:"new"`
}

// Result summarizes what Apply did
type Result struct {
	MatchedArtifacts int      `json:"matchedArtifacts"`
	Changes          []Change `json:"changes"`
}

type edit struct {
	start, end int
	text       []byte
}

type frame struct {
	artifact bool
	matched  bool
}

// owner reports whether the innermost artifact enclosing the current element is a match
func owner(stack []frame) bool {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].artifact {
			return stack[i].matched
		}
	}
	return false
}

// Apply returns doc with the properties of every artifact whose id is artifactID set to the given digests.
// Properties may sit at any depth below a matching artifact and belong to the innermost artifact enclosing them. Only the value attributes of patched properties change,
// every other byte of doc is kept, so a document without a match is returned unchanged.
func Apply(doc []byte, artifactID string, d hash.Digests) ([]byte, *Result, error) {
	dec := xml.NewDecoder(bytes.NewReader(doc))
	result := &Result{}
	var edits []edit
	var stack []frame
	rooted := false

	for {
		start := int(dec.InputOffset())
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errs.Wrap(err, "Malformed artifact descriptor")
		}
		end := int(dec.InputOffset())

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) == 0 {
				if rooted {
					return nil, nil, errs.New("Malformed artifact descriptor: element %s after the root element", t.Name.Local)
				}
				rooted = true
			}
			f := frame{artifact: t.Name.Local == artifactElement}
			if f.artifact && attr(t, idAttr) == artifactID {
				f.matched = true
				result.MatchedArtifacts++
			}
			stack = append(stack, f)

			if t.Name.Local != propertyElement || !owner(stack) {
				continue
			}
			name := attr(t, nameAttr)
			value, ok := Value(name, d)
			if !ok {
				continue
			}
			e, err := valueEdit(doc[start:end], value)
			if err != nil {
				return nil, nil, errs.Wrap(err, "Could not patch property %s", name)
			}
			e.start += start
			e.end += start
			edits = append(edits, e)
			result.Changes = append(result.Changes, Change{Name: name, Old: attr(t, valueAttr), New: value})

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, nil, errs.New("Unbalanced element %s in artifact descriptor", t.Name.Local)
			}
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 && len(bytes.TrimSpace(t)) > 0 {
				return nil, nil, errs.New("Malformed artifact descriptor: text outside the root element")
			}
		}
	}

	if !rooted {
		return nil, nil, errs.New("Malformed artifact descriptor: no root element")
	}

	if len(edits) == 0 {
		return doc, result, nil
	}

	var out bytes.Buffer
	out.Grow(len(doc))
	pos := 0
	for _, e := range edits {
		out.Write(doc[pos:e.start])
		out.Write(e.text)
		pos = e.end
	}
	out.Write(doc[pos:])

	return out.Bytes(), result, nil
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Space == "" && a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// valueEdit computes the edit that sets the value attribute of the raw start tag, relative to the tag. The tag has
// already been accepted by the decoder, so the scan only needs to find attribute boundaries.
func valueEdit(tag []byte, value string) (edit, error) {
	attrs, closeAt, err := scanAttrs(tag)
	if err != nil {
		return edit{}, err
	}

	quote := byte('"')
	if len(attrs) > 0 {
		quote = attrs[0].quote
	}

	for _, a := range attrs {
		if a.name == valueAttr {
			return edit{start: a.valueStart, end: a.valueEnd, text: escapeAttr(value, a.quote)}, nil
		}
	}

	// no value attribute yet: add one after the last attribute
	at := closeAt
	if len(attrs) > 0 {
		at = attrs[len(attrs)-1].valueEnd + 1
	}
	text := []byte(" " + valueAttr + "=" + string(quote))
	text = append(text, escapeAttr(value, quote)...)
	text = append(text, quote)
	return edit{start: at, end: at, text: text}, nil
}

type rawAttr struct {
	name                 string
	valueStart, valueEnd int
	quote                byte
}

// scanAttrs lists the attributes of a raw start tag and returns the offset of its closing "/>" or ">"
func scanAttrs(tag []byte) ([]rawAttr, int, error) {
	i := 1 // skip '<'
	for i < len(tag) && !isSpace(tag[i]) && tag[i] != '/' && tag[i] != '>' {
		i++
	}

	var attrs []rawAttr
	for {
		for i < len(tag) && isSpace(tag[i]) {
			i++
		}
		if i >= len(tag) {
			return nil, 0, errs.New("Unterminated tag %q", tag)
		}
		if tag[i] == '/' || tag[i] == '>' {
			return attrs, i, nil
		}

		nameStart := i
		for i < len(tag) && tag[i] != '=' && !isSpace(tag[i]) {
			i++
		}
		name := string(tag[nameStart:i])
		for i < len(tag) && (isSpace(tag[i]) || tag[i] == '=') {
			i++
		}
		if i >= len(tag) || (tag[i] != '"' && tag[i] != '\'') {
			return nil, 0, errs.New("Unquoted attribute %s in %q", name, tag)
		}
		quote := tag[i]
		i++
		valueStart := i
		for i < len(tag) && tag[i] != quote {
			i++
		}
		if i >= len(tag) {
			return nil, 0, errs.New("Unterminated attribute %s in %q", name, tag)
		}
		attrs = append(attrs, rawAttr{name: name, valueStart: valueStart, valueEnd: i, quote: quote})
		i++
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func escapeAttr(s string, quote byte) []byte {
	var b bytes.Buffer
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '&':
			b.WriteString("&amp;")
		case c == '<':
			b.WriteString("&lt;")
		case c == quote && c == '"':
			b.WriteString("&quot;")
		case c == quote && c == '\'':
			b.WriteString("&apos;")
		default:
			b.WriteByte(c)
		}
	}
	return b.Bytes()
}
