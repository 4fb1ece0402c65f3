// Package bundleformat encodes prepared calculation bundles and engine results as JSON or
// MessagePack.
package bundleformat

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Format is an encoding supported by the Formatter
type Format string

const (
	JSON    Format = "json"
	MsgPack Format = "msgpack"
)

// ParseFormat validates a format name. The empty name selects JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", JSON:
		return JSON, nil
	case MsgPack, "mpk":
		return MsgPack, nil
	}
	return "", fmt.Errorf("unknown bundle format: %q", s)
}

// FormatForPath picks the format from a file extension, defaulting to JSON
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".msgpack", ".mpk":
		return MsgPack
	}
	return JSON
}

// ContentType returns the media type of the format
func (f Format) ContentType() string {
	if f == MsgPack {
		return "application/x-msgpack"
	}
	return "application/json"
}

// Formatter handles encoding and decoding in JSON or MessagePack format
type Formatter struct {
	format Format
	indent bool
}

// NewFormatter creates a formatter for the given format. JSON output is indented when
// indent is set.
func NewFormatter(format Format, indent bool) *Formatter {
	return &Formatter{format: format, indent: indent}
}

// Format returns the encoding of the formatter
func (f *Formatter) Format() Format {
	return f.format
}

// Encode writes data to w
func (f *Formatter) Encode(w io.Writer, data any) error {
	if f.format == MsgPack {
		return f.writeMsgPack(w, data)
	}
	return f.writeJSON(w, data)
}

// Decode reads a value encoded by Encode
func (f *Formatter) Decode(r io.Reader, v any) error {
	if f.format == MsgPack {
		return msgpack.NewDecoder(r).Decode(v)
	}
	return json.NewDecoder(r).Decode(v)
}

func (f *Formatter) writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

func (f *Formatter) writeMsgPack(w io.Writer, data any) error {
	encoder := msgpack.NewEncoder(w)
	encoder.UseCompactFloats(true)
	return encoder.Encode(data)
}
