// Package codec encodes query files and search result streams.
//
// Query files are decoded with a Codec. Results are written row by row
// through a ResultWriter, either as CSV (the default) or as JSON lines,
// optionally framed with zstd or lz4.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	gojson "github.com/goccy/go-json"
)

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Default decodes query files and encodes reports.
var Default Codec = GoJSON{}

// JSON is the standard-library JSON codec.
type JSON struct {
	// Strict rejects object keys that match no field.
	Strict bool
}

func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (c JSON) Unmarshal(data []byte, v any) error {
	if !c.Strict {
		return json.Unmarshal(data, v)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func (JSON) Name() string { return "json" }

// GoJSON is a JSON codec backed by github.com/goccy/go-json.
type GoJSON struct {
	// Strict rejects object keys that match no field.
	Strict bool
}

func (GoJSON) Marshal(v any) ([]byte, error) { return gojson.Marshal(v) }

func (c GoJSON) Unmarshal(data []byte, v any) error {
	if !c.Strict {
		return gojson.Unmarshal(data, v)
	}
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func (GoJSON) Name() string { return "go-json" }

// MustMarshal is a helper for tests/benchmarks.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
