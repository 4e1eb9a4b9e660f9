// Package json provides a JSON codec implementation.
package json

import (
	"bytes"
	"encoding/json"

	"github.com/zoobzio/hashid"
)

// jsonCodec implements hashid.Codec for JSON.
type jsonCodec struct {
	strict bool
}

// New returns a JSON codec.
func New() hashid.Codec {
	return &jsonCodec{}
}

// NewStrict returns a JSON codec that rejects unknown object keys on
// unmarshal, so misspelled id fields fail instead of decoding as absent.
func NewStrict() hashid.Codec {
	return &jsonCodec{strict: true}
}

// ContentType returns the MIME type for JSON.
func (c *jsonCodec) ContentType() string {
	return "application/json"
}

// Marshal encodes v as JSON.
func (c *jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal decodes JSON data into v.
func (c *jsonCodec) Unmarshal(data []byte, v any) error {
	if !c.strict {
		return json.Unmarshal(data, v)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
