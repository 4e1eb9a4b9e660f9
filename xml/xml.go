// Package xml provides an XML codec implementation.
//
// Records marshaled through a hashid.Processor get a root element named
// after the record type unless the type declares its own XMLName.
package xml

import (
	"encoding/xml"

	"github.com/zoobzio/hashid"
)

// xmlCodec implements hashid.Codec for XML.
type xmlCodec struct {
	header bool
}

// New returns an XML codec.
func New() hashid.Codec {
	return &xmlCodec{}
}

// NewWithHeader returns an XML codec that prefixes output with the
// standard XML declaration.
func NewWithHeader() hashid.Codec {
	return &xmlCodec{header: true}
}

// ContentType returns the MIME type for XML.
func (c *xmlCodec) ContentType() string {
	return "application/xml"
}

// Marshal encodes v as XML.
func (c *xmlCodec) Marshal(v any) ([]byte, error) {
	data, err := xml.Marshal(v)
	if err != nil || !c.header {
		return data, err
	}
	return append([]byte(xml.Header), data...), nil
}

// Unmarshal decodes XML data into v.
func (c *xmlCodec) Unmarshal(data []byte, v any) error {
	return xml.Unmarshal(data, v)
}
