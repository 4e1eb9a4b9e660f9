// Package bson provides a BSON codec implementation.
package bson

import (
	"errors"

	"github.com/zoobzio/hashid"
	"go.mongodb.org/mongo-driver/bson"
)

// ErrNilDocument is returned when marshaling nil; BSON has no top-level null.
var ErrNilDocument = errors.New("bson: cannot marshal nil document")

// bsonCodec implements hashid.Codec for BSON.
type bsonCodec struct{}

// New returns a BSON codec.
func New() hashid.Codec {
	return &bsonCodec{}
}

// ContentType returns the MIME type for BSON.
func (c *bsonCodec) ContentType() string {
	return "application/bson"
}

// Marshal encodes v as a BSON document.
func (c *bsonCodec) Marshal(v any) ([]byte, error) {
	if v == nil {
		return nil, ErrNilDocument
	}
	return bson.Marshal(v)
}

// Unmarshal decodes a BSON document into v.
func (c *bsonCodec) Unmarshal(data []byte, v any) error {
	return bson.Unmarshal(data, v)
}
