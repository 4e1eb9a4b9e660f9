package hashid

// Codec provides content-type aware marshaling.
// The json, yaml, xml, msgpack and bson subpackages provide implementations.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}
