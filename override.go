package hashid

// Override interfaces allow types to bypass reflection-based processing.
// When *T implements one of these interfaces, the Processor calls the
// interface method instead of walking the mirror plan.
//
// They exist for hand-written or generated code: a generator can emit
// these methods from the same struct tags the Processor reads.

// Encodable bypasses reflection on the marshal path.
type Encodable interface {
	// EncodeIDs returns the value to marshal, with identifiers already
	// converted using ids. The receiver must not be modified.
	EncodeIDs(ids *NumericCodec) (any, error)
}

// Decodable bypasses reflection on the unmarshal path.
type Decodable interface {
	// DecodeIDs populates the zero-valued receiver from data, unmarshaling
	// with codec and converting identifiers with ids.
	DecodeIDs(codec Codec, data []byte, ids *NumericCodec) error
}
