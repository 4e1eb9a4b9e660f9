package hashid

import (
	"context"
	"reflect"
	"time"
)

// Processor marshals records of type T with every marked field rewritten to
// its hash string form, and unmarshals them back.
//
// The field schema is derived from struct tags once, when the processor is
// built; type and tag errors surface from NewProcessor, never per record.
// Processors are immutable and safe for concurrent use. Each call snapshots
// the process-wide configuration once, so all fields of a record are
// transformed under the same configuration.
type Processor[T any] struct {
	codec Codec
	plan  *structPlan
}

// NewProcessor creates a Processor for type T using codec for the wire
// format.
//
//	type Order struct {
//	    ID       uint64   `json:"id" hashid:""`
//	    Customer *uint32  `json:"customer" hashid:""`
//	    Items    []uint64 `json:"items" hashid:""`
//	    Note     string   `json:"note"`
//	}
//
//	proc, err := hashid.NewProcessor[Order](json.New())
func NewProcessor[T any](codec Codec) (*Processor[T], error) {
	plan, err := getOrBuildPlan[T]()
	if err != nil {
		return nil, err
	}

	p := &Processor[T]{
		codec: codec,
		plan:  plan,
	}

	emitProcessorCreated(context.Background(), codec.ContentType(), plan.typeName, len(plan.descriptors))
	return p, nil
}

// Schema returns the descriptors of every marked field, depth first in
// declaration order.
func (p *Processor[T]) Schema() []FieldDescriptor {
	out := make([]FieldDescriptor, len(p.plan.descriptors))
	copy(out, p.plan.descriptors)
	return out
}

// ContentType returns the content type of the underlying codec.
func (p *Processor[T]) ContentType() string {
	return p.codec.ContentType()
}

// Encode returns the wire form of obj: a pointer to a struct mirroring T
// with every marked field replaced by its hash string form. Use it to hand
// the record to a serializer other than the processor's codec.
// obj is not modified.
func (p *Processor[T]) Encode(_ context.Context, obj *T) (any, error) {
	if obj == nil {
		return nil, nil
	}
	return p.encode(Active(), obj)
}

func (p *Processor[T]) encode(nc *NumericCodec, obj *T) (any, error) {
	if e, ok := any(obj).(Encodable); ok {
		return e.EncodeIDs(nc)
	}

	m := reflect.New(p.plan.mirror)
	if err := p.plan.encodeStruct(nc, reflect.ValueOf(obj).Elem(), m.Elem()); err != nil {
		return nil, err
	}
	return m.Interface(), nil
}

// Marshal encodes the marked fields of obj and marshals the result.
// Use for data leaving the application (API responses, events).
func (p *Processor[T]) Marshal(ctx context.Context, obj *T) ([]byte, error) {
	start := time.Now()
	emitMarshalStart(ctx, p.codec.ContentType(), p.plan.typeName)

	var retErr error
	var retData []byte
	defer func() {
		emitMarshalComplete(ctx, p.codec.ContentType(), p.plan.typeName,
			len(retData), time.Since(start), len(p.plan.descriptors), retErr)
	}()

	if obj == nil {
		retData, retErr = p.codec.Marshal(nil)
		if retErr != nil {
			retErr = newCodecError(ErrMarshal, retErr)
		}
		return retData, retErr
	}

	wire, err := p.encode(Active(), obj)
	if err != nil {
		retErr = err
		return nil, retErr
	}

	retData, err = p.codec.Marshal(wire)
	if err != nil {
		retErr = newCodecError(ErrMarshal, err)
		return nil, retErr
	}
	return retData, nil
}

// Unmarshal unmarshals data and decodes every marked field.
// Use for data entering the application (API requests, events).
//
// If any field fails to decode, no record is returned.
func (p *Processor[T]) Unmarshal(ctx context.Context, data []byte) (*T, error) {
	start := time.Now()
	emitUnmarshalStart(ctx, p.codec.ContentType(), p.plan.typeName, len(data))

	var retErr error
	defer func() {
		emitUnmarshalComplete(ctx, p.codec.ContentType(), p.plan.typeName,
			time.Since(start), len(p.plan.descriptors), retErr)
	}()

	nc := Active()

	// Check for override interface
	var obj T
	if d, ok := any(&obj).(Decodable); ok {
		if err := d.DecodeIDs(p.codec, data, nc); err != nil {
			retErr = err
			return nil, retErr
		}
		return &obj, nil
	}

	m := reflect.New(p.plan.mirror)
	if err := p.codec.Unmarshal(data, m.Interface()); err != nil {
		retErr = newCodecError(ErrUnmarshal, err)
		return nil, retErr
	}

	if err := p.plan.decodeStruct(nc, m.Elem(), reflect.ValueOf(&obj).Elem()); err != nil {
		retErr = err
		return nil, retErr
	}
	return &obj, nil
}
