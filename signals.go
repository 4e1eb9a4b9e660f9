package hashid

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for hashid events.
var (
	SignalConfigBuilt       = capitan.NewSignal("hashid.config.built", "Hash configuration published")
	SignalProcessorCreated  = capitan.NewSignal("hashid.processor.created", "Processor instantiated")
	SignalMarshalStart      = capitan.NewSignal("hashid.marshal.start", "Marshal operation beginning")
	SignalMarshalComplete   = capitan.NewSignal("hashid.marshal.complete", "Marshal operation finished")
	SignalUnmarshalStart    = capitan.NewSignal("hashid.unmarshal.start", "Unmarshal operation beginning")
	SignalUnmarshalComplete = capitan.NewSignal("hashid.unmarshal.complete", "Unmarshal operation finished")
)

// Keys for typed event data.
var (
	KeyContentType  = capitan.NewStringKey("content_type")
	KeyTypeName     = capitan.NewStringKey("type_name")
	KeySize         = capitan.NewIntKey("size")
	KeyDuration     = capitan.NewDurationKey("duration")
	KeyError        = capitan.NewErrorKey("error")
	KeyFieldCount   = capitan.NewIntKey("field_count")
	KeyMinLength    = capitan.NewIntKey("min_length")
	KeyAlphabetSize = capitan.NewIntKey("alphabet_size")
)

// emitConfigBuilt emits an event when a configuration is published.
// The salt is never included.
func emitConfigBuilt(ctx context.Context, cfg HashConfig) {
	capitan.Emit(ctx, SignalConfigBuilt,
		KeyMinLength.Field(int(cfg.MinLength)),
		KeyAlphabetSize.Field(len([]rune(cfg.Alphabet))),
	)
}

// emitProcessorCreated emits an event when a processor is created.
func emitProcessorCreated(ctx context.Context, contentType, typeName string, count int) {
	capitan.Emit(ctx, SignalProcessorCreated,
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
		KeyFieldCount.Field(count),
	)
}

// emitMarshalStart emits an event when marshal begins.
func emitMarshalStart(ctx context.Context, contentType, typeName string) {
	capitan.Emit(ctx, SignalMarshalStart,
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
	)
}

// emitMarshalComplete emits an event when marshal finishes.
func emitMarshalComplete(ctx context.Context, contentType, typeName string, size int, duration time.Duration, count int, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
		KeyDuration.Field(duration),
		KeyFieldCount.Field(count),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalMarshalComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalMarshalComplete, fields...)
	}
}

// emitUnmarshalStart emits an event when unmarshal begins.
func emitUnmarshalStart(ctx context.Context, contentType, typeName string, size int) {
	capitan.Emit(ctx, SignalUnmarshalStart,
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
	)
}

// emitUnmarshalComplete emits an event when unmarshal finishes.
func emitUnmarshalComplete(ctx context.Context, contentType, typeName string, duration time.Duration, count int, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
		KeyDuration.Field(duration),
		KeyFieldCount.Field(count),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalUnmarshalComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalUnmarshalComplete, fields...)
	}
}
