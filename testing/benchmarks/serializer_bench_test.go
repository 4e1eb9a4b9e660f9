package benchmarks

import (
	"context"
	"testing"

	"github.com/zoobzio/hashid"
	"github.com/zoobzio/hashid/json"
	"github.com/zoobzio/hashid/msgpack"
	hashidtest "github.com/zoobzio/hashid/testing"
	"lukechampine.com/uint128"
)

func BenchmarkProcessor_Marshal_NoMarkedFields(b *testing.B) {
	hashidtest.Configure(b)
	proc, _ := hashid.NewProcessor[hashidtest.SimpleUser](json.New())
	user := &hashidtest.SimpleUser{ID: 123, Name: "Alice"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = proc.Marshal(context.Background(), user)
	}
}

func BenchmarkProcessor_Marshal_JSON(b *testing.B) {
	hashidtest.Configure(b)
	proc, _ := hashid.NewProcessor[hashidtest.Customer](json.New())
	customer := hashidtest.NewCustomer()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = proc.Marshal(context.Background(), customer)
	}
}

func BenchmarkProcessor_Unmarshal_JSON(b *testing.B) {
	hashidtest.Configure(b)
	proc, _ := hashid.NewProcessor[hashidtest.Customer](json.New())
	data, _ := proc.Marshal(context.Background(), hashidtest.NewCustomer())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = proc.Unmarshal(context.Background(), data)
	}
}

func BenchmarkProcessor_Marshal_MessagePack(b *testing.B) {
	hashidtest.Configure(b)
	proc, _ := hashid.NewProcessor[hashidtest.Customer](msgpack.New())
	customer := hashidtest.NewCustomer()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = proc.Marshal(context.Background(), customer)
	}
}

func BenchmarkNumericCodec_Encode64(b *testing.B) {
	hashidtest.Configure(b)
	nc := hashid.Active()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = nc.Encode64(uint64(i))
	}
}

func BenchmarkNumericCodec_Decode64(b *testing.B) {
	hashidtest.Configure(b)
	nc := hashid.Active()
	s, _ := nc.Encode64(158674)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = nc.Decode64(s)
	}
}

func BenchmarkNumericCodec_Encode128(b *testing.B) {
	hashidtest.Configure(b)
	nc := hashid.Active()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = nc.Encode(uint128.Max)
	}
}

func BenchmarkGenerateSalt(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = hashid.GenerateSalt()
	}
}
