package hashid_test

import (
	"context"
	"errors"
	"testing"

	"github.com/zoobzio/hashid"
	"github.com/zoobzio/hashid/json"
)

type Invoice struct {
	ID         uint64   `json:"id" hashid:""`
	CustomerID *uint32  `json:"customer_id" hashid:""`
	LineIDs    []uint64 `json:"line_ids" hashid:""`
	Total      uint64   `json:"total"`
}

func TestEndToEnd(t *testing.T) {
	if err := hashid.NewOptions().WithSalt("my-secret-salt").WithMinLength(10).Build(); err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	proc, err := hashid.NewProcessor[Invoice](json.New())
	if err != nil {
		t.Fatalf("NewProcessor() error: %v", err)
	}

	customer := uint32(42)
	in := &Invoice{ID: 158674, CustomerID: &customer, LineIDs: []uint64{1, 2, 3}, Total: 1999}

	data, err := proc.Marshal(context.Background(), in)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	out, err := proc.Unmarshal(context.Background(), data)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if out.ID != 158674 || *out.CustomerID != 42 || len(out.LineIDs) != 3 || out.Total != 1999 {
		t.Errorf("round trip = %+v", out)
	}

	id, err := hashid.EncodeScalar(uint64(158674))
	if err != nil {
		t.Fatalf("EncodeScalar() error: %v", err)
	}
	if len(id) < 10 {
		t.Errorf("len(%q) = %d, want >= 10", id, len(id))
	}
}

func TestSentinelErrors(t *testing.T) {
	errs := []error{
		hashid.ErrInvalidConfig,
		hashid.ErrDuplicateCharacter,
		hashid.ErrAlphabetTooShort,
		hashid.ErrAlphabetSpace,
		hashid.ErrMinLength,
		hashid.ErrWeakSecret,
		hashid.ErrMalformed,
		hashid.ErrOutOfRange,
		hashid.ErrUnsupportedType,
		hashid.ErrInvalidTag,
		hashid.ErrEncode,
		hashid.ErrDecode,
		hashid.ErrUnmarshal,
		hashid.ErrMarshal,
	}

	for i, a := range errs {
		for j, b := range errs {
			if i != j && errors.Is(a, b) {
				t.Errorf("%v should not match %v", a, b)
			}
		}
	}
}
