package bson

import (
	"context"
	"errors"
	"testing"

	"github.com/zoobzio/hashid"
	"go.mongodb.org/mongo-driver/bson"
)

type Document struct {
	ID      uint64  `bson:"_id" hashid:""`
	OwnerID *uint32 `bson:"owner_id" hashid:""`
	Title   string  `bson:"title"`
}

func TestNew(t *testing.T) {
	c := New()
	if c == nil {
		t.Error("New() should return non-nil codec")
	}
}

func TestContentType(t *testing.T) {
	c := New()
	if c.ContentType() != "application/bson" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/bson")
	}
}

func TestMarshalUnmarshal(t *testing.T) {
	c := New()

	type TestStruct struct {
		Name  string `bson:"name"`
		Value int    `bson:"value"`
	}

	original := TestStruct{Name: "test", Value: 42}

	data, err := c.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var restored TestStruct
	if err := c.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	if restored != original {
		t.Errorf("round-trip failed: got %+v, want %+v", restored, original)
	}
}

func TestMarshalNil(t *testing.T) {
	if _, err := New().Marshal(nil); !errors.Is(err, ErrNilDocument) {
		t.Errorf("Marshal(nil) error = %v, want ErrNilDocument", err)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	var v struct{}
	if err := New().Unmarshal([]byte("invalid bson"), &v); err == nil {
		t.Error("Unmarshal(invalid) should return error")
	}
}

func TestProcessor_RoundTrip(t *testing.T) {
	if err := hashid.NewOptions().WithSalt("bson-codec-salt").Build(); err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	proc, err := hashid.NewProcessor[Document](New())
	if err != nil {
		t.Fatalf("NewProcessor() error: %v", err)
	}

	owner := uint32(12)
	in := &Document{ID: 158674, OwnerID: &owner, Title: "draft"}

	data, err := proc.Marshal(context.Background(), in)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var raw bson.M
	if err := bson.Unmarshal(data, &raw); err != nil {
		t.Fatalf("bson.Unmarshal() error: %v", err)
	}
	if _, ok := raw["_id"].(string); !ok {
		t.Errorf("_id = %#v, want a hash string", raw["_id"])
	}
	if _, ok := raw["XMLName"]; ok {
		t.Error("XMLName should not reach BSON output")
	}

	out, err := proc.Unmarshal(context.Background(), data)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if out.ID != in.ID || out.OwnerID == nil || *out.OwnerID != 12 || out.Title != "draft" {
		t.Errorf("round trip = %+v", out)
	}
}

func TestProcessor_NilOptional(t *testing.T) {
	proc, err := hashid.NewProcessor[Document](New())
	if err != nil {
		t.Fatalf("NewProcessor() error: %v", err)
	}

	data, err := proc.Marshal(context.Background(), &Document{ID: 1})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	out, err := proc.Unmarshal(context.Background(), data)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if out.OwnerID != nil {
		t.Errorf("OwnerID = %v, want nil", *out.OwnerID)
	}
}
