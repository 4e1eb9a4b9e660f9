package hashid_test

import (
	"testing"

	"github.com/zoobzio/hashid"
	"github.com/zoobzio/hashid/json"
	"github.com/zoobzio/hashid/yaml"
)

type CacheTestUser struct {
	ID   uint64 `json:"id" yaml:"id" hashid:""`
	Name string `json:"name" yaml:"name"`
}

func TestUse_Caching(t *testing.T) {
	hashid.Reset()

	s1, err := hashid.Use[CacheTestUser](json.New())
	if err != nil {
		t.Fatalf("Use() error: %v", err)
	}

	s2, err := hashid.Use[CacheTestUser](json.New())
	if err != nil {
		t.Fatalf("Use() error: %v", err)
	}

	if s1 != s2 {
		t.Error("Use() should return cached processor")
	}
}

func TestUse_DifferentCodecs(t *testing.T) {
	hashid.Reset()

	s1, _ := hashid.Use[CacheTestUser](json.New())
	s2, _ := hashid.Use[CacheTestUser](yaml.New())

	if s1 == s2 {
		t.Error("different content types should get distinct processors")
	}
	if s2.ContentType() != "application/yaml" {
		t.Errorf("ContentType() = %q", s2.ContentType())
	}
}

type UncachedBad struct {
	ID int `hashid:""`
}

func TestUse_ErrorNotCached(t *testing.T) {
	hashid.Reset()

	if _, err := hashid.Use[UncachedBad](json.New()); err == nil {
		t.Fatal("Use() should fail for a signed id field")
	}
	if _, err := hashid.Use[UncachedBad](json.New()); err == nil {
		t.Error("second Use() should fail again")
	}
}

func TestReset(t *testing.T) {
	s1, _ := hashid.Use[CacheTestUser](json.New())

	hashid.Reset()

	s2, _ := hashid.Use[CacheTestUser](json.New())

	if s1 == s2 {
		t.Error("Reset() should clear cache, new processor expected")
	}
}
