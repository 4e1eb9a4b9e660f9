// Package testing provides test utilities for hashid.
package testing

import (
	"testing"

	"github.com/zoobzio/hashid"
)

// TestSalt is the salt Configure publishes.
const TestSalt = "hashid-test-salt-do-not-use-in-prod"

// TestMinLength is the minimum length Configure publishes.
const TestMinLength uint = 10

// Configure publishes a deterministic configuration for the duration of
// the test. The next test starts from whatever it configures itself.
func Configure(tb testing.TB) {
	tb.Helper()
	if err := hashid.NewOptions().WithSalt(TestSalt).WithMinLength(TestMinLength).Build(); err != nil {
		tb.Fatalf("hashid: build test configuration: %v", err)
	}
}

// MustEncode returns the hash string for v under the active configuration.
func MustEncode(tb testing.TB, v uint64) string {
	tb.Helper()
	s, err := hashid.Active().Encode64(v)
	if err != nil {
		tb.Fatalf("hashid: encode %d: %v", v, err)
	}
	return s
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// SimpleUser is a test type with no marked fields.
type SimpleUser struct {
	ID   uint64 `json:"id" yaml:"id" xml:"id" bson:"id"`
	Name string `json:"name" yaml:"name" xml:"name" bson:"name"`
}

// Address is nested inside Customer.
type Address struct {
	RegionID uint16 `json:"region_id" yaml:"region_id" xml:"region_id" bson:"region_id" hashid:""`
	City     string `json:"city" yaml:"city" xml:"city" bson:"city"`
}

// Customer is a test type with a marked field of every cardinality and a
// nested record.
type Customer struct {
	ID         uint64   `json:"id" yaml:"id" xml:"id" bson:"id" hashid:""`
	ReferrerID *uint32  `json:"referrer_id" yaml:"referrer_id" xml:"referrer_id" bson:"referrer_id" hashid:""`
	OrderIDs   []uint64 `json:"order_ids" yaml:"order_ids" xml:"order_id" bson:"order_ids" hashid:""`
	TagIDs     *[]uint8 `json:"tag_ids" yaml:"tag_ids" xml:"tag_id" bson:"tag_ids" hashid:""`
	Email      string   `json:"email" yaml:"email" xml:"email" bson:"email"`
	Address    Address  `json:"address" yaml:"address" xml:"address" bson:"address"`
	Billing    *Address `json:"billing" yaml:"billing" xml:"billing" bson:"billing"`
}

// NewCustomer returns a fully populated Customer.
func NewCustomer() *Customer {
	return &Customer{
		ID:         158674,
		ReferrerID: Ptr(uint32(42)),
		OrderIDs:   []uint64{1, 2, 3},
		TagIDs:     Ptr([]uint8{7, 255}),
		Email:      "alice@example.com",
		Address:    Address{RegionID: 12, City: "Lisbon"},
		Billing:    &Address{RegionID: 13, City: "Porto"},
	}
}
