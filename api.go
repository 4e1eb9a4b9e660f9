// Package hashid exposes numeric identifiers as short, reversible,
// obfuscated strings at serialization boundaries.
//
// Applications keep unsigned integer ids in their own structs. Fields marked
// with the hashid tag are rewritten to hash strings when a record is
// marshaled and decoded back when it is unmarshaled; the struct types
// themselves never change.
//
// # Configuration
//
// A single process-wide configuration (salt, minimum length, alphabet)
// drives every transform. Publish it once at startup:
//
//	err := hashid.NewOptions().
//	    WithSalt(secretSalt).
//	    WithMinLength(10).
//	    Build()
//
// Without a Build call a default configuration with a random salt is used,
// which makes hash strings meaningless across process restarts.
// GenerateSalt produces a suitable salt; DeriveSalt derives one from a
// master secret and a namespace.
//
// Build may be called again later; the last configuration wins and strings
// issued under earlier ones will generally stop decoding.
//
// # Tag Syntax
//
//	hashid:""      - transform this field
//	hashid:"true"  - same
//	hashid:"-"     - leave the field alone
//
// Supported field types, for any unsigned N (uint8, uint16, uint32, uint64,
// uint, uintptr, uint128.Uint128 and named types over them):
//
//	N       -> "hash"
//	*N      -> "hash" or null
//	[]N     -> ["hash", ...] (never null)
//	*[]N    -> ["hash", ...] or null
//
// Marking any other type fails NewProcessor with a *TypeError.
//
// # Basic Usage
//
//	type User struct {
//	    ID      uint64   `json:"id" hashid:""`
//	    TeamIDs []uint32 `json:"team_ids" hashid:""`
//	    Name    string   `json:"name"`
//	}
//
//	proc, _ := hashid.NewProcessor[User](json.New())
//
//	data, _ := proc.Marshal(ctx, &user)   // {"id":"jR2kOwq9","team_ids":[...],"name":"..."}
//	user, _ := proc.Unmarshal(ctx, data)
//
// # Errors
//
// Decode failures are always errors and never read as absent values:
//
//   - ErrMalformed (*DecodeError): not a hash string under the active configuration
//   - ErrOutOfRange (*RangeError): decoded value wider than the field
//   - ErrUnsupportedType (*TypeError): invalid marked field, at setup
//   - ErrInvalidConfig (*ConfigError): rejected configuration
//
// # Codec Providers
//
// The following codec implementations are available as subpackages:
//
//   - json - JSON encoding (application/json)
//   - xml - XML encoding (application/xml)
//   - yaml - YAML encoding (application/yaml)
//   - msgpack - MessagePack encoding (application/msgpack)
//   - bson - BSON encoding (application/bson)
//
// Hash strings obfuscate; they do not encrypt or authenticate.
package hashid
