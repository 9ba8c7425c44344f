// Package codec provides pluggable (de)serialization for values stored in a
// querycache. Msgpack is the compact default unreadcache uses for its
// snapshot; JSON is handy when the cache is shared with non-Go readers.
package codec

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

// JSON serializes with encoding/json. The zero value is ready to use.
type JSON[V any] struct{}

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }
func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}

// Msgpack serializes with vmihailenco/msgpack/v5. The zero value is ready to
// use. Be mindful of struct tag differences vs JSON; use `msgpack:"name"`
// tags for explicit control.
type Msgpack[V any] struct{}

func (Msgpack[V]) Encode(v V) ([]byte, error) { return msgpack.Marshal(v) }
func (Msgpack[V]) Decode(b []byte) (V, error) {
	var v V
	err := msgpack.Unmarshal(b, &v)
	return v, err
}
