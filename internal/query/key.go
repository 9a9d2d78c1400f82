package query

import (
	"encoding/json"
	"fmt"
)

// Key identifies a cache entry. Two keys are equal when their canonical JSON
// encodings are equal, so int(1), int64(1) and float64(1) are the same
// element. Elements must be JSON-encodable scalars or slices of them.
type Key []any

// String returns the canonical encoding used as the entry id.
func (k Key) String() string {
	b, err := json.Marshal([]any(k))
	if err != nil {
		return fmt.Sprintf("%#v", []any(k))
	}
	return string(b)
}

// HasPrefix reports whether the first len(prefix) elements of k equal prefix.
// The empty prefix matches every key.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i := range prefix {
		if (Key{k[i]}).String() != (Key{prefix[i]}).String() {
			return false
		}
	}
	return true
}

// Equal reports whether k and other identify the same entry.
func (k Key) Equal(other Key) bool {
	return k.String() == other.String()
}
