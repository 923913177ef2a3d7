package model

import (
	"encoding/json"
	"strings"
)

// Taken is the set of seat keys already sold for a session, in the order they
// were reserved.  Relational backends store it as comma-joined text, the
// document backend as a JSON array; both decode to this type.
type Taken []string

// ParseTaken decodes the comma-joined form.  Blank entries are dropped so an
// empty column yields an empty set.
func ParseTaken(s string) Taken {
	out := Taken{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// String returns the comma-joined form.
func (t Taken) String() string {
	return strings.Join(t, ",")
}

// Has reports whether key is already in the set.
func (t Taken) Has(key string) bool {
	for _, k := range t {
		if k == key {
			return true
		}
	}
	return false
}

// With returns a new set with key appended.  The receiver is left untouched.
func (t Taken) With(key string) Taken {
	out := make(Taken, 0, len(t)+1)
	out = append(out, t...)
	return append(out, key)
}

// Equal reports whether both sets hold the same keys in the same order.
func (t Taken) Equal(other Taken) bool {
	if len(t) != len(other) {
		return false
	}
	for i := range t {
		if t[i] != other[i] {
			return false
		}
	}
	return true
}

// MarshalJSON always emits an array, never null.
func (t Taken) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(t))
}

// UnmarshalJSON accepts either an array of seat keys or the comma-joined
// string form found in older imported documents.
func (t *Taken) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		if list == nil {
			list = []string{}
		}
		*t = Taken(list)
		return nil
	}
	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	*t = ParseTaken(joined)
	return nil
}
