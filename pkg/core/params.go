package core

import (
	"maps"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Params is a set of request parameters keyed by name.
// Assigning a name twice keeps the last value.
type Params map[string]string

// Set assigns value to key and returns the set for chaining.
func (p Params) Set(key, value string) Params {
	p[key] = value
	return p
}

// SetInt assigns the decimal form of value to key.
func (p Params) SetInt(key string, value int64) Params {
	p[key] = strconv.FormatInt(value, 10)
	return p
}

// SetUint assigns the decimal form of value to key.
func (p Params) SetUint(key string, value uint64) Params {
	p[key] = strconv.FormatUint(value, 10)
	return p
}

// SetBool assigns "true" or "false" to key.
func (p Params) SetBool(key string, value bool) Params {
	p[key] = strconv.FormatBool(value)
	return p
}

// Clone returns an independent copy of the set. Cloning nil yields an empty set.
func (p Params) Clone() Params {
	out := make(Params, len(p)+2)
	maps.Copy(out, p)
	return out
}

// Encode renders the set as name=value pairs joined by '&', ordered by name
// in ascending byte order, with each value query-escaped. Names are written
// verbatim. An empty set encodes to "".
func (p Params) Encode() string {
	if len(p) == 0 {
		return ""
	}

	keys := slices.Sorted(maps.Keys(p))

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p[k]))
	}
	return b.String()
}
