package api

import (
	"net/url"
	"strings"
)

// Param is a single query parameter.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered list of query parameters. Order is preserved as
// given, unlike url.Values which sorts keys on encode.
type Params []Param

// P builds a single parameter.
func P(key, value string) Param {
	return Param{Key: key, Value: value}
}

// Encode joins the parameters with '&' in insertion order, escaping
// values for safe use in a query string.
func (p Params) Encode() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for i, kv := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(kv.Key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv.Value))
	}
	return b.String()
}

// With returns a copy of p with the extra parameters appended.
func (p Params) With(extra ...Param) Params {
	out := make(Params, 0, len(p)+len(extra))
	out = append(out, p...)
	out = append(out, extra...)
	return out
}
