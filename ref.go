package treecodec

import "strings"

// Ref is an opaque absolute resource identifier. It travels through the
// generic tree in its canonical string form "prefix:value" (or a bare value
// when the prefix is empty); the codec never interprets it beyond that.
type Ref struct {
	Prefix string
	Value  string
}

// String returns the canonical form.
func (r Ref) String() string {
	if r.Prefix == "" {
		return r.Value
	}
	return r.Prefix + ":" + r.Value
}

// IsZero reports whether the identifier is empty.
func (r Ref) IsZero() bool { return r.Prefix == "" && r.Value == "" }

// parseRef splits a canonical form on the first colon. An empty string is not
// a valid identifier.
func parseRef(s string) (Ref, bool) {
	if s == "" {
		return Ref{}, false
	}
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return Ref{Prefix: s[:i], Value: s[i+1:]}, true
	}
	return Ref{Value: s}, true
}
