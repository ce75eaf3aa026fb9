package treecodec

import (
	"strconv"
	"strings"
)

// Key is one segment of a Path: a field name, or a sequence index rendered as
// a synthesized positional segment.
type Key struct {
	Name    string
	Index   int
	indexed bool
}

// NamedKey creates a field-name segment.
func NamedKey(name string) Key { return Key{Name: name} }

// IndexKey creates a sequence-index segment.
func IndexKey(i int) Key { return Key{Name: "[" + strconv.Itoa(i) + "]", Index: i, indexed: true} }

// Indexed reports whether the segment denotes a sequence position.
func (k Key) Indexed() bool { return k.indexed }

func (k Key) String() string { return k.Name }

// Path locates a position in the generic value tree. Paths are append-only:
// Child copies, so descending never mutates an ancestor's path.
type Path []Key

// Child returns a new path extended by one segment.
func (p Path) Child(k Key) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = k
	return out
}

func (p Path) String() string {
	if len(p) == 0 {
		return "<root>"
	}
	var b strings.Builder
	for i, k := range p {
		if i > 0 && !k.indexed {
			b.WriteByte('.')
		}
		b.WriteString(k.Name)
	}
	return b.String()
}
