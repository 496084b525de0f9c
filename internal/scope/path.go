// Package scope models composite scope paths: ordered segment sequences
// that place an operation inside the nesting hierarchy. The empty path
// is the root graph. Centralizing prefix/ancestor algebra here keeps
// string slicing out of the classification and routing code.
package scope

import (
	"fmt"
	"strings"
)

// Separator between path segments in the external flat format.
const Separator = "/"

// Path is an immutable ordered sequence of scope segments. The zero
// value is the root path. Paths are passed by value; the backing slice
// is never mutated after construction.
type Path struct {
	segs []string
}

// Root is the empty scope path.
var Root = Path{}

// Parse splits a separator-joined path string into a Path. The empty
// string parses to Root. An empty segment (leading, trailing, or
// doubled separator) is a malformed path.
func Parse(s string) (Path, error) {
	if s == "" {
		return Root, nil
	}
	segs := strings.Split(s, Separator)
	for _, seg := range segs {
		if seg == "" {
			return Root, &MalformedPathError{Raw: s}
		}
	}
	return Path{segs: segs}, nil
}

// MustParse is Parse for paths known to be well-formed, e.g. test fixtures.
// It panics on malformed input.
func MustParse(s string) Path {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// New builds a Path from explicit segments.
func New(segs ...string) Path {
	if len(segs) == 0 {
		return Root
	}
	cp := make([]string, len(segs))
	copy(cp, segs)
	return Path{segs: cp}
}

// String joins the segments with the separator. Root renders as "".
func (p Path) String() string {
	return strings.Join(p.segs, Separator)
}

// IsRoot reports whether p is the empty root path.
func (p Path) IsRoot() bool {
	return len(p.segs) == 0
}

// Depth is the number of segments.
func (p Path) Depth() int {
	return len(p.segs)
}

// Segment returns the i-th segment (0-based).
func (p Path) Segment(i int) string {
	return p.segs[i]
}

// Last returns the final segment, or "" for root.
func (p Path) Last() string {
	if len(p.segs) == 0 {
		return ""
	}
	return p.segs[len(p.segs)-1]
}

// Parent returns the path with the last segment removed. The parent of
// root is root.
func (p Path) Parent() Path {
	if len(p.segs) <= 1 {
		return Root
	}
	return Path{segs: p.segs[:len(p.segs)-1]}
}

// Prefix returns the ancestor of p truncated to depth n. n must be in
// [0, Depth()].
func (p Path) Prefix(n int) Path {
	if n == 0 {
		return Root
	}
	return Path{segs: p.segs[:n]}
}

// Equal reports segment-wise equality.
func (p Path) Equal(q Path) bool {
	if len(p.segs) != len(q.segs) {
		return false
	}
	for i := range p.segs {
		if p.segs[i] != q.segs[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether q is an ancestor of p or equal to p. Every
// path has Root as a prefix.
func (p Path) HasPrefix(q Path) bool {
	if len(q.segs) > len(p.segs) {
		return false
	}
	for i := range q.segs {
		if p.segs[i] != q.segs[i] {
			return false
		}
	}
	return true
}

// CommonPrefix returns the deepest path that is a prefix of both p and q.
func (p Path) CommonPrefix(q Path) Path {
	n := len(p.segs)
	if len(q.segs) < n {
		n = len(q.segs)
	}
	i := 0
	for i < n && p.segs[i] == q.segs[i] {
		i++
	}
	return p.Prefix(i)
}

// Prefixes returns every non-root ancestor of p from depth 1 through p
// itself, shallowest first. Root returns nil.
func (p Path) Prefixes() []Path {
	if len(p.segs) == 0 {
		return nil
	}
	out := make([]Path, len(p.segs))
	for i := range p.segs {
		out[i] = p.Prefix(i + 1)
	}
	return out
}

// Validate reports an error for paths holding empty segments, which
// would make the unqualified root scope ambiguous. Parse never produces
// such paths; this guards paths built directly from segments.
func (p Path) Validate() error {
	for _, seg := range p.segs {
		if seg == "" {
			return &MalformedPathError{Raw: p.String()}
		}
	}
	return nil
}

// MalformedPathError reports a scope path containing empty segments.
// Such paths would make the unqualified root scope ambiguous.
type MalformedPathError struct {
	Raw string
}

func (e *MalformedPathError) Error() string {
	return fmt.Sprintf("malformed scope path %q: empty segment makes the composite root ambiguous", e.Raw)
}
