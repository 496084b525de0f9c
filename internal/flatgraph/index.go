package flatgraph

import (
	"github.com/RoaringBitmap/roaring"
)

// Index provides name→operation lookup and per-operation / per-variable
// link-ID sets over a flat graph. Built once after parsing; read-only
// afterwards.
type Index struct {
	graph  *Graph
	byName map[string]*Operation

	// Bitmap indexes over link ordinals, keyed by producing and by
	// consuming operation. Keeps producer/consumer queries O(k)
	// instead of repeated full link scans.
	linksFrom map[string]*roaring.Bitmap
	linksInto map[string]*roaring.Bitmap
}

// NewIndex builds the index and validates every link endpoint. A link
// referencing an unknown operation returns UnresolvedEndpointError and
// no index.
func NewIndex(g *Graph) (*Index, error) {
	idx := &Index{
		graph:     g,
		byName:    make(map[string]*Operation, len(g.Operations)),
		linksFrom: make(map[string]*roaring.Bitmap),
		linksInto: make(map[string]*roaring.Bitmap),
	}
	for _, op := range g.Operations {
		idx.byName[op.Name] = op
	}
	for i, link := range g.Links {
		if !link.Source.IsBoundary() {
			if _, ok := idx.byName[link.Source.Op()]; !ok {
				return nil, &UnresolvedEndpointError{VarName: link.VarName, Ref: link.Source.Op(), Role: "source"}
			}
			bitmapFor(idx.linksFrom, link.Source.Op()).Add(uint32(i))
		}
		if !link.Sink.IsBoundary() {
			if _, ok := idx.byName[link.Sink.Op()]; !ok {
				return nil, &UnresolvedEndpointError{VarName: link.VarName, Ref: link.Sink.Op(), Role: "sink"}
			}
			bitmapFor(idx.linksInto, link.Sink.Op()).Add(uint32(i))
		}
	}
	return idx, nil
}

func bitmapFor(m map[string]*roaring.Bitmap, key string) *roaring.Bitmap {
	bm, ok := m[key]
	if !ok {
		bm = roaring.New()
		m[key] = bm
	}
	return bm
}

// Op returns the operation with the given name, or nil.
func (idx *Index) Op(name string) *Operation {
	return idx.byName[name]
}

// LinksFrom returns the ordinals of links produced by the named
// operation, ascending.
func (idx *Index) LinksFrom(name string) []uint32 {
	return toSlice(idx.linksFrom[name])
}

// LinksInto returns the ordinals of links consumed by the named
// operation, ascending.
func (idx *Index) LinksInto(name string) []uint32 {
	return toSlice(idx.linksInto[name])
}

func toSlice(bm *roaring.Bitmap) []uint32 {
	if bm == nil {
		return nil
	}
	return bm.ToArray()
}

// UnconsumedOutputs returns, per producing operation, the output
// variables that none of the operation's own links carry and that are
// not declared graph outputs. Used for conversion diagnostics; an
// unconsumed output is legal but usually a source graph defect.
func (idx *Index) UnconsumedOutputs() map[string][]string {
	dangling := make(map[string][]string)
	for _, op := range idx.graph.Operations {
		carried := make(map[string]bool)
		for _, i := range idx.LinksFrom(op.Name) {
			carried[idx.graph.Links[i].VarName] = true
		}
		for _, out := range op.Outputs {
			if carried[out] || idx.graph.HasOutput(out) {
				continue
			}
			dangling[op.Name] = append(dangling[op.Name], out)
		}
	}
	return dangling
}

// UnfedInputs returns, per consuming operation, the input variables no
// link delivers. Boundary-fed inputs arrive over ordinary links, so a
// hit here means the flat graph leaves the input unbound.
func (idx *Index) UnfedInputs() map[string][]string {
	unfed := make(map[string][]string)
	for _, op := range idx.graph.Operations {
		carried := make(map[string]bool)
		for _, i := range idx.LinksInto(op.Name) {
			carried[idx.graph.Links[i].VarName] = true
		}
		for _, in := range op.Inputs {
			if carried[in] {
				continue
			}
			unfed[op.Name] = append(unfed[op.Name], in)
		}
	}
	return unfed
}
