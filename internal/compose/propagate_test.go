package compose

import (
	"reflect"
	"testing"

	"github.com/Inesh-volunteer/graphbook/internal/flatgraph"
	"github.com/Inesh-volunteer/graphbook/internal/scope"
)

func TestPropagateDownstreamSkipsTopLevel(t *testing.T) {
	iface := NewInterface()
	propagate(iface, "v", scope.Root, scope.MustParse("x/y/z"))

	if iface.HasInput(scope.MustParse("x"), "v") {
		t.Error("depth-1 scope x must not receive the input (preserved contract)")
	}
	if !iface.HasInput(scope.MustParse("x/y"), "v") {
		t.Error("x/y should require input v")
	}
	if !iface.HasInput(scope.MustParse("x/y/z"), "v") {
		t.Error("x/y/z should require input v")
	}
	if len(iface.Outputs(scope.MustParse("x/y"))) != 0 {
		t.Error("downstream propagation must not add outputs")
	}
}

func TestPropagateUpstreamIncludesTopLevel(t *testing.T) {
	iface := NewInterface()
	propagate(iface, "v", scope.MustParse("a/b"), scope.Root)

	if !iface.HasOutput(scope.MustParse("a"), "v") {
		t.Error("depth-1 scope a should require output v")
	}
	if !iface.HasOutput(scope.MustParse("a/b"), "v") {
		t.Error("a/b should require output v")
	}
}

func TestPropagateConsumerAncestor(t *testing.T) {
	iface := NewInterface()
	propagate(iface, "v", scope.MustParse("a/b"), scope.MustParse("a"))

	if !iface.HasOutput(scope.MustParse("a/b"), "v") {
		t.Error("a/b should require output v")
	}
	if iface.HasOutput(scope.MustParse("a"), "v") {
		t.Error("the consumer's own scope a must not require the output")
	}
	if len(iface.Inputs(scope.MustParse("a/b"))) != 0 {
		t.Error("upstream propagation must not add inputs")
	}
}

func TestPropagateProducerAncestor(t *testing.T) {
	iface := NewInterface()
	propagate(iface, "v", scope.MustParse("a"), scope.MustParse("a/b/c"))

	if iface.HasInput(scope.MustParse("a"), "v") {
		t.Error("the producer's own scope a must not require the input")
	}
	if !iface.HasInput(scope.MustParse("a/b"), "v") {
		t.Error("a/b should require input v")
	}
	if !iface.HasInput(scope.MustParse("a/b/c"), "v") {
		t.Error("a/b/c should require input v")
	}
}

func TestPropagateCrossStream(t *testing.T) {
	iface := NewInterface()
	propagate(iface, "v", scope.MustParse("a/b"), scope.MustParse("a/c"))

	if !iface.HasOutput(scope.MustParse("a/b"), "v") {
		t.Error("a/b should require output v")
	}
	if !iface.HasInput(scope.MustParse("a/c"), "v") {
		t.Error("a/c should require input v")
	}
	shared := scope.MustParse("a")
	if iface.HasInput(shared, "v") || iface.HasOutput(shared, "v") {
		t.Error("the shared ancestor a must get neither input nor output")
	}
}

func TestPropagateOrderPreservedAndDeduplicated(t *testing.T) {
	iface := NewInterface()
	p := scope.MustParse("s")
	iface.AddOutput(p, "first")
	iface.AddOutput(p, "second")
	iface.AddOutput(p, "first")

	got := iface.Outputs(p)
	want := []string{"first", "second"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("outputs = %v, want %v", got, want)
	}
}

func idempotencyFixture() *flatgraph.Graph {
	return &flatgraph.Graph{
		Name:    "model",
		Outputs: []string{"y"},
		Operations: []*flatgraph.Operation{
			{Name: "enc/a", Path: scope.MustParse("enc"), Inputs: []string{"x"}, Outputs: []string{"h"}},
			{Name: "dec/b", Path: scope.MustParse("dec"), Inputs: []string{"h"}, Outputs: []string{"y"}},
		},
		Links: []flatgraph.Link{
			{VarName: "h", Source: flatgraph.OpRef("enc/a"), Sink: flatgraph.OpRef("dec/b")},
			{VarName: "y", Source: flatgraph.OpRef("dec/b"), Sink: flatgraph.Boundary()},
		},
	}
}

func TestPropagateAndGroupIdempotent(t *testing.T) {
	g := idempotencyFixture()
	idx, err := flatgraph.NewIndex(g)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}

	first, _ := propagateAndGroup(g, idx)
	second, _ := propagateAndGroup(g, idx)

	for _, p := range []scope.Path{scope.MustParse("enc"), scope.MustParse("dec")} {
		if !reflect.DeepEqual(first.Inputs(p), second.Inputs(p)) {
			t.Errorf("inputs of %q differ between runs", p.String())
		}
		if !reflect.DeepEqual(first.Outputs(p), second.Outputs(p)) {
			t.Errorf("outputs of %q differ between runs", p.String())
		}
	}
	if got := first.Outputs(scope.MustParse("enc")); !reflect.DeepEqual(got, []string{"h"}) {
		t.Errorf("enc outputs = %v, want [h]", got)
	}
}

func TestPropagateAndGroupDropsGraphOutputShortcuts(t *testing.T) {
	// A producer feeding a declared graph output into a non-boundary
	// consumer is dropped: neither grouped nor propagated.
	g := &flatgraph.Graph{
		Name:    "model",
		Outputs: []string{"y"},
		Operations: []*flatgraph.Operation{
			{Name: "a", Outputs: []string{"y"}},
			{Name: "dec/b", Path: scope.MustParse("dec"), Inputs: []string{"y"}},
		},
		Links: []flatgraph.Link{
			{VarName: "y", Source: flatgraph.OpRef("a"), Sink: flatgraph.OpRef("dec/b")},
		},
	}
	idx, err := flatgraph.NewIndex(g)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}

	iface, groups := propagateAndGroup(g, idx)
	if len(groups.byScope) != 0 {
		t.Errorf("dropped link must not be grouped, got %v", groups.byScope)
	}
	if iface.HasInput(scope.MustParse("dec"), "y") {
		t.Error("dropped link must not propagate")
	}
}
