package frame

import (
	"github.com/matzehuels/hardpoint/pkg/errors"
	"github.com/matzehuels/hardpoint/pkg/geom"
	"github.com/matzehuels/hardpoint/pkg/observability"
)

// arrived is the path-table sentinel meaning source equals target.
const arrived = -1

// Graph is a rooted tree of frames with a precomputed next-hop path table.
// The zero value is not usable; construct with New. Graph is not safe for
// concurrent mutation.
type Graph struct {
	frames []*Frame
	byKey  map[string]int

	// next[src][dst] is the index of the frame to step to on the unique
	// path from src toward dst, or the arrived sentinel when src == dst.
	next [][]int

	bounds BoundChecker
}

// New validates the descriptors and builds the frame tree plus its path
// table. Exactly one descriptor must declare no parent (the root), every
// other descriptor's parent must exist, and the parent relation must be
// acyclic. Violations return an INVALID_TOPOLOGY error.
func New(descriptors []Descriptor) (*Graph, error) {
	if len(descriptors) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidTopology, "no frames declared")
	}

	g := &Graph{byKey: make(map[string]int, len(descriptors))}

	for i, d := range descriptors {
		if d.Key == "" {
			return nil, errors.New(errors.ErrCodeInvalidTopology, "frame %d has no key", i)
		}
		if _, dup := g.byKey[d.Key]; dup {
			return nil, errors.New(errors.ErrCodeInvalidTopology, "duplicate frame key %q", d.Key)
		}
		g.byKey[d.Key] = i
	}

	root := -1
	for i, d := range descriptors {
		parent := -1
		if d.Parent == "" {
			if root != -1 {
				return nil, errors.New(errors.ErrCodeInvalidTopology,
					"multiple roots: %q and %q", descriptors[root].Key, d.Key)
			}
			root = i
		} else {
			p, ok := g.byKey[d.Parent]
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidTopology,
					"frame %q declares unknown parent %q", d.Key, d.Parent)
			}
			if p == i {
				return nil, errors.New(errors.ErrCodeInvalidTopology,
					"frame %q is its own parent", d.Key)
			}
			parent = p
		}
		g.frames = append(g.frames, newFrame(d, i, parent))
	}
	if root == -1 {
		return nil, errors.New(errors.ErrCodeInvalidTopology, "no root frame declared")
	}

	// Every frame must reach the root; a parent chain longer than the frame
	// count means a cycle.
	for i := range g.frames {
		steps := 0
		for cur := i; g.frames[cur].parent != -1; cur = g.frames[cur].parent {
			if steps++; steps > len(g.frames) {
				return nil, errors.New(errors.ErrCodeInvalidTopology,
					"cycle through frame %q", g.frames[i].Key)
			}
		}
	}

	for i, f := range g.frames {
		if f.parent != -1 {
			g.frames[f.parent].children = append(g.frames[f.parent].children, i)
		}
	}

	g.buildPathTable()
	return g, nil
}

// buildPathTable fills next[src][dst] by walking the tree once per source.
// The topology is a tree so the simple-path next hop is unique and total.
func (g *Graph) buildPathTable() {
	n := len(g.frames)
	g.next = make([][]int, n)
	for src := 0; src < n; src++ {
		g.next[src] = make([]int, n)
		for dst := range g.next[src] {
			g.next[src][dst] = arrived
		}
		// BFS from src over the undirected tree adjacency, recording the
		// first hop taken to reach each destination.
		visited := make([]bool, n)
		visited[src] = true
		queue := []int{src}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, nb := range g.neighbors(cur) {
				if visited[nb] {
					continue
				}
				visited[nb] = true
				if cur == src {
					g.next[src][nb] = nb
				} else {
					g.next[src][nb] = g.next[src][cur]
				}
				queue = append(queue, nb)
			}
		}
	}
}

func (g *Graph) neighbors(i int) []int {
	f := g.frames[i]
	if f.parent == -1 {
		return f.children
	}
	return append([]int{f.parent}, f.children...)
}

// SetBoundChecker installs the design-bound checker consulted by SetPoint.
// A nil checker disables bound warnings.
func (g *Graph) SetBoundChecker(c BoundChecker) { g.bounds = c }

// Frame returns the frame with the given key.
// Returns a FRAME_NOT_FOUND error when the key is unknown.
func (g *Graph) Frame(key string) (*Frame, error) {
	i, ok := g.byKey[key]
	if !ok {
		return nil, errors.New(errors.ErrCodeFrameNotFound, "unknown frame %q", key)
	}
	return g.frames[i], nil
}

// Frames returns all frames in construction order. The root is always first
// in the double-wishbone topology but callers must not rely on ordering
// beyond determinism.
func (g *Graph) Frames() []*Frame {
	out := make([]*Frame, len(g.frames))
	copy(out, g.frames)
	return out
}

// Root returns the root frame.
func (g *Graph) Root() *Frame {
	for _, f := range g.frames {
		if f.parent == -1 {
			return f
		}
	}
	return nil
}

// Parent returns the parent frame of f, or nil for the root.
func (g *Graph) Parent(f *Frame) *Frame {
	if f.parent == -1 {
		return nil
	}
	return g.frames[f.parent]
}

// EvaluatePoint resolves ref in the source frame and re-expresses it in the
// target frame's coordinates by walking the precomputed path table. Equal
// source and target return the resolved point unchanged.
//
// Returns FRAME_NOT_FOUND when either frame key is unknown and
// POINT_NOT_FOUND when ref names a PoI absent from the source frame.
func (g *Graph) EvaluatePoint(ref PointRef, source, target string) (geom.Vec, error) {
	src, ok := g.byKey[source]
	if !ok {
		return geom.Vec{}, errors.New(errors.ErrCodeFrameNotFound, "unknown source frame %q", source)
	}
	dst, ok := g.byKey[target]
	if !ok {
		return geom.Vec{}, errors.New(errors.ErrCodeFrameNotFound, "unknown target frame %q", target)
	}

	p := ref.literal
	if ref.isName {
		poi, ok := g.frames[src].points[ref.name]
		if !ok {
			return geom.Vec{}, errors.New(errors.ErrCodePointNotFound,
				"point %q not found in frame %q", ref.name, source)
		}
		p = poi.Position
	}

	for cur := src; cur != dst; {
		hop := g.next[cur][dst]
		if hop == g.frames[cur].parent {
			// Toward the root: the departing frame's transform lifts the
			// point into parent coordinates.
			p = g.frames[cur].Transform.ToParent(p)
		} else {
			// Away from the root: the destination frame's transform lowers
			// the point into its child coordinates.
			p = g.frames[hop].Transform.ToChild(p)
		}
		cur = hop
	}
	return p, nil
}

// SetPoint overwrites the named PoI in frame with value expressed in
// sourceFrame ("" means the owning frame itself). When a bound checker is
// installed and the point is a bounded design parameter, each out-of-range
// axis is reported as a non-fatal warning through the observability hooks
// and in the returned slice; the write always proceeds.
func (g *Graph) SetPoint(key, frameKey string, value geom.Vec, sourceFrame string) ([]BoundViolation, error) {
	if sourceFrame == "" {
		sourceFrame = frameKey
	}
	local, err := g.EvaluatePoint(Literal(value), sourceFrame, frameKey)
	if err != nil {
		return nil, err
	}

	f, err := g.Frame(frameKey)
	if err != nil {
		return nil, err
	}
	poi, ok := f.points[key]
	if !ok {
		return nil, errors.New(errors.ErrCodePointNotFound,
			"point %q not found in frame %q", key, frameKey)
	}

	var violations []BoundViolation
	if g.bounds != nil {
		violations = g.bounds.Check(key, frameKey, local)
		for _, v := range violations {
			observability.Solver().OnBoundViolation(key, v.Axis, v.Min, v.Max, v.Value)
		}
	}

	poi.Position = local
	return violations, nil
}
