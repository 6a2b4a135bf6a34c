package service

import "github.com/Avi18971911/Lens/pkg/trace/model"

const noParent = -1

// SpanIndex answers structural questions about the spans of one trace. Spans are kept in an
// arena in input order and every relation is precomputed on construction, so lookups never
// re-scan the span set.
//
// A span whose parent id does not resolve inside the trace is treated as a root. A span whose
// ancestor chain loops back to itself has its parent link cut and is treated as a root as well,
// which keeps every walk over the index finite.
type SpanIndex struct {
	spans    []model.Span
	position map[string]int
	parent   []int
	children [][]int
	roots    []int
	depth    []int
	size     []int
	maxDepth int
	dangling []string
	cyclic   []string
}

func NewSpanIndex(spans []model.Span) *SpanIndex {
	n := len(spans)
	idx := &SpanIndex{
		spans:    spans,
		position: make(map[string]int, n),
		parent:   make([]int, n),
		children: make([][]int, n),
		depth:    make([]int, n),
		size:     make([]int, n),
	}
	for i, span := range spans {
		if _, ok := idx.position[span.Id]; !ok {
			idx.position[span.Id] = i
		}
	}
	idx.linkParents()
	idx.cutCycles()
	for i := range spans {
		if idx.parent[i] == noParent {
			idx.roots = append(idx.roots, i)
		} else {
			idx.children[idx.parent[i]] = append(idx.children[idx.parent[i]], i)
		}
	}
	idx.measure()
	return idx
}

func (idx *SpanIndex) linkParents() {
	for i, span := range idx.spans {
		idx.parent[i] = noParent
		if span.IsRoot() {
			continue
		}
		p, ok := idx.position[span.ParentId]
		if !ok {
			idx.dangling = append(idx.dangling, span.Id)
			continue
		}
		idx.parent[i] = p
	}
}

// cutCycles walks each parent chain once. A chain that runs into a span still on the current
// path has found a cycle, and every span on that cycle loses its parent link.
func (idx *SpanIndex) cutCycles() {
	const (
		unvisited = iota
		onPath
		done
	)
	state := make([]int, len(idx.spans))
	var cyclic []int
	for i := range idx.spans {
		var path []int
		j := i
		for j != noParent && state[j] == unvisited {
			state[j] = onPath
			path = append(path, j)
			j = idx.parent[j]
		}
		if j != noParent && state[j] == onPath {
			for k := len(path) - 1; k >= 0; k-- {
				cyclic = append(cyclic, path[k])
				if path[k] == j {
					break
				}
			}
		}
		for _, k := range path {
			state[k] = done
		}
	}
	for _, k := range cyclic {
		idx.parent[k] = noParent
		idx.cyclic = append(idx.cyclic, idx.spans[k].Id)
	}
}

// measure fills depths and subtree sizes with an explicit stack so that deep traces cannot
// exhaust the goroutine stack.
func (idx *SpanIndex) measure() {
	order := make([]int, 0, len(idx.spans))
	stack := make([]int, 0, len(idx.roots))
	for i := len(idx.roots) - 1; i >= 0; i-- {
		stack = append(stack, idx.roots[i])
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, cur)
		if p := idx.parent[cur]; p != noParent {
			idx.depth[cur] = idx.depth[p] + 1
		}
		if idx.depth[cur] > idx.maxDepth {
			idx.maxDepth = idx.depth[cur]
		}
		kids := idx.children[cur]
		for k := len(kids) - 1; k >= 0; k-- {
			stack = append(stack, kids[k])
		}
	}
	for k := len(order) - 1; k >= 0; k-- {
		cur := order[k]
		idx.size[cur]++
		if p := idx.parent[cur]; p != noParent {
			idx.size[p] += idx.size[cur]
		}
	}
}

func (idx *SpanIndex) Len() int {
	return len(idx.spans)
}

// Span returns the span with the given id.
func (idx *SpanIndex) Span(id string) (model.Span, bool) {
	p, ok := idx.position[id]
	if !ok {
		return model.Span{}, false
	}
	return idx.spans[p], true
}

// ChildrenOf returns the children of the span in input order.
func (idx *SpanIndex) ChildrenOf(id string) []model.Span {
	p, ok := idx.position[id]
	if !ok {
		return nil
	}
	return idx.collect(idx.children[p])
}

// Roots returns every span without a resolvable parent, in input order.
func (idx *SpanIndex) Roots() []model.Span {
	return idx.collect(idx.roots)
}

// DepthOf returns 0 for roots and for ids the index does not know.
func (idx *SpanIndex) DepthOf(id string) int {
	p, ok := idx.position[id]
	if !ok {
		return 0
	}
	return idx.depth[p]
}

// DescendantCount is the size of the subtree rooted at the span, excluding the span itself.
func (idx *SpanIndex) DescendantCount(id string) int {
	p, ok := idx.position[id]
	if !ok {
		return 0
	}
	return idx.size[p] - 1
}

func (idx *SpanIndex) MaxDepth() int {
	return idx.maxDepth
}

// DanglingSpans lists spans whose parent id names a span outside the trace.
func (idx *SpanIndex) DanglingSpans() []string {
	return idx.dangling
}

// CyclicSpans lists spans whose parent link was cut because it closed a cycle.
func (idx *SpanIndex) CyclicSpans() []string {
	return idx.cyclic
}

func (idx *SpanIndex) collect(positions []int) []model.Span {
	res := make([]model.Span, len(positions))
	for i, p := range positions {
		res[i] = idx.spans[p]
	}
	return res
}

func (idx *SpanIndex) rootPositions() []int {
	return idx.roots
}

func (idx *SpanIndex) childPositions(p int) []int {
	return idx.children[p]
}

// ParentOf returns the effective parent of the span: empty for roots, dangling references and
// spans whose parent link closed a cycle.
func (idx *SpanIndex) ParentOf(id string) (string, bool) {
	p, ok := idx.position[id]
	if !ok || idx.parent[p] == noParent {
		return "", false
	}
	return idx.spans[idx.parent[p]].Id, true
}

// Position is the input position of the span, -1 when unknown.
func (idx *SpanIndex) Position(id string) int {
	p, ok := idx.position[id]
	if !ok {
		return -1
	}
	return p
}
