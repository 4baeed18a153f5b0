package datastructure

import (
	"errors"
	"fmt"

	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/util"
	"golang.org/x/exp/rand"
)

// construction-time validation errors
var (
	ErrDuplicateVertex = errors.New("datastructure: duplicate vertex id")
	ErrUnknownVertex   = errors.New("datastructure: unknown vertex id")
	ErrSelfLoop        = errors.New("datastructure: self-loop not allowed")
	ErrInvalidWeight   = errors.New("datastructure: edge weight must be positive")
)

type Index uint32

type PartitionLabel uint8

const (
	PartitionNone PartitionLabel = iota
	PartitionA
	PartitionB
)

func (l PartitionLabel) String() string {
	switch l {
	case PartitionA:
		return "A"
	case PartitionB:
		return "B"
	default:
		return "none"
	}
}

// OppositePartition swaps A and B.
func OppositePartition(l PartitionLabel) PartitionLabel {
	switch l {
	case PartitionA:
		return PartitionB
	case PartitionB:
		return PartitionA
	}
	panic("datastructure: opposite of an unassigned partition label")
}

type Vertex struct {
	id    int // external netlist id
	label PartitionLabel
}

func NewVertex(id int) Vertex {
	return Vertex{id: id, label: PartitionNone}
}

func (v *Vertex) GetID() int {
	return v.id
}

func (v *Vertex) GetLabel() PartitionLabel {
	return v.label
}

// Edge is an undirected weighted connection between two vertex indices.
// Immutable after construction except for weight accumulation of duplicate
// netlist lines.
type Edge struct {
	id     int
	left   Index
	right  Index
	weight int
}

func NewEdge(id int, left, right Index, weight int) *Edge {
	return &Edge{
		id:     id,
		left:   left,
		right:  right,
		weight: weight,
	}
}

func (e *Edge) GetID() int {
	return e.id
}

func (e *Edge) GetLeft() Index {
	return e.left
}

func (e *Edge) GetRight() Index {
	return e.right
}

func (e *Edge) GetWeight() int {
	return e.weight
}

// OtherEndpoint returns the endpoint of e that is not u.
func (e *Edge) OtherEndpoint(u Index) Index {
	if e.left == u {
		return e.right
	}
	return e.left
}

// Graph stores vertices in insertion order, a flat edge list, and per-vertex
// adjacency as indices into that edge list. Vertices never own their edges;
// lifetime of every Edge rests with the Graph alone.
type Graph struct {
	vertices      []Vertex
	edgeList      []*Edge
	adjacencyList [][]int // vertex index -> edge indices, insertion order
	idToIndex     map[int]Index
	pairToEdge    map[[2]Index]int // normalized endpoint pair -> edge index
	partitionSize [3]int           // indexed by PartitionLabel
}

func NewGraph() *Graph {
	return &Graph{
		vertices:      make([]Vertex, 0),
		edgeList:      make([]*Edge, 0),
		adjacencyList: make([][]int, 0),
		idToIndex:     make(map[int]Index),
		pairToEdge:    make(map[[2]Index]int),
	}
}

func (g *Graph) NumberOfVertices() int {
	return len(g.vertices)
}

func (g *Graph) NumberOfEdges() int {
	return len(g.edgeList)
}

func (g *Graph) GetVertex(u Index) *Vertex {
	return &g.vertices[u]
}

// IndexOf maps an external netlist id to its internal index.
func (g *Graph) IndexOf(id int) (Index, bool) {
	u, ok := g.idToIndex[id]
	return u, ok
}

func (g *Graph) AddVertex(id int) error {
	if _, ok := g.idToIndex[id]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateVertex, id)
	}

	g.idToIndex[id] = Index(len(g.vertices))
	g.vertices = append(g.vertices, NewVertex(id))
	g.adjacencyList = append(g.adjacencyList, make([]int, 0))
	g.partitionSize[PartitionNone]++
	return nil
}

// AddEdge connects two existing vertices. A repeated endpoint pair adds its
// weight onto the already stored edge instead of creating a parallel edge.
func (g *Graph) AddEdge(leftID, rightID, weight int) error {
	left, ok := g.idToIndex[leftID]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownVertex, leftID)
	}
	right, ok := g.idToIndex[rightID]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownVertex, rightID)
	}
	if leftID == rightID {
		return fmt.Errorf("%w: %d", ErrSelfLoop, leftID)
	}
	if weight <= 0 {
		return fmt.Errorf("%w: got %d for edge (%d,%d)", ErrInvalidWeight, weight, leftID, rightID)
	}

	pair := normalizePair(left, right)
	if eIdx, ok := g.pairToEdge[pair]; ok {
		g.edgeList[eIdx].weight += weight
		return nil
	}

	edge := NewEdge(len(g.edgeList), left, right, weight)
	g.edgeList = append(g.edgeList, edge)
	g.adjacencyList[left] = append(g.adjacencyList[left], edge.id)
	g.adjacencyList[right] = append(g.adjacencyList[right], edge.id)
	g.pairToEdge[pair] = edge.id
	return nil
}

func normalizePair(u, v Index) [2]Index {
	if u > v {
		u, v = v, u
	}
	return [2]Index{u, v}
}

// EdgeWeightBetween returns the weight of the edge connecting u and v,
// or 0 if there is none.
func (g *Graph) EdgeWeightBetween(u, v Index) int {
	if eIdx, ok := g.pairToEdge[normalizePair(u, v)]; ok {
		return g.edgeList[eIdx].weight
	}
	return 0
}

// InitialPartition assigns the first ceil(n/2) vertices in insertion order
// to partition A and the rest to B, so runs over the same input reproduce.
func (g *Graph) InitialPartition() {
	half := (len(g.vertices) + 1) / 2
	for i := range g.vertices {
		if i < half {
			g.SetVertexLabel(Index(i), PartitionA)
		} else {
			g.SetVertexLabel(Index(i), PartitionB)
		}
	}
}

// ShuffledInitialPartition splits over a seeded shuffle of the insertion
// order instead, for restart runs. Deterministic for a fixed seed.
func (g *Graph) ShuffledInitialPartition(seed uint64) {
	order := make([]Index, len(g.vertices))
	for i := range order {
		order[i] = Index(i)
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	half := (len(order) + 1) / 2
	for i, u := range order {
		if i < half {
			g.SetVertexLabel(u, PartitionA)
		} else {
			g.SetVertexLabel(u, PartitionB)
		}
	}
}

func (g *Graph) VertexLabel(u Index) PartitionLabel {
	return g.vertices[u].label
}

func (g *Graph) SetVertexLabel(u Index, label PartitionLabel) {
	g.partitionSize[g.vertices[u].label]--
	g.vertices[u].label = label
	g.partitionSize[label]++
}

func (g *Graph) PartitionSize(label PartitionLabel) int {
	return g.partitionSize[label]
}

// Imbalance is the absolute difference between the two partition sizes.
func (g *Graph) Imbalance() int {
	return util.AbsInt(g.partitionSize[PartitionA] - g.partitionSize[PartitionB])
}

// Partitioned reports whether every vertex carries a partition label.
func (g *Graph) Partitioned() bool {
	return len(g.vertices) > 0 && g.partitionSize[PartitionNone] == 0
}

// ForEachNeighbor visits every neighbor of u with the connecting edge weight,
// in adjacency insertion order. O(degree).
func (g *Graph) ForEachNeighbor(u Index, handle func(v Index, weight int)) {
	for _, eIdx := range g.adjacencyList[u] {
		edge := g.edgeList[eIdx]
		handle(edge.OtherEndpoint(u), edge.weight)
	}
}

func (g *Graph) ForEachVertices(handle func(v *Vertex, u Index)) {
	for i := range g.vertices {
		handle(&g.vertices[i], Index(i))
	}
}

func (g *Graph) ForEdgeList(handle func(e *Edge)) {
	for _, e := range g.edgeList {
		handle(e)
	}
}

// CutsetWeight recomputes the cut weight from scratch: the sum over edges
// whose endpoints carry different labels. The partitioner maintains the cut
// incrementally and uses this as its cross-check.
func (g *Graph) CutsetWeight() int {
	cutset := 0
	for _, e := range g.edgeList {
		leftLabel := g.vertices[e.left].label
		rightLabel := g.vertices[e.right].label
		if leftLabel == PartitionNone || rightLabel == PartitionNone {
			panic(fmt.Sprintf("datastructure: vertex without partition label on edge (%d,%d)",
				g.vertices[e.left].id, g.vertices[e.right].id))
		}
		if leftLabel != rightLabel {
			cutset += e.weight
		}
	}
	return cutset
}

// MemberIDs returns the external ids of the given partition in insertion order.
func (g *Graph) MemberIDs(label PartitionLabel) []int {
	members := make([]int, 0, g.partitionSize[label])
	for i := range g.vertices {
		if g.vertices[i].label == label {
			members = append(members, g.vertices[i].id)
		}
	}
	return members
}

func (g *Graph) Clone() *Graph {
	cloned := NewGraph()

	cloned.vertices = make([]Vertex, len(g.vertices))
	copy(cloned.vertices, g.vertices)

	cloned.adjacencyList = make([][]int, len(g.adjacencyList))
	for i, adj := range g.adjacencyList {
		newAdj := make([]int, len(adj))
		copy(newAdj, adj)
		cloned.adjacencyList[i] = newAdj
	}

	cloned.edgeList = make([]*Edge, 0, len(g.edgeList))
	for _, e := range g.edgeList {
		cloned.edgeList = append(cloned.edgeList, NewEdge(e.id, e.left, e.right, e.weight))
	}

	for id, u := range g.idToIndex {
		cloned.idToIndex[id] = u
	}
	for pair, eIdx := range g.pairToEdge {
		cloned.pairToEdge[pair] = eIdx
	}
	cloned.partitionSize = g.partitionSize

	return cloned
}
