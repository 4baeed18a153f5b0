package partitioner

import (
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/datastructure"
)

// Bisection is the immutable result of a partitioning run: the final label
// of every vertex, the member ids of both sides in insertion order, the cut
// weight, and how much work the improvement loop did.
type Bisection struct {
	labels       []datastructure.PartitionLabel
	partitionA   []int
	partitionB   []int
	cutsetWeight int
	passes       int
	moves        int
}

func NewBisection(graph *datastructure.Graph, cutsetWeight, passes, moves int) *Bisection {
	labels := make([]datastructure.PartitionLabel, graph.NumberOfVertices())
	graph.ForEachVertices(func(v *datastructure.Vertex, u datastructure.Index) {
		labels[u] = v.GetLabel()
	})

	return &Bisection{
		labels:       labels,
		partitionA:   graph.MemberIDs(datastructure.PartitionA),
		partitionB:   graph.MemberIDs(datastructure.PartitionB),
		cutsetWeight: cutsetWeight,
		passes:       passes,
		moves:        moves,
	}
}

func (b *Bisection) GetLabel(u datastructure.Index) datastructure.PartitionLabel {
	return b.labels[u]
}

func (b *Bisection) GetPartitionA() []int {
	return b.partitionA
}

func (b *Bisection) GetPartitionB() []int {
	return b.partitionB
}

func (b *Bisection) GetCutsetWeight() int {
	return b.cutsetWeight
}

func (b *Bisection) GetPasses() int {
	return b.passes
}

func (b *Bisection) GetMoves() int {
	return b.moves
}
