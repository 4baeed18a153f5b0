package partitioner

import (
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/concurrent"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/datastructure"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/util"
)

// gainTable holds, per vertex, the signed cut-weight reduction its move to
// the opposite partition would yield:
//
//	gain(v) = sum of weights to the opposite partition - sum of weights to its own
//
// Entries touched by a move are marked stale and recomputed lazily before the
// next selection, never left stale across a selection.
type gainTable struct {
	graph *datastructure.Graph
	gains []int
	stale []bool
}

func newGainTable(graph *datastructure.Graph) *gainTable {
	n := graph.NumberOfVertices()
	return &gainTable{
		graph: graph,
		gains: make([]int, n),
		stale: make([]bool, n),
	}
}

func (gt *gainTable) computeGain(u datastructure.Index) int {
	own := gt.graph.VertexLabel(u)
	gain := 0
	gt.graph.ForEachNeighbor(u, func(v datastructure.Index, weight int) {
		if gt.graph.VertexLabel(v) != own {
			gain += weight
		} else {
			gain -= weight
		}
	})
	return gain
}

type vertexGain struct {
	vertex datastructure.Index
	gain   int
}

// rebuildAll recomputes every gain. Large graphs fan the computation out over
// the worker pool into a fresh buffer that is swapped in afterwards; the
// improvement loop itself stays sequential.
func (gt *gainTable) rebuildAll(numWorkers int) {
	n := gt.graph.NumberOfVertices()

	if n < pkg.PARALLEL_GAIN_BUILD_MIN_VERTICES || numWorkers <= 1 {
		for u := 0; u < n; u++ {
			gt.gains[u] = gt.computeGain(datastructure.Index(u))
			gt.stale[u] = false
		}
		return
	}

	wp := concurrent.NewWorkerPool[datastructure.Index, vertexGain](util.MinInt(numWorkers, n), n)
	wp.Start(func(u datastructure.Index) vertexGain {
		return vertexGain{vertex: u, gain: gt.computeGain(u)}
	})
	for u := 0; u < n; u++ {
		wp.AddJob(datastructure.Index(u))
	}
	wp.Close()
	wp.Wait()

	fresh := make([]int, n)
	for res := range wp.CollectResults() {
		fresh[res.vertex] = res.gain
	}

	gt.gains = fresh
	for u := range gt.stale {
		gt.stale[u] = false
	}
}

// refresh recomputes only the entries marked stale since the last move.
func (gt *gainTable) refresh() {
	for u := range gt.stale {
		if gt.stale[u] {
			gt.gains[u] = gt.computeGain(datastructure.Index(u))
			gt.stale[u] = false
		}
	}
}

func (gt *gainTable) gainOf(u datastructure.Index) int {
	return gt.gains[u]
}

func (gt *gainTable) markStale(u datastructure.Index) {
	gt.stale[u] = true
}
