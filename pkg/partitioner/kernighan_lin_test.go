package partitioner_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/datastructure"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/partitioner"
)

// KernighanLinSuite exercises the single-move engine. Note this is the
// documented deviation from the textbook algorithm: one vertex moves per
// iteration (the descending-sorted gain head), not a paired swap; a
// profitable swap materializes as two consecutive single moves because the
// donor side is forced to the larger partition after an unbalancing move.
type KernighanLinSuite struct {
	suite.Suite
}

func buildGraph(t require.TestingT, ids []int, edges [][3]int) *datastructure.Graph {
	g := datastructure.NewGraph()
	for _, id := range ids {
		require.NoError(t, g.AddVertex(id))
	}
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e[0], e[1], e[2]))
	}
	return g
}

func runPartition(t require.TestingT, g *datastructure.Graph, config partitioner.Config) *partitioner.Bisection {
	kl := partitioner.NewKernighanLin(g, config, zap.NewNop())
	bis, err := kl.Partition()
	require.NoError(t, err)
	require.Equal(t, partitioner.StateConverged, kl.State())
	return bis
}

// TestInsufficientVertices covers the undefined cases n=0 and n=1.
func (s *KernighanLinSuite) TestInsufficientVertices() {
	for _, ids := range [][]int{nil, {1}} {
		g := buildGraph(s.T(), ids, nil)
		kl := partitioner.NewKernighanLin(g, partitioner.DefaultConfig(), zap.NewNop())
		_, err := kl.Partition()
		require.ErrorIs(s.T(), err, partitioner.ErrInsufficientVertices)
	}
}

// TestZeroEdges verifies immediate convergence with cutset 0 for any split.
func (s *KernighanLinSuite) TestZeroEdges() {
	g := buildGraph(s.T(), []int{1, 2, 3, 4, 5}, nil)
	bis := runPartition(s.T(), g, partitioner.DefaultConfig())

	require.Equal(s.T(), 0, bis.GetCutsetWeight())
	require.Equal(s.T(), 0, bis.GetMoves())
	require.Len(s.T(), bis.GetPartitionA(), 3)
	require.Len(s.T(), bis.GetPartitionB(), 2)
}

// TestAlreadyOptimalSquare: {1,2}|{3,4} with heavy
// in-partition pairs is already optimal, so no move happens at all.
func (s *KernighanLinSuite) TestAlreadyOptimalSquare() {
	g := buildGraph(s.T(), []int{1, 2, 3, 4}, [][3]int{
		{1, 2, 2}, {3, 4, 2}, {1, 3, 1}, {2, 4, 1},
	})
	bis := runPartition(s.T(), g, partitioner.DefaultConfig())

	require.Equal(s.T(), 2, bis.GetCutsetWeight())
	require.Equal(s.T(), 0, bis.GetMoves())
	require.Equal(s.T(), []int{1, 2}, bis.GetPartitionA())
	require.Equal(s.T(), []int{3, 4}, bis.GetPartitionB())
}

// TestTwoTrianglesBridge: two triangles joined by one bridge edge must end
// up as the two triangles with cutset exactly 1, from both a matching and an
// interleaved insertion order.
func (s *KernighanLinSuite) TestTwoTrianglesBridge() {
	triangleEdges := [][3]int{
		{1, 2, 1}, {1, 3, 1}, {2, 3, 1},
		{4, 5, 1}, {4, 6, 1}, {5, 6, 1},
		{3, 4, 1},
	}

	// insertion order already matches the triangles: no move needed
	g := buildGraph(s.T(), []int{1, 2, 3, 4, 5, 6}, triangleEdges)
	bis := runPartition(s.T(), g, partitioner.DefaultConfig())
	require.Equal(s.T(), 1, bis.GetCutsetWeight())
	require.Equal(s.T(), 0, bis.GetMoves())

	// interleaved insertion order starts with cutset 5 and must recover
	g = buildGraph(s.T(), []int{1, 4, 2, 5, 3, 6}, triangleEdges)
	bis = runPartition(s.T(), g, partitioner.DefaultConfig())
	require.Equal(s.T(), 1, bis.GetCutsetWeight())
	require.ElementsMatch(s.T(), []int{1, 2, 3}, bis.GetPartitionA())
	require.ElementsMatch(s.T(), []int{4, 5, 6}, bis.GetPartitionB())
}

// TestImprovesToOptimal walks the two-single-moves-per-swap behavior: the
// heavy pairs (1,3) and (2,4) start split and must end up together.
func (s *KernighanLinSuite) TestImprovesToOptimal() {
	g := buildGraph(s.T(), []int{1, 2, 3, 4}, [][3]int{
		{1, 3, 3}, {2, 4, 3}, {1, 2, 1},
	})
	bis := runPartition(s.T(), g, partitioner.DefaultConfig())

	require.Equal(s.T(), 1, bis.GetCutsetWeight())
	require.Equal(s.T(), 2, bis.GetMoves())
	require.Equal(s.T(), []int{1, 3}, bis.GetPartitionA())
	require.Equal(s.T(), []int{2, 4}, bis.GetPartitionB())
}

// TestAlternateDonor reaches the same optimum through the alternating donor
// rule, with the sides flipped relative to the global-max selection.
func (s *KernighanLinSuite) TestAlternateDonor() {
	g := buildGraph(s.T(), []int{1, 2, 3, 4}, [][3]int{
		{1, 3, 3}, {2, 4, 3}, {1, 2, 1},
	})
	config := partitioner.DefaultConfig()
	config.AlternateDonor = true
	bis := runPartition(s.T(), g, config)

	require.Equal(s.T(), 1, bis.GetCutsetWeight())
	require.ElementsMatch(s.T(), []int{1, 3}, bis.GetPartitionB())
	require.ElementsMatch(s.T(), []int{2, 4}, bis.GetPartitionA())
}

// TestTwoVertices: the only balanced split of K2 carries the edge weight,
// and the tempting move to an empty side must be rolled back.
func (s *KernighanLinSuite) TestTwoVertices() {
	g := buildGraph(s.T(), []int{1, 2}, [][3]int{{1, 2, 7}})
	bis := runPartition(s.T(), g, partitioner.DefaultConfig())

	require.Equal(s.T(), 7, bis.GetCutsetWeight())
	require.Equal(s.T(), []int{1}, bis.GetPartitionA())
	require.Equal(s.T(), []int{2}, bis.GetPartitionB())
}

// TestBalanceAndCutsetConsistency checks the structural properties on a
// larger graph: near-equal sizes, total disjoint membership, and agreement
// between the tracked cutset and a from-scratch recomputation.
func (s *KernighanLinSuite) TestBalanceAndCutsetConsistency() {
	ids := []int{10, 11, 12, 13, 14, 15, 16, 17, 18}
	edges := [][3]int{
		{10, 11, 4}, {11, 12, 1}, {12, 13, 5}, {13, 14, 2},
		{14, 15, 6}, {15, 16, 1}, {16, 17, 3}, {17, 18, 2},
		{18, 10, 1}, {10, 14, 2}, {11, 15, 1}, {12, 16, 4},
	}
	g := buildGraph(s.T(), ids, edges)
	bis := runPartition(s.T(), g, partitioner.DefaultConfig())

	require.GreaterOrEqual(s.T(), bis.GetCutsetWeight(), 0)
	require.Equal(s.T(), bis.GetCutsetWeight(), g.CutsetWeight())

	sizeA, sizeB := len(bis.GetPartitionA()), len(bis.GetPartitionB())
	require.LessOrEqual(s.T(), sizeA-sizeB, 1)
	require.LessOrEqual(s.T(), sizeB-sizeA, 1)

	all := append(append([]int{}, bis.GetPartitionA()...), bis.GetPartitionB()...)
	require.ElementsMatch(s.T(), ids, all)
}

// TestDeterminism: identical input graphs produce identical results.
func (s *KernighanLinSuite) TestDeterminism() {
	build := func() *datastructure.Graph {
		return buildGraph(s.T(), []int{1, 4, 2, 5, 3, 6}, [][3]int{
			{1, 2, 1}, {1, 3, 1}, {2, 3, 1},
			{4, 5, 1}, {4, 6, 1}, {5, 6, 1},
			{3, 4, 1},
		})
	}
	first := runPartition(s.T(), build(), partitioner.DefaultConfig())
	second := runPartition(s.T(), build(), partitioner.DefaultConfig())

	require.Equal(s.T(), first.GetCutsetWeight(), second.GetCutsetWeight())
	require.Equal(s.T(), first.GetPartitionA(), second.GetPartitionA())
	require.Equal(s.T(), first.GetPartitionB(), second.GetPartitionB())
}

// TestIdempotence: a converged partition is a fixed point, rerunning on the
// same graph must not change labels or reduce the cutset.
func (s *KernighanLinSuite) TestIdempotence() {
	g := buildGraph(s.T(), []int{1, 4, 2, 5, 3, 6}, [][3]int{
		{1, 2, 1}, {1, 3, 1}, {2, 3, 1},
		{4, 5, 1}, {4, 6, 1}, {5, 6, 1},
		{3, 4, 1},
	})
	first := runPartition(s.T(), g, partitioner.DefaultConfig())
	// the graph keeps its converged labels, so the rerun starts from them
	second := runPartition(s.T(), g, partitioner.DefaultConfig())

	require.Equal(s.T(), first.GetCutsetWeight(), second.GetCutsetWeight())
	require.Equal(s.T(), first.GetPartitionA(), second.GetPartitionA())
	require.Equal(s.T(), first.GetPartitionB(), second.GetPartitionB())
}

// TestCheckpointBetweenPasses: an early-stop request is consulted between
// passes only and must never corrupt the returned partition.
func (s *KernighanLinSuite) TestCheckpointBetweenPasses() {
	g := buildGraph(s.T(), []int{1, 2, 3, 4}, [][3]int{
		{1, 3, 3}, {2, 4, 3}, {1, 2, 1},
	})
	calls := 0
	config := partitioner.DefaultConfig()
	config.Checkpoint = func() bool {
		calls++
		return true
	}
	bis := runPartition(s.T(), g, config)

	require.Equal(s.T(), 1, bis.GetCutsetWeight())
	require.LessOrEqual(s.T(), calls, 1)
}

// TestMaxPassesBound: a pass cap of one still returns a valid bisection.
func (s *KernighanLinSuite) TestMaxPassesBound() {
	g := buildGraph(s.T(), []int{1, 4, 2, 5, 3, 6}, [][3]int{
		{1, 2, 1}, {1, 3, 1}, {2, 3, 1},
		{4, 5, 1}, {4, 6, 1}, {5, 6, 1},
		{3, 4, 1},
	})
	config := partitioner.DefaultConfig()
	config.MaxPasses = 1
	bis := runPartition(s.T(), g, config)

	require.Equal(s.T(), 1, bis.GetPasses())
	require.Equal(s.T(), bis.GetCutsetWeight(), g.CutsetWeight())
}

func TestKernighanLinSuite(t *testing.T) {
	suite.Run(t, new(KernighanLinSuite))
}
