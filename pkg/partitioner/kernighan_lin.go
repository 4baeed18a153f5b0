package partitioner

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lintang-b-s/netlist-kl-partitioner/pkg"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/datastructure"
	"go.uber.org/zap"
)

var ErrInsufficientVertices = errors.New("partitioner: graph has fewer than two vertices")

type State uint8

const (
	StateInitialized State = iota
	StateImproving
	StateConverged
)

type Config struct {
	// MaxPasses bounds the number of improvement passes.
	MaxPasses int

	// AlternateDonor restricts which side may donate the next move when the
	// partition sizes are equal: instead of taking the global maximum gain
	// across both sides, the donor side alternates between A and B. When the
	// sizes differ the larger side always donates, regardless of this flag.
	AlternateDonor bool

	// Checkpoint, when non-nil, is consulted between passes (never between
	// individual moves). Returning true stops the run early with the best
	// partition found so far.
	Checkpoint func() bool

	// GainWorkers is the worker count for the bulk gain-table rebuild at the
	// start of each pass. Zero means the default.
	GainWorkers int
}

func DefaultConfig() Config {
	return Config{
		MaxPasses:   pkg.DEFAULT_MAX_PASSES,
		GainWorkers: pkg.DEFAULT_GAIN_BUILD_WORKERS,
	}
}

// KernighanLin drives gain-based local search to a local-minimum cutset.
// [An Efficient Heuristic Procedure for Partitioning Graphs, Kernighan & Lin, 1970]
//
// This is the single-move variant: instead of the textbook paired swap it
// sorts the candidate gains descending and moves only the head vertex each
// iteration, stopping as soon as the best gain is non-positive. A profitable
// swap still happens as two consecutive single moves, because after an
// unbalancing move the opposite side is forced to donate next.
type KernighanLin struct {
	graph  *datastructure.Graph
	config Config
	logger *zap.Logger
	state  State
}

func NewKernighanLin(graph *datastructure.Graph, config Config, logger *zap.Logger) *KernighanLin {
	if config.MaxPasses <= 0 {
		config.MaxPasses = pkg.DEFAULT_MAX_PASSES
	}
	if config.GainWorkers <= 0 {
		config.GainWorkers = pkg.DEFAULT_GAIN_BUILD_WORKERS
	}
	return &KernighanLin{
		graph:  graph,
		config: config,
		logger: logger,
		state:  StateInitialized,
	}
}

func (kl *KernighanLin) State() State {
	return kl.state
}

type moveCandidate struct {
	vertex datastructure.Index
	id     int
	gain   int
}

// Partition runs the improvement loop until no profitable move remains or
// the pass bound is hit. A graph that already carries a total partition
// assignment (e.g. the output of a previous run) is taken as the initial
// state; otherwise the deterministic insertion-order split is applied first.
func (kl *KernighanLin) Partition() (*Bisection, error) {
	n := kl.graph.NumberOfVertices()
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientVertices, n)
	}

	if !kl.graph.Partitioned() {
		kl.graph.InitialPartition()
	}
	kl.state = StateInitialized

	if kl.graph.NumberOfEdges() == 0 {
		// nothing can cross, any balanced split is optimal
		kl.state = StateConverged
		return NewBisection(kl.graph, 0, 0, 0), nil
	}

	var (
		cutset     = kl.graph.CutsetWeight()
		gains      = newGainTable(kl.graph)
		locked     = make([]bool, n)
		journal    = make([]datastructure.Index, 0, n)
		lastDonor  = datastructure.PartitionNone
		bestCutset = cutset
		passes     = 0
		moves      = 0
		converged  = false
	)

	kl.state = StateImproving
	kl.logger.Info("starting improvement loop",
		zap.Int("vertices", n),
		zap.Int("edges", kl.graph.NumberOfEdges()),
		zap.Int("initialCutset", cutset))

	for passes < kl.config.MaxPasses && !converged {
		gains.rebuildAll(kl.config.GainWorkers)
		for u := range locked {
			locked[u] = false
		}
		journal = journal[:0]

		// the state a pass rolls back to: best cutset seen at imbalance <= 1
		passBest := cutset
		bestMark := 0

		for {
			gains.refresh()

			head, ok := kl.selectMove(gains, locked, lastDonor)
			if !ok {
				// every candidate vertex has been moved once, pass over
				break
			}
			if head.gain <= 0 {
				converged = true
				break
			}

			prev := kl.graph.VertexLabel(head.vertex)
			kl.graph.SetVertexLabel(head.vertex, datastructure.OppositePartition(prev))
			cutset -= head.gain
			locked[head.vertex] = true
			journal = append(journal, head.vertex)
			lastDonor = prev
			moves++

			gains.markStale(head.vertex)
			kl.graph.ForEachNeighbor(head.vertex, func(v datastructure.Index, _ int) {
				gains.markStale(v)
			})

			if kl.graph.Imbalance() <= 1 && cutset < passBest {
				passBest = cutset
				bestMark = len(journal)
			}

			kl.logger.Debug("moved vertex",
				zap.Int("id", head.id),
				zap.String("from", prev.String()),
				zap.Int("gain", head.gain),
				zap.Int("cutset", cutset))
		}

		// roll back every move past the best bookmarked state
		for i := len(journal) - 1; i >= bestMark; i-- {
			u := journal[i]
			kl.graph.SetVertexLabel(u, datastructure.OppositePartition(kl.graph.VertexLabel(u)))
		}
		cutset = passBest
		passes++

		kl.logger.Debug("pass finished",
			zap.Int("pass", passes),
			zap.Int("cutset", cutset),
			zap.Bool("converged", converged))

		if converged {
			break
		}
		if passBest >= bestCutset {
			// the pass achieved no improvement over the previous best
			converged = true
			break
		}
		bestCutset = passBest

		if kl.config.Checkpoint != nil && kl.config.Checkpoint() {
			kl.logger.Info("early termination requested, keeping best partition so far")
			break
		}
	}

	kl.state = StateConverged

	if recomputed := kl.graph.CutsetWeight(); recomputed != cutset {
		panic(fmt.Sprintf("partitioner: incremental cutset %d diverged from recomputation %d",
			cutset, recomputed))
	}

	kl.logger.Info("converged",
		zap.Int("cutset", cutset),
		zap.Int("passes", passes),
		zap.Int("moves", moves),
		zap.Int("partitionASize", kl.graph.PartitionSize(datastructure.PartitionA)),
		zap.Int("partitionBSize", kl.graph.PartitionSize(datastructure.PartitionB)))

	return NewBisection(kl.graph, cutset, passes, moves), nil
}

// selectMove gathers the unlocked vertices of the allowed donor side(s),
// sorts them by gain descending, and returns the head. Equal gains break
// toward the lowest external vertex id so runs are reproducible.
func (kl *KernighanLin) selectMove(gains *gainTable, locked []bool,
	lastDonor datastructure.PartitionLabel) (moveCandidate, bool) {

	donorA, donorB := kl.allowedDonors(lastDonor)

	candidates := make([]moveCandidate, 0, kl.graph.NumberOfVertices())
	kl.graph.ForEachVertices(func(v *datastructure.Vertex, u datastructure.Index) {
		if locked[u] {
			return
		}
		switch v.GetLabel() {
		case datastructure.PartitionA:
			if !donorA {
				return
			}
		case datastructure.PartitionB:
			if !donorB {
				return
			}
		default:
			panic(fmt.Sprintf("partitioner: vertex %d without partition label", v.GetID()))
		}
		candidates = append(candidates, moveCandidate{vertex: u, id: v.GetID(), gain: gains.gainOf(u)})
	})

	if len(candidates) == 0 {
		return moveCandidate{}, false
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].gain != candidates[j].gain {
			return candidates[i].gain > candidates[j].gain
		}
		return candidates[i].id < candidates[j].id
	})

	return candidates[0], true
}

// allowedDonors decides which side may give up a vertex. The larger side
// must donate whenever the sizes differ, keeping the near-equal split
// invariant reachable; at balanced states both sides compete unless donor
// alternation is configured.
func (kl *KernighanLin) allowedDonors(lastDonor datastructure.PartitionLabel) (donorA, donorB bool) {
	sizeA := kl.graph.PartitionSize(datastructure.PartitionA)
	sizeB := kl.graph.PartitionSize(datastructure.PartitionB)

	switch {
	case sizeA > sizeB:
		return true, false
	case sizeB > sizeA:
		return false, true
	default:
		if !kl.config.AlternateDonor {
			return true, true
		}
		if lastDonor == datastructure.PartitionA {
			return false, true
		}
		return true, false
	}
}
