package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/logger"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/netlistparser"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/partitioner"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var (
	input          string
	output         string
	jsonOutput     string
	maxPasses      int
	alternateDonor bool
	seed           uint64
)

func main() {
	pflag.StringVarP(&input, "input", "i", "", "path to the netlist file (.net or .net.bz2)")
	pflag.StringVarP(&output, "output", "o", "", "path of the report file (default derived from the input name)")
	pflag.StringVar(&jsonOutput, "json", "", "also write a JSON report to this path")
	pflag.IntVar(&maxPasses, "max-passes", 0, "bound on improvement passes (0 = default)")
	pflag.BoolVar(&alternateDonor, "alternate-donor", false, "alternate the donor side between balanced states")
	pflag.Uint64Var(&seed, "seed", 0, "use a seeded random initial partition instead of insertion order")
	pflag.Parse()

	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if input == "" {
		log.Fatal("missing required --input netlist file")
	}

	parser := netlistparser.NewParser(log)
	graph, err := parser.Parse(input)
	if err != nil {
		log.Fatal("failed to parse netlist", zap.Error(err))
	}

	if pflag.CommandLine.Changed("seed") {
		graph.ShuffledInitialPartition(seed)
	} else {
		graph.InitialPartition()
	}

	config := partitioner.DefaultConfig()
	if maxPasses > 0 {
		config.MaxPasses = maxPasses
	}
	config.AlternateDonor = alternateDonor

	kl := partitioner.NewKernighanLin(graph, config, log)
	bisection, err := kl.Partition()
	if err != nil {
		log.Fatal("partitioning failed", zap.Error(err))
	}

	if output == "" {
		output = defaultOutputName(input)
	}
	if err := partitioner.SaveBisectionToFile(output, bisection); err != nil {
		log.Fatal("failed to write report", zap.Error(err))
	}
	if jsonOutput != "" {
		if err := partitioner.SaveBisectionJSON(jsonOutput, bisection); err != nil {
			log.Fatal("failed to write JSON report", zap.Error(err))
		}
	}

	log.Info("bisection written",
		zap.String("output", output),
		zap.Int("cutset", bisection.GetCutsetWeight()),
		zap.Int("partitionASize", len(bisection.GetPartitionA())),
		zap.Int("partitionBSize", len(bisection.GetPartitionB())))
}

func defaultOutputName(inputPath string) string {
	base := filepath.Base(inputPath)
	if dot := strings.Index(base, "."); dot != -1 {
		base = base[:dot]
	}
	return fmt.Sprintf("kernighan_lin_out_%s.txt", base)
}
