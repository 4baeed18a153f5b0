package netlistparser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/datastructure"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var ErrMalformedLine = errors.New("netlistparser: malformed netlist line")

// Parser reads a netlist description into a graph. One edge per line:
//
//	<leftId> <rightId> [weight]
//
// Ids are integers, the optional weight a positive integer (default 1).
// Blank lines and lines starting with '#' are skipped. Vertices register in
// first-seen order, which is the order the deterministic initial split uses.
// Files ending in .bz2 are bzip2-compressed.
type Parser struct {
	logger *zap.Logger
}

func NewParser(logger *zap.Logger) *Parser {
	return &Parser{logger: logger}
}

func (p *Parser) Parse(filename string) (*datastructure.Graph, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(filename, ".bz2") {
		bz, err := bzip2.NewReader(f, nil)
		if err != nil {
			return nil, err
		}
		defer bz.Close()
		r = bz
	}

	start := time.Now()
	graph, err := p.parseReader(r)
	if err != nil {
		return nil, err
	}

	p.logger.Info("parsed netlist",
		zap.String("file", filename),
		zap.Int("vertices", graph.NumberOfVertices()),
		zap.Int("edges", graph.NumberOfEdges()),
		zap.Duration("took", time.Since(start)))

	return graph, nil
}

// parseReader scans the whole input before failing, so a single run reports
// every bad line instead of the first one.
func (p *Parser) parseReader(r io.Reader) (*datastructure.Graph, error) {
	graph := datastructure.NewGraph()

	var parseErr error
	scanner := bufio.NewScanner(r)
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		leftID, rightID, weight, err := parseEdgeLine(line)
		if err != nil {
			parseErr = multierr.Append(parseErr, fmt.Errorf("line %d: %w", lineNumber, err))
			continue
		}

		for _, id := range []int{leftID, rightID} {
			if _, seen := graph.IndexOf(id); !seen {
				if err := graph.AddVertex(id); err != nil {
					parseErr = multierr.Append(parseErr, fmt.Errorf("line %d: %w", lineNumber, err))
				}
			}
		}

		if err := graph.AddEdge(leftID, rightID, weight); err != nil {
			parseErr = multierr.Append(parseErr, fmt.Errorf("line %d: %w", lineNumber, err))
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if parseErr != nil {
		return nil, parseErr
	}

	return graph, nil
}

func parseEdgeLine(line string) (leftID, rightID, weight int, err error) {
	tokens := strings.Fields(line)
	if len(tokens) != 2 && len(tokens) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: expected 2 or 3 fields, got %d", ErrMalformedLine, len(tokens))
	}

	leftID, err = strconv.Atoi(tokens[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: left id %q", ErrMalformedLine, tokens[0])
	}
	rightID, err = strconv.Atoi(tokens[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: right id %q", ErrMalformedLine, tokens[1])
	}

	weight = pkg.UNIT_EDGE_WEIGHT
	if len(tokens) == 3 {
		weight, err = strconv.Atoi(tokens[2])
		if err != nil {
			return 0, 0, 0, fmt.Errorf("%w: weight %q", ErrMalformedLine, tokens[2])
		}
	}

	return leftID, rightID, weight, nil
}
