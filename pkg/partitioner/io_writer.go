package partitioner

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// WriteBisection emits the plain report: cutset weight on the first line,
// then the member ids of partition A and partition B, space separated.
func WriteBisection(w io.Writer, bis *Bisection) error {
	if _, err := fmt.Fprintf(w, "%d\n", bis.GetCutsetWeight()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n", joinIDs(bis.GetPartitionA())); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n", joinIDs(bis.GetPartitionB())); err != nil {
		return err
	}
	return nil
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, " ")
}

func SaveBisectionToFile(filename string, bis *Bisection) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := WriteBisection(w, bis); err != nil {
		return err
	}
	return w.Flush()
}

type bisectionDocument struct {
	CutsetWeight int   `json:"cutset_weight"`
	PartitionA   []int `json:"partition_a"`
	PartitionB   []int `json:"partition_b"`
	Passes       int   `json:"passes"`
	Moves        int   `json:"moves"`
}

func SaveBisectionJSON(filename string, bis *Bisection) error {
	doc := bisectionDocument{
		CutsetWeight: bis.GetCutsetWeight(),
		PartitionA:   bis.GetPartitionA(),
		PartitionB:   bis.GetPartitionB(),
		Passes:       bis.GetPasses(),
		Moves:        bis.GetMoves(),
	}

	buf, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filename, buf, 0644)
}
