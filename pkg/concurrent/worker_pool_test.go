package concurrent_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/concurrent"
)

func TestWorkerPoolProcessesAllJobs(t *testing.T) {
	const jobs = 100

	wp := concurrent.NewWorkerPool[int, int](4, jobs)
	wp.Start(func(job int) int { return job * job })
	for i := 0; i < jobs; i++ {
		wp.AddJob(i)
	}
	wp.Close()
	wp.Wait()

	seen := make(map[int]bool, jobs)
	for res := range wp.CollectResults() {
		seen[res] = true
	}

	require.Len(t, seen, jobs)
	for i := 0; i < jobs; i++ {
		require.True(t, seen[i*i])
	}
}
