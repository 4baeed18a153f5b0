package pkg

const (
	// default weight for a netlist edge without an explicit weight column
	UNIT_EDGE_WEIGHT = 1

	// safety bound on the number of improvement passes, against degenerate cycling
	DEFAULT_MAX_PASSES = 32

	// below this vertex count a full gain-table rebuild is cheaper done sequentially
	PARALLEL_GAIN_BUILD_MIN_VERTICES = 2048
	DEFAULT_GAIN_BUILD_WORKERS       = 8
)
