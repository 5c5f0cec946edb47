package report

import (
	"strconv"
	"strings"
)

// NodeGPUCounts tallies GPUs by model from a node's Gres field, e.g.
// "gpu:a100:4,gpu:v100:2" -> {a100: 4, v100: 2}. Tokens that are not a
// well-formed gpu:<name>:<count> triple are skipped, so decorated counts
// like "4(S:0-1)" do not contribute.
func NodeGPUCounts(gres string) map[string]int {
	counts := map[string]int{}
	for _, part := range strings.Split(gres, ",") {
		pieces := strings.SplitN(part, ":", 3)
		if len(pieces) != 3 || pieces[0] != "gpu" || pieces[1] == "" {
			continue
		}
		n, err := strconv.Atoi(pieces[2])
		if err != nil || n <= 0 {
			continue
		}
		counts[pieces[1]] += n
	}
	return counts
}

// JobGPUCount sums the gres/gpu entries of a TRES string, e.g.
// "cpu=8,mem=32G,gres/gpu=2" -> 2. Non-integer counts are skipped.
func JobGPUCount(tres string) int {
	const key = "gres/gpu="
	total := 0
	for _, part := range strings.Split(tres, ",") {
		rest, ok := strings.CutPrefix(part, key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(rest)
		if err != nil {
			continue
		}
		total += n
	}
	return total
}
