package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/wwarriner/slurm-status-tools/internal/pkg/slurm/fields"
)

// Resources tallies the schedulable components of one node or a group of
// nodes: cores and GPUs as counts, memory in bytes.
type Resources struct {
	Nodes       int
	Cores       int
	CoresAlloc  int
	Memory      int64
	MemoryAlloc int64
	GPUs        int
	GPUsAlloc   int
}

// Add accumulates another tally into r.
func (r *Resources) Add(other Resources) {
	r.Nodes += other.Nodes
	r.Cores += other.Cores
	r.CoresAlloc += other.CoresAlloc
	r.Memory += other.Memory
	r.MemoryAlloc += other.MemoryAlloc
	r.GPUs += other.GPUs
	r.GPUsAlloc += other.GPUsAlloc
}

// NodeResources extracts the component tally of one decoded node record.
// Core counts come from CPUTot/CPUAlloc, memory from the decoded
// RealMemory/AllocMem, GPUs from Gres and AllocTRES. Missing or undecodable
// fields count as zero.
func NodeResources(rec fields.DecodedRecord) Resources {
	res := Resources{Nodes: 1}
	res.Cores = rawInt(rec, "cputot")
	res.CoresAlloc = rawInt(rec, "cpualloc")
	res.Memory = decodedBytes(rec, "realmemory")
	res.MemoryAlloc = decodedBytes(rec, "allocmem")
	for _, n := range NodeGPUCounts(rec.Raw("gres")) {
		res.GPUs += n
	}
	res.GPUsAlloc = JobGPUCount(rec.Raw("alloctres"))
	return res
}

// Node base states considered allocated or dead. Flags appended with "+"
// ("MIXED+DRAIN") are ignored for this grouping.
var (
	allocatedNodeStates = map[string]bool{"ALLOCATED": true, "ALLOC": true, "MIXED": true}
	downNodeStates      = map[string]bool{"DOWN": true, "ERROR": true, "FUTURE": true, "UNKNOWN": true}
)

func nodeBaseState(rec fields.DecodedRecord) string {
	state := strings.ToUpper(rec.Raw("state"))
	base, _, _ := strings.Cut(state, "+")
	return base
}

// NodesSummary tallies node resources per partition, with an "all" row for
// the whole cluster. A node listed in several partitions counts toward each.
func NodesSummary(nodes []fields.DecodedRecord) *Table {
	perPartition := map[string]*Resources{}
	var all Resources
	for _, rec := range nodes {
		res := NodeResources(rec)
		all.Add(res)
		for _, name := range strings.Split(rec.Raw("partitions"), ",") {
			if name == "" {
				continue
			}
			if perPartition[name] == nil {
				perPartition[name] = &Resources{}
			}
			perPartition[name].Add(res)
		}
	}

	names := make([]string, 0, len(perPartition))
	for name := range perPartition {
		names = append(names, name)
	}
	sort.Strings(names)

	t := New("partition", "nodes", "cores", "cores_alloc",
		"memory_gb", "memory_alloc_gb", "gpus", "gpus_alloc")
	for _, name := range names {
		appendResourcesRow(t, name, *perPartition[name])
	}
	appendResourcesRow(t, "all", all)
	return t
}

func appendResourcesRow(t *Table, name string, r Resources) {
	t.Append(name,
		strconv.Itoa(r.Nodes),
		strconv.Itoa(r.Cores),
		strconv.Itoa(r.CoresAlloc),
		gigabytes(r.Memory),
		gigabytes(r.MemoryAlloc),
		strconv.Itoa(r.GPUs),
		strconv.Itoa(r.GPUsAlloc))
}

// Job states counted as active.
var activeJobStates = map[string]bool{"RUNNING": true, "PENDING": true}

// Load reports the live state of the cluster: active users and jobs, node
// counts by state group, and component occupancy. Rendered as metric/value
// pairs so every style prints it the same way.
func Load(jobs, nodes []fields.DecodedRecord) *Table {
	users := map[string]bool{}
	activeJobs := 0
	for _, rec := range jobs {
		if !activeJobStates[strings.ToUpper(rec.Raw("jobstate"))] {
			continue
		}
		activeJobs++
		if user := rec.Raw("userid"); user != "" {
			users[user] = true
		}
	}

	var total Resources
	allocated, idle, down := 0, 0, 0
	for _, rec := range nodes {
		total.Add(NodeResources(rec))
		switch base := nodeBaseState(rec); {
		case allocatedNodeStates[base]:
			allocated++
		case base == "IDLE":
			idle++
		case downNodeStates[base]:
			down++
		}
	}

	t := New("metric", "value")
	t.Append("active_users", strconv.Itoa(len(users)))
	t.Append("active_jobs", strconv.Itoa(activeJobs))
	t.Append("nodes", strconv.Itoa(total.Nodes))
	t.Append("nodes_allocated", strconv.Itoa(allocated))
	t.Append("nodes_idle", strconv.Itoa(idle))
	t.Append("nodes_down", strconv.Itoa(down))
	t.Append("cores", strconv.Itoa(total.Cores))
	t.Append("cores_allocated", strconv.Itoa(total.CoresAlloc))
	t.Append("core_occupancy_pct", percent(int64(total.CoresAlloc), int64(total.Cores)))
	t.Append("memory_gb", gigabytes(total.Memory))
	t.Append("memory_allocated_gb", gigabytes(total.MemoryAlloc))
	t.Append("memory_occupancy_pct", percent(total.MemoryAlloc, total.Memory))
	t.Append("gpus", strconv.Itoa(total.GPUs))
	t.Append("gpus_allocated", strconv.Itoa(total.GPUsAlloc))
	t.Append("gpu_occupancy_pct", percent(int64(total.GPUsAlloc), int64(total.GPUs)))
	return t
}

// Partitions reports each partition's scheduling envelope, with the per-user
// TRES quotas of its QoS merged in from the QoS records.
func Partitions(parts, qoses []fields.DecodedRecord) *Table {
	quotaByQOS := map[string]string{}
	for _, rec := range qoses {
		if name := rec.Raw("name"); name != "" {
			quotaByQOS[name] = rec.Raw("maxtrespu")
		}
	}

	t := New("partition", "state", "nodes", "time_limit", "priority_tier",
		"qos", "max_cpus_per_user", "max_mem_per_user", "max_gpus_per_user")
	for _, rec := range parts {
		qos := rec.Raw("qos")
		quota := quotaByQOS[qos]
		t.Append(
			rec.Raw("partitionname"),
			rec.Raw("state"),
			rec.Raw("nodes"),
			rec.Raw("maxtime"),
			rec.Raw("prioritytier"),
			qos,
			tresComponent(quota, "cpu"),
			tresComponent(quota, "mem"),
			tresComponent(quota, "gres/gpu"),
		)
	}
	return t
}

// tresComponent plucks one key's value out of a raw TRES string.
func tresComponent(tres, key string) string {
	for _, part := range strings.Split(tres, ",") {
		if rest, ok := strings.CutPrefix(part, key+"="); ok {
			return rest
		}
	}
	return ""
}

func rawInt(rec fields.DecodedRecord, key string) int {
	n, err := strconv.Atoi(rec.Raw(key))
	if err != nil {
		return 0
	}
	return n
}

// decodedBytes reads a field decoded by the MB-to-bytes decoders, 0 when
// absent or failed.
func decodedBytes(rec fields.DecodedRecord, key string) int64 {
	if v, ok := rec[key].Value.(*int64); ok && v != nil {
		return *v
	}
	return 0
}

func gigabytes(bytes int64) string {
	return strconv.FormatFloat(float64(bytes)/(1<<30), 'f', 1, 64)
}

func percent(part, whole int64) string {
	if whole == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", 100*float64(part)/float64(whole))
}
