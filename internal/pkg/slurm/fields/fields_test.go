package fields

import (
	"testing"
	"time"

	"github.com/wwarriner/slurm-status-tools/internal/pkg/slurm/decode"
	"github.com/wwarriner/slurm-status-tools/internal/pkg/slurm/parse"
)

func TestApplyStatuses(t *testing.T) {
	table := Table{
		"exitcode":   Decode(strict(decode.ParseExitCode)),
		"submittime": Decode(safe(decode.ParseTimepoint)),
		"jobstate":   PassThrough,
		"batchflag":  WriteOnly,
		"dependency": NotImplemented,
	}
	rec := parse.Record{
		"exitcode":   "0:0",
		"submittime": "Unknown",
		"jobstate":   "RUNNING",
		"batchflag":  "1",
		"dependency": "afterok:100",
		"partition":  "gpu",
	}

	out := Apply(table, rec)

	f := out["exitcode"]
	if f.Status != StatusDecoded {
		t.Errorf("exitcode status = %v", f.Status)
	}
	if ec, ok := f.Value.(*decode.ExitCode); !ok || ec.Code != 0 {
		t.Errorf("exitcode value = %v", f.Value)
	}

	// a sentinel decodes to a typed nil but still counts as decoded
	f = out["submittime"]
	if f.Status != StatusDecoded {
		t.Errorf("submittime status = %v", f.Status)
	}
	if tp, ok := f.Value.(*time.Time); !ok || tp != nil {
		t.Errorf("submittime value = %v", f.Value)
	}

	if out["jobstate"].Status != StatusRaw || out["jobstate"].Value != "RUNNING" {
		t.Errorf("jobstate = %+v", out["jobstate"])
	}
	if _, present := out["batchflag"]; present {
		t.Error("write-only field should be dropped")
	}
	if out["dependency"].Status != StatusPending || out["dependency"].Raw != "afterok:100" {
		t.Errorf("dependency = %+v", out["dependency"])
	}
	// unknown fields pass through
	if out["partition"].Status != StatusRaw || out["partition"].Value != "gpu" {
		t.Errorf("partition = %+v", out["partition"])
	}
}

func TestApplyDecodeFailureKeepsRaw(t *testing.T) {
	table := Table{"exitcode": Decode(strict(decode.ParseExitCode))}
	out := Apply(table, parse.Record{"exitcode": "garbage", "jobid": "1"})

	f := out["exitcode"]
	if f.Status != StatusFailed {
		t.Errorf("status = %v", f.Status)
	}
	if f.Raw != "garbage" || f.Value != nil {
		t.Errorf("failed field should keep raw only: %+v", f)
	}
	// the rest of the record is unaffected
	if out["jobid"].Status != StatusRaw {
		t.Errorf("jobid = %+v", out["jobid"])
	}
}

func TestMerge(t *testing.T) {
	a := Table{"x": PassThrough, "y": WriteOnly}
	b := Table{"y": NotImplemented, "z": PassThrough}
	m := Merge(a, b)
	if len(m) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(m))
	}
	// later tables win
	if m["y"].Kind != KindNotImplemented {
		t.Errorf("y kind = %v", m["y"].Kind)
	}
	// inputs are not mutated
	if a["y"].Kind != KindWriteOnly {
		t.Error("Merge mutated its input")
	}
}

func TestJobsTable(t *testing.T) {
	rec := parse.Record{
		"jobid":            "12345",
		"jobname":          "train model",
		"exitcode":         "1:0",
		"ntaskspern:b:s:c": "0:*:*:24",
		"submittime":       "2023-06-01T08:00:00",
		"timelimit":        "2-00:00:00",
		"reqnodelist":      "c[0001-0002]",
		"mintmpdisknode":   "0",
		"requeue":          "1",
		"nodelistindices":  "0-1",
		"dependency":       "(null)",
	}
	out := Apply(Jobs, rec)

	if v, ok := out["jobid"].Value.(*int64); !ok || v == nil || *v != 12345 {
		t.Errorf("jobid = %+v", out["jobid"])
	}
	if out["jobname"].Status != StatusRaw {
		t.Errorf("jobname = %+v", out["jobname"])
	}
	if ec, ok := out["exitcode"].Value.(*decode.ExitCode); !ok || ec.Code != 1 {
		t.Errorf("exitcode = %+v", out["exitcode"])
	}
	if nt, ok := out["ntaskspern:b:s:c"].Value.(*decode.NTasksPerNBSC); !ok || *nt.PerCore != 24 {
		t.Errorf("ntaskspern:b:s:c = %+v", out["ntaskspern:b:s:c"])
	}
	if d, ok := out["timelimit"].Value.(*time.Duration); !ok || *d != 48*time.Hour {
		t.Errorf("timelimit = %+v", out["timelimit"])
	}
	if nl, ok := out["reqnodelist"].Value.(*decode.NodeList); !ok || nl.Count() != 2 {
		t.Errorf("reqnodelist = %+v", out["reqnodelist"])
	}
	// Requeue carries the inverted 0/1 literal convention
	if b, ok := out["requeue"].Value.(*bool); !ok || b == nil || *b {
		t.Errorf("requeue = %+v", out["requeue"])
	}
	if _, present := out["nodelistindices"]; present {
		t.Error("nodelistindices is write-only")
	}
	if out["dependency"].Status != StatusPending {
		t.Errorf("dependency = %+v", out["dependency"])
	}
}

func TestNodesTable(t *testing.T) {
	rec := parse.Record{
		"nodename":    "c0001",
		"realmemory":  "192000",
		"freemem":     "N/A",
		"cpuload":     "12.03",
		"gres":        "gpu:a100:4(S:0-1)",
		"state":       "MIXED",
		"currentwatts": "n/s",
	}
	out := Apply(Nodes, rec)

	if v, ok := out["realmemory"].Value.(*int64); !ok || *v != 192000*(1<<20) {
		t.Errorf("realmemory = %+v", out["realmemory"])
	}
	if out["freemem"].Status != StatusDecoded {
		t.Errorf("freemem sentinel should decode to nil: %+v", out["freemem"])
	}
	if f, ok := out["cpuload"].Value.(*float64); !ok || *f != 12.03 {
		t.Errorf("cpuload = %+v", out["cpuload"])
	}
	if g, ok := out["gres"].Value.(*decode.GresSpec); !ok || g.Count != 4 {
		t.Errorf("gres = %+v", out["gres"])
	}
	if out["state"].Value != "MIXED" {
		t.Errorf("state = %+v", out["state"])
	}
	if v, ok := out["currentwatts"].Value.(*int64); !ok || v != nil {
		t.Errorf("currentwatts = %+v", out["currentwatts"])
	}
}

func TestPartitionTable(t *testing.T) {
	rec := parse.Record{
		"partitionname": "gpu",
		"nodes":         "c[0101-0116]",
		"maxtime":       "14-00:00:00",
		"defmempercpu":  "UNLIMITED",
		"allowaccounts": "root,acct1,acct2",
		"default":       "no",
		"jobdefaults":   "DefMemPerGPU=8192",
	}
	out := Apply(PartitionUpdate, rec)

	if nl, ok := out["nodes"].Value.(*decode.NodeList); !ok || nl.Count() != 16 {
		t.Errorf("nodes = %+v", out["nodes"])
	}
	if d, ok := out["maxtime"].Value.(*time.Duration); !ok || *d != 14*24*time.Hour {
		t.Errorf("maxtime = %+v", out["maxtime"])
	}
	if v, ok := out["defmempercpu"].Value.(*int64); !ok || v != nil {
		t.Errorf("defmempercpu = %+v", out["defmempercpu"])
	}
	if l, ok := out["allowaccounts"].Value.([]string); !ok || len(l) != 3 || l[0] != "root" {
		t.Errorf("allowaccounts = %+v", out["allowaccounts"])
	}
	if b, ok := out["default"].Value.(*bool); !ok || b == nil || *b {
		t.Errorf("default = %+v", out["default"])
	}
	if kvs, ok := out["jobdefaults"].Value.([]decode.KeyValue); !ok || kvs[0].Key != "DefMemPerGPU" {
		t.Errorf("jobdefaults = %+v", out["jobdefaults"])
	}
}

func TestQOSTable(t *testing.T) {
	rec := parse.Record{
		"name":        "normal",
		"priority":    "10",
		"maxwall":     "2-00:00:00",
		"maxtrespu":   "cpu=256,mem=1024000,gres/gpu=8",
		"usagefactor": "1.000000",
		"preempt":     "low,scavenger",
		"grptres":     "",
	}
	out := Apply(QOSShow, rec)

	if v, ok := out["priority"].Value.(*int64); !ok || *v != 10 {
		t.Errorf("priority = %+v", out["priority"])
	}
	if d, ok := out["maxwall"].Value.(*time.Duration); !ok || *d != 48*time.Hour {
		t.Errorf("maxwall = %+v", out["maxwall"])
	}
	spec, ok := out["maxtrespu"].Value.(*decode.TresSpec)
	if !ok {
		t.Fatalf("maxtrespu = %+v", out["maxtrespu"])
	}
	if n := spec.GresCount("gpu"); n == nil || *n != 8 {
		t.Errorf("maxtrespu gpu = %v", n)
	}
	if l, ok := out["preempt"].Value.([]string); !ok || len(l) != 2 {
		t.Errorf("preempt = %+v", out["preempt"])
	}
	// empty TRES cells fail the decode but keep the raw value
	if out["grptres"].Status != StatusFailed {
		t.Errorf("grptres = %+v", out["grptres"])
	}
}
