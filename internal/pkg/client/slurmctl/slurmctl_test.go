package slurmctl

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/wwarriner/slurm-status-tools/internal/pkg/slurm/decode"
	"github.com/wwarriner/slurm-status-tools/internal/pkg/slurm/fields"
)

const sampleNodes = `NodeName=c0001 Arch=x86_64 CoresPerSocket=24 CPUAlloc=12 CPUTot=48 CPULoad=12.03 Gres=gpu:a100:4 NodeAddr=c0001 NodeHostName=c0001 RealMemory=192000 AllocMem=98304 FreeMem=51200 State=MIXED
NodeName=c0002 Arch=x86_64 CoresPerSocket=24 CPUAlloc=0 CPUTot=48 CPULoad=0.01 Gres=(null) NodeAddr=c0002 NodeHostName=c0002 RealMemory=192000 AllocMem=0 FreeMem=190000 State=IDLE`

const sampleJobs = `JobId=101 JobName=train model UserId=user1(1000) JobState=RUNNING NumCPUs=16 NodeList=c0001 ExitCode=0:0 TimeLimit=2-00:00:00 SubmitTime=2023-06-01T08:00:00
JobId=102 JobName=idle job UserId=user2(1001) JobState=PENDING NumCPUs=4 NodeList=(null) ExitCode=0:0 TimeLimit=08:00:00 SubmitTime=2023-06-01T09:30:00`

const sampleQOS = `Name|Priority|MaxWall|MaxTRESPU|UsageFactor
normal|0|||1.000000
gpu|10|2-00:00:00|cpu=256,gres/gpu=8|1.000000`

// helper: build fake exec that returns output based on args
func fakeExec(outputFn func(name string, args ...string) string) ExecCommandFunc {
	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		// Use sh -c to emit prebuilt content
		script := fmt.Sprintf("cat <<'EOF'\n%s\nEOF\n", outputFn(name, args...))
		return exec.CommandContext(ctx, "sh", "-c", script)
	}
}

func testClient(output string) *Client {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return (&Client{}).Set(fakeExec(func(string, ...string) string { return output }), logger)
}

func TestGetNodes(t *testing.T) {
	c := testClient(sampleNodes)
	nodes, err := c.GetNodes(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(nodes))
	}

	n := nodes[0]
	if n.Raw("nodename") != "c0001" {
		t.Errorf("nodename = %q", n.Raw("nodename"))
	}
	if mem, ok := n["realmemory"].Value.(*int64); !ok || *mem != 192000*(1<<20) {
		t.Errorf("realmemory = %+v", n["realmemory"])
	}
	if g, ok := n["gres"].Value.(*decode.GresSpec); !ok || g.Name != "gpu:a100" || g.Count != 4 {
		t.Errorf("gres = %+v", n["gres"])
	}
	// "(null)" is not a valid gres token; the decode fails but the record survives
	if nodes[1]["gres"].Status != fields.StatusFailed {
		t.Errorf("gres of idle node = %+v", nodes[1]["gres"])
	}
}

func TestGetJobs(t *testing.T) {
	c := testClient(sampleJobs)
	jobs, err := c.GetJobs(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	j := jobs[0]
	if j.Raw("jobname") != "train model" {
		t.Errorf("embedded space lost: jobname = %q", j.Raw("jobname"))
	}
	if d, ok := j["timelimit"].Value.(*time.Duration); !ok || *d != 48*time.Hour {
		t.Errorf("timelimit = %+v", j["timelimit"])
	}
	if ec, ok := j["exitcode"].Value.(*decode.ExitCode); !ok || ec.Code != 0 || ec.Signal != 0 {
		t.Errorf("exitcode = %+v", j["exitcode"])
	}
}

func TestGetRunningJobs(t *testing.T) {
	c := testClient(sampleJobs)
	jobs, err := c.GetRunningJobs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 running job, got %d", len(jobs))
	}
	if jobs[0].Raw("jobid") != "101" {
		t.Errorf("jobid = %q", jobs[0].Raw("jobid"))
	}
}

func TestGetQOS(t *testing.T) {
	c := testClient(sampleQOS)
	qoses, err := c.GetQOS(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qoses) != 2 {
		t.Fatalf("expected 2 qos records, got %d", len(qoses))
	}
	gpu := qoses[1]
	if gpu.Raw("name") != "gpu" {
		t.Errorf("name = %q", gpu.Raw("name"))
	}
	spec, ok := gpu["maxtrespu"].Value.(*decode.TresSpec)
	if !ok {
		t.Fatalf("maxtrespu = %+v", gpu["maxtrespu"])
	}
	if n := spec.GresCount("gpu"); n == nil || *n != 8 {
		t.Errorf("maxtrespu gpu = %v", n)
	}
}

func TestIsJobRunning(t *testing.T) {
	c := testClient("   101 debug train_mo user1  R       1:30      1 c0001")
	running, err := c.IsJobRunning(context.Background(), "101")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !running {
		t.Error("expected job to be running")
	}

	c = testClient("")
	running, err = c.IsJobRunning(context.Background(), "999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if running {
		t.Error("expected job not to be running")
	}
}
