// sstatus prints cluster status tables from the Slurm command line tools.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	kingpin "github.com/alecthomas/kingpin/v2"
	"github.com/prometheus/common/version"

	"github.com/wwarriner/slurm-status-tools/internal/pkg/client/slurmctl"
	"github.com/wwarriner/slurm-status-tools/internal/pkg/report"
	"github.com/wwarriner/slurm-status-tools/internal/pkg/slurm/fields"
)

func main() {
	app := kingpin.New("sstatus", "Render Slurm cluster status tables.")
	var (
		format  = app.Flag("format", "Output format.").Short('f').Default("ascii").Envar("SSTATUS_FORMAT").Enum(report.StyleNames()...)
		timeout = app.Flag("timeout", "Slurm command timeout.").Default("30s").Envar("SSTATUS_TIMEOUT").Duration()

		nodesCmd = app.Command("nodes", "Per-partition node resource summary.")
		loadCmd  = app.Command("load", "Cluster load and occupancy metrics.")
		partsCmd = app.Command("partitions", "Partition overview with QoS per-user quotas.")
		qosCmd   = app.Command("qos", "QoS list from sacctmgr.")
	)
	app.Version(version.Print("sstatus"))
	app.HelpFlag.Short('h')
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	client := (&slurmctl.Client{}).Set(exec.CommandContext, logger)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	style, err := report.StyleByName(*format)
	if err != nil {
		app.Fatalf("%v", err)
	}

	table, err := buildTable(ctx, client, command, nodesCmd.FullCommand(),
		loadCmd.FullCommand(), partsCmd.FullCommand(), qosCmd.FullCommand())
	if err != nil {
		app.Fatalf("%v", err)
	}

	fmt.Print(style.Render(table, report.Options{}))
}

func buildTable(ctx context.Context, client *slurmctl.Client, command, nodesCmd, loadCmd, partsCmd, qosCmd string) (*report.Table, error) {
	switch command {
	case nodesCmd:
		nodes, err := client.GetNodes(ctx, "")
		if err != nil {
			return nil, err
		}
		return report.NodesSummary(nodes), nil

	case loadCmd:
		jobs, err := client.GetJobs(ctx, "")
		if err != nil {
			return nil, err
		}
		nodes, err := client.GetNodes(ctx, "")
		if err != nil {
			return nil, err
		}
		return report.Load(jobs, nodes), nil

	case partsCmd:
		parts, err := client.GetPartitions(ctx, "")
		if err != nil {
			return nil, err
		}
		qoses, err := client.GetQOS(ctx)
		if err != nil {
			return nil, err
		}
		return report.Partitions(parts, qoses), nil

	case qosCmd:
		qoses, err := client.GetQOS(ctx)
		if err != nil {
			return nil, err
		}
		return qosTable(qoses), nil
	}
	return nil, fmt.Errorf("unknown command %q", command)
}

func qosTable(qoses []fields.DecodedRecord) *report.Table {
	t := report.New("name", "priority", "grace_time", "max_wall", "grp_tres", "max_tres_per_user", "preempt_mode")
	for _, rec := range qoses {
		t.Append(
			rec.Raw("name"),
			rec.Raw("priority"),
			rec.Raw("gracetime"),
			rec.Raw("maxwall"),
			rec.Raw("grptres"),
			rec.Raw("maxtrespu"),
			rec.Raw("preemptmode"),
		)
	}
	return t
}
