package slurmctl

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/wwarriner/slurm-status-tools/internal/pkg/slurm/decode"
	"github.com/wwarriner/slurm-status-tools/internal/pkg/slurm/fields"
	"github.com/wwarriner/slurm-status-tools/internal/pkg/slurm/parse"
)

// Package-level default Client for convenience wiring.
var defaultClient *Client

// SetDefault sets the package-level default slurmctl Client.
func SetDefault(c *Client) { defaultClient = c }

// Default returns the package-level default slurmctl Client.
func Default() *Client { return defaultClient }

// ExecCommandFunc 定义 exec.CommandContext 的函数签名，方便 mock 测试.
type ExecCommandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// Client 提供使用命令与 slurmctld/slurmdbd 交互的功能. Entity output from
// scontrol is pulled in --oneliner form and decoded through the field
// tables; sacctmgr and sacct output is pulled in --parsable2 form.
type Client struct {
	execCommand ExecCommandFunc
	logger      *slog.Logger
}

func (c *Client) Set(exec ExecCommandFunc, logger *slog.Logger) *Client {
	c.execCommand = exec
	c.logger = logger
	return c
}

const parsableDelimiter = "|"

// GetJobs 获取作业详情, 通过执行 scontrol show jobs --all --details --oneliner 实现.
// jobid 为空时返回全部作业.
func (c *Client) GetJobs(ctx context.Context, jobid string) ([]fields.DecodedRecord, error) {
	return c.getEntities(ctx, "jobs", jobid, fields.Jobs)
}

// GetNodes 获取节点详情, 通过执行 scontrol show nodes --all --details --oneliner 实现.
// node 为空时返回全部节点.
func (c *Client) GetNodes(ctx context.Context, node string) ([]fields.DecodedRecord, error) {
	return c.getEntities(ctx, "nodes", node, fields.Nodes)
}

// GetPartitions 获取分区详情, 通过执行 scontrol show partitions --all --details --oneliner 实现.
// partition 为空时返回全部分区.
func (c *Client) GetPartitions(ctx context.Context, partition string) ([]fields.DecodedRecord, error) {
	return c.getEntities(ctx, "partitions", partition, fields.PartitionUpdate)
}

func (c *Client) getEntities(ctx context.Context, entity, id string, table fields.Table) ([]fields.DecodedRecord, error) {
	args := []string{"show", entity, "--all", "--details", "--oneliner"}
	if id != "" {
		args = append(args, id)
	}
	cmd := c.execCommand(ctx, "scontrol", args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		c.logger.Error("failed to exec scontrol command", "output", string(out), "cmd", cmd.String(), "err", err)
		return nil, fmt.Errorf("failed to exec scontrol show %s", entity)
	}
	records := parse.ParseOneliner(string(out))
	return fields.ApplyAll(table, records), nil
}

// GetQOS 获取 QoS 配置, 通过执行 sacctmgr show qos --parsable2 实现.
func (c *Client) GetQOS(ctx context.Context) ([]fields.DecodedRecord, error) {
	cmd := c.execCommand(ctx, "sacctmgr", "show", "qos", "--parsable2")
	out, err := cmd.CombinedOutput()
	if err != nil {
		c.logger.Error("failed to exec sacctmgr command", "output", string(out), "cmd", cmd.String(), "err", err)
		return nil, fmt.Errorf("failed to exec sacctmgr show qos")
	}
	records := parse.ParseDelimited(string(out), parsableDelimiter)
	return fields.ApplyAll(fields.QOSShow, records), nil
}

// GetJobAccounting 获取一个作业的记账数据, 通过执行 sacct --allocations 实现.
// 旧版本 Slurm 对一个作业可能返回多行, 只取 sbatch 主分配.
func (c *Client) GetJobAccounting(ctx context.Context, jobid string) (parse.Record, error) {
	cmd := c.execCommand(ctx, "sacct", "--allocations", "--parsable2", "--format", "ALL", "--jobs", jobid)
	out, err := cmd.CombinedOutput()
	if err != nil {
		c.logger.Error("failed to exec sacct command", "output", string(out), "cmd", cmd.String(), "err", err)
		return nil, fmt.Errorf("failed to exec sacct for job %s", jobid)
	}
	records := parse.ParseDelimited(string(out), parsableDelimiter)
	if len(records) == 0 {
		return nil, fmt.Errorf("no accounting data for job %s", jobid)
	}
	return records[0], nil
}

// GetUserJobsAccounting 获取一个用户自 start 起的记账数据.
func (c *Client) GetUserJobsAccounting(ctx context.Context, user string, start time.Time) ([]parse.Record, error) {
	cmd := c.execCommand(ctx, "sacct", "--allocations", "--parsable2", "--format", "ALL",
		"--user", user, "--starttime", decode.FormatTimepoint(start))
	out, err := cmd.CombinedOutput()
	if err != nil {
		c.logger.Error("failed to exec sacct command", "output", string(out), "cmd", cmd.String(), "err", err)
		return nil, fmt.Errorf("failed to exec sacct for user %s", user)
	}
	return parse.ParseDelimited(string(out), parsableDelimiter), nil
}

// IsJobRunning 判断作业是否在调度队列中, 通过执行 squeue --noheader 实现.
func (c *Client) IsJobRunning(ctx context.Context, jobid string) (bool, error) {
	cmd := c.execCommand(ctx, "squeue", "--noheader", "--jobs", jobid)
	out, err := cmd.CombinedOutput()
	if err != nil {
		c.logger.Error("failed to exec squeue command", "output", string(out), "cmd", cmd.String(), "err", err)
		return false, fmt.Errorf("failed to exec squeue for job %s", jobid)
	}
	return strings.TrimSpace(string(out)) != "", nil
}

// GetRunningJobs 获取 JobState 为 RUNNING 的作业.
func (c *Client) GetRunningJobs(ctx context.Context) ([]fields.DecodedRecord, error) {
	jobs, err := c.GetJobs(ctx, "")
	if err != nil {
		return nil, err
	}
	running := make([]fields.DecodedRecord, 0, len(jobs))
	for _, job := range jobs {
		if job.Raw("jobstate") == "RUNNING" {
			running = append(running, job)
		}
	}
	return running, nil
}
