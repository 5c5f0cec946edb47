package slurmctld

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wwarriner/slurm-status-tools/internal/pkg/client/slurmctl"
	"github.com/wwarriner/slurm-status-tools/internal/pkg/common/response"
	"github.com/wwarriner/slurm-status-tools/internal/pkg/model"
	"github.com/wwarriner/slurm-status-tools/internal/pkg/slurm/fields"
)

// respondPaged 对解码记录列表做统一的分页返回. paging=false 时返回全量.
func respondPaged(c *gin.Context, list []fields.DecodedRecord) {
	total := len(list)

	// 分页开关，默认 true
	var pagingFlag struct {
		Paging *bool `form:"paging"`
	}
	_ = c.ShouldBindQuery(&pagingFlag)
	paging := true
	if pagingFlag.Paging != nil {
		paging = *pagingFlag.Paging
	}

	if !paging {
		c.JSON(http.StatusOK, response.Response{Count: response.Count(total), Results: list})
		return
	}

	var pq model.PagingQuery
	_ = c.ShouldBindQuery(&pq)
	pq.SetDefaults(1, 20, 100)
	if err := pq.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, response.Response{Detail: "invalid paging parameters"})
		return
	}
	start := pq.Offset()
	if start > total {
		start = total
	}
	end := start + pq.Limit()
	if end > total {
		end = total
	}
	prevURL, nextURL := response.BuildPageLinks(c.Request.URL, pq.Page, pq.PageSize, total)
	c.JSON(http.StatusOK, response.Response{
		Count:    response.Count(total),
		Previous: prevURL,
		Next:     nextURL,
		Results:  list[start:end],
	})
}

// HandlerGetAllNodes 获取节点列表（可分页）。
//
// @Summary 获取节点列表
// @Description 通过 scontrol show node 获取全部节点的解码记录；支持分页返回
// @Tags slurm-scheduling, node
// @Produce json
// @Param partition query string false "按分区过滤" example("compute")
// @Param paging query bool false "是否开启分页" default(true)
// @Param page query int false "页号(从1开始)" example("1") default(1) minimum(1)
// @Param page_size query int false "每页数量" example("20") default(20) minimum(1)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/slurm/scheduling/node/all [get]
func HandlerGetAllNodes(c *gin.Context) {
	client := slurmctl.Default()
	if client == nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: "slurmctl client not initialized"})
		return
	}

	nodes, err := client.GetNodes(c.Request.Context(), "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: err.Error()})
		return
	}

	// 可选分区过滤
	if partition := strings.TrimSpace(c.Query("partition")); partition != "" {
		filtered := nodes[:0]
		for _, n := range nodes {
			for _, p := range strings.Split(n.Raw("partitions"), ",") {
				if p == partition {
					filtered = append(filtered, n)
					break
				}
			}
		}
		nodes = filtered
	}

	respondPaged(c, nodes)
}

// HandlerGetNode 获取指定节点的解码记录。
//
// @Summary 获取节点详情
// @Description 通过 scontrol show node <name> 返回该节点的字段信息
// @Tags slurm-scheduling, node
// @Produce json
// @Param name query string true "节点名称"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/slurm/scheduling/node [get]
func HandlerGetNode(c *gin.Context) {
	client := slurmctl.Default()
	if client == nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: "slurmctl client not initialized"})
		return
	}

	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, response.Response{Detail: "missing name parameter"})
		return
	}

	nodes, err := client.GetNodes(c.Request.Context(), name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: err.Error()})
		return
	}
	if len(nodes) == 0 {
		c.JSON(http.StatusNotFound, response.Response{Detail: "node not found"})
		return
	}

	c.JSON(http.StatusOK, response.Response{Results: nodes[0]})
}

// HandlerGetAllJobs 获取作业列表（可分页）。
//
// @Summary 获取作业列表
// @Description 通过 scontrol show job 获取全部作业的解码记录；支持分页返回
// @Tags slurm-scheduling, job
// @Produce json
// @Param paging query bool false "是否开启分页" default(true)
// @Param page query int false "页号(从1开始)" example("1") default(1) minimum(1)
// @Param page_size query int false "每页数量" example("20") default(20) minimum(1)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/slurm/scheduling/job/all [get]
func HandlerGetAllJobs(c *gin.Context) {
	client := slurmctl.Default()
	if client == nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: "slurmctl client not initialized"})
		return
	}

	jobs, err := client.GetJobs(c.Request.Context(), "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: err.Error()})
		return
	}

	respondPaged(c, jobs)
}

// HandlerGetJob 获取指定 Job 的详情。
//
// @Summary 获取 Job 详情
// @Description 通过 jobid 调用 scontrol show job，返回作业的解码记录
// @Tags slurm-scheduling, job
// @Produce json
// @Param jobid query string true "Job ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/slurm/scheduling/job [get]
func HandlerGetJob(c *gin.Context) {
	client := slurmctl.Default()
	if client == nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: "slurmctl client not initialized"})
		return
	}

	jobid := strings.TrimSpace(c.Query("jobid"))
	if jobid == "" {
		c.JSON(http.StatusBadRequest, response.Response{Detail: "missing jobid parameter"})
		return
	}

	jobs, err := client.GetJobs(c.Request.Context(), jobid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: err.Error()})
		return
	}
	if len(jobs) == 0 {
		c.JSON(http.StatusNotFound, response.Response{Detail: "job not found"})
		return
	}

	c.JSON(http.StatusOK, response.Response{Results: jobs[0]})
}

// HandlerGetJobAccounting 获取作业的记账信息。
//
// @Summary 获取 Job 记账信息
// @Description 通过 sacct 查询已结束作业的记账记录
// @Tags slurm-scheduling, job
// @Produce json
// @Param jobid query string true "Job ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/slurm/scheduling/job/accounting [get]
func HandlerGetJobAccounting(c *gin.Context) {
	client := slurmctl.Default()
	if client == nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: "slurmctl client not initialized"})
		return
	}

	jobid := strings.TrimSpace(c.Query("jobid"))
	if jobid == "" {
		c.JSON(http.StatusBadRequest, response.Response{Detail: "missing jobid parameter"})
		return
	}

	rec, err := client.GetJobAccounting(c.Request.Context(), jobid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.Response{Results: rec})
}

// HandlerIsJobRunning 查询作业是否仍在运行。
//
// @Summary 查询作业运行状态
// @Description 通过 squeue 判断该作业当前是否在队列中运行
// @Tags slurm-scheduling, job
// @Produce json
// @Param jobid query string true "Job ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/slurm/scheduling/job/running [get]
func HandlerIsJobRunning(c *gin.Context) {
	client := slurmctl.Default()
	if client == nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: "slurmctl client not initialized"})
		return
	}

	jobid := strings.TrimSpace(c.Query("jobid"))
	if jobid == "" {
		c.JSON(http.StatusBadRequest, response.Response{Detail: "missing jobid parameter"})
		return
	}

	running, err := client.IsJobRunning(c.Request.Context(), jobid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.Response{Results: gin.H{"jobid": jobid, "running": running}})
}

// HandlerGetAllPartitions 获取所有分区详情（可分页）。
//
// @Summary 获取分区列表
// @Description 通过 scontrol show partition 获取所有分区的解码记录；支持分页返回
// @Tags slurm-scheduling, partition
// @Produce json
// @Param paging query bool false "是否开启分页" default(true)
// @Param page query int false "页号(从1开始)" example("1") default(1) minimum(1)
// @Param page_size query int false "每页数量" example("20") default(20) minimum(1)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/slurm/scheduling/partition/all [get]
func HandlerGetAllPartitions(c *gin.Context) {
	client := slurmctl.Default()
	if client == nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: "slurmctl client not initialized"})
		return
	}

	parts, err := client.GetPartitions(c.Request.Context(), "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: err.Error()})
		return
	}

	respondPaged(c, parts)
}

// HandlerGetPartition 获取指定名称的分区详情。
//
// @Summary 获取分区详情
// @Description 通过 name 调用 scontrol show partition <name>，返回该分区的解码记录
// @Tags slurm-scheduling, partition
// @Produce json
// @Param name query string true "分区名称"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/slurm/scheduling/partition [get]
func HandlerGetPartition(c *gin.Context) {
	client := slurmctl.Default()
	if client == nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: "slurmctl client not initialized"})
		return
	}

	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, response.Response{Detail: "missing name parameter"})
		return
	}

	parts, err := client.GetPartitions(c.Request.Context(), name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: err.Error()})
		return
	}
	if len(parts) == 0 {
		c.JSON(http.StatusNotFound, response.Response{Detail: "partition not found"})
		return
	}

	c.JSON(http.StatusOK, response.Response{Results: parts[0]})
}
