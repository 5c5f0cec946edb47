// Package report exposes rendered cluster reports over HTTP. Each endpoint
// builds a table from live scheduler state and prints it in the style
// selected by the style query parameter.
package report

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wwarriner/slurm-status-tools/internal/pkg/client/slurmctl"
	"github.com/wwarriner/slurm-status-tools/internal/pkg/common/response"
	"github.com/wwarriner/slurm-status-tools/internal/pkg/report"
)

func selectedStyle(c *gin.Context) (report.Style, bool) {
	name := strings.TrimSpace(c.Query("style"))
	if name == "" {
		name = "ascii"
	}
	style, err := report.StyleByName(name)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Response{Detail: err.Error()})
		return nil, false
	}
	return style, true
}

func renderTable(c *gin.Context, style report.Style, t *report.Table) {
	c.String(http.StatusOK, style.Render(t, report.Options{}))
}

// HandlerNodesSummary 输出各分区的节点资源汇总表。
//
// @Summary 节点资源汇总
// @Description 按分区统计节点的核数/内存/GPU 总量与分配量
// @Tags report
// @Produce plain
// @Param style query string false "ascii|csv|markdown|mediawiki" default(ascii)
// @Success 200 {string} string
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/slurm/report/nodes [get]
func HandlerNodesSummary(c *gin.Context) {
	client := slurmctl.Default()
	if client == nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: "slurmctl client not initialized"})
		return
	}
	style, ok := selectedStyle(c)
	if !ok {
		return
	}

	nodes, err := client.GetNodes(c.Request.Context(), "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: err.Error()})
		return
	}

	renderTable(c, style, report.NodesSummary(nodes))
}

// HandlerLoad 输出集群负载指标表。
//
// @Summary 集群负载
// @Description 活跃用户/作业数、各状态节点数与组件占用率
// @Tags report
// @Produce plain
// @Param style query string false "ascii|csv|markdown|mediawiki" default(ascii)
// @Success 200 {string} string
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/slurm/report/load [get]
func HandlerLoad(c *gin.Context) {
	client := slurmctl.Default()
	if client == nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: "slurmctl client not initialized"})
		return
	}
	style, ok := selectedStyle(c)
	if !ok {
		return
	}

	jobs, err := client.GetJobs(c.Request.Context(), "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: err.Error()})
		return
	}
	nodes, err := client.GetNodes(c.Request.Context(), "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: err.Error()})
		return
	}

	renderTable(c, style, report.Load(jobs, nodes))
}

// HandlerPartitions 输出分区概览表, 合并 QoS 的每用户 TRES 配额。
//
// @Summary 分区概览
// @Description 分区状态/节点/时限, 以及其 QoS 的每用户 CPU/内存/GPU 配额
// @Tags report
// @Produce plain
// @Param style query string false "ascii|csv|markdown|mediawiki" default(ascii)
// @Success 200 {string} string
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/slurm/report/partitions [get]
func HandlerPartitions(c *gin.Context) {
	client := slurmctl.Default()
	if client == nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: "slurmctl client not initialized"})
		return
	}
	style, ok := selectedStyle(c)
	if !ok {
		return
	}

	parts, err := client.GetPartitions(c.Request.Context(), "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: err.Error()})
		return
	}
	qoses, err := client.GetQOS(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: err.Error()})
		return
	}

	renderTable(c, style, report.Partitions(parts, qoses))
}
