package slurmdb

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	slurmdbc "github.com/wwarriner/slurm-status-tools/internal/pkg/client/slurmdb"
	"github.com/wwarriner/slurm-status-tools/internal/pkg/common/response"
	"github.com/wwarriner/slurm-status-tools/internal/pkg/model"
)

// HandlerGetAllQoS 获取 QoS 列表（分页）。
//
// @Summary 获取 QoS 列表（分页）
// @Description 从 slurmdbd 数据库读取 deleted=0 的 QoS，支持分页参数 page、page_size
// @Tags slurm-accounting, qos
// @Produce json
// @Param page query int false "页码，从 1 开始"
// @Param page_size query int false "每页数量，1-1000"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/slurm/accounting/qos/all [get]
func HandlerGetAllQoS(c *gin.Context) {
	client := slurmdbc.Default()
	if client == nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: "slurmdb client not initialized"})
		return
	}

	var pq model.PagingQuery
	_ = c.ShouldBindQuery(&pq)
	pq.SetDefaults(1, 20, 100)
	if err := pq.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, response.Response{Detail: "invalid paging parameters"})
		return
	}

	qoses, total, err := client.GetQosPaged(c.Request.Context(), pq.Offset(), pq.Limit())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: err.Error()})
		return
	}

	prevURL, nextURL := response.BuildPageLinks(c.Request.URL, pq.Page, pq.PageSize, int(total))
	c.JSON(http.StatusOK, response.Response{
		Count:    response.Count(int(total)),
		Previous: prevURL,
		Next:     nextURL,
		Results:  qoses,
	})
}

// HandlerGetQoS 按 id 或 name 获取单个 QoS。
//
// @Summary 获取 QoS 详情
// @Description 按数字 id 或名称查询一条 QoS 记录
// @Tags slurm-accounting, qos
// @Produce json
// @Param id query int false "QoS ID"
// @Param name query string false "QoS 名称"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/slurm/accounting/qos [get]
func HandlerGetQoS(c *gin.Context) {
	client := slurmdbc.Default()
	if client == nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: "slurmdb client not initialized"})
		return
	}

	if name := strings.TrimSpace(c.Query("name")); name != "" {
		qos, err := client.GetQosByName(c.Request.Context(), name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.Response{Detail: err.Error()})
			return
		}
		if qos == nil {
			c.JSON(http.StatusNotFound, response.Response{Detail: "qos not found"})
			return
		}
		c.JSON(http.StatusOK, response.Response{Results: qos})
		return
	}

	idRaw := strings.TrimSpace(c.Query("id"))
	if idRaw == "" {
		c.JSON(http.StatusBadRequest, response.Response{Detail: "missing id or name parameter"})
		return
	}
	id, err := strconv.Atoi(idRaw)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Response{Detail: "id must be an integer"})
		return
	}

	qoses, err := client.GetQos(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: err.Error()})
		return
	}
	if len(qoses) == 0 {
		c.JSON(http.StatusNotFound, response.Response{Detail: "qos not found"})
		return
	}

	c.JSON(http.StatusOK, response.Response{Results: qoses[0]})
}
