package user

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	ldapc "github.com/wwarriner/slurm-status-tools/internal/pkg/client/ldap"
	"github.com/wwarriner/slurm-status-tools/internal/pkg/client/slurmctl"
	"github.com/wwarriner/slurm-status-tools/internal/pkg/common/response"
	"github.com/wwarriner/slurm-status-tools/internal/pkg/model"
)

// HandlerListUsers 列出目录用户（分页）。
//
// @Summary 列出用户
// @Description 从 LDAP 目录获取用户列表（分页）
// @Tags users
// @Produce json
// @Param paging query bool false "是否开启分页" default(true)
// @Param page query int false "页码，从 1 开始"
// @Param page_size query int false "每页数量，1-1000"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/users [get]
func HandlerListUsers(c *gin.Context) {
	lcli := ldapc.Default()
	if lcli == nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: "ldap client not initialized"})
		return
	}

	users, err := lcli.GetUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: err.Error()})
		return
	}
	total := len(users)

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
		c.JSON(http.StatusOK, response.Response{Count: response.Count(total), Results: users})
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
		Results:  users[start:end],
	})
}

// HandlerGetUser 获取某个用户的信息。
//
// @Summary 获取用户详情
// @Description 按 uid 查询 LDAP 目录中的一个用户
// @Tags users
// @Produce json
// @Param uid path string true "用户名"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/users/{uid} [get]
func HandlerGetUser(c *gin.Context) {
	lcli := ldapc.Default()
	if lcli == nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: "ldap client not initialized"})
		return
	}

	uid := strings.TrimSpace(c.Param("uid"))
	user, err := lcli.GetUser(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: err.Error()})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, response.Response{Detail: "user not found"})
		return
	}

	c.JSON(http.StatusOK, response.Response{Results: user})
}

// HandlerGetUserGroups 获取用户的附加组。
//
// @Summary 获取用户附加组
// @Tags users
// @Produce json
// @Param uid path string true "用户名"
// @Success 200 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/users/{uid}/groups [get]
func HandlerGetUserGroups(c *gin.Context) {
	lcli := ldapc.Default()
	if lcli == nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: "ldap client not initialized"})
		return
	}

	uid := strings.TrimSpace(c.Param("uid"))
	groups, err := lcli.GetAdditionalGroupsOfUser(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.Response{Count: response.Count(len(groups)), Results: groups})
}

// HandlerGetUserJobs 获取用户近期作业的记账记录。
//
// @Summary 获取用户作业历史
// @Description 通过 sacct 查询该用户自 N 天前起的作业记录
// @Tags users
// @Produce json
// @Param uid path string true "用户名"
// @Param days query int false "回溯天数" default(7)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/users/{uid}/jobs [get]
func HandlerGetUserJobs(c *gin.Context) {
	scli := slurmctl.Default()
	if scli == nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: "slurmctl client not initialized"})
		return
	}

	uid := strings.TrimSpace(c.Param("uid"))
	days := 7
	if raw := strings.TrimSpace(c.Query("days")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, response.Response{Detail: "days must be a non-negative integer"})
			return
		}
		days = n
	}

	start := time.Now().AddDate(0, 0, -days)
	jobs, err := scli.GetUserJobsAccounting(c.Request.Context(), uid, start)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.Response{Count: response.Count(len(jobs)), Results: jobs})
}

// HandlerGetJobOwner 将作业记录的 UserId 解析为目录用户。
//
// @Summary 解析作业属主
// @Description 输入 scontrol 形式的 "name(uid)" 值，返回目录中的用户条目
// @Tags users
// @Produce json
// @Param userid query string true "作业 UserId 字段值" example("alice(1000)")
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/users/owner [get]
func HandlerGetJobOwner(c *gin.Context) {
	lcli := ldapc.Default()
	if lcli == nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: "ldap client not initialized"})
		return
	}

	userid := strings.TrimSpace(c.Query("userid"))
	if userid == "" {
		c.JSON(http.StatusBadRequest, response.Response{Detail: "missing userid parameter"})
		return
	}

	owner, err := lcli.GetJobOwner(c.Request.Context(), userid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Response{Detail: err.Error()})
		return
	}
	if owner == nil {
		c.JSON(http.StatusNotFound, response.Response{Detail: "owner not found"})
		return
	}

	c.JSON(http.StatusOK, response.Response{Results: owner})
}
