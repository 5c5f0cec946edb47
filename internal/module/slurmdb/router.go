package slurmdb

import (
	"github.com/gin-gonic/gin"
)

type Router struct{}

func (rt Router) Register(r *gin.Engine) {
	v1 := r.Group("/api/v1/slurm/accounting")
	{
		v1.GET("/qos", HandlerGetQoS)        // GET /api/v1/slurm/accounting/qos?id=xxx 或 ?name=xxx
		v1.GET("/qos/all", HandlerGetAllQoS) // GET /api/v1/slurm/accounting/qos/all?page=xxx&page_size=xxx
	}
}
