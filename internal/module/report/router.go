package report

import (
	"github.com/gin-gonic/gin"
)

type Router struct{}

func (rt Router) Register(r *gin.Engine) {
	v1 := r.Group("/api/v1/slurm/report")
	{
		v1.GET("/nodes", HandlerNodesSummary) // GET /api/v1/slurm/report/nodes?style=xxx
		v1.GET("/load", HandlerLoad)          // GET /api/v1/slurm/report/load?style=xxx
		v1.GET("/partitions", HandlerPartitions)
	}
}
