package slurmctld

import (
	"github.com/gin-gonic/gin"
)

type Router struct{}

func (rt Router) Register(r *gin.Engine) {
	v1 := r.Group("/api/v1/slurm/scheduling")
	{
		v1.GET("/node/all", HandlerGetAllNodes)            // GET /api/v1/slurm/scheduling/node/all?partition=xxx&paging=xxx&page=xxx&page_size=xxx
		v1.GET("/node", HandlerGetNode)                    // GET /api/v1/slurm/scheduling/node?name=xxx
		v1.GET("/job/all", HandlerGetAllJobs)              // GET /api/v1/slurm/scheduling/job/all?paging=xxx&page=xxx&page_size=xxx
		v1.GET("/job", HandlerGetJob)                      // GET /api/v1/slurm/scheduling/job?jobid=xxx
		v1.GET("/job/accounting", HandlerGetJobAccounting) // GET /api/v1/slurm/scheduling/job/accounting?jobid=xxx
		v1.GET("/job/running", HandlerIsJobRunning)        // GET /api/v1/slurm/scheduling/job/running?jobid=xxx
		v1.GET("/partition/all", HandlerGetAllPartitions)  // GET /api/v1/slurm/scheduling/partition/all?paging=xxx&page=xxx&page_size=xxx
		v1.GET("/partition", HandlerGetPartition)          // GET /api/v1/slurm/scheduling/partition?name=xxx
	}
}
