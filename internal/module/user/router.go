package user

import "github.com/gin-gonic/gin"

type Router struct{}

func (Router) Register(r *gin.Engine) {
	v1 := r.Group("/api/v1")
	{
		g := v1.Group("/users")
		g.GET("", HandlerListUsers)               // GET /api/v1/users
		g.GET("/owner", HandlerGetJobOwner)       // GET /api/v1/users/owner?userid=xxx
		g.GET("/:uid", HandlerGetUser)            // GET /api/v1/users/:uid
		g.GET("/:uid/groups", HandlerGetUserGroups)
		g.GET("/:uid/jobs", HandlerGetUserJobs) // GET /api/v1/users/:uid/jobs?days=xxx
	}
}
