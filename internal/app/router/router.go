package router

import "github.com/gin-gonic/gin"

// New 构建带默认中间件 (logger, recovery) 的 gin 引擎.
func New() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	return r
}
