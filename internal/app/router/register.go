package router

import "github.com/gin-gonic/gin"

// Registrar 是各业务模块暴露的装配接口: 模块在 Register 中把自己的路由挂到
// 引擎上, main 只负责收集模块并统一装配.
type Registrar interface{ Register(r *gin.Engine) }

var registrars []Registrar

// Register 把模块加入装配列表, 在 MountAll 之前调用.
func Register(rs ...Registrar) { registrars = append(registrars, rs...) }

// MountAll 按注册顺序装配所有模块的路由.
func MountAll(r *gin.Engine) {
	for _, rg := range registrars {
		rg.Register(r)
	}
}
