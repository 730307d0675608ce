package handlers

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts every endpoint on api. The reload endpoint is only
// available in debug mode.
func RegisterRoutes(api *gin.RouterGroup, neo *NEOHandler, approach *ApproachHandler, system *SystemHandler, debug bool) {
	api.GET("/neos", neo.FindNEO)
	api.GET("/neos/:designation", neo.GetNEO)
	api.GET("/neos/:designation/approaches", neo.GetNEOApproaches)

	api.GET("/approaches", approach.QueryApproaches)
	api.GET("/approaches/export", approach.ExportApproaches)

	api.GET("/health", system.Health)
	api.GET("/system/stats", system.Stats)

	if debug {
		api.POST("/dataset/reload", system.Reload)
	}
}
