package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/EthanNaitwe/SchoolReportMaster/internal/service"
	"github.com/EthanNaitwe/SchoolReportMaster/pkg/response"
)

// DashboardHandler 仪表盘模块 HTTP 处理器
type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

// NewDashboardHandler 创建 DashboardHandler
func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

// GetStats 获取仪表盘汇总统计
// GET /api/v1/dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardSvc.Stats(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, stats)
}
