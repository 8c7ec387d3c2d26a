package dto

// ── 仪表盘模块 DTO ──

// DashboardStats 仪表盘汇总统计
// 每次请求全量重算，不做缓存
type DashboardStats struct {
	TotalUploads     int     `json:"total_uploads"`
	PendingApproval  int     `json:"pending_approval"`
	ReportsGenerated int     `json:"reports_generated"`
	SuccessRate      float64 `json:"success_rate"` // approved/total*100，保留 1 位小数；无上传时为 0
}

