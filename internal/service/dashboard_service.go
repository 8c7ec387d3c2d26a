package service

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/EthanNaitwe/SchoolReportMaster/internal/dto"
	"github.com/EthanNaitwe/SchoolReportMaster/internal/model"
	"github.com/EthanNaitwe/SchoolReportMaster/internal/repository"
)

// DashboardService 仪表盘业务接口
type DashboardService interface {
	Stats(ctx context.Context) (*dto.DashboardStats, error)
}

type dashboardService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDashboardService 创建 DashboardService 实例
func NewDashboardService(repo *repository.Repository, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, logger: logger}
}

// Stats 全量扫描上传与成绩单集合计算汇总计数，每次请求重算
func (s *dashboardService) Stats(ctx context.Context) (*dto.DashboardStats, error) {
	uploads, err := s.repo.Upload.List(ctx)
	if err != nil {
		s.logger.Error("查询上传集合失败", zap.Error(err))
		return nil, err
	}

	cards, err := s.repo.ReportCard.List(ctx)
	if err != nil {
		s.logger.Error("查询成绩单集合失败", zap.Error(err))
		return nil, err
	}

	var pending, approved int
	for i := range uploads {
		switch uploads[i].Status {
		case model.StatusPending:
			pending++
		case model.StatusApproved:
			approved++
		}
	}

	// 成功率 = 已批准 / 总数 * 100，保留 1 位小数；无上传时为 0，避免除零
	var successRate float64
	if len(uploads) > 0 {
		successRate = math.Round(float64(approved)/float64(len(uploads))*1000) / 10
	}

	return &dto.DashboardStats{
		TotalUploads:     len(uploads),
		PendingApproval:  pending,
		ReportsGenerated: len(cards),
		SuccessRate:      successRate,
	}, nil
}

