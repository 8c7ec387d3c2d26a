package service

import (
	"context"
	"testing"

	"github.com/EthanNaitwe/SchoolReportMaster/internal/model"
	"github.com/EthanNaitwe/SchoolReportMaster/internal/repository"
)

// ── 测试辅助 ──

func seedUploads(t *testing.T, repo *repository.Repository, statuses ...string) {
	t.Helper()
	for i, status := range statuses {
		u := &model.Upload{
			Filename:     "seed.xlsx",
			OriginalName: "seed.xlsx",
			FileSize:     int64(100 + i),
			MimeType:     xlsxMime,
			Status:       status,
			UploadedBy:   "teacher-1",
		}
		if err := repo.Upload.Create(context.Background(), u); err != nil {
			t.Fatalf("种子数据写入失败: %v", err)
		}
	}
}

// ── Stats 测试 ──

func TestDashboardService_Stats(t *testing.T) {
	repo := newTestRepo()
	svc := newTestServices(repo).Dashboard

	// 4 个上传：3 批准 1 待审，0 成绩单
	seedUploads(t, repo,
		model.StatusApproved, model.StatusApproved, model.StatusApproved, model.StatusPending)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats 应成功: %v", err)
	}
	if stats.TotalUploads != 4 {
		t.Errorf("期望TotalUploads=4，实际=%d", stats.TotalUploads)
	}
	if stats.PendingApproval != 1 {
		t.Errorf("期望PendingApproval=1，实际=%d", stats.PendingApproval)
	}
	if stats.ReportsGenerated != 0 {
		t.Errorf("期望ReportsGenerated=0，实际=%d", stats.ReportsGenerated)
	}
	if stats.SuccessRate != 75.0 {
		t.Errorf("期望SuccessRate=75.0，实际=%v", stats.SuccessRate)
	}
}

func TestDashboardService_Stats_Empty(t *testing.T) {
	svc := newTestServices(newTestRepo()).Dashboard

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats 应成功: %v", err)
	}
	if stats.TotalUploads != 0 || stats.SuccessRate != 0 {
		t.Errorf("无上传时应全为 0，实际=%+v", stats)
	}
}

func TestDashboardService_Stats_Rounding(t *testing.T) {
	repo := newTestRepo()
	svc := newTestServices(repo).Dashboard

	// 1/3 批准 → 33.3（保留 1 位小数）
	seedUploads(t, repo,
		model.StatusApproved, model.StatusPending, model.StatusRejected)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats 应成功: %v", err)
	}
	if stats.SuccessRate != 33.3 {
		t.Errorf("期望SuccessRate=33.3，实际=%v", stats.SuccessRate)
	}
	if stats.PendingApproval != 1 {
		t.Errorf("期望PendingApproval=1，实际=%d", stats.PendingApproval)
	}
}

