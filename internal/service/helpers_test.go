package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/EthanNaitwe/SchoolReportMaster/config"
	"github.com/EthanNaitwe/SchoolReportMaster/internal/dto"
	"github.com/EthanNaitwe/SchoolReportMaster/internal/repository"
)

// ── 测试辅助 ──

const xlsxMime = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:            "0123456789abcdef0123456789abcdef",
			AccessTokenTTL:       time.Hour,
			RefreshTTL:           7 * 24 * time.Hour,
			InitialAdminPassword: "initial-admin-pass",
		},
		Upload: config.UploadConfig{
			MaxFileSize:         10 << 20,
			AllowedMimeTypes:    []string{xlsxMime, "application/vnd.ms-excel"},
			MaxRows:             1000,
			DefaultTerm:         "Q1",
			DefaultAcademicYear: "2023-2024",
		},
		Report: config.ReportConfig{SchoolName: "Tamayuz Junior School"},
	}
}

// newTestRepo 以内存后端充当测试替身，与生产 memory driver 行为完全一致
func newTestRepo() *repository.Repository {
	return repository.NewMemoryRepository()
}

// buildWorkbook 构造单工作表 xlsx：首行表头，随后逐行数据
func buildWorkbook(t *testing.T, headers []string, rows [][]string) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			t.Fatalf("写入表头失败: %v", err)
		}
	}
	for r, row := range rows {
		for col, v := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatalf("写入数据失败: %v", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("生成工作簿失败: %v", err)
	}
	return buf
}

// uploadWorkbook 将工作簿走完整上传流水线，返回处理结果
func uploadWorkbook(t *testing.T, svc UploadService, headers []string, rows [][]string) *dto.UploadResultResponse {
	t.Helper()

	buf := buildWorkbook(t, headers, rows)
	input := &UploadInput{
		OriginalName: "grades.xlsx",
		MimeType:     xlsxMime,
		Size:         int64(buf.Len()),
		Content:      buf,
	}
	result, err := svc.Process(context.Background(), input, fmt.Sprintf("teacher-%d", 1))
	if err != nil {
		t.Fatalf("Process 应成功: %v", err)
	}
	return result
}

func newTestServices(repo *repository.Repository) *Service {
	return NewService(testConfig(), repo, nil, nil, zap.NewNop())
}

