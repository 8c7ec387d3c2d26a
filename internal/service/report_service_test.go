package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/EthanNaitwe/SchoolReportMaster/internal/dto"
)

// ── Generate 测试 ──

func TestReportService_Generate_BlockedUntilApproved(t *testing.T) {
	svc := newTestServices(newTestRepo())
	up := seedCleanUpload(t, svc)

	req := &dto.GenerateReportCardRequest{UploadID: up.Upload.ID, StudentID: "STU001"}
	_, err := svc.Report.Generate(context.Background(), req, "admin-001")
	if !errors.Is(err, ErrUploadNotApproved) {
		t.Errorf("未批准批次期望 ErrUploadNotApproved，实际: %v", err)
	}
}

func TestReportService_Generate_Success(t *testing.T) {
	svc := newTestServices(newTestRepo())
	up := seedCleanUpload(t, svc)

	ctx := context.Background()
	if _, err := svc.Approval.ApproveUpload(ctx, up.Upload.ID, "admin-001"); err != nil {
		t.Fatalf("批准应成功: %v", err)
	}

	req := &dto.GenerateReportCardRequest{UploadID: up.Upload.ID, StudentID: "STU001"}
	file, err := svc.Report.Generate(ctx, req, "admin-001")
	if err != nil {
		t.Fatalf("Generate 应成功: %v", err)
	}
	if file.Filename != "John Doe_Report_Card.pdf" {
		t.Errorf("文件名不符，实际=%s", file.Filename)
	}
	if !bytes.HasPrefix(file.Content, []byte("%PDF")) {
		t.Error("产出应为 PDF 字节流")
	}

	// 生成应留档一条元数据
	cards, err := svc.Report.List(ctx)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("期望 1 条留档，实际=%d", len(cards))
	}
	if cards[0].StudentID != "STU001" || cards[0].UploadID != up.Upload.ID {
		t.Errorf("留档内容不符: %+v", cards[0])
	}
}

func TestReportService_Generate_UnknownStudent(t *testing.T) {
	svc := newTestServices(newTestRepo())
	up := seedCleanUpload(t, svc)

	ctx := context.Background()
	if _, err := svc.Approval.ApproveUpload(ctx, up.Upload.ID, "admin-001"); err != nil {
		t.Fatalf("批准应成功: %v", err)
	}

	req := &dto.GenerateReportCardRequest{UploadID: up.Upload.ID, StudentID: "STU999"}
	_, err := svc.Report.Generate(ctx, req, "admin-001")
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("期望 ErrStudentNotFound，实际: %v", err)
	}
}

func TestReportService_Generate_UploadNotFound(t *testing.T) {
	svc := newTestServices(newTestRepo())

	req := &dto.GenerateReportCardRequest{UploadID: "missing-id", StudentID: "STU001"}
	_, err := svc.Report.Generate(context.Background(), req, "admin-001")
	if !errors.Is(err, ErrUploadNotFound) {
		t.Errorf("期望 ErrUploadNotFound，实际: %v", err)
	}
}

// ── BulkGenerate 测试 ──

func TestReportService_BulkGenerate_OneCardPerStudent(t *testing.T) {
	svc := newTestServices(newTestRepo())
	up := seedCleanUpload(t, svc)

	ctx := context.Background()
	if _, err := svc.Approval.ApproveUpload(ctx, up.Upload.ID, "admin-001"); err != nil {
		t.Fatalf("批准应成功: %v", err)
	}

	cards, err := svc.Report.BulkGenerate(ctx, &dto.BulkGenerateRequest{UploadID: up.Upload.ID}, "admin-001")
	if err != nil {
		t.Fatalf("BulkGenerate 应成功: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("2 个学生期望 2 条留档，实际=%d", len(cards))
	}

	seen := make(map[string]bool)
	for _, c := range cards {
		seen[c.StudentID] = true
	}
	if !seen["STU001"] || !seen["STU002"] {
		t.Errorf("留档学生不全: %v", seen)
	}
}

