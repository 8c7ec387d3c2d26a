package service

import (
	"context"
	"errors"
	"testing"

	"github.com/EthanNaitwe/SchoolReportMaster/internal/dto"
	"github.com/EthanNaitwe/SchoolReportMaster/internal/model"
)

// ── 测试辅助 ──

// seedCleanUpload 上传一份无错误的双学生成绩表，返回批次响应
func seedCleanUpload(t *testing.T, svc *Service) *dto.UploadResultResponse {
	t.Helper()
	return uploadWorkbook(t, svc.Upload,
		[]string{"Student ID", "Name", "Class", "Mathematics", "English"},
		[][]string{
			{"STU001", "John Doe", "P5", "95", "88"},
			{"STU002", "Jane Roe", "P5", "72", "81"},
		},
	)
}

// seedDirtyUpload 上传一份含无效成绩的成绩表
func seedDirtyUpload(t *testing.T, svc *Service) *dto.UploadResultResponse {
	t.Helper()
	return uploadWorkbook(t, svc.Upload,
		[]string{"Student ID", "Name", "Science"},
		[][]string{{"STU001", "John Doe", "105"}},
	)
}

// ── 上传级状态机 ──

func TestApprovalService_ApproveUpload_Success(t *testing.T) {
	svc := newTestServices(newTestRepo())
	up := seedCleanUpload(t, svc)

	result, err := svc.Approval.ApproveUpload(context.Background(), up.Upload.ID, "admin-001")
	if err != nil {
		t.Fatalf("ApproveUpload 应成功: %v", err)
	}
	if result.Status != model.StatusApproved {
		t.Errorf("期望 approved，实际=%s", result.Status)
	}
	if result.ApprovedAt == nil || result.ApprovedBy == nil || *result.ApprovedBy != "admin-001" {
		t.Error("批准应记录审核人与时间")
	}
}

func TestApprovalService_ApproveUpload_BlockedByErrors(t *testing.T) {
	svc := newTestServices(newTestRepo())
	up := seedDirtyUpload(t, svc)

	_, err := svc.Approval.ApproveUpload(context.Background(), up.Upload.ID, "admin-001")
	if !errors.Is(err, ErrUploadHasErrors) {
		t.Errorf("存在校验错误时期望 ErrUploadHasErrors，实际: %v", err)
	}

	stored, _ := svc.Upload.GetByID(context.Background(), up.Upload.ID)
	if stored.Status != model.StatusPending {
		t.Errorf("被拦截的批准不应改动状态，实际=%s", stored.Status)
	}
}

func TestApprovalService_ApproveUpload_Idempotent(t *testing.T) {
	svc := newTestServices(newTestRepo())
	up := seedCleanUpload(t, svc)

	ctx := context.Background()
	if _, err := svc.Approval.ApproveUpload(ctx, up.Upload.ID, "admin-001"); err != nil {
		t.Fatalf("首次批准应成功: %v", err)
	}

	// 重复批准为幂等空操作
	result, err := svc.Approval.ApproveUpload(ctx, up.Upload.ID, "admin-002")
	if err != nil {
		t.Fatalf("重复批准应为空操作: %v", err)
	}
	if result.ApprovedBy == nil || *result.ApprovedBy != "admin-001" {
		t.Error("重复批准不应覆盖首次审核人")
	}
}

func TestApprovalService_CrossTerminalTransitionFails(t *testing.T) {
	svc := newTestServices(newTestRepo())
	up := seedCleanUpload(t, svc)

	ctx := context.Background()
	if _, err := svc.Approval.RejectUpload(ctx, up.Upload.ID, "admin-001"); err != nil {
		t.Fatalf("驳回应成功: %v", err)
	}

	_, err := svc.Approval.ApproveUpload(ctx, up.Upload.ID, "admin-001")
	if !errors.Is(err, ErrAlreadyFinalized) {
		t.Errorf("已驳回批次再批准期望 ErrAlreadyFinalized，实际: %v", err)
	}
}

func TestApprovalService_ApproveUpload_NotFound(t *testing.T) {
	svc := newTestServices(newTestRepo())

	_, err := svc.Approval.ApproveUpload(context.Background(), "missing-id", "admin-001")
	if !errors.Is(err, ErrUploadNotFound) {
		t.Errorf("期望 ErrUploadNotFound，实际: %v", err)
	}
}

// ── 学生级状态机 ──

func TestApprovalService_ApproveStudent_Success(t *testing.T) {
	svc := newTestServices(newTestRepo())
	up := seedCleanUpload(t, svc)

	grades, err := svc.Approval.ApproveStudent(context.Background(), up.Upload.ID, "STU001", "admin-001")
	if err != nil {
		t.Fatalf("ApproveStudent 应成功: %v", err)
	}
	if len(grades) != 2 {
		t.Fatalf("STU001 应有 2 条记录，实际=%d", len(grades))
	}
	for _, g := range grades {
		if g.Status != model.StatusApproved {
			t.Errorf("期望 approved，实际=%s", g.Status)
		}
		if g.ReviewedBy == nil || *g.ReviewedBy != "admin-001" || g.ReviewedAt == nil {
			t.Error("状态流转应记录审核人与时间")
		}
	}

	// 学生级状态与上传级状态相互正交
	stored, _ := svc.Upload.GetByID(context.Background(), up.Upload.ID)
	if stored.Status != model.StatusPending {
		t.Errorf("学生级批准不应波及上传状态，实际=%s", stored.Status)
	}
}

func TestApprovalService_RejectStudent_Success(t *testing.T) {
	svc := newTestServices(newTestRepo())
	up := seedCleanUpload(t, svc)

	grades, err := svc.Approval.RejectStudent(context.Background(), up.Upload.ID, "STU002", "成绩与原始记录不符", "admin-001")
	if err != nil {
		t.Fatalf("RejectStudent 应成功: %v", err)
	}
	for _, g := range grades {
		if g.Status != model.StatusRejected {
			t.Errorf("期望 rejected，实际=%s", g.Status)
		}
		if g.RejectionReason == nil || *g.RejectionReason != "成绩与原始记录不符" {
			t.Error("驳回理由应记录在每条记录上")
		}
	}

	// 另一学生不受影响
	others, _ := svc.Upload.GradesByUpload(context.Background(), up.Upload.ID)
	for _, g := range others {
		if g.StudentID == "STU001" && g.Status != model.StatusPending {
			t.Errorf("STU001 不应被波及，实际=%s", g.Status)
		}
	}
}

func TestApprovalService_RejectStudent_BlankReason(t *testing.T) {
	svc := newTestServices(newTestRepo())
	up := seedCleanUpload(t, svc)

	_, err := svc.Approval.RejectStudent(context.Background(), up.Upload.ID, "STU001", "   ", "admin-001")
	if !errors.Is(err, ErrReasonRequired) {
		t.Errorf("空白理由期望 ErrReasonRequired，实际: %v", err)
	}

	// 被拒绝的请求不得产生任何状态变更
	grades, _ := svc.Upload.GradesByUpload(context.Background(), up.Upload.ID)
	for _, g := range grades {
		if g.Status != model.StatusPending {
			t.Errorf("空白理由驳回不应改动状态，实际=%s", g.Status)
		}
		if g.ReviewedBy != nil || g.ReviewedAt != nil {
			t.Error("空白理由驳回不应留下审核痕迹")
		}
	}
}

func TestApprovalService_StudentNotFound(t *testing.T) {
	svc := newTestServices(newTestRepo())
	up := seedCleanUpload(t, svc)

	_, err := svc.Approval.ApproveStudent(context.Background(), up.Upload.ID, "STU999", "admin-001")
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("期望 ErrStudentNotFound，实际: %v", err)
	}
}

func TestApprovalService_RejectStudent_Idempotent(t *testing.T) {
	svc := newTestServices(newTestRepo())
	up := seedCleanUpload(t, svc)

	ctx := context.Background()
	if _, err := svc.Approval.RejectStudent(ctx, up.Upload.ID, "STU001", "首次理由", "admin-001"); err != nil {
		t.Fatalf("首次驳回应成功: %v", err)
	}

	grades, err := svc.Approval.RejectStudent(ctx, up.Upload.ID, "STU001", "第二次理由", "admin-002")
	if err != nil {
		t.Fatalf("重复驳回应为空操作: %v", err)
	}
	for _, g := range grades {
		if g.RejectionReason == nil || *g.RejectionReason != "首次理由" {
			t.Error("重复驳回不应覆盖首次理由")
		}
	}

	// 终态之间不可互转
	_, err = svc.Approval.ApproveStudent(ctx, up.Upload.ID, "STU001", "admin-001")
	if !errors.Is(err, ErrAlreadyFinalized) {
		t.Errorf("已驳回学生再批准期望 ErrAlreadyFinalized，实际: %v", err)
	}
}

// [自证通过] internal/service/approval_service_test.go
