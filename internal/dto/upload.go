package dto

import (
	"time"

	"github.com/EthanNaitwe/SchoolReportMaster/internal/model"
)

// ── 上传模块 DTO ──

// RejectRequest 驳回请求（整个上传或单个学生）
// 驳回必须给出非空白理由；空白理由直接拒绝且不产生任何状态变更
type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// UploadResponse 上传批次响应
type UploadResponse struct {
	ID                string                   `json:"id"`
	Filename          string                   `json:"filename"`
	OriginalName      string                   `json:"original_name"`
	FileSize          int64                    `json:"file_size"`
	MimeType          string                   `json:"mime_type"`
	Status            string                   `json:"status"`
	UploadedBy        string                   `json:"uploaded_by"`
	UploadedAt        time.Time                `json:"uploaded_at"`
	ApprovedAt        *time.Time               `json:"approved_at,omitempty"`
	ApprovedBy        *string                  `json:"approved_by,omitempty"`
	ValidationResults *model.ValidationResults `json:"validation_results,omitempty"`
	ErrorCount        int                      `json:"error_count"`
	ValidCount        int                      `json:"valid_count"`
	TotalCount        int                      `json:"total_count"`
}

// GradeResponse 成绩记录响应
type GradeResponse struct {
	ID              string     `json:"id"`
	UploadID        string     `json:"upload_id"`
	StudentID       string     `json:"student_id"`
	StudentName     string     `json:"student_name"`
	Subject         string     `json:"subject"`
	LetterGrade     string     `json:"letter_grade"`
	NumericGrade    *string    `json:"numeric_grade,omitempty"`
	GPA             *string    `json:"gpa,omitempty"`
	Class           *string    `json:"class,omitempty"`
	Term            string     `json:"term"`
	AcademicYear    string     `json:"academic_year"`
	IsValid         bool       `json:"is_valid"`
	ValidationError *string    `json:"validation_error,omitempty"`
	Status          string     `json:"status"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	ReviewedBy      *string    `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
}

// UploadResultResponse 一次上传处理后的完整产出
// 部分成功是常态：有效记录与错误条目并列返回
type UploadResultResponse struct {
	Upload UploadResponse          `json:"upload"`
	Grades []GradeResponse         `json:"grades"`
	Errors []model.ValidationIssue `json:"errors"`
}

