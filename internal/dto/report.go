package dto

import "time"

// ── 成绩单模块 DTO ──

// GenerateReportCardRequest 为单个学生生成成绩单
type GenerateReportCardRequest struct {
	UploadID  string `json:"upload_id"  binding:"required,uuid"`
	StudentID string `json:"student_id" binding:"required"`
}

// BulkGenerateRequest 为一次上传的全部学生批量生成成绩单
type BulkGenerateRequest struct {
	UploadID string `json:"upload_id" binding:"required,uuid"`
}

// ReportCardResponse 成绩单生成记录响应
type ReportCardResponse struct {
	ID           string    `json:"id"`
	StudentID    string    `json:"student_id"`
	StudentName  string    `json:"student_name"`
	Grade        string    `json:"grade"`
	Class        string    `json:"class"`
	Term         string    `json:"term"`
	AcademicYear string    `json:"academic_year"`
	GeneratedAt  time.Time `json:"generated_at"`
	GeneratedBy  string    `json:"generated_by"`
	UploadID     string    `json:"upload_id"`
}

// ReportCardFile 渲染完成的 PDF 及其下载文件名
type ReportCardFile struct {
	Filename string
	Content  []byte
}
