package model

import "time"

// ReportCard 成绩单生成记录表 — 对应 report_cards
// 仅存元数据，PDF 字节流式下发后即丢弃；与成绩记录刻意解耦，
// 成绩记录后续被修改不影响既有成绩单留档
type ReportCard struct {
	ReportCardID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"report_card_id"`
	StudentID    string    `gorm:"type:text;not null"                             json:"student_id"`
	StudentName  string    `gorm:"type:text;not null"                             json:"student_name"`
	Grade        string    `gorm:"type:text;not null"                             json:"grade"` // 年级标签
	Class        string    `gorm:"type:text;not null"                             json:"class"`
	Term         string    `gorm:"type:text;not null"                             json:"term"`
	AcademicYear string    `gorm:"type:text;not null"                             json:"academic_year"`
	PDFPath      *string   `gorm:"column:pdf_path;type:text"                      json:"pdf_path,omitempty"`
	GeneratedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"generated_at"`
	GeneratedBy  string    `gorm:"type:text;not null"                             json:"generated_by"`
	UploadID     string    `gorm:"type:uuid;not null"                             json:"upload_id"`
}

// TableName 指定表名
func (ReportCard) TableName() string { return "report_cards" }
