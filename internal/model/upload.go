package model

import "time"

// Upload 上传批次表 — 对应 uploads
// 一次电子表格上传的生命周期载体：pending → approved | rejected（终态）
type Upload struct {
	UploadID          string             `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"upload_id"`
	Filename          string             `gorm:"type:text;not null"                             json:"filename"`
	OriginalName      string             `gorm:"type:text;not null"                             json:"original_name"`
	FileSize          int64              `gorm:"not null"                                       json:"file_size"`
	MimeType          string             `gorm:"type:text;not null"                             json:"mime_type"`
	Status            string             `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	UploadedBy        string             `gorm:"type:text;not null"                             json:"uploaded_by"`
	UploadedAt        time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"uploaded_at"`
	ApprovedAt        *time.Time         `json:"approved_at,omitempty"`
	ApprovedBy        *string            `gorm:"type:text"                                      json:"approved_by,omitempty"`
	ValidationResults *ValidationResults `gorm:"type:jsonb"                                     json:"validation_results,omitempty"`
	ErrorCount        int                `gorm:"not null;default:0"                             json:"error_count"`
	ValidCount        int                `gorm:"not null;default:0"                             json:"valid_count"` // 至少有一条有效记录的去重学生数
	TotalCount        int                `gorm:"not null;default:0"                             json:"total_count"` // 原始行中可提取到学号的去重学生数
}

// TableName 指定表名
func (Upload) TableName() string { return "uploads" }

