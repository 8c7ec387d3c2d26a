package model

import "time"

// Grade 成绩记录表 — 对应 grades
// 一条（学生, 科目）观测，归属于唯一一个上传批次；只追加，不删除
type Grade struct {
	GradeID         string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"grade_id"`
	UploadID        string     `gorm:"type:uuid;not null;index"                       json:"upload_id"`
	StudentID       string     `gorm:"type:text;not null"                             json:"student_id"`
	StudentName     string     `gorm:"type:text;not null"                             json:"student_name"`
	Subject         string     `gorm:"type:text;not null"                             json:"subject"`
	LetterGrade     string     `gorm:"column:letter_grade;type:text;not null"         json:"letter_grade"`
	NumericGrade    *string    `gorm:"type:text"                                      json:"numeric_grade,omitempty"`
	GPA             *string    `gorm:"column:gpa;type:text"                           json:"gpa,omitempty"`
	Class           *string    `gorm:"type:text"                                      json:"class,omitempty"`
	Term            string     `gorm:"type:text;not null"                             json:"term"`
	AcademicYear    string     `gorm:"type:text;not null"                             json:"academic_year"`
	IsValid         bool       `gorm:"not null;default:true"                          json:"is_valid"`
	ValidationError *string    `gorm:"type:text"                                      json:"validation_error,omitempty"`
	Status          string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	RejectionReason *string    `gorm:"type:text"                                      json:"rejection_reason,omitempty"`
	ReviewedBy      *string    `gorm:"type:text"                                      json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	// 关联
	Upload *Upload `gorm:"foreignKey:UploadID;references:UploadID" json:"upload,omitempty"`
}

// TableName 指定表名
func (Grade) TableName() string { return "grades" }

