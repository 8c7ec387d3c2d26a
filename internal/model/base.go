package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ── 审批状态 ──

// 上传批次与成绩记录共用同一组状态值
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ── PostgreSQL JSONB 自定义类型 ──

// ValidationResults 一次上传的完整校验结果（留档用于审计与前端展示）
// 对应 uploads.validation_results JSONB 列，实现 GORM Scanner/Valuer 接口。
// JSON 字段名沿用前端既有约定（camelCase）。
type ValidationResults struct {
	ValidatedGrades []GradeObservation `json:"validatedGrades"`
	Errors          []ValidationIssue  `json:"errors"`
}

// GradeObservation 流水线产出的单条（学生, 科目）成绩观测
type GradeObservation struct {
	StudentID    string `json:"studentId"`
	StudentName  string `json:"studentName"`
	Subject      string `json:"subject"`
	Grade        string `json:"grade"`        // 字母等级，校验失败时为空串
	NumericGrade string `json:"numericGrade"` // 原始分值文本；字母等级直接回显
	Class        string `json:"class"`
	Term         string `json:"term"`
	AcademicYear string `json:"academicYear"`
	GPA          string `json:"gpa"`
}

// ValidationIssue 单条（行, 科目）校验失败条目
type ValidationIssue struct {
	Row     int              `json:"row"` // 1 起始的数据行号
	Errors  []string         `json:"errors"`
	Data    GradeObservation `json:"data"` // 出错时的候选数据，便于前端展示定位
	Subject string           `json:"subject"`
}

// Scan 将数据库 JSONB 解析为 ValidationResults
func (r *ValidationResults) Scan(src interface{}) error {
	if src == nil {
		*r = ValidationResults{}
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("ValidationResults.Scan: unsupported type %T", src)
	}
	return json.Unmarshal(b, r)
}

// Value 将 ValidationResults 序列化为 JSONB
func (r ValidationResults) Value() (driver.Value, error) {
	return json.Marshal(r)
}

