package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/EthanNaitwe/SchoolReportMaster/internal/model"
)

// StatusUpdate 一次学生粒度审批写入的字段集合
type StatusUpdate struct {
	Status          string
	RejectionReason *string
	ReviewedBy      string
	ReviewedAt      time.Time
}

// GradeRepository 成绩记录数据访问接口
type GradeRepository interface {
	CreateBatch(ctx context.Context, grades []model.Grade) error
	ListByUpload(ctx context.Context, uploadID string) ([]model.Grade, error)
	ListByUploadAndStudent(ctx context.Context, uploadID, studentID string) ([]model.Grade, error)
	// UpdateStatusForStudent 批量更新某学生在某上传内全部成绩记录的审批状态，
	// 返回受影响的记录数（0 表示该学生在该上传内无记录）
	UpdateStatusForStudent(ctx context.Context, uploadID, studentID string, upd StatusUpdate) (int64, error)
}

// gradeRepo GradeRepository 的 GORM 实现
type gradeRepo struct {
	db *gorm.DB
}

// NewGradeRepo 创建 GradeRepository 实例
func NewGradeRepo(db *gorm.DB) GradeRepository {
	return &gradeRepo{db: db}
}

func (r *gradeRepo) CreateBatch(ctx context.Context, grades []model.Grade) error {
	if len(grades) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&grades).Error
}

func (r *gradeRepo) ListByUpload(ctx context.Context, uploadID string) ([]model.Grade, error) {
	var grades []model.Grade
	err := r.db.WithContext(ctx).
		Where("upload_id = ?", uploadID).
		Order("student_id ASC, subject ASC").
		Find(&grades).Error
	return grades, err
}

func (r *gradeRepo) ListByUploadAndStudent(ctx context.Context, uploadID, studentID string) ([]model.Grade, error) {
	var grades []model.Grade
	err := r.db.WithContext(ctx).
		Where("upload_id = ? AND student_id = ?", uploadID, studentID).
		Order("subject ASC").
		Find(&grades).Error
	return grades, err
}

func (r *gradeRepo) UpdateStatusForStudent(ctx context.Context, uploadID, studentID string, upd StatusUpdate) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Grade{}).
		Where("upload_id = ? AND student_id = ?", uploadID, studentID).
		Updates(map[string]interface{}{
			"status":           upd.Status,
			"rejection_reason": upd.RejectionReason,
			"reviewed_by":      upd.ReviewedBy,
			"reviewed_at":      upd.ReviewedAt,
		})
	return res.RowsAffected, res.Error
}

