package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/EthanNaitwe/SchoolReportMaster/internal/model"
)

// ReportCardRepository 成绩单元数据访问接口
// 只增不改：成绩单记录一经生成不再变更
type ReportCardRepository interface {
	Create(ctx context.Context, card *model.ReportCard) error
	List(ctx context.Context) ([]model.ReportCard, error)
	ListByUpload(ctx context.Context, uploadID string) ([]model.ReportCard, error)
}

// reportCardRepo ReportCardRepository 的 GORM 实现
type reportCardRepo struct {
	db *gorm.DB
}

// NewReportCardRepo 创建 ReportCardRepository 实例
func NewReportCardRepo(db *gorm.DB) ReportCardRepository {
	return &reportCardRepo{db: db}
}

func (r *reportCardRepo) Create(ctx context.Context, card *model.ReportCard) error {
	return r.db.WithContext(ctx).Create(card).Error
}

func (r *reportCardRepo) List(ctx context.Context) ([]model.ReportCard, error) {
	var cards []model.ReportCard
	err := r.db.WithContext(ctx).
		Order("generated_at DESC").
		Find(&cards).Error
	return cards, err
}

func (r *reportCardRepo) ListByUpload(ctx context.Context, uploadID string) ([]model.ReportCard, error) {
	var cards []model.ReportCard
	err := r.db.WithContext(ctx).
		Where("upload_id = ?", uploadID).
		Order("generated_at DESC").
		Find(&cards).Error
	return cards, err
}
