package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/EthanNaitwe/SchoolReportMaster/internal/model"
)

// UploadRepository 上传批次数据访问接口
type UploadRepository interface {
	Create(ctx context.Context, upload *model.Upload) error
	GetByID(ctx context.Context, id string) (*model.Upload, error)
	List(ctx context.Context) ([]model.Upload, error)
	ListByStatus(ctx context.Context, status string) ([]model.Upload, error)
	Update(ctx context.Context, upload *model.Upload) error
}

// uploadRepo UploadRepository 的 GORM 实现
type uploadRepo struct {
	db *gorm.DB
}

// NewUploadRepo 创建 UploadRepository 实例
func NewUploadRepo(db *gorm.DB) UploadRepository {
	return &uploadRepo{db: db}
}

func (r *uploadRepo) Create(ctx context.Context, upload *model.Upload) error {
	return r.db.WithContext(ctx).Create(upload).Error
}

func (r *uploadRepo) GetByID(ctx context.Context, id string) (*model.Upload, error) {
	var upload model.Upload
	err := r.db.WithContext(ctx).
		Where("upload_id = ?", id).
		First(&upload).Error
	if err != nil {
		return nil, err
	}
	return &upload, nil
}

func (r *uploadRepo) List(ctx context.Context) ([]model.Upload, error) {
	var uploads []model.Upload
	err := r.db.WithContext(ctx).
		Order("uploaded_at DESC").
		Find(&uploads).Error
	return uploads, err
}

func (r *uploadRepo) ListByStatus(ctx context.Context, status string) ([]model.Upload, error) {
	var uploads []model.Upload
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("uploaded_at DESC").
		Find(&uploads).Error
	return uploads, err
}

func (r *uploadRepo) Update(ctx context.Context, upload *model.Upload) error {
	return r.db.WithContext(ctx).Save(upload).Error
}
