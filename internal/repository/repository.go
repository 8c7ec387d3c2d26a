package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
// 具体后端（postgres | memory）由启动时的 storage.driver 配置一次性选定，
// 不做运行时探测降级
type Repository struct {
	User       UserRepository
	Upload     UploadRepository
	Grade      GradeRepository
	ReportCard ReportCardRepository
}

// NewRepository 创建基于 GORM/PostgreSQL 的 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:       NewUserRepo(db),
		Upload:     NewUploadRepo(db),
		Grade:      NewGradeRepo(db),
		ReportCard: NewReportCardRepo(db),
	}
}

