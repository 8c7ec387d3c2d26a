package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/EthanNaitwe/SchoolReportMaster/internal/model"
)

// NewMemoryRepository 创建纯内存的 Repository 聚合
// 用于本地开发与演示环境（storage.driver = memory）：
// 进程退出即丢失数据，不提供任何持久化保证。
// 未找到一律返回 gorm.ErrRecordNotFound，保证 Service 层错误映射
// 与 PostgreSQL 后端完全一致。
func NewMemoryRepository() *Repository {
	return &Repository{
		User:       &memUserRepo{users: make(map[string]*model.User)},
		Upload:     &memUploadRepo{uploads: make(map[string]*model.Upload)},
		Grade:      &memGradeRepo{grades: make(map[string]*model.Grade)},
		ReportCard: &memReportCardRepo{cards: make(map[string]*model.ReportCard)},
	}
}

// ── Upload ──

type memUploadRepo struct {
	mu      sync.RWMutex
	uploads map[string]*model.Upload
}

func (r *memUploadRepo) Create(_ context.Context, upload *model.Upload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if upload.UploadID == "" {
		upload.UploadID = uuid.New().String()
	}
	if upload.UploadedAt.IsZero() {
		upload.UploadedAt = time.Now()
	}
	cp := *upload
	r.uploads[upload.UploadID] = &cp
	return nil
}

func (r *memUploadRepo) GetByID(_ context.Context, id string) (*model.Upload, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.uploads[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUploadRepo) List(_ context.Context) ([]model.Upload, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Upload, 0, len(r.uploads))
	for _, u := range r.uploads {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out, nil
}

func (r *memUploadRepo) ListByStatus(ctx context.Context, status string) ([]model.Upload, error) {
	all, _ := r.List(ctx)
	out := all[:0]
	for _, u := range all {
		if u.Status == status {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memUploadRepo) Update(_ context.Context, upload *model.Upload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.uploads[upload.UploadID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *upload
	r.uploads[upload.UploadID] = &cp
	return nil
}

// ── Grade ──

type memGradeRepo struct {
	mu     sync.RWMutex
	grades map[string]*model.Grade
}

func (r *memGradeRepo) CreateBatch(_ context.Context, grades []model.Grade) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range grades {
		if grades[i].GradeID == "" {
			grades[i].GradeID = uuid.New().String()
		}
		if grades[i].CreatedAt.IsZero() {
			grades[i].CreatedAt = time.Now()
		}
		cp := grades[i]
		r.grades[cp.GradeID] = &cp
	}
	return nil
}

func (r *memGradeRepo) ListByUpload(_ context.Context, uploadID string) ([]model.Grade, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.Grade
	for _, g := range r.grades {
		if g.UploadID == uploadID {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StudentID != out[j].StudentID {
			return out[i].StudentID < out[j].StudentID
		}
		return out[i].Subject < out[j].Subject
	})
	return out, nil
}

func (r *memGradeRepo) ListByUploadAndStudent(_ context.Context, uploadID, studentID string) ([]model.Grade, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.Grade
	for _, g := range r.grades {
		if g.UploadID == uploadID && g.StudentID == studentID {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Subject < out[j].Subject })
	return out, nil
}

func (r *memGradeRepo) UpdateStatusForStudent(_ context.Context, uploadID, studentID string, upd StatusUpdate) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, g := range r.grades {
		if g.UploadID == uploadID && g.StudentID == studentID {
			g.Status = upd.Status
			g.RejectionReason = upd.RejectionReason
			reviewedBy := upd.ReviewedBy
			reviewedAt := upd.ReviewedAt
			g.ReviewedBy = &reviewedBy
			g.ReviewedAt = &reviewedAt
			n++
		}
	}
	return n, nil
}

// ── ReportCard ──

type memReportCardRepo struct {
	mu    sync.RWMutex
	cards map[string]*model.ReportCard
}

func (r *memReportCardRepo) Create(_ context.Context, card *model.ReportCard) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if card.ReportCardID == "" {
		card.ReportCardID = uuid.New().String()
	}
	if card.GeneratedAt.IsZero() {
		card.GeneratedAt = time.Now()
	}
	cp := *card
	r.cards[card.ReportCardID] = &cp
	return nil
}

func (r *memReportCardRepo) List(_ context.Context) ([]model.ReportCard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.ReportCard, 0, len(r.cards))
	for _, c := range r.cards {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GeneratedAt.After(out[j].GeneratedAt) })
	return out, nil
}

func (r *memReportCardRepo) ListByUpload(ctx context.Context, uploadID string) ([]model.ReportCard, error) {
	all, _ := r.List(ctx)
	out := all[:0]
	for _, c := range all {
		if c.UploadID == uploadID {
			out = append(out, c)
		}
	}
	return out, nil
}

// ── User ──

type memUserRepo struct {
	mu    sync.RWMutex
	users map[string]*model.User
}

func (r *memUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.UserID == "" {
		user.UserID = uuid.New().String()
	}
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
		user.UpdatedAt = now
	}
	cp := *user
	r.users[user.UserID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

