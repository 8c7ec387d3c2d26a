package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/EthanNaitwe/SchoolReportMaster/internal/model"
	"github.com/EthanNaitwe/SchoolReportMaster/internal/repository"
)

// ── Process 测试 ──

func TestUploadService_Process_Success(t *testing.T) {
	repo := newTestRepo()
	svc := newTestServices(repo).Upload

	result := uploadWorkbook(t, svc,
		[]string{"Student ID", "Name", "Class", "Mathematics", "English"},
		[][]string{{"STU001", "John Doe", "P5", "78", "82"}},
	)

	if result.Upload.Status != model.StatusPending {
		t.Errorf("新上传应为 pending，实际=%s", result.Upload.Status)
	}
	if result.Upload.TotalCount != 1 || result.Upload.ValidCount != 1 || result.Upload.ErrorCount != 0 {
		t.Errorf("期望统计 1/1/0，实际=%d/%d/%d",
			result.Upload.TotalCount, result.Upload.ValidCount, result.Upload.ErrorCount)
	}
	if len(result.Grades) != 2 {
		t.Fatalf("期望 2 条成绩记录，实际=%d", len(result.Grades))
	}

	math := result.Grades[0]
	if math.Subject != "Mathematics" || math.LetterGrade != "C+" {
		t.Errorf("期望 Mathematics C+，实际=%s %s", math.Subject, math.LetterGrade)
	}
	if math.GPA == nil || *math.GPA != "2.0" {
		t.Errorf("期望 GPA=2.0，实际=%v", math.GPA)
	}
	eng := result.Grades[1]
	if eng.Subject != "English" || eng.LetterGrade != "B" {
		t.Errorf("期望 English B，实际=%s %s", eng.Subject, eng.LetterGrade)
	}

	// 回写后的批次可独立查询
	stored, err := svc.GetByID(context.Background(), result.Upload.ID)
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if stored.ValidationResults == nil || len(stored.ValidationResults.ValidatedGrades) != 2 {
		t.Error("校验结果应随批次留档")
	}
}

func TestUploadService_Process_InvalidRowsPersisted(t *testing.T) {
	repo := newTestRepo()
	svc := newTestServices(repo).Upload

	result := uploadWorkbook(t, svc,
		[]string{"Student ID", "Name", "Science"},
		[][]string{
			{"STU001", "John Doe", "88"},
			{"STU002", "Ann", "105"},
		},
	)

	if result.Upload.TotalCount != 2 || result.Upload.ValidCount != 1 || result.Upload.ErrorCount != 1 {
		t.Errorf("期望统计 2/1/1，实际=%d/%d/%d",
			result.Upload.TotalCount, result.Upload.ValidCount, result.Upload.ErrorCount)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("期望 1 条错误，实际=%d", len(result.Errors))
	}
	if result.Errors[0].Errors[0] != "Invalid Science grade: 105" {
		t.Errorf("错误文案不符，实际=%q", result.Errors[0].Errors[0])
	}

	// 无效记录同样落库，isValid=false 且保留错误说明
	grades, err := svc.GradesByUpload(context.Background(), result.Upload.ID)
	if err != nil {
		t.Fatalf("GradesByUpload 应成功: %v", err)
	}
	if len(grades) != 2 {
		t.Fatalf("期望落库 2 条记录，实际=%d", len(grades))
	}
	var invalid int
	for _, g := range grades {
		if !g.IsValid {
			invalid++
			if g.ValidationError == nil || *g.ValidationError == "" {
				t.Error("无效记录应带错误说明")
			}
		}
	}
	if invalid != 1 {
		t.Errorf("期望 1 条无效记录，实际=%d", invalid)
	}
}

func TestUploadService_Process_FileTooLarge(t *testing.T) {
	repo := newTestRepo()
	svc := newTestServices(repo).Upload

	input := &UploadInput{
		OriginalName: "huge.xlsx",
		MimeType:     xlsxMime,
		Size:         testConfig().Upload.MaxFileSize + 1,
		Content:      bytes.NewReader(nil),
	}
	_, err := svc.Process(context.Background(), input, "teacher-1")
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("期望 ErrFileTooLarge，实际: %v", err)
	}

	// 预检失败不得留下任何批次记录
	uploads, _ := svc.List(context.Background())
	if len(uploads) != 0 {
		t.Errorf("预检失败不应创建批次，实际=%d", len(uploads))
	}
}

func TestUploadService_Process_UnsupportedMime(t *testing.T) {
	repo := newTestRepo()
	svc := newTestServices(repo).Upload

	input := &UploadInput{
		OriginalName: "grades.csv",
		MimeType:     "text/csv",
		Size:         128,
		Content:      bytes.NewReader([]byte("a,b,c")),
	}
	_, err := svc.Process(context.Background(), input, "teacher-1")
	if !errors.Is(err, ErrUnsupportedFileType) {
		t.Errorf("期望 ErrUnsupportedFileType，实际: %v", err)
	}
}

// ── 持久化失败中止 ──

type failingGradeRepo struct {
	repository.GradeRepository
}

var errStorageDown = errors.New("storage down")

func (f *failingGradeRepo) CreateBatch(_ context.Context, _ []model.Grade) error {
	return errStorageDown
}

func TestUploadService_Process_PersistenceFailureAborts(t *testing.T) {
	repo := newTestRepo()
	repo.Grade = &failingGradeRepo{GradeRepository: repo.Grade}
	svc := NewUploadService(testConfig(), repo, zap.NewNop())

	buf := buildWorkbook(t,
		[]string{"Student ID", "Name", "Mathematics"},
		[][]string{{"STU001", "John Doe", "90"}},
	)
	input := &UploadInput{
		OriginalName: "grades.xlsx",
		MimeType:     xlsxMime,
		Size:         int64(buf.Len()),
		Content:      buf,
	}
	_, err := svc.Process(context.Background(), input, "teacher-1")
	if !errors.Is(err, errStorageDown) {
		t.Errorf("落库失败应中止整个上传，实际: %v", err)
	}
}

// ── 查询测试 ──

func TestUploadService_GetByID_NotFound(t *testing.T) {
	svc := newTestServices(newTestRepo()).Upload

	_, err := svc.GetByID(context.Background(), "00000000-0000-0000-0000-000000000000")
	if !errors.Is(err, ErrUploadNotFound) {
		t.Errorf("期望 ErrUploadNotFound，实际: %v", err)
	}
}

func TestUploadService_List_NewestFirst(t *testing.T) {
	repo := newTestRepo()
	svc := newTestServices(repo).Upload

	uploadWorkbook(t, svc,
		[]string{"Student ID", "Name", "Mathematics"},
		[][]string{{"STU001", "A", "70"}},
	)
	uploadWorkbook(t, svc,
		[]string{"Student ID", "Name", "Mathematics"},
		[][]string{{"STU002", "B", "80"}},
	)

	uploads, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(uploads) != 2 {
		t.Fatalf("期望 2 个批次，实际=%d", len(uploads))
	}
	if uploads[0].UploadedAt.Before(uploads[1].UploadedAt) {
		t.Error("列表应按上传时间倒序")
	}
}

