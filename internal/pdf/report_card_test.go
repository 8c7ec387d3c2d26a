package pdf

import (
	"bytes"
	"testing"
)

func TestRenderProducesPDF(t *testing.T) {
	buf, err := Render(ReportCardData{
		SchoolName:   "Tamayuz Junior School",
		StudentID:    "STU001",
		StudentName:  "John Doe",
		Class:        "S1A",
		Term:         "Q1",
		AcademicYear: "2023-2024",
		Lines: []SubjectLine{
			{Subject: "Mathematics", NumericGrade: "78", LetterGrade: "C+", GPA: "2.0"},
			{Subject: "English", NumericGrade: "82", LetterGrade: "B", GPA: "2.7"},
		},
	})
	if err != nil {
		t.Fatalf("Render 失败: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("输出应为 PDF 字节流")
	}
}

func TestAverages(t *testing.T) {
	avgScore, avgGPA := averages([]SubjectLine{
		{NumericGrade: "78", GPA: "2.0"},
		{NumericGrade: "82", GPA: "2.7"},
	})
	if avgScore != "80.0" {
		t.Errorf("期望平均分 80.0，实际 %s", avgScore)
	}
	if avgGPA != "2.35" {
		t.Errorf("期望平均 GPA 2.35，实际 %s", avgGPA)
	}

	// 字母等级回显在数值列时不计入平均分
	avgScore, _ = averages([]SubjectLine{
		{NumericGrade: "B+", GPA: "3.0"},
		{NumericGrade: "90", GPA: "3.3"},
	})
	if avgScore != "90.0" {
		t.Errorf("字母回显应跳过，期望 90.0，实际 %s", avgScore)
	}

	avgScore, avgGPA = averages(nil)
	if avgScore != "0.0" || avgGPA != "0.00" {
		t.Errorf("空输入期望 0.0/0.00，实际 %s/%s", avgScore, avgGPA)
	}
}
