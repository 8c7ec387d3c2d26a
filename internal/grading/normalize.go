package grading

import (
	"strings"

	"github.com/EthanNaitwe/SchoolReportMaster/internal/model"
)

// SubjectGrade 单个科目单元格归一化后的候选记录
type SubjectGrade struct {
	Observation model.GradeObservation
	Raw         string // 原始单元格文本，供校验错误信息引用
}

// NormalizeSubjects 对固定科目列逐一归一化
// 单元格三分类：
//   - 数值（[0,100]）→ 按阈值表派生字母等级，原始分值保留
//   - 字母等级       → 原样保留，数值字段回显同一符号
//   - 其他           → 字母等级置空串，留给行校验阶段标记
//
// 空白单元格不产出候选记录（既不计有效也不计错误）
func (o Options) NormalizeSubjects(row Row, id Identity) []SubjectGrade {
	var out []SubjectGrade

	for _, subject := range Subjects {
		raw, ok := row[subject]
		if !ok {
			continue
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		letter := ""
		if score, numeric := ParseNumericScore(raw); numeric {
			letter = DeriveLetter(score)
		} else if IsValidLetter(raw) {
			letter = raw
		}

		out = append(out, SubjectGrade{
			Raw: raw,
			Observation: model.GradeObservation{
				StudentID:    id.StudentID,
				StudentName:  id.StudentName,
				Subject:      subject,
				Grade:        letter,
				NumericGrade: raw,
				Class:        id.Class,
				Term:         id.Term,
				AcademicYear: id.AcademicYear,
				GPA:          GPAFor(letter),
			},
		})
	}

	return out
}
