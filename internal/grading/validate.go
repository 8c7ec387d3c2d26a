package grading

import (
	"fmt"

	"github.com/EthanNaitwe/SchoolReportMaster/internal/model"
)

// Result 一次上传全量校验的产出：有效记录与错误条目并列返回（部分成功语义）
type Result struct {
	ValidatedGrades []model.GradeObservation
	Errors          []model.ValidationIssue
}

// Process 对上传的全部数据行执行 提取 → 归一化 → 校验
//
// 按（行, 科目）粒度独立判定：一行 4 个科目可产出 4 个互不影响的
// 通过/失败结果，单科出错不拖垮整行。每个（行, 科目）对恰好产出
// 一条有效记录或一条错误条目，二者互斥。
//
// 已知缺口（保持历史行为）：识别科目单元格全部为空的行既不产出
// 有效记录也不产出错误条目，该学生对 validCount 与错误报告均不可见。
func (o Options) Process(rows []Row) Result {
	var res Result

	for i, row := range rows {
		id := o.ExtractIdentity(row)

		for _, sg := range o.NormalizeSubjects(row, id) {
			var issues []string
			if id.StudentID == "" {
				issues = append(issues, "Missing Student ID")
			}
			if id.StudentName == "" {
				issues = append(issues, "Missing Student Name")
			}
			if sg.Observation.Grade == "" {
				issues = append(issues, fmt.Sprintf("Invalid %s grade: %s", sg.Observation.Subject, sg.Raw))
			}

			if len(issues) > 0 {
				res.Errors = append(res.Errors, model.ValidationIssue{
					Row:     i + 1, // 数据行号，1 起始（不含表头）
					Errors:  issues,
					Data:    sg.Observation,
					Subject: sg.Observation.Subject,
				})
			} else {
				res.ValidatedGrades = append(res.ValidatedGrades, sg.Observation)
			}
		}
	}

	return res
}

