package grading

// Summary 一次上传的汇总统计，整体重算写回 Upload，不做增量修补
type Summary struct {
	TotalCount int // 原始行中可提取到学号的去重学生数（全科失败亦计入）
	ValidCount int // 至少有一条有效记录的去重学生数
	ErrorCount int // 错误条目总数（按科目粒度，单个学生可贡献多条）
}

// Summarize 基于原始行与校验结果计算上传汇总
// 计数规则保证 ValidCount <= TotalCount 恒成立：
// 有效记录的学号必然也出现在原始行中
func (o Options) Summarize(rows []Row, res Result) Summary {
	uniqueStudents := make(map[string]bool)
	for _, row := range rows {
		if id := o.ExtractIdentity(row); id.StudentID != "" {
			uniqueStudents[id.StudentID] = true
		}
	}

	validStudents := make(map[string]bool)
	for _, g := range res.ValidatedGrades {
		if g.StudentID != "" {
			validStudents[g.StudentID] = true
		}
	}

	return Summary{
		TotalCount: len(uniqueStudents),
		ValidCount: len(validStudents),
		ErrorCount: len(res.Errors),
	}
}
