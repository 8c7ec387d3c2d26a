package grading

import "strings"

// Row 一行电子表格数据：表头 → 单元格文本（已去除首尾空白）
// 不同上传的表头并不保证一致，字段提取按别名优先级探测
type Row map[string]string

// Identity 从单行提取出的学生身份信息
type Identity struct {
	StudentID    string
	StudentName  string
	Class        string
	Term         string
	AcademicYear string
}

// FieldAliases 逻辑字段 → 按优先级排列的表头别名列表
// 数据驱动，可按需扩展；顺序即探测顺序，先命中（非空）者胜出
type FieldAliases struct {
	StudentID    []string
	StudentName  []string
	Class        []string
	Term         []string
	AcademicYear []string
}

// DefaultAliases 既有上传习惯沉淀的默认别名表
func DefaultAliases() FieldAliases {
	return FieldAliases{
		StudentID:    []string{"Student ID", "studentId", "StudentID", "ID"},
		StudentName:  []string{"Name", "Student Name", "studentName", "Full Name"},
		Class:        []string{"Class", "class", "Grade", "grade"},
		Term:         []string{"term", "Term", "Quarter", "Semester"},
		AcademicYear: []string{"academicYear", "Academic Year", "School Year"},
	}
}

// Options 流水线配置
type Options struct {
	Aliases             FieldAliases
	DefaultTerm         string // Term 缺失时的兜底值
	DefaultAcademicYear string // 学年缺失时的兜底值
}

// DefaultOptions 默认流水线配置
func DefaultOptions() Options {
	return Options{
		Aliases:             DefaultAliases(),
		DefaultTerm:         "Q1",
		DefaultAcademicYear: "2023-2024",
	}
}

// probe 依次尝试别名列表，返回首个非空值
func probe(row Row, aliases []string) string {
	for _, alias := range aliases {
		if v, ok := row[alias]; ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}

// ExtractIdentity 从单行提取学生身份字段
// 纯函数：学号/姓名缺失不在此处报错，由行校验阶段统一判定
func (o Options) ExtractIdentity(row Row) Identity {
	id := Identity{
		StudentID:    probe(row, o.Aliases.StudentID),
		StudentName:  probe(row, o.Aliases.StudentName),
		Class:        probe(row, o.Aliases.Class),
		Term:         probe(row, o.Aliases.Term),
		AcademicYear: probe(row, o.Aliases.AcademicYear),
	}
	if id.Term == "" {
		id.Term = o.DefaultTerm
	}
	if id.AcademicYear == "" {
		id.AcademicYear = o.DefaultAcademicYear
	}
	return id
}

