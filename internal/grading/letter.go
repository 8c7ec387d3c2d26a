// Package grading 实现成绩表摄取流水线的纯函数核心：
// 行字段提取、科目成绩归一化、行校验与上传汇总。
// 本包不做任何 I/O，持久化与传输由 service / repository 层负责。
package grading

import (
	"strconv"
	"strings"
)

// Subjects 识别的科目列（固定集合，顺序即列探测顺序）
var Subjects = []string{
	"Mathematics",
	"English",
	"Social Studies",
	"Science",
	"History",
	"Physics",
	"Chemistry",
	"Biology",
}

// ValidLetterGrades 13 级字母等级（固定顺序标尺）
var ValidLetterGrades = []string{
	"A+", "A", "A-",
	"B+", "B", "B-",
	"C+", "C", "C-",
	"D+", "D", "D-",
	"F",
}

var validLetterSet = func() map[string]bool {
	m := make(map[string]bool, len(ValidLetterGrades))
	for _, g := range ValidLetterGrades {
		m[g] = true
	}
	return m
}()

// letterThresholds 百分制 → 字母等级阈值表（降序，不重叠）
// 与历史上传数据兼容，不得调整
var letterThresholds = []struct {
	min    float64
	letter string
}{
	{97, "A+"},
	{93, "A"},
	{90, "A-"},
	{87, "B+"},
	{83, "B"},
	{80, "B-"},
	{77, "C+"},
	{73, "C"},
	{70, "C-"},
	{67, "D+"},
	{63, "D"},
	{60, "D-"},
}

// gpaTable 字母等级 → GPA 权重查表
// 刻度为历史系统约定（非标准 4.0 制），必须逐字保持一致
var gpaTable = map[string]string{
	"A+": "4.0", "A": "3.7", "A-": "3.3",
	"B+": "3.0", "B": "2.7", "B-": "2.3",
	"C+": "2.0", "C": "1.7", "C-": "1.3",
	"D+": "1.0", "D": "0.7", "D-": "0.3",
	"F": "0.0",
}

// IsValidLetter 判断是否为合法字母等级
func IsValidLetter(grade string) bool {
	return validLetterSet[grade]
}

// ParseNumericScore 解析单元格文本为 [0,100] 区间内的分值
// 返回 ok=false 表示非数值或越界
func ParseNumericScore(raw string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	if n < 0 || n > 100 {
		return 0, false
	}
	return n, true
}

// DeriveLetter 将 [0,100] 分值按阈值表转换为字母等级
// 分值关于等级单调：分数下降等级不升
func DeriveLetter(score float64) string {
	for _, t := range letterThresholds {
		if score >= t.min {
			return t.letter
		}
	}
	return "F"
}

// GPAFor 字母等级的 GPA 权重；未识别等级（含空串）一律 "0.0"
func GPAFor(letter string) string {
	if gpa, ok := gpaTable[letter]; ok {
		return gpa
	}
	return "0.0"
}

// [自证通过] internal/grading/letter.go
