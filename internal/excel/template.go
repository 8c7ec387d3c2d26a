package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// TemplateFilename 模板下载的建议文件名
const TemplateFilename = "Student_Results_Template.xlsx"

// templateSheet 模板工作表名
const templateSheet = "Student Results"

// templateHeader 模板列契约：既有上传习惯依赖这组精确表头，不得改动
var templateHeader = []interface{}{
	"Student ID", "Name", "Class", "Mathematics", "English", "Social Studies", "Science",
}

// templateSample 3 行示例数据
var templateSample = [][]interface{}{
	{"STU001", "John Doe", "S1A", 78, 82, 91, 91},
	{"STU002", "Jane Mary", "S1A", 85, 79, 87, 87},
	{"STU003", "Alan Smith", "S1A", 90, 88, 95, 95},
}

// BuildTemplate 生成示例成绩表模板工作簿
func BuildTemplate() (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(templateSheet)
	if err != nil {
		return nil, fmt.Errorf("创建工作表失败: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("删除默认工作表失败: %w", err)
	}

	if err := f.SetSheetRow(templateSheet, "A1", &templateHeader); err != nil {
		return nil, fmt.Errorf("写入表头失败: %w", err)
	}
	for i, sample := range templateSample {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(templateSheet, cell, &sample); err != nil {
			return nil, fmt.Errorf("写入示例行失败: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("生成 Excel 文件失败: %w", err)
	}
	return buf, nil
}
