// Package excel 负责电子表格的读取与模板生成。
// 解析产物为通用的 表头→单元格 行映射，供 grading 流水线消费；
// 表头不做语义判断（字段别名探测在 grading 包内完成）。
package excel

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/EthanNaitwe/SchoolReportMaster/internal/grading"
)

var (
	ErrNoData      = errors.New("Excel 文件无数据行（第一行为表头）")
	ErrNoSheet     = errors.New("Excel 文件不含任何工作表")
	ErrTooManyRows = errors.New("数据行数超过上限")
)

// Parser Excel 解析器
type Parser struct {
	maxRows int // 单次上传允许的最大数据行数，<=0 表示不限
}

// NewParser 创建 Parser；maxRows 通常来自 upload.max_rows 配置
func NewParser(maxRows int) *Parser {
	return &Parser{maxRows: maxRows}
}

// Parse 读取第一个工作表，首行为表头，产出逐行的 表头→单元格 映射
// 单元格文本去除首尾空白；全空行跳过；表头重复时后者覆盖前者
func (p *Parser) Parse(reader io.Reader) ([]grading.Row, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("无法解析 Excel 文件: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}

	excelRows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("读取工作表失败: %w", err)
	}
	if len(excelRows) < 2 {
		return nil, ErrNoData
	}

	header := make([]string, len(excelRows[0]))
	for i, h := range excelRows[0] {
		header[i] = strings.TrimSpace(h)
	}

	var rows []grading.Row
	for _, cells := range excelRows[1:] {
		row := make(grading.Row, len(header))
		empty := true
		for i, h := range header {
			if h == "" || i >= len(cells) {
				continue
			}
			v := strings.TrimSpace(cells[i])
			row[h] = v
			if v != "" {
				empty = false
			}
		}
		if empty {
			continue // 跳过全空行
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrNoData
	}
	if p.maxRows > 0 && len(rows) > p.maxRows {
		return nil, fmt.Errorf("%w（%d 行，上限 %d 行）", ErrTooManyRows, len(rows), p.maxRows)
	}

	return rows, nil
}

