package service

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/sms-next/internal/constants"
	"github.com/sms-next/internal/logger"
	"github.com/sms-next/internal/models"
	"github.com/sms-next/internal/repository"

	"github.com/xuri/excelize/v2"
)

const studentSheetName = "学生"

// ExcelService 学生名单导入导出服务
type ExcelService struct {
	studentRepo repository.StudentRepository
	clazzRepo   repository.ClazzRepository
}

// NewExcelService 创建导入导出服务
func NewExcelService(studentRepo repository.StudentRepository, clazzRepo repository.ClazzRepository) *ExcelService {
	return &ExcelService{studentRepo: studentRepo, clazzRepo: clazzRepo}
}

// ImportRowError 单行导入失败明细
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult 导入结果
type ImportResult struct {
	Total   int              `json:"total"`
	Success int              `json:"success"`
	Failed  int              `json:"failed"`
	Errors  []ImportRowError `json:"errors,omitempty"`
}

// ExportStudents 导出学生名单
func (s *ExcelService) ExportStudents() ([]byte, error) {
	students, err := s.studentRepo.ListAllWithClazz()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warnw("excel_close_failed", "error", err)
		}
	}()

	sheet, err := f.NewSheet(studentSheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(sheet)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	if err := writeStudentHeader(f); err != nil {
		return nil, err
	}
	for i, student := range students {
		row := i + 2
		values := []interface{}{
			student.StudentNo,
			student.Name,
			student.ClazzName(),
			student.Gender,
			student.Phone,
			student.Email,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(studentSheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Template 生成只含表头的导入模板
func (s *ExcelService) Template() ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warnw("excel_close_failed", "error", err)
		}
	}()

	sheet, err := f.NewSheet(studentSheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(sheet)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	if err := writeStudentHeader(f); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ImportStudents 导入学生名单。逐行校验，坏行跳过并记录行号。
func (s *ExcelService) ImportStudents(r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("解析 Excel 文件失败: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warnw("excel_close_failed", "error", err)
		}
	}()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) <= 1 {
		return &ImportResult{}, nil
	}

	// 班级名到 ID 的映射，导入时按名称匹配
	clazzes, err := s.clazzRepo.ListAll()
	if err != nil {
		return nil, err
	}
	clazzByName := make(map[string]uint, len(clazzes))
	for _, clazz := range clazzes {
		clazzByName[clazz.Name] = clazz.ID
	}

	result := &ImportResult{}
	for i, row := range rows[1:] {
		rowNum := i + 2
		result.Total++

		student, rowErr := s.parseStudentRow(row, clazzByName)
		if rowErr != "" {
			result.Failed++
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Message: rowErr})
			continue
		}
		if err := s.studentRepo.Create(student); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Message: "写入失败"})
			logger.Warnw("excel_import_row_failed", "row", rowNum, "error", err)
			continue
		}
		result.Success++
	}
	return result, nil
}

func (s *ExcelService) parseStudentRow(row []string, clazzByName map[string]uint) (*models.Student, string) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	studentNo := cell(0)
	name := cell(1)
	if studentNo == "" {
		return nil, "学号不能为空"
	}
	if name == "" {
		return nil, "姓名不能为空"
	}

	existing, err := s.studentRepo.GetByStudentNo(studentNo)
	if err != nil {
		return nil, "查询学号失败"
	}
	if existing != nil {
		return nil, fmt.Sprintf("学号 %s 已存在", studentNo)
	}

	var clazzID uint
	if clazzName := cell(2); clazzName != "" {
		id, ok := clazzByName[clazzName]
		if !ok {
			return nil, fmt.Sprintf("班级 %s 不存在", clazzName)
		}
		clazzID = id
	}

	return &models.Student{
		StudentNo: studentNo,
		Name:      name,
		ClazzID:   clazzID,
		Gender:    cell(3),
		Phone:     cell(4),
		Email:     cell(5),
	}, ""
}

func writeStudentHeader(f *excelize.File) error {
	for col, header := range constants.StudentExcelHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(studentSheetName, cell, header); err != nil {
			return err
		}
	}
	return nil
}
