package service

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/sms-next/internal/constants"
	"github.com/sms-next/internal/models"
	"github.com/sms-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func setupExcelServiceTest(t *testing.T) (*ExcelService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:excel_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Department{}, &models.Clazz{}, &models.Student{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewExcelService(repository.NewStudentRepository(db), repository.NewClazzRepository(db))
	return svc, db
}

func buildImportFile(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	for col, header := range constants.StudentExcelHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			t.Fatalf("set header failed: %v", err)
		}
	}
	for i, row := range rows {
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				t.Fatalf("set cell failed: %v", err)
			}
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write excel failed: %v", err)
	}
	return &buf
}

func TestImportStudents(t *testing.T) {
	svc, db := setupExcelServiceTest(t)
	clazz := models.Clazz{Name: "计科2301班", Grade: "2023"}
	if err := db.Create(&clazz).Error; err != nil {
		t.Fatalf("create clazz failed: %v", err)
	}
	existing := models.Student{StudentNo: "20230001", Name: "已有学生"}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatalf("create student failed: %v", err)
	}

	buf := buildImportFile(t, [][]interface{}{
		{"20230002", "张三", "计科2301班", "男", "13800000001", "zhangsan@example.com"},
		{"20230001", "重复学号", "计科2301班", "男", "", ""},
		{"", "缺学号", "", "", "", ""},
		{"20230003", "李四", "不存在的班级", "女", "", ""},
		{"20230004", "王五", "", "男", "", ""},
	})

	result, err := svc.ImportStudents(buf)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.Total != 5 {
		t.Fatalf("total want 5 got %d", result.Total)
	}
	if result.Success != 2 {
		t.Fatalf("success want 2 got %d (errors: %+v)", result.Success, result.Errors)
	}
	if result.Failed != 3 {
		t.Fatalf("failed want 3 got %d", result.Failed)
	}

	var imported models.Student
	if err := db.Where("student_no = ?", "20230002").First(&imported).Error; err != nil {
		t.Fatalf("imported student not found: %v", err)
	}
	if imported.ClazzID != clazz.ID {
		t.Fatalf("clazz id want %d got %d", clazz.ID, imported.ClazzID)
	}
}

func TestExportStudentsRoundTrip(t *testing.T) {
	svc, db := setupExcelServiceTest(t)
	clazz := models.Clazz{Name: "软工2401班", Grade: "2024"}
	if err := db.Create(&clazz).Error; err != nil {
		t.Fatalf("create clazz failed: %v", err)
	}
	student := models.Student{StudentNo: "20240001", Name: "赵六", Gender: "女", ClazzID: clazz.ID}
	if err := db.Create(&student).Error; err != nil {
		t.Fatalf("create student failed: %v", err)
	}

	data, err := svc.ExportStudents()
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open exported file failed: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(studentSheetName)
	if err != nil {
		t.Fatalf("read rows failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("row count want 2 got %d", len(rows))
	}
	if rows[0][0] != "学号" || rows[0][2] != "班级" {
		t.Fatalf("header mismatch: %v", rows[0])
	}
	if rows[1][0] != "20240001" || rows[1][1] != "赵六" || rows[1][2] != "软工2401班" {
		t.Fatalf("data row mismatch: %v", rows[1])
	}
}

func TestTemplateHeaderOnly(t *testing.T) {
	svc, _ := setupExcelServiceTest(t)
	data, err := svc.Template()
	if err != nil {
		t.Fatalf("template failed: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open template failed: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(studentSheetName)
	if err != nil {
		t.Fatalf("read rows failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("template should only contain header, got %d rows", len(rows))
	}
	if len(rows[0]) != len(constants.StudentExcelHeaders) {
		t.Fatalf("header column count want %d got %d", len(constants.StudentExcelHeaders), len(rows[0]))
	}
}
