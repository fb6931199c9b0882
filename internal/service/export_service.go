package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"learnhub/backend/internal/model"
	"learnhub/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置响应头后写入 Response
type ExportService interface {
	// ExportCourseProgress 导出课程内所有学员的学习进度
	ExportCourseProgress(ctx context.Context, mentorID, courseID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

type progressRow struct {
	name        string
	email       string
	progress    model.Progress
	certificate string
}

// ═══════════════════════════════════════════════════════════
// ExportCourseProgress — 导出课程进度为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单个 Sheet "学习进度"
//   - 第 1 行标题（课程名），第 2 行表头
//   - 每个已分配学员一行，按姓名排序
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportCourseProgress(ctx context.Context, mentorID, courseID string) (*bytes.Buffer, string, error) {
	// 1. 课程归属校验
	course, err := getOwnedCourse(ctx, s.repo, s.logger, courseID, mentorID)
	if err != nil {
		return nil, "", err
	}

	// 2. 汇总数据
	total, err := s.repo.Chapter.CountByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("统计章节数失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, "", err
	}

	assignments, err := s.repo.Assignment.ListByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("查询课程学员失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, "", err
	}

	completedByStudent, err := s.repo.Completion.CountByCourseGroupedByStudent(ctx, courseID)
	if err != nil {
		s.logger.Error("统计学员完成章节数失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, "", err
	}

	certs, err := s.repo.Certificate.ListByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("查询课程证书失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, "", err
	}
	certByStudent := make(map[string]string, len(certs))
	for _, c := range certs {
		certByStudent[c.StudentID] = c.CertificateNumber
	}

	rows := make([]progressRow, 0, len(assignments))
	for _, a := range assignments {
		row := progressRow{
			progress:    model.Progress{Total: total, Completed: completedByStudent[a.StudentID]},
			certificate: certByStudent[a.StudentID],
		}
		if a.Student != nil {
			row.name = a.Student.FullName
			row.email = a.Student.Email
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].name != rows[j].name {
			return rows[i].name < rows[j].name
		}
		return rows[i].email < rows[j].email
	})

	// 3. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "学习进度"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	f.DeleteSheet("Sheet1")

	headers := []string{"姓名", "邮箱", "已完成章节", "章节总数", "完成度(%)", "证书编号"}
	widths := []float64{16, 28, 12, 12, 12, 26}
	for i, w := range widths {
		col := colName(i)
		f.SetColWidth(sheetName, col, col, w)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s — 学习进度", course.Title))
	f.MergeCell(sheetName, "A1", cell(colName(len(headers)-1), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 2), h)
	}
	f.SetCellStyle(sheetName, "A2", cell(colName(len(headers)-1), 2), headerStyle)

	// 数据行
	row := 3
	for _, rd := range rows {
		cert := rd.certificate
		if cert == "" {
			cert = "-"
		}
		f.SetCellValue(sheetName, cell("A", row), rd.name)
		f.SetCellValue(sheetName, cell("B", row), rd.email)
		f.SetCellValue(sheetName, cell("C", row), rd.progress.Completed)
		f.SetCellValue(sheetName, cell("D", row), rd.progress.Total)
		f.SetCellValue(sheetName, cell("E", row), rd.progress.Percentage())
		f.SetCellValue(sheetName, cell("F", row), cert)
		row++
	}

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("学习进度_%s_%s.xlsx", course.Title, time.Now().Format("20060102"))
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
