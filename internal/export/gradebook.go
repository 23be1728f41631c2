package export

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/strhzy/classroom-course/internal/db"
	"github.com/strhzy/classroom-course/internal/models"
)

type SheetSpec struct {
	Title  string
	Header []string
	Rows   [][]string
}

type GradebookWorkbook struct {
	File *excelize.File
}

// NewGradebookWorkbook собирает xlsx из готовых листов; чистая функция,
// без обращений к БД.
func NewGradebookWorkbook(sheets []SheetSpec) (*GradebookWorkbook, error) {
	f := excelize.NewFile()

	bold, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	for i, s := range sheets {
		name := s.Title
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, fmt.Errorf("new sheet: %w", err)
			}
		}
		// заголовки
		for col, h := range s.Header {
			cell := fmt.Sprintf("%s1", colName(col+1))
			if err := f.SetCellStr(name, cell, h); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
		// стиль заголовков + автофильтр
		end := colName(len(s.Header)) + "1"
		_ = f.SetCellStyle(name, "A1", end, bold)
		_ = f.AutoFilter(name, "A1:"+end, nil)

		// строки
		for r, row := range s.Rows {
			for c, val := range row {
				cell := fmt.Sprintf("%s%d", colName(c+1), r+2)
				if err := f.SetCellStr(name, cell, val); err != nil {
					return nil, fmt.Errorf("set cell %s: %w", cell, err)
				}
			}
		}
		// эвристическая ширина: по длине заголовка и первых строк
		for c := 1; c <= len(s.Header); c++ {
			maxim := len(s.Header[c-1])
			for r := 0; r < minim(50, len(s.Rows)); r++ {
				if c-1 < len(s.Rows[r]) {
					if l := len(s.Rows[r][c-1]); l > maxim {
						maxim = l
					}
				}
			}
			w := float64(maxim) * 0.9
			if w < 12 {
				w = 12
			}
			if w > 40 {
				w = 40
			}
			_ = f.SetColWidth(name, colName(c), colName(c), w)
		}
	}
	return &GradebookWorkbook{File: f}, nil
}

func (w *GradebookWorkbook) SaveTemp(courseCode string) (string, error) {
	name := fmt.Sprintf("gradebook_%s_%s.xlsx", sanitizeFileName(courseCode), time.Now().Format("2006-01-02"))
	path := "/tmp/" + name
	return path, w.File.SaveAs(path)
}

// GradebookSheet строит лист ведомости: строка на ученика, колонка на
// опубликованное задание, в хвосте средний балл и буквенная оценка.
// Пустая клетка — решение не сдано; "—" — сдано, но не проверено.
func GradebookSheet(course *models.Course, assignments []models.Assignment, roster []models.User, scores []db.SubmissionScore) SheetSpec {
	var cols []models.Assignment
	for _, a := range assignments {
		if a.Status != models.AssignmentDraft {
			cols = append(cols, a)
		}
	}

	header := []string{"Ученик"}
	for _, a := range cols {
		header = append(header, a.Title)
	}
	header = append(header, "Средний балл", "Оценка")

	// (student, assignment) -> score
	type key struct{ student, assignment int64 }
	byKey := make(map[key]db.SubmissionScore, len(scores))
	for _, s := range scores {
		byKey[key{s.StudentID, s.AssignmentID}] = s
	}

	var rows [][]string
	for _, u := range roster {
		row := []string{u.Name}
		var sum, graded float64
		for _, a := range cols {
			s, ok := byKey[key{u.ID, a.ID}]
			switch {
			case !ok:
				row = append(row, "")
			case s.Score == nil:
				row = append(row, "—")
			default:
				cell := strconv.Itoa(*s.Score)
				if s.IsLate {
					cell += " (поздно)"
				}
				row = append(row, cell)
				sum += float64(*s.Score)
				graded++
			}
		}
		if graded > 0 {
			avg := sum / graded
			row = append(row, strconv.FormatFloat(avg, 'f', 1, 64), models.LetterGrade(avg))
		} else {
			row = append(row, "", "")
		}
		rows = append(rows, row)
	}

	return SheetSpec{Title: sheetTitle(course), Header: header, Rows: rows}
}

// BuildCourseGradebook выгружает ведомость курса из БД.
func BuildCourseGradebook(ctx context.Context, database *sql.DB, courseID int64) (*GradebookWorkbook, error) {
	course, err := db.GetCourseByID(ctx, database, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, fmt.Errorf("курс %d не найден", courseID)
	}
	assignments, err := db.ListAssignmentsByCourse(ctx, database, courseID)
	if err != nil {
		return nil, err
	}
	roster, err := db.EffectiveRoster(ctx, database, courseID)
	if err != nil {
		return nil, err
	}
	scores, err := db.ListCourseScores(ctx, database, courseID)
	if err != nil {
		return nil, err
	}
	return NewGradebookWorkbook([]SheetSpec{GradebookSheet(course, assignments, roster, scores)})
}

// Utility helpers

func sheetTitle(c *models.Course) string {
	// excel не любит листы длиннее 31 символа
	t := cleanName(c.Title)
	if n := []rune(t); len(n) > 31 {
		t = string(n[:31])
	}
	return sanitizeFileName(t)
}

func colName(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+(n%26))) + s
		n /= 26
	}
	return s
}

func minim(a, b int) int {
	if a < b {
		return a
	}
	return b
}

var invalidFileRe = regexp.MustCompile(`[\\/:*?"<>|]+`)

func sanitizeFileName(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Join(strings.Fields(s), " ")
	return invalidFileRe.ReplaceAllString(s, "_")
}

func cleanName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "—"
	}
	return s
}
