package catalog

import (
	"fmt"
	"io"
	"strings"

	"github.com/Freeeeeet/schedule_builder/internal/model"
	"github.com/xuri/excelize/v2"
)

// Колонки выгрузки, которые нам нужны
const (
	ColumnCourseSection   = "Course Section"
	ColumnInstructors     = "All Instructors"
	ColumnStatus          = "Section Status"
	ColumnEnrolled        = "Enrolled/Capacity"
	ColumnMeetingPatterns = "Meeting Patterns"
	ColumnLocations       = "Locations"
	ColumnStartDate       = "Start Date"
	ColumnEndDate         = "End Date"
)

// ReadSections читает первый лист XLSX. Отсутствующие колонки остаются пустыми,
// строки без Course Section пропускаются.
func ReadSections(r io.Reader) ([]model.CourseSection, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("xlsx has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return []model.CourseSection{}, nil
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := index[strings.ToLower(ColumnCourseSection)]; !ok {
		return nil, fmt.Errorf("column %q not found", ColumnCourseSection)
	}

	cell := func(row []string, column string) string {
		i, ok := index[strings.ToLower(column)]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	sections := make([]model.CourseSection, 0, len(rows)-1)
	for _, row := range rows[1:] {
		s := model.CourseSection{
			CourseSection:   cell(row, ColumnCourseSection),
			Instructors:     cell(row, ColumnInstructors),
			Status:          cell(row, ColumnStatus),
			EnrolledCap:     cell(row, ColumnEnrolled),
			MeetingPatterns: cell(row, ColumnMeetingPatterns),
			Locations:       cell(row, ColumnLocations),
			StartDate:       cell(row, ColumnStartDate),
			EndDate:         cell(row, ColumnEndDate),
		}
		if s.CourseSection == "" {
			continue
		}
		sections = append(sections, s)
	}

	return sections, nil
}
