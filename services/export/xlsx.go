package exportsvc

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/classtrack/core/portal"
)

const (
	GradesSheet = "Grades"
	dateLayout  = "2006-01-02 15:04"
)

var gradesHeader = []interface{}{
	"Assignment", "Course", "Score", "Max Points", "Percentage", "Letter", "Feedback", "Submitted At", "Graded At",
}

type XLSXExporter struct{}

var _ portal.GradesExporter = (*XLSXExporter)(nil)

func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// ExportGrades writes one row per grade card, under a bold header row.
func (XLSXExporter) ExportGrades(w io.Writer, cards []portal.GradeCard) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "closing workbook")
		}
	}()

	if err = f.SetSheetName(f.GetSheetName(0), GradesSheet); err != nil {
		return errors.Wrap(err, "naming sheet")
	}
	if err = f.SetSheetRow(GradesSheet, "A1", &gradesHeader); err != nil {
		return errors.Wrap(err, "writing header")
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "creating header style")
	}
	if err = f.SetRowStyle(GradesSheet, 1, 1, bold); err != nil {
		return errors.Wrap(err, "styling header")
	}

	for i, c := range cards {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "locating row")
		}
		row := []interface{}{
			c.AssignmentTitle,
			c.CourseName,
			c.Score,
			c.MaxPoints,
			c.Percentage,
			string(c.Letter),
			c.Feedback,
			c.SubmittedAt.Format(dateLayout),
			c.GradedAt.Format(dateLayout),
		}
		if err := f.SetSheetRow(GradesSheet, cell, &row); err != nil {
			return errors.Wrapf(err, "writing row %d", i+2)
		}
	}
	if err = f.SetColWidth(GradesSheet, "A", "B", 32); err != nil {
		return errors.Wrap(err, "sizing columns")
	}

	_, err = f.WriteTo(w)
	return errors.Wrap(err, "writing workbook")
}
