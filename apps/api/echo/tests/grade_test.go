package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/classtrack/services/export"
)

func TestGradeAPI_Export(t *testing.T) {
	app, _ := setup(t)

	rec := do(app, http.MethodGet, "/v1/grades/export?course=CS201")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="grades.xlsx"`, rec.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportsvc.GradesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Assignment", rows[0][0])
	assert.Equal(t, "Linked List Operations", rows[1][0])
	assert.Equal(t, "Stacks and Queues Quiz", rows[2][0])
}
