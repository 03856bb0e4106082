package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/classtrack/core/student"
)

func TestStudentAPI(t *testing.T) {
	app, _ := setup(t)
	john := student.Student{
		ID:             1,
		Name:           "John Smith",
		Email:          "john.smith@students.classtrack.edu",
		OverallGrade:   82.5,
		CompletionRate: 75,
	}

	tests := []httpTest{
		{
			name:     "current",
			method:   http.MethodGet,
			path:     "/v1/students/current",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, john),
		},
		{
			name:     "by id",
			method:   http.MethodGet,
			path:     "/v1/students/1",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, john),
		},
		{
			name:     "create invalid",
			method:   http.MethodPost,
			path:     "/v1/students",
			body:     []byte(`{"name": "  ", "email": "nope"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"name":  "this field is required",
				"email": "email must be a valid email address",
			}),
		},
		{
			name:     "create",
			method:   http.MethodPost,
			path:     "/v1/students",
			body:     []byte(`{"name": "Ada <b>Lovelace</b>", "email": " Ada@Students.ClassTrack.edu "}`),
			wantCode: http.StatusCreated,
			wantData: marchallObj(t, student.Student{
				ID:    4,
				Name:  "Ada Lovelace",
				Email: "ada@students.classtrack.edu",
			}),
		},
		{
			name:     "update",
			method:   http.MethodPatch,
			path:     "/v1/students/4",
			body:     []byte(`{"name": "Ada King", "overall_grade": 99}`),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, student.Student{
				ID:           4,
				Name:         "Ada King",
				Email:        "ada@students.classtrack.edu",
				OverallGrade: 99,
			}),
		},
		{
			name:     "destroy",
			method:   http.MethodDelete,
			path:     "/v1/students/4",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, student.Student{
				ID:           4,
				Name:         "Ada King",
				Email:        "ada@students.classtrack.edu",
				OverallGrade: 99,
			}),
		},
		{
			name:     "destroy unknown",
			method:   http.MethodDelete,
			path:     "/v1/students/4",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "student with id 4 not found"}),
		},
		{
			name:     "progress out of range",
			method:   http.MethodPatch,
			path:     "/v1/students/1/progress",
			body:     []byte(`{"completion_rate": 120}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"completion_rate": "completion_rate must be 100 or less",
			}),
		},
		{
			name:     "progress",
			method:   http.MethodPatch,
			path:     "/v1/students/2/progress",
			body:     []byte(`{"completion_rate": 95}`),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, student.Student{
				ID:             2,
				Name:           "Emily Chen",
				Email:          "emily.chen@students.classtrack.edu",
				OverallGrade:   91.2,
				CompletionRate: 95,
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(app, tt.method, tt.path, tt.body)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("list", func(t *testing.T) {
		rec := do(app, http.MethodGet, "/v1/students")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var students []student.Student
		unmarchall(t, rec, &students)
		require.Len(t, students, 3)
		assert.Equal(t, john, students[0])
	})
}
