package portal

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/pkg/errors"

	"github.com/trezcool/classtrack/core/grading"
)

// ring geometry of the overview cards
const (
	ringSize   = 60
	ringStroke = 8
)

type (
	MonthlyAverage struct {
		Month   string  `json:"month"` // eg. "Jan"
		Average float64 `json:"average"`
	}

	CourseProgress struct {
		CourseID       string  `json:"course_id"`
		CourseName     string  `json:"course_name"`
		Grade          float64 `json:"grade"` // average percentage of the graded work, 0 if none
		Graded         int     `json:"graded"`
		Completed      int     `json:"completed"`
		Total          int     `json:"total"`
		CompletionRate float64 `json:"completion_rate"`
	}

	Insight struct {
		Title   string `json:"title"`
		Message string `json:"message"`
		Icon    string `json:"icon"`
		Color   string `json:"color"`
	}

	Progress struct {
		CurrentGPA           float64          `json:"current_gpa"`
		CompletionRate       float64          `json:"completion_rate"`
		GPARing              Ring             `json:"gpa_ring"`
		CompletionRing       Ring             `json:"completion_ring"`
		TotalAssignments     int              `json:"total_assignments"`
		CompletedAssignments int              `json:"completed_assignments"`
		Remaining            int              `json:"remaining"`
		GradeHistory         []MonthlyAverage `json:"grade_history"`
		Courses              []CourseProgress `json:"courses"`
		Insights             []Insight        `json:"insights"`
	}
)

func formatPct(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64) + "%"
}

// Progress is computed from the current student's record, the assignments and their submissions.
func (p *Portal) Progress(ctx context.Context) (Progress, error) {
	stud, err := p.opts.Students.GetCurrent(ctx)
	if err != nil {
		return Progress{}, errors.Wrap(err, "getting current student")
	}
	all, err := p.opts.Assignments.GetAll(ctx)
	if err != nil {
		return Progress{}, errors.Wrap(err, "querying assignments")
	}
	subs, err := p.submissionsByAssignment(ctx, stud.ID)
	if err != nil {
		return Progress{}, err
	}

	type monthKey struct {
		year  int
		month int
	}
	var (
		completed int
		courses   []*CourseProgress
		byCourse  = make(map[string]*CourseProgress)
		coursePct = make(map[string][]float64)
		monthPct  = make(map[monthKey][]float64)
	)
	for _, a := range all {
		cp, ok := byCourse[a.CourseID]
		if !ok {
			cp = &CourseProgress{CourseID: a.CourseID, CourseName: a.CourseName}
			byCourse[a.CourseID] = cp
			courses = append(courses, cp)
		}
		cp.Total++

		asubs := subs[a.ID]
		if len(asubs) == 0 {
			continue
		}
		completed++
		cp.Completed++

		for _, s := range asubs {
			if !s.IsGraded() {
				continue
			}
			pct := grading.Percentage(s.Grade.Float64, a.MaxPoints)
			coursePct[a.CourseID] = append(coursePct[a.CourseID], pct)
			if s.GradedAt.Valid {
				k := monthKey{s.GradedAt.Time.Year(), int(s.GradedAt.Time.Month())}
				monthPct[k] = append(monthPct[k], pct)
			}
			break
		}
	}

	months := make([]monthKey, 0, len(monthPct))
	for k := range monthPct {
		months = append(months, k)
	}
	sort.Slice(months, func(i, j int) bool {
		if months[i].year != months[j].year {
			return months[i].year < months[j].year
		}
		return months[i].month < months[j].month
	})
	history := make([]MonthlyAverage, 0, len(months))
	for _, k := range months {
		history = append(history, MonthlyAverage{
			Month:   monthNames[k.month-1],
			Average: grading.Average(monthPct[k]),
		})
	}

	progress := Progress{
		CurrentGPA:           stud.OverallGrade,
		CompletionRate:       stud.CompletionRate,
		GPARing:              NewRing(stud.OverallGrade, ringSize, ringStroke, ColorPrimary),
		CompletionRing:       NewRing(stud.CompletionRate, ringSize, ringStroke, ColorSuccess),
		TotalAssignments:     len(all),
		CompletedAssignments: completed,
		Remaining:            len(all) - completed,
		GradeHistory:         history,
		Courses:              make([]CourseProgress, 0, len(courses)),
	}
	for _, cp := range courses {
		pcts := coursePct[cp.CourseID]
		cp.Grade = grading.Average(pcts)
		cp.Graded = len(pcts)
		if cp.Total > 0 {
			cp.CompletionRate = math.Round(float64(cp.Completed) / float64(cp.Total) * 100)
		}
		progress.Courses = append(progress.Courses, *cp)
	}
	progress.Insights = insights(history, progress.Courses)
	return progress, nil
}

var monthNames = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// insights compares the first and last months of history,
// and the best and worst graded courses.
func insights(history []MonthlyAverage, courses []CourseProgress) []Insight {
	var out []Insight

	if len(history) >= 2 {
		first, last := history[0], history[len(history)-1]
		diff := grading.Round1(last.Average - first.Average)
		span := Plural(len(history)-1, "month")
		if diff >= 0 {
			out = append(out, Insight{
				Title:   "Improving Trend",
				Message: fmt.Sprintf("Your grades have improved by %s over the last %s", formatPct(diff), span),
				Icon:    "TrendingUp",
				Color:   ColorGreen,
			})
		} else {
			out = append(out, Insight{
				Title:   "Declining Trend",
				Message: fmt.Sprintf("Your grades have dropped by %s over the last %s", formatPct(-diff), span),
				Icon:    "TrendingDown",
				Color:   ColorRed,
			})
		}
	}

	var best, worst *CourseProgress
	for i := range courses {
		c := &courses[i]
		if c.Graded == 0 {
			continue
		}
		if best == nil || c.Grade > best.Grade {
			best = c
		}
		if worst == nil || c.Grade < worst.Grade {
			worst = c
		}
	}
	if best != nil {
		out = append(out, Insight{
			Title:   "Top Performer",
			Message: fmt.Sprintf("%s is your strongest course at %s average", best.CourseName, formatPct(best.Grade)),
			Icon:    "Award",
			Color:   "blue",
		})
	}
	if worst != nil && worst != best {
		out = append(out, Insight{
			Title:   "Focus Area",
			Message: fmt.Sprintf("Consider spending more time on %s assignments", worst.CourseName),
			Icon:    "Target",
			Color:   ColorYellow,
		})
	}
	if out == nil {
		out = []Insight{}
	}
	return out
}
