package portal

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/classtrack/core"
	"github.com/trezcool/classtrack/core/assignment"
	"github.com/trezcool/classtrack/core/grading"
	"github.com/trezcool/classtrack/core/submission"
)

type (
	GradesQuery struct {
		Search string `query:"search"`
		Course string `query:"course"`
	}

	GradeCard struct {
		SubmissionID    int            `json:"submission_id"`
		AssignmentID    int            `json:"assignment_id"`
		AssignmentTitle string         `json:"assignment_title"`
		CourseID        string         `json:"course_id"`
		CourseName      string         `json:"course_name"`
		Score           float64        `json:"score"`
		MaxPoints       float64        `json:"max_points"`
		Percentage      float64        `json:"percentage"`
		Letter          grading.Letter `json:"letter"`
		LetterBadge     Badge          `json:"letter_badge"`
		Color           string         `json:"color"`
		Feedback        string         `json:"feedback,omitempty"`
		SubmittedAt     time.Time      `json:"submitted_at"`
		GradedAt        time.Time      `json:"graded_at"`
	}

	GradesPage struct {
		Grades       []GradeCard          `json:"grades"`
		Summary      string               `json:"summary"`
		Stats        grading.Stats        `json:"stats"`
		Distribution grading.Distribution `json:"distribution"`
		Courses      []FilterOption       `json:"courses"`
	}
)

func newGradeCard(s submission.Submission, a assignment.Assignment) GradeCard {
	pct := grading.Percentage(s.Grade.Float64, a.MaxPoints)
	letter := grading.LetterFor(pct)
	return GradeCard{
		SubmissionID:    s.ID,
		AssignmentID:    a.ID,
		AssignmentTitle: a.Title,
		CourseID:        a.CourseID,
		CourseName:      a.CourseName,
		Score:           s.Grade.Float64,
		MaxPoints:       a.MaxPoints,
		Percentage:      grading.Round1(pct),
		Letter:          letter,
		LetterBadge:     LetterBadge(letter),
		Color:           GradeColor(pct),
		Feedback:        s.Feedback.String,
		SubmittedAt:     s.SubmittedAt,
		GradedAt:        s.GradedAt.Time,
	}
}

// gradeCards returns the cards of the current student's graded submissions,
// course-filtered and search-filtered, newest grade first.
// Submissions of unknown assignments are skipped.
func (p *Portal) gradeCards(ctx context.Context, q GradesQuery) (courseCards, cards []GradeCard, all []assignment.Assignment, err error) {
	stud, err := p.opts.Students.GetCurrent(ctx)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "getting current student")
	}
	graded, err := p.opts.Submissions.GetGraded(ctx)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "querying graded submissions")
	}
	all, err = p.opts.Assignments.GetAll(ctx)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "querying assignments")
	}

	byID := make(map[int]assignment.Assignment, len(all))
	for _, a := range all {
		byID[a.ID] = a
	}

	search := core.CleanString(q.Search)
	for _, s := range graded {
		a, ok := byID[s.AssignmentID]
		if !ok || s.StudentID != stud.ID {
			continue
		}
		if !isAll(q.Course) && a.CourseID != q.Course {
			continue
		}
		card := newGradeCard(s, a)
		courseCards = append(courseCards, card)
		if search != "" && !(core.ContainsFold(a.Title, search) || core.ContainsFold(a.CourseName, search)) {
			continue
		}
		cards = append(cards, card)
	}
	sort.SliceStable(cards, func(i, j int) bool { return cards[i].GradedAt.After(cards[j].GradedAt) })
	return courseCards, cards, all, nil
}

// Grades computes stats and distribution over the course-filtered grades, ignoring the search.
func (p *Portal) Grades(ctx context.Context, q GradesQuery) (GradesPage, error) {
	courseCards, cards, all, err := p.gradeCards(ctx, q)
	if err != nil {
		return GradesPage{}, err
	}

	pcts := make([]float64, 0, len(courseCards))
	for _, c := range courseCards {
		pcts = append(pcts, grading.Percentage(c.Score, c.MaxPoints))
	}
	if cards == nil {
		cards = []GradeCard{}
	}

	return GradesPage{
		Grades:       cards,
		Summary:      Plural(len(courseCards), "graded assignment"),
		Stats:        grading.Summarize(pcts),
		Distribution: grading.Distribute(pcts),
		Courses:      courseOptions(all),
	}, nil
}

// ExportGrades writes the grades matching q with the configured exporter.
func (p *Portal) ExportGrades(ctx context.Context, q GradesQuery, w io.Writer) error {
	if p.opts.Exporter == nil {
		return errors.New("no grades exporter configured")
	}
	_, cards, _, err := p.gradeCards(ctx, q)
	if err != nil {
		return err
	}
	return errors.Wrap(p.opts.Exporter.ExportGrades(w, cards), "exporting grades")
}
