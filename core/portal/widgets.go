package portal

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/trezcool/classtrack/core/assignment"
	"github.com/trezcool/classtrack/core/grading"
)

// Badge variants
const (
	VariantDefault = "default"
	VariantSuccess = "success"
	VariantWarning = "warning"
	VariantError   = "error"
	VariantInfo    = "info"
	VariantPrimary = "primary"
)

// Colors
const (
	ColorPrimary = "primary"
	ColorSuccess = "success"
	ColorGreen   = "green"
	ColorYellow  = "yellow"
	ColorRed     = "red"
)

type Badge struct {
	Label   string `json:"label"`
	Variant string `json:"variant"`
}

func StatusBadge(status assignment.Status) Badge {
	switch status {
	case assignment.StatusSubmitted:
		return Badge{Label: "Submitted", Variant: VariantSuccess}
	case assignment.StatusOverdue:
		return Badge{Label: "Overdue", Variant: VariantError}
	case assignment.StatusGraded:
		return Badge{Label: "Graded", Variant: VariantInfo}
	default:
		return Badge{Label: "Pending", Variant: VariantWarning}
	}
}

func LetterBadge(l grading.Letter) Badge {
	switch l {
	case grading.LetterA:
		return Badge{Label: string(l), Variant: VariantSuccess}
	case grading.LetterB:
		return Badge{Label: string(l), Variant: VariantInfo}
	case grading.LetterC:
		return Badge{Label: string(l), Variant: VariantWarning}
	default:
		return Badge{Label: string(l), Variant: VariantError}
	}
}

// GradeColor colors a percentage: green from 80, yellow from 70, red below.
func GradeColor(pct float64) string {
	switch {
	case pct >= 80:
		return ColorGreen
	case pct >= 70:
		return ColorYellow
	default:
		return ColorRed
	}
}

// Ring is the geometry of a circular progress indicator.
type Ring struct {
	Percentage    float64 `json:"percentage"`
	Label         string  `json:"label"`
	Size          float64 `json:"size"`
	StrokeWidth   float64 `json:"stroke_width"`
	Radius        float64 `json:"radius"`
	Circumference float64 `json:"circumference"`
	DashOffset    float64 `json:"dash_offset"`
	Color         string  `json:"color"`
}

// NewRing clamps pct to [0, 100].
func NewRing(pct, size, strokeWidth float64, color string) Ring {
	pct = math.Max(0, math.Min(100, pct))
	radius := (size - strokeWidth) / 2
	circumference := 2 * math.Pi * radius
	return Ring{
		Percentage:    pct,
		Label:         fmt.Sprintf("%d%%", int(math.Round(pct))),
		Size:          size,
		StrokeWidth:   strokeWidth,
		Radius:        radius,
		Circumference: circumference,
		DashOffset:    circumference - pct/100*circumference,
		Color:         color,
	}
}

// Initials returns the upper-cased first letters of the first two words of name, eg. "Data Structures" -> "DS".
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Split(name, " ") {
		if r, _ := utf8.DecodeRuneInString(word); r != utf8.RuneError {
			b.WriteRune(r)
		}
	}
	initials := []rune(strings.ToUpper(b.String()))
	if len(initials) > 2 {
		initials = initials[:2]
	}
	return string(initials)
}

// FormatMB formats a byte count in megabytes, eg. "5.0 MB".
func FormatMB(size int64, decimals int) string {
	return fmt.Sprintf("%.*f MB", decimals, float64(size)/(1024*1024))
}

// Plural returns "1 <unit>" or "<n> <unit>s".
func Plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

type FilterOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count *int   `json:"count,omitempty"`
}

func countOption(key, label string, n int) FilterOption {
	return FilterOption{Key: key, Label: label, Count: &n}
}

// filterAll is the key of the option disabling a filter.
const filterAll = "all"

func isAll(key string) bool {
	return key == "" || key == filterAll
}

// courseOptions lists each course once, in order of first appearance, after the "all" option.
func courseOptions(assignments []assignment.Assignment) []FilterOption {
	opts := []FilterOption{{Key: filterAll, Label: "All Courses"}}
	seen := make(map[string]bool)
	for _, a := range assignments {
		if seen[a.CourseID] {
			continue
		}
		seen[a.CourseID] = true
		label := a.CourseName
		if label == "" {
			label = a.CourseID
		}
		opts = append(opts, FilterOption{Key: a.CourseID, Label: label})
	}
	return opts
}
