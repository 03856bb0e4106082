// Package grading turns raw scores into percentages, letters and summary statistics.
package grading

import "math"

type Letter string

// Letters
const (
	LetterA Letter = "A"
	LetterB Letter = "B"
	LetterC Letter = "C"
	LetterD Letter = "D"
	LetterF Letter = "F"
)

var Letters = []Letter{LetterA, LetterB, LetterC, LetterD, LetterF}

// Percentage returns score as a percentage of maxPoints, 0 if maxPoints is not positive.
func Percentage(score, maxPoints float64) float64 {
	if maxPoints <= 0 {
		return 0
	}
	return score / maxPoints * 100
}

// LetterFor maps a percentage to a letter: A >= 90, B >= 80, C >= 70, D >= 60, else F.
func LetterFor(pct float64) Letter {
	switch {
	case pct >= 90:
		return LetterA
	case pct >= 80:
		return LetterB
	case pct >= 70:
		return LetterC
	case pct >= 60:
		return LetterD
	default:
		return LetterF
	}
}

// Round1 rounds x to one decimal.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

type Distribution struct {
	A int `json:"A"`
	B int `json:"B"`
	C int `json:"C"`
	D int `json:"D"`
	F int `json:"F"`
}

func (d Distribution) Count(l Letter) int {
	switch l {
	case LetterA:
		return d.A
	case LetterB:
		return d.B
	case LetterC:
		return d.C
	case LetterD:
		return d.D
	default:
		return d.F
	}
}

func Distribute(pcts []float64) Distribution {
	var d Distribution
	for _, pct := range pcts {
		switch LetterFor(pct) {
		case LetterA:
			d.A++
		case LetterB:
			d.B++
		case LetterC:
			d.C++
		case LetterD:
			d.D++
		default:
			d.F++
		}
	}
	return d
}

// Stats holds percentages rounded to one decimal.
type Stats struct {
	Average float64 `json:"average"`
	Highest float64 `json:"highest"`
	Lowest  float64 `json:"lowest"`
	Total   int     `json:"total"`
}

// Summarize returns the zero Stats when pcts is empty.
func Summarize(pcts []float64) Stats {
	if len(pcts) == 0 {
		return Stats{}
	}
	sum, highest, lowest := 0.0, pcts[0], pcts[0]
	for _, pct := range pcts {
		sum += pct
		highest = math.Max(highest, pct)
		lowest = math.Min(lowest, pct)
	}
	return Stats{
		Average: Round1(sum / float64(len(pcts))),
		Highest: Round1(highest),
		Lowest:  Round1(lowest),
		Total:   len(pcts),
	}
}

// Average returns the mean of xs, rounded to one decimal, or 0 when empty.
func Average(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return Round1(sum / float64(len(xs)))
}
