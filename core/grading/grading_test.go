package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLetterFor(t *testing.T) {
	tests := []struct {
		pct  float64
		want Letter
	}{
		{100, LetterA},
		{90, LetterA},
		{89.99, LetterB},
		{80, LetterB},
		{79.5, LetterC},
		{70, LetterC},
		{60, LetterD},
		{59.9, LetterF},
		{0, LetterF},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, LetterFor(tc.pct), "LetterFor(%v)", tc.pct)
	}
}

func TestPercentage(t *testing.T) {
	assert.InDelta(t, 55.0, Percentage(27.5, 50), 1e-9)
	assert.Equal(t, 95.0, Percentage(95, 100))
	assert.Equal(t, 0.0, Percentage(10, 0))
}

func TestDistribute(t *testing.T) {
	d := Distribute([]float64{95, 82, 71, 55})
	assert.Equal(t, Distribution{A: 1, B: 1, C: 1, D: 0, F: 1}, d)
	assert.Equal(t, 1, d.Count(LetterF))
	assert.Equal(t, 0, d.Count(LetterD))

	assert.Equal(t, Distribution{}, Distribute(nil))
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{95, 82, 71, 55})
	assert.Equal(t, Stats{Average: 75.8, Highest: 95, Lowest: 55, Total: 4}, s)

	s = Summarize([]float64{100.0 / 3})
	assert.Equal(t, 33.3, s.Average)

	assert.Equal(t, Stats{}, Summarize(nil))
}

func TestAverage(t *testing.T) {
	assert.Equal(t, 0.0, Average(nil))
	assert.Equal(t, 82.5, Average([]float64{80, 85}))
}
