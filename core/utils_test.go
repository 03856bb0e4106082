package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "  Graph Traversal ", "Graph Traversal"},
		{"ampersand", "Research & Writing", "Research & Writing"},
		{"apostrophe", "Writer's Workshop", "Writer's Workshop"},
		{"quotes", `The "Final" Essay`, `The "Final" Essay`},
		{"comparison", "Use x < y comparisons", "Use x < y comparisons"},
		{"markup", "<b>Bold</b> <script>alert(1)</script>move", "Bold move"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanText(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, CleanText(got))
		})
	}
}
