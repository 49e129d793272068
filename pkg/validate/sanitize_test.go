package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		maxLen int
		want   string
	}{
		{name: "empty", text: "", maxLen: 10, want: ""},
		{name: "tags stripped", text: "<b>Numerical</b> methods", maxLen: 0, want: "Numerical methods"},
		{name: "spaces trimmed", text: "  Math \n", maxLen: 0, want: "Math"},
		{name: "cut in runes", text: "Математика", maxLen: 4, want: "Мате"},
		{name: "only tags", text: "<script></script>", maxLen: 10, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.text, tt.maxLen))
		})
	}
}
