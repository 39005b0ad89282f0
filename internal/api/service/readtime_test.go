package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeReadTime(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected int
	}{
		{"empty content", "", 1},
		{"single word", "hello", 1},
		{"under one minute rounds up to one", strings.Repeat("word ", 150), 1},
		{"two minutes", strings.Repeat("word ", 400), 2},
		{"exactly two hundred words", strings.Repeat("word ", 200), 1},
		{"three hundred words rounds to two", strings.Repeat("word ", 300), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeReadTime(tt.content))
		})
	}
}

func TestComputeReadTime_StripsMarkup(t *testing.T) {
	plain := strings.Repeat("word ", 400)
	marked := "<p>" + strings.Repeat("<b>word</b> ", 400) + "</p>"

	assert.Equal(t, ComputeReadTime(plain), ComputeReadTime(marked))
}

func TestComputeReadTime_NeverZero(t *testing.T) {
	assert.Equal(t, 1, ComputeReadTime("   "))
}
