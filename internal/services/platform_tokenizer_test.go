package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizePlatforms(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"Single platform", "PC", []string{"PC"}},
		{"Multiple platforms", "PC,PS5,Xbox", []string{"PC", "PS5", "Xbox"}},
		{"Trims whitespace", "PC, PS5 ,  Xbox", []string{"PC", "PS5", "Xbox"}},
		{"Drops empty tokens", "PC, PS5,,Xbox ", []string{"PC", "PS5", "Xbox"}},
		{"Empty field", "", []string{}},
		{"Only separators", " , ,", []string{}},
		{"Duplicates are preserved", "PC,PC", []string{"PC", "PC"}},
		{"Case is preserved", "pc,PC", []string{"pc", "PC"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TokenizePlatforms(tt.input))
		})
	}
}
