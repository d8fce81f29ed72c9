package docsem_test

import (
	"testing"

	"github.com/docsem/docsem"
	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple title", "Field options", "field-options"},
		{"multiple words", "Getting Started With Django", "getting-started-with-django"},
		{"special characters removed", "API Reference (v2.0)", "api-reference-v20"},
		{"existing hyphens preserved", "Many-to-many relationships", "many-to-many-relationships"},
		{"collapses whitespace runs", "Field   options", "field-options"},
		{"leading and trailing space", "  Field options  ", "field-options"},
		{"empty title", "", ""},
		{"only special characters", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, docsem.Slugify(tt.title))
		})
	}
}
