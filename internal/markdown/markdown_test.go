package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string // substrings that must appear in the output
	}{
		{
			name:   "heading",
			source: "# Estrategia Digital",
			want:   []string{"<h1", "Estrategia Digital</h1>"},
		},
		{
			name:   "emphasis",
			source: "some **bold** text",
			want:   []string{"<strong>bold</strong>"},
		},
		{
			name:   "gfm table",
			source: "| a | b |\n|---|---|\n| 1 | 2 |",
			want:   []string{"<table>", "<td>1</td>"},
		},
		{
			name:   "autolink",
			source: "visit https://elevate.mx today",
			want:   []string{`<a href="https://elevate.mx"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.source)
			if err != nil {
				t.Fatalf("ToHTML: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
		})
	}
}

func TestToHTMLEscapesRawHTML(t *testing.T) {
	got, err := ToHTML(`<script>alert("x")</script>`)
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("raw HTML must not pass through:\n%s", got)
	}
}
