package ui

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantContains []string
	}{
		{"plain text", "오늘은 맑음", []string{"오늘은 맑음"}},
		{"heading", "# 감상", []string{"감상"}},
		{"list", "- 장면 1\n- 장면 2", []string{"장면 1", "장면 2"}},
		{"emphasis", "정말 **좋았다**", []string{"좋았다"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripANSI(RenderMarkdown(tt.input, 80, "notty"))
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
		})
	}
}

func TestRenderMarkdownEmpty(t *testing.T) {
	if got := RenderMarkdown("", 80, "dark"); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestRenderMarkdownUnknownStyleFallsBack(t *testing.T) {
	in := "raw content"
	if got := RenderMarkdown(in, 80, "/no/such/style.json"); got != in {
		t.Errorf("expected raw content on renderer error, got %q", got)
	}
}

func TestRenderMarkdownStyleChange(t *testing.T) {
	dark := RenderMarkdown("**bold**", 40, "dark")
	plain := RenderMarkdown("**bold**", 40, "notty")
	if !strings.Contains(stripANSI(dark), "bold") || !strings.Contains(plain, "bold") {
		t.Errorf("expected both renders to contain text: %q / %q", dark, plain)
	}
}
