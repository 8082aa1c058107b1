package markdown_test

import (
	"reflect"
	"testing"

	"github.com/g5becks/md2docx/internal/markdown"
)

func TestParseInline(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []markdown.Run
	}{
		{
			name: "single span",
			text: "Some **bold** text",
			want: []markdown.Run{{Text: "Some "}, {Text: "bold", Bold: true}, {Text: " text"}},
		},
		{
			name: "span at edges",
			text: "**start** mid **end**",
			want: []markdown.Run{{Text: "start", Bold: true}, {Text: " mid "}, {Text: "end", Bold: true}},
		},
		{
			name: "adjacent spans",
			text: "**a****b**",
			want: []markdown.Run{{Text: "a", Bold: true}, {Text: "b", Bold: true}},
		},
		{
			name: "unpaired delimiter stays literal",
			text: "price **5",
			want: []markdown.Run{{Text: "price **5"}},
		},
		{
			name: "odd delimiter after a pair",
			text: "**x** and **y",
			want: []markdown.Run{{Text: "x", Bold: true}, {Text: " and **y"}},
		},
		{
			name: "empty pair stays literal",
			text: "a **** b",
			want: []markdown.Run{{Text: "a **** b"}},
		},
		{
			name: "single asterisks are text",
			text: "**a*b**",
			want: []markdown.Run{{Text: "a*b", Bold: true}},
		},
		{
			name: "no delimiters",
			text: "plain",
			want: []markdown.Run{{Text: "plain"}},
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
		{
			name: "multibyte text",
			text: "héllo **wörld** ✓",
			want: []markdown.Run{{Text: "héllo "}, {Text: "wörld", Bold: true}, {Text: " ✓"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := markdown.ParseInline(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseInline(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}
