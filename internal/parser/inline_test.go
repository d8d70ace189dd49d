package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docmark/internal/ast"
)

func TestParseInlines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []ast.Inline
	}{
		{
			name: "plain",
			in:   "just text",
			want: []ast.Inline{text("just text")},
		},
		{
			name: "emphasis and strong",
			in:   "a *b* and **c**",
			want: []ast.Inline{
				text("a "),
				ast.Emphasis{Children: []ast.Inline{text("b")}},
				text(" and "),
				ast.Strong{Children: []ast.Inline{text("c")}},
			},
		},
		{
			name: "strong with nested emphasis",
			in:   "**bold *italic* text**",
			want: []ast.Inline{ast.Strong{Children: []ast.Inline{
				text("bold "),
				ast.Emphasis{Children: []ast.Inline{text("italic")}},
				text(" text"),
			}}},
		},
		{
			name: "emphasis with nested strong",
			in:   "*an **important** point*",
			want: []ast.Inline{ast.Emphasis{Children: []ast.Inline{
				text("an "),
				ast.Strong{Children: []ast.Inline{text("important")}},
				text(" point"),
			}}},
		},
		{
			name: "unfinished emphasis",
			in:   "An *unfinished emphasis",
			want: []ast.Inline{text("An *unfinished emphasis")},
		},
		{
			name: "empty strong is text",
			in:   "****",
			want: []ast.Inline{text("****")},
		},
		{
			name: "inline code",
			in:   "call `f(*args)` now",
			want: []ast.Inline{text("call "), ast.Code{Value: "f(*args)"}, text(" now")},
		},
		{
			name: "double backtick code",
			in:   "``a `quoted` b``",
			want: []ast.Inline{ast.Code{Value: "a `quoted` b"}},
		},
		{
			name: "link",
			in:   "`example <https://example.com>`_",
			want: []ast.Inline{ast.Link{Children: []ast.Inline{text("example")}, URL: "https://example.com"}},
		},
		{
			name: "link needs the underscore",
			in:   "`example <https://example.com>`",
			want: []ast.Inline{ast.Code{Value: "example <https://example.com>"}},
		},
		{
			name: "link label markup",
			in:   "see `**docs** <http://x.io>`_ here",
			want: []ast.Inline{
				text("see "),
				ast.Link{Children: []ast.Inline{ast.Strong{Children: []ast.Inline{text("docs")}}}, URL: "http://x.io"},
				text(" here"),
			},
		},
		{
			name: "empty label degrades to code",
			in:   "`<http://x.io>`_",
			want: []ast.Inline{ast.Code{Value: "<http://x.io>"}, text("_")},
		},
		{
			name: "code is not re-parsed",
			in:   "`**not bold**`",
			want: []ast.Inline{ast.Code{Value: "**not bold**"}},
		},
		{
			name: "unclosed backtick",
			in:   "it`s",
			want: []ast.Inline{text("it`s")},
		},
		{
			name: "multibyte text",
			in:   "héllo *wörld*",
			want: []ast.Inline{text("héllo "), ast.Emphasis{Children: []ast.Inline{text("wörld")}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseInlines(tt.in))
		})
	}

	assert.Nil(t, ParseInlines(""))
}
