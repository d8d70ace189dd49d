package ast

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var fieldDisplayNames = map[string]string{
	"param":     "Parameter",
	"parameter": "Parameter",
	"arg":       "Parameter",
	"argument":  "Parameter",
	"type":      "Type",
	"return":    "Returns",
	"returns":   "Returns",
	"yield":     "Yields",
	"yields":    "Yields",
	"raise":     "Raises",
	"raises":    "Raises",
	"rtype":     "Return Type",
	"ivar":      "Instance Variable",
	"cvar":      "Class Variable",
	"var":       "Variable",
	"seealso":   "See Also",
	"note":      "Note",
}

// FieldDisplayName maps a field keyword such as "param" or "rtype" to the
// human label used when a field is presented inline.
func FieldDisplayName(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if display, ok := fieldDisplayNames[key]; ok {
		return display
	}
	if key == "" {
		return "Field"
	}
	return cases.Title(language.English).String(key)
}

// FieldLabel is **Display** followed by the argument as code, if any.
func FieldLabel(f Field) []Inline {
	label := []Inline{Strong{Children: []Inline{Text{Value: FieldDisplayName(f.Name)}}}}
	if f.Argument != "" {
		label = append(label, Text{Value: " "}, Code{Value: f.Argument})
	}
	return label
}

// DefinitionLabel is **term** optionally followed by " (*classifier*)".
func DefinitionLabel(term, classifier string) []Inline {
	label := []Inline{Strong{Children: []Inline{Text{Value: term}}}}
	if classifier != "" {
		label = append(label,
			Text{Value: " ("},
			Emphasis{Children: []Inline{Text{Value: classifier}}},
			Text{Value: ")"},
		)
	}
	return label
}

// PrependLabel attaches label to body. A leading paragraph absorbs it as
// "label: text"; any other leading block gets a "label:" paragraph in front.
// An empty body becomes a single paragraph holding the label.
func PrependLabel(label []Inline, body []Block) []Block {
	if len(body) == 0 {
		return []Block{Paragraph{Inlines: label}}
	}
	out := make([]Block, 0, len(body)+1)
	if p, ok := body[0].(Paragraph); ok {
		inlines := append([]Inline{}, label...)
		if len(p.Inlines) > 0 {
			inlines = append(inlines, Text{Value: ": "})
			inlines = append(inlines, p.Inlines...)
		}
		out = append(out, Paragraph{Inlines: inlines})
		return append(out, body[1:]...)
	}
	heading := append(append([]Inline{}, label...), Text{Value: ":"})
	out = append(out, Paragraph{Inlines: heading})
	return append(out, body...)
}
