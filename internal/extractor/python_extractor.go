package extractor

import (
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// PythonExtractor implements LanguageExtractor for module, class and
// function docstrings.
type PythonExtractor struct{}

func (p *PythonExtractor) GetLanguage() *sitter.Language {
	return python.GetLanguage()
}

func (p *PythonExtractor) GetQuery() string {
	return `
		(module) @module
		(class_definition) @class
		(function_definition) @func
	`
}

// PackageName derives the dotted module name from the file path. The
// module of a package's __init__.py is the package itself.
func (p *PythonExtractor) PackageName(_ *sitter.Node, _ []byte, path string) string {
	path = filepath.ToSlash(filepath.Clean(path))
	path = strings.TrimSuffix(path, ".py")
	path = strings.TrimSuffix(path, "/__init__")
	path = strings.TrimPrefix(path, "./")
	return strings.ReplaceAll(strings.TrimLeft(path, "/"), "/", ".")
}

func (p *PythonExtractor) ExtractDocstring(captureName string, node *sitter.Node, sourceCode []byte, path string) *Docstring {
	switch captureName {
	case "module":
		str := docstringNode(node)
		if str == nil {
			return nil
		}
		return &Docstring{
			Filepath:  path,
			Kind:      "module",
			Name:      p.PackageName(node, sourceCode, path),
			StartLine: int(str.StartPoint().Row + 1),
			EndLine:   int(str.EndPoint().Row + 1),
			Text:      stringLiteralText(str.Content(sourceCode)),
		}
	case "class", "func":
		nameNode := node.ChildByFieldName("name")
		str := docstringNode(node.ChildByFieldName("body"))
		if nameNode == nil || str == nil {
			return nil
		}
		kind := "class"
		if captureName == "func" {
			kind = "function"
			if enclosingDefinition(node, "class_definition") != nil {
				kind = "method"
			}
		}
		return &Docstring{
			Filepath:  path,
			Kind:      kind,
			Name:      qualifiedName(node, sourceCode),
			Signature: definitionHeader(node, sourceCode),
			StartLine: int(node.StartPoint().Row + 1),
			EndLine:   int(node.EndPoint().Row + 1),
			Text:      stringLiteralText(str.Content(sourceCode)),
		}
	}
	return nil
}

// docstringNode returns the string literal that opens a module or block,
// or nil.
func docstringNode(body *sitter.Node) *sitter.Node {
	if body == nil || body.NamedChildCount() == 0 {
		return nil
	}
	first := body.NamedChild(0)
	for first != nil && first.Type() == "comment" {
		first = first.NextNamedSibling()
	}
	if first == nil || first.Type() != "expression_statement" || first.NamedChildCount() == 0 {
		return nil
	}
	if str := first.NamedChild(0); str.Type() == "string" {
		return str
	}
	return nil
}

// enclosingDefinition finds the nearest enclosing class or function
// definition of the given type, stopping at the other kind.
func enclosingDefinition(node *sitter.Node, typ string) *sitter.Node {
	for n := node.Parent(); n != nil; n = n.Parent() {
		switch n.Type() {
		case typ:
			return n
		case "class_definition", "function_definition":
			return nil
		}
	}
	return nil
}

// qualifiedName joins the names of enclosing definitions, e.g. "Outer.method".
func qualifiedName(node *sitter.Node, sourceCode []byte) string {
	var parts []string
	for n := node; n != nil; n = n.Parent() {
		if n.Type() != "class_definition" && n.Type() != "function_definition" {
			continue
		}
		if name := n.ChildByFieldName("name"); name != nil {
			parts = append([]string{name.Content(sourceCode)}, parts...)
		}
	}
	return strings.Join(parts, ".")
}

// definitionHeader returns the "def f(x):" or "class C(Base):" line.
func definitionHeader(node *sitter.Node, sourceCode []byte) string {
	end := node.EndByte()
	if body := node.ChildByFieldName("body"); body != nil {
		end = body.StartByte()
	}
	header := strings.TrimSpace(string(sourceCode[node.StartByte():end]))
	return strings.Join(strings.Fields(header), " ")
}

// stringLiteralText strips the prefix and quotes of a Python string literal
// and dedents the result.
func stringLiteralText(literal string) string {
	s := strings.TrimLeft(literal, "rRuUbBfF")
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(s, q) && strings.HasSuffix(s, q) && len(s) >= 2*len(q) {
			s = s[len(q) : len(s)-len(q)]
			break
		}
	}
	return CleanDoc(s)
}
