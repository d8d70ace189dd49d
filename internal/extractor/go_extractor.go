package extractor

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

// GoExtractor implements LanguageExtractor for Go doc comments.
type GoExtractor struct{}

func (g *GoExtractor) GetLanguage() *sitter.Language {
	return golang.GetLanguage()
}

func (g *GoExtractor) GetQuery() string {
	return `
		(package_clause) @package
		(function_declaration) @func
		(method_declaration) @func
		(type_spec) @type
		(const_spec) @const
		(var_spec) @var
	`
}

func (g *GoExtractor) PackageName(root *sitter.Node, sourceCode []byte, _ string) string {
	pkgQuery, err := sitter.NewQuery([]byte(`(package_clause (package_identifier) @pkg)`), golang.GetLanguage())
	if err != nil {
		return ""
	}
	defer pkgQuery.Close()
	pqc := sitter.NewQueryCursor()
	defer pqc.Close()
	pqc.Exec(pkgQuery, root)
	if m, ok := pqc.NextMatch(); ok && len(m.Captures) > 0 {
		return m.Captures[0].Node.Content(sourceCode)
	}
	return ""
}

func (g *GoExtractor) ExtractDocstring(captureName string, node *sitter.Node, sourceCode []byte, filepath string) *Docstring {
	switch captureName {
	case "package":
		return g.extractPackageDoc(node, sourceCode, filepath)
	case "func":
		return g.extractFunctionDoc(node, sourceCode, filepath)
	case "type":
		return g.extractSpecDoc(node, sourceCode, filepath, "type")
	case "const":
		return g.extractSpecDoc(node, sourceCode, filepath, "constant")
	case "var":
		return g.extractSpecDoc(node, sourceCode, filepath, "variable")
	}
	return nil
}

func (g *GoExtractor) extractPackageDoc(node *sitter.Node, sourceCode []byte, filepath string) *Docstring {
	var name string
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if child := node.NamedChild(i); child.Type() == "package_identifier" {
			name = child.Content(sourceCode)
		}
	}
	return &Docstring{
		Filepath:  filepath,
		Kind:      "package",
		Name:      name,
		Signature: node.Content(sourceCode),
		StartLine: int(node.StartPoint().Row + 1),
		EndLine:   int(node.EndPoint().Row + 1),
		Text:      g.extractDocComment(node, sourceCode),
	}
}

func (g *GoExtractor) extractFunctionDoc(node *sitter.Node, sourceCode []byte, filepath string) *Docstring {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := nameNode.Content(sourceCode)
	kind := "function"
	if node.Type() == "method_declaration" {
		kind = "method"
		if recv := receiverType(node.ChildByFieldName("receiver"), sourceCode); recv != "" {
			name = recv + "." + name
		}
	}

	signature := node.Content(sourceCode)
	if bodyNode := node.ChildByFieldName("body"); bodyNode != nil {
		signature = strings.TrimSpace(string(sourceCode[node.StartByte():bodyNode.StartByte()]))
	}

	return &Docstring{
		Filepath:  filepath,
		Kind:      kind,
		Name:      name,
		Signature: signature,
		StartLine: int(node.StartPoint().Row + 1),
		EndLine:   int(node.EndPoint().Row + 1),
		Text:      g.extractDocComment(node, sourceCode),
	}
}

// extractSpecDoc handles type, const and var specs. A spec inside a
// parenthesized group uses its own comment; a lone spec uses the comment on
// its declaration.
func (g *GoExtractor) extractSpecDoc(node *sitter.Node, sourceCode []byte, filepath, kind string) *Docstring {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	parentNode := node.Parent()
	if parentNode == nil {
		parentNode = node
	}
	docComment := g.extractDocComment(parentNode, sourceCode)
	if docComment == "" && parentNode != node {
		docComment = g.extractDocComment(node, sourceCode)
	}

	if kind == "type" {
		if typeNode := node.ChildByFieldName("type"); typeNode != nil {
			switch typeNode.Type() {
			case "struct_type":
				kind = "struct"
			case "interface_type":
				kind = "interface"
			}
		}
	}

	signature := node.Content(sourceCode)
	if i := strings.IndexByte(signature, '\n'); i >= 0 {
		signature = strings.TrimSpace(signature[:i])
	}

	return &Docstring{
		Filepath:  filepath,
		Kind:      kind,
		Name:      nameNode.Content(sourceCode),
		Signature: signature,
		StartLine: int(node.StartPoint().Row + 1),
		EndLine:   int(node.EndPoint().Row + 1),
		Text:      docComment,
	}
}

// receiverType returns the bare type name of a method receiver, e.g. "User"
// for "(u *User)".
func receiverType(receiver *sitter.Node, sourceCode []byte) string {
	if receiver == nil {
		return ""
	}
	for i := 0; i < int(receiver.NamedChildCount()); i++ {
		param := receiver.NamedChild(i)
		if param.Type() != "parameter_declaration" {
			continue
		}
		if typeNode := param.ChildByFieldName("type"); typeNode != nil {
			t := strings.TrimPrefix(typeNode.Content(sourceCode), "*")
			if i := strings.IndexByte(t, '['); i >= 0 {
				t = t[:i]
			}
			return t
		}
	}
	return ""
}

func (g *GoExtractor) extractDocComment(node *sitter.Node, sourceCode []byte) string {
	var commentLines []string
	currentNode := node
	for {
		prevSibling := currentNode.PrevSibling()
		if prevSibling == nil || (currentNode.StartPoint().Row-prevSibling.EndPoint().Row > 1) {
			break
		}
		if prevSibling.Type() != "comment" {
			break
		}
		commentLines = append([]string{prevSibling.Content(sourceCode)}, commentLines...)
		currentNode = prevSibling
	}
	return cleanDocComment(commentLines)
}

// cleanDocComment strips comment markers. One space after "//" is removed so
// indented lines keep their relative indentation.
func cleanDocComment(comments []string) string {
	var lines []string
	for _, c := range comments {
		if body, ok := strings.CutPrefix(c, "/*"); ok {
			body = strings.TrimSuffix(body, "*/")
			lines = append(lines, strings.Split(CleanDoc(body), "\n")...)
			continue
		}
		l := strings.TrimPrefix(c, "//")
		l = strings.TrimPrefix(l, " ")
		lines = append(lines, strings.TrimRight(l, " \t"))
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}
