package extractor

import sitter "github.com/smacker/go-tree-sitter"

// Docstring is the documentation attached to one symbol in a source file.
type Docstring struct {
	ID        string `json:"id"` // filepath:name:line
	Filepath  string `json:"filepath"`
	Package   string `json:"package"`
	Language  string `json:"language"`
	Kind      string `json:"kind"` // e.g. "module", "class", "function", "method", "type"
	Name      string `json:"name"`
	Signature string `json:"signature,omitempty"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
	Text      string `json:"text"` // comment markers and quotes removed, dedented
	Hash      string `json:"hash"` // sha256 of Text
}

// LanguageExtractor defines what each language must provide to locate
// documented symbols.
type LanguageExtractor interface {
	GetLanguage() *sitter.Language
	GetQuery() string
	PackageName(root *sitter.Node, sourceCode []byte, filepath string) string
	// ExtractDocstring returns nil when the captured node has no documentation.
	ExtractDocstring(captureName string, node *sitter.Node, sourceCode []byte, filepath string) *Docstring
}
