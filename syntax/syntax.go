// Package syntax parses rendered files with tree-sitter and reports the
// locations of syntax errors. It never rewrites content.
package syntax

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/css"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/teranos/fgen/errors"
)

// Diagnostic is one syntax error location.
type Diagnostic struct {
	Path    string
	Line    uint32 // 0-indexed
	Column  uint32 // 0-indexed
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s", d.Path, d.Line+1, d.Column+1, d.Message)
}

// Supported reports whether path has an extension Check understands.
func Supported(path string) bool {
	return languageForPath(path) != nil
}

// Check parses content as the language implied by path and returns every
// ERROR or MISSING node. Unknown extensions pass with no diagnostics.
func Check(ctx context.Context, path string, content []byte) ([]Diagnostic, error) {
	lang := languageForPath(path)
	if lang == nil {
		return nil, nil
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, errors.Wrapf(err, "tree-sitter parse failed for %s", path)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, errors.Newf("tree-sitter returned nil root for %s", path)
	}
	if !root.HasError() {
		return nil, nil
	}

	var diags []Diagnostic
	collect(root, path, &diags)
	if len(diags) == 0 {
		diags = append(diags, Diagnostic{Path: path, Message: "AST contains errors"})
	}
	return diags, nil
}

// collect gathers ERROR/MISSING nodes without descending into them.
func collect(node *sitter.Node, path string, diags *[]Diagnostic) {
	if node.IsError() || node.IsMissing() {
		msg := "syntax error"
		if node.IsMissing() {
			msg = "missing " + node.Type()
		}
		*diags = append(*diags, Diagnostic{
			Path:    path,
			Line:    node.StartPoint().Row,
			Column:  node.StartPoint().Column,
			Message: msg,
		})
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.HasError() || child.IsError() || child.IsMissing() {
			collect(child, path, diags)
		}
	}
}

func languageForPath(path string) *sitter.Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsx":
		return tsx.GetLanguage()
	case ".ts", ".mts", ".cts":
		return typescript.GetLanguage()
	case ".js", ".jsx", ".mjs", ".cjs":
		return javascript.GetLanguage()
	case ".css":
		return css.GetLanguage()
	default:
		return nil
	}
}
