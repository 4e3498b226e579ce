package adapter

import (
	"bytes"
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/file"
	"github.com/dop251/goja/parser"

	m "msgextract.dev/pkg/msgextract/internal/model"
)

// JSFileAdapter encapsulates JavaScript parsing so the domain layer only
// pattern-matches message declarations on the resulting tree.
type JSFileAdapter interface {
	// Parse builds an AST for the named source. The returned unit also answers
	// position and comment queries for nodes of that AST.
	Parse(ctx context.Context, path m.Path, src []byte) (*ParsedUnit, error)
}

// ParsedUnit is one parsed source unit.
type ParsedUnit struct {
	Path    m.Path
	Program *ast.Program

	content []byte
	base    int
}

// LocalJSFileAdapter provides a concrete JSFileAdapter backed by goja's parser.
type LocalJSFileAdapter struct{}

// NewLocalJSFileAdapter constructs a LocalJSFileAdapter.
func NewLocalJSFileAdapter() *LocalJSFileAdapter {
	return &LocalJSFileAdapter{}
}

// Parse builds an AST for the provided path/source pair.
func (a *LocalJSFileAdapter) Parse(ctx context.Context, path m.Path, src []byte) (*ParsedUnit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	program, err := parser.ParseFile(nil, string(path), src, 0, parser.WithDisableSourceMaps)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	base := 1
	if program.File != nil {
		base = program.File.Base()
	}

	return &ParsedUnit{
		Path:    path,
		Program: program,
		content: src,
		base:    base,
	}, nil
}

// NewParsedUnit wraps an already parsed program. It is mostly useful in tests.
func NewParsedUnit(path m.Path, program *ast.Program, src []byte) *ParsedUnit {
	base := 1
	if program != nil && program.File != nil {
		base = program.File.Base()
	}

	return &ParsedUnit{Path: path, Program: program, content: src, base: base}
}

// Offset converts a node index into a byte offset within the source.
func (u *ParsedUnit) Offset(idx file.Idx) int {
	offset := int(idx) - u.base
	if offset < 0 {
		return 0
	}

	if offset > len(u.content) {
		return len(u.content)
	}

	return offset
}

// Position returns the 1-based line and column of a node index.
func (u *ParsedUnit) Position(idx file.Idx) m.Position {
	offset := u.Offset(idx)
	before := u.content[:offset]

	line := bytes.Count(before, []byte{'\n'}) + 1
	column := utf8.RuneCount(before[bytes.LastIndexByte(before, '\n')+1:]) + 1

	return m.Position{Line: line, Column: column}
}

// DocComment returns the body of the /** ... */ block that ends right before
// idx (only whitespace in between), or "" if there is none.
func (u *ParsedUnit) DocComment(idx file.Idx) string {
	before := bytes.TrimRight(u.content[:u.Offset(idx)], " \t\r\n")
	if !bytes.HasSuffix(before, []byte("*/")) {
		return ""
	}

	start := bytes.LastIndex(before, []byte("/*"))
	if start < 0 || !bytes.HasPrefix(before[start:], []byte("/**")) || len(before)-start < len("/***/") {
		return ""
	}

	return string(before[start+len("/**") : len(before)-len("*/")])
}
