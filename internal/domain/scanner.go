package domain

import (
	"fmt"
	"log/slog"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/file"
	"github.com/dop251/goja/token"
	"github.com/dop251/goja/unistring"

	"msgextract.dev/pkg/msgextract/internal/adapter"
	m "msgextract.dev/pkg/msgextract/internal/model"
)

const (
	messagePrefix  = "MSG_"
	closureNS      = "goog"
	getMsgFunction = "getMsg"
	maxGetMsgArgs  = 3
)

var (
	placeholderRef  = regexp.MustCompile(`\{\$([^}]*)\}`)
	placeholderName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
	jsDocTag        = regexp.MustCompile(`(?:^|\s)@([A-Za-z]+)`)
)

// Scanner finds goog.getMsg message declarations in a parsed source unit.
type Scanner interface {
	// Scan returns the messages of unit in declaration order. Declarations
	// that cannot be resolved statically are skipped and reported as
	// diagnostics instead of failing the unit.
	Scan(unit *adapter.ParsedUnit) ([]m.Message, []m.Diagnostic)
}

type scanner struct{}

// NewScanner creates a new Scanner instance.
func NewScanner() Scanner {
	return &scanner{}
}

// declaration is a name bound to an expression: `var NAME = init`,
// `NAME = init` or `a.b.NAME = init`.
type declaration struct {
	name string
	init ast.Expression
	// stmt locates the statement, used for the JSDoc lookup.
	stmt file.Idx
	// at locates the bound name, used for positions.
	at file.Idx
}

func (s *scanner) Scan(unit *adapter.ParsedUnit) ([]m.Message, []m.Diagnostic) {
	messages := make([]m.Message, 0)
	diagnostics := make([]m.Diagnostic, 0)

	if unit == nil || unit.Program == nil {
		return messages, diagnostics
	}

	for _, decl := range collectDeclarations(unit.Program) {
		call, isGetMsg := asGetMsgCall(decl.init)
		isMessageName := strings.HasPrefix(decl.name, messagePrefix)

		switch {
		case !isGetMsg && !isMessageName:
			continue
		case !isGetMsg:
			slog.Debug("MSG_ name not bound to goog.getMsg, ignoring", "path", unit.Path, "key", decl.name)
			continue
		}

		pos := unit.Position(decl.at)

		if !isMessageName {
			diagnostics = append(diagnostics, malformed(unit.Path, decl.name, pos,
				"goog.getMsg() must be assigned to a MSG_* variable or property"))

			continue
		}

		parts, err := resolveParts(call)
		if err != nil {
			diagnostics = append(diagnostics, m.Diagnostic{Path: unit.Path, Key: decl.name, Position: pos, Err: err})
			continue
		}

		doc := parseJSDoc(unit.DocComment(decl.stmt))

		messages = append(messages, m.Message{
			Key:      decl.name,
			Parts:    parts,
			Desc:     doc.desc,
			Meaning:  doc.meaning,
			Hidden:   doc.hidden,
			Position: pos,
		})
	}

	return messages, diagnostics
}

func malformed(path m.Path, key string, pos m.Position, reason string) m.Diagnostic {
	return m.Diagnostic{
		Path:     path,
		Key:      key,
		Position: pos,
		Err:      fmt.Errorf("%w: %s", m.ErrMalformedDeclaration, reason),
	}
}

func collectDeclarations(program *ast.Program) []declaration {
	var decls []declaration

	inspect(program, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.VariableStatement:
			decls = appendBindings(decls, n.Idx0(), n.List)
		case *ast.LexicalDeclaration:
			decls = appendBindings(decls, n.Idx0(), n.List)
		case *ast.ExpressionStatement:
			assign, ok := n.Expression.(*ast.AssignExpression)
			if !ok || assign.Operator != token.ASSIGN {
				return true
			}

			if name, at, ok := assignedName(assign.Left); ok {
				decls = append(decls, declaration{name: name, init: assign.Right, stmt: n.Idx0(), at: at})
			}
		}

		return true
	})

	return decls
}

func appendBindings(decls []declaration, stmt file.Idx, bindings []*ast.Binding) []declaration {
	for _, binding := range bindings {
		if binding == nil || binding.Initializer == nil {
			continue
		}

		ident, ok := binding.Target.(*ast.Identifier)
		if !ok {
			continue
		}

		decls = append(decls, declaration{
			name: ident.Name.String(),
			init: binding.Initializer,
			stmt: stmt,
			at:   ident.Idx0(),
		})
	}

	return decls
}

func assignedName(target ast.Expression) (string, file.Idx, bool) {
	switch t := target.(type) {
	case *ast.Identifier:
		return t.Name.String(), t.Idx0(), true
	case *ast.DotExpression:
		return t.Identifier.Name.String(), t.Identifier.Idx, true
	}

	return "", 0, false
}

func asGetMsgCall(expr ast.Expression) (*ast.CallExpression, bool) {
	call, ok := expr.(*ast.CallExpression)
	if !ok {
		return nil, false
	}

	dot, ok := call.Callee.(*ast.DotExpression)
	if !ok || dot.Identifier.Name.String() != getMsgFunction {
		return nil, false
	}

	ns, ok := dot.Left.(*ast.Identifier)
	if !ok || ns.Name.String() != closureNS {
		return nil, false
	}

	return call, true
}

// resolveParts turns goog.getMsg(text, placeholders, options) into parts.
func resolveParts(call *ast.CallExpression) ([]m.Part, error) {
	args := call.ArgumentList

	if len(args) == 0 {
		return nil, fmt.Errorf("%w: goog.getMsg() called without message text", m.ErrMalformedDeclaration)
	}

	if len(args) > maxGetMsgArgs {
		return nil, fmt.Errorf("%w: goog.getMsg() takes at most %d arguments, got %d",
			m.ErrMalformedDeclaration, maxGetMsgArgs, len(args))
	}

	text, err := messageText(args[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", m.ErrMalformedDeclaration, err)
	}

	if r, ok := firstNonXMLChar(text); ok {
		return nil, fmt.Errorf("%w: message text contains %U, which XML does not allow",
			m.ErrMalformedDeclaration, r)
	}

	declared := map[string]string{}

	if len(args) > 1 {
		declared, err = placeholderMap(args[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", m.ErrMalformedDeclaration, err)
		}
	}

	if len(args) > 2 {
		if _, ok := args[2].(*ast.ObjectLiteral); !ok {
			return nil, fmt.Errorf("%w: goog.getMsg() options must be an object literal, got %s",
				m.ErrMalformedDeclaration, describe(args[2]))
		}
	}

	parts, err := splitPlaceholders(text, declared)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", m.ErrMalformedDeclaration, err)
	}

	return parts, nil
}

// messageText statically evaluates a string literal, a template literal
// without substitutions, or a + concatenation of those.
func messageText(expr ast.Expression) (string, error) {
	switch e := expr.(type) {
	case *ast.StringLiteral:
		return literalText(e.Value)

	case *ast.TemplateLiteral:
		if e.Tag != nil || len(e.Expressions) > 0 {
			return "", fmt.Errorf("message text template literal must not contain substitutions")
		}

		var b strings.Builder
		for _, element := range e.Elements {
			text, err := literalText(element.Parsed)
			if err != nil {
				return "", err
			}

			b.WriteString(text)
		}

		return b.String(), nil

	case *ast.BinaryExpression:
		if e.Operator != token.PLUS {
			return "", fmt.Errorf("message text cannot use operator %s", e.Operator)
		}

		left, err := messageText(e.Left)
		if err != nil {
			return "", err
		}

		right, err := messageText(e.Right)
		if err != nil {
			return "", err
		}

		return left + right, nil
	}

	return "", fmt.Errorf("message text must be a string literal or a concatenation of string literals, got %s", describe(expr))
}

// literalText decodes a parsed JS string to UTF-8. Non-ASCII values are held
// as UTF-16, where an unpaired surrogate has no UTF-8 form.
func literalText(s unistring.String) (string, error) {
	units := s.AsUtf16()
	for i := 1; i < len(units); i++ {
		r := rune(units[i])
		if !utf16.IsSurrogate(r) {
			continue
		}

		if r < 0xDC00 && i+1 < len(units) && units[i+1] >= 0xDC00 && units[i+1] <= 0xDFFF {
			i++

			continue
		}

		return "", fmt.Errorf("message text contains unpaired surrogate %U", r)
	}

	return s.String(), nil
}

// firstNonXMLChar returns the first rune of text outside the XML 1.0 Char
// production. Invalid UTF-8 reports utf8.RuneError.
func firstNonXMLChar(text string) (rune, bool) {
	for i, r := range text {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(text[i:]); size == 1 {
				return r, true
			}
		}

		switch {
		case r == '\t', r == '\n', r == '\r':
		case r >= 0x20 && r <= 0xD7FF:
		case r >= 0xE000 && r <= 0xFFFD:
		case r >= 0x10000 && r <= 0x10FFFF:
		default:
			return r, true
		}
	}

	return 0, false
}

// placeholderMap returns declared placeholder names keyed by their
// normalized form.
func placeholderMap(expr ast.Expression) (map[string]string, error) {
	obj, ok := expr.(*ast.ObjectLiteral)
	if !ok {
		return nil, fmt.Errorf("placeholder values must be an object literal, got %s", describe(expr))
	}

	declared := make(map[string]string, len(obj.Value))

	for _, prop := range obj.Value {
		name, err := propertyName(prop)
		if err != nil {
			return nil, err
		}

		if !placeholderName.MatchString(name) {
			return nil, fmt.Errorf("invalid placeholder name %q", name)
		}

		normalized := m.NormalizePlaceholderName(name)
		if previous, ok := declared[normalized]; ok {
			return nil, fmt.Errorf("placeholders %q and %q both normalize to %s", previous, name, normalized)
		}

		declared[normalized] = name
	}

	return declared, nil
}

func propertyName(prop ast.Property) (string, error) {
	switch p := prop.(type) {
	case *ast.PropertyKeyed:
		if p.Computed {
			return "", fmt.Errorf("computed placeholder names cannot be resolved statically")
		}

		switch key := p.Key.(type) {
		case *ast.StringLiteral:
			return key.Value.String(), nil
		case *ast.Identifier:
			return key.Name.String(), nil
		}

		return "", fmt.Errorf("unsupported placeholder key %s", describe(p.Key))

	case *ast.PropertyShort:
		return p.Name.Name.String(), nil
	}

	return "", fmt.Errorf("unsupported placeholder property %s", describe(prop))
}

// splitPlaceholders cuts text at {$name} references. Every reference must be
// declared and every declaration must be referenced.
func splitPlaceholders(text string, declared map[string]string) ([]m.Part, error) {
	parts := make([]m.Part, 0)
	used := make(map[string]struct{}, len(declared))

	last := 0

	for _, loc := range placeholderRef.FindAllStringSubmatchIndex(text, -1) {
		name := text[loc[2]:loc[3]]
		if !placeholderName.MatchString(name) {
			return nil, fmt.Errorf("invalid placeholder reference {$%s}", name)
		}

		normalized := m.NormalizePlaceholderName(name)
		if authored, ok := declared[normalized]; !ok || authored != name {
			return nil, fmt.Errorf("placeholder {$%s} is not declared in the placeholder map", name)
		}

		if loc[0] > last {
			parts = append(parts, m.Literal(text[last:loc[0]]))
		}

		parts = append(parts, m.Placeholder(name))
		used[normalized] = struct{}{}
		last = loc[1]
	}

	if last < len(text) {
		parts = append(parts, m.Literal(text[last:]))
	}

	for normalized, name := range declared {
		if _, ok := used[normalized]; !ok {
			return nil, fmt.Errorf("placeholder %q is declared but never referenced", name)
		}
	}

	return parts, nil
}

type jsDoc struct {
	desc    string
	meaning string
	hidden  bool
}

// parseJSDoc reads the @desc, @meaning and @hidden tags of a comment body.
func parseJSDoc(comment string) jsDoc {
	var doc jsDoc

	if comment == "" {
		return doc
	}

	lines := strings.Split(comment, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(strings.TrimSpace(line), "*")
	}

	body := strings.Join(lines, "\n")
	tags := jsDocTag.FindAllStringSubmatchIndex(body, -1)

	for i, loc := range tags {
		end := len(body)
		if i+1 < len(tags) {
			end = tags[i+1][0]
		}

		value := strings.Join(strings.Fields(body[loc[1]:end]), " ")

		switch body[loc[2]:loc[3]] {
		case "desc":
			doc.desc = value
		case "meaning":
			doc.meaning = value
		case "hidden":
			doc.hidden = true
		}
	}

	return doc
}

func describe(v any) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", v), "*ast.")
}

// inspect traverses the tree in source order, calling fn for every node
// reachable through exported fields. Returning false from fn skips the
// node's children.
func inspect(root ast.Node, fn func(ast.Node) bool) {
	nodeType := reflect.TypeOf((*ast.Node)(nil)).Elem()
	seen := make(map[ast.Node]struct{})

	var walk func(v reflect.Value)

	walk = func(v reflect.Value) {
		switch v.Kind() {
		case reflect.Interface:
			if !v.IsNil() {
				walk(v.Elem())
			}

		case reflect.Pointer:
			if v.IsNil() {
				return
			}

			if v.Type().Implements(nodeType) {
				node, _ := v.Interface().(ast.Node)
				if _, ok := seen[node]; ok {
					return
				}

				seen[node] = struct{}{}

				if !fn(node) {
					return
				}
			}

			walk(v.Elem())

		case reflect.Struct:
			for i := 0; i < v.NumField(); i++ {
				if v.Type().Field(i).IsExported() {
					walk(v.Field(i))
				}
			}

		case reflect.Slice:
			for i := 0; i < v.Len(); i++ {
				walk(v.Index(i))
			}
		}
	}

	walk(reflect.ValueOf(root))
}
