// Package model defines the data structures shared by the extraction pipeline.
package model

import (
	"strconv"
	"strings"
)

// PartKind tells literal text apart from placeholder references.
type PartKind int

const (
	// PartLiteral is raw translatable text.
	PartLiteral PartKind = iota
	// PartPlaceholder is a named substitution point.
	PartPlaceholder
)

// Part is one segment of a message.
type Part struct {
	Kind PartKind
	// Text is the literal text, or the placeholder name as written by the author.
	Text string
	// Name is the normalized (UPPER_SNAKE) placeholder name. Empty for literals.
	Name string
}

// Literal builds a literal part.
func Literal(text string) Part {
	return Part{Kind: PartLiteral, Text: text}
}

// Placeholder builds a placeholder part from the authored name.
func Placeholder(name string) Part {
	return Part{Kind: PartPlaceholder, Text: name, Name: NormalizePlaceholderName(name)}
}

// IsPlaceholder reports whether the part is a placeholder reference.
func (p Part) IsPlaceholder() bool {
	return p.Kind == PartPlaceholder
}

// NormalizePlaceholderName converts lowerCamelCase names to
// UPPER_SNAKE_CASE the way Closure does: every ASCII capital after the first
// rune starts a new word, so userName -> USER_NAME and userID -> USER_I_D.
// Underscores are kept as they are, and a name without lowercase letters is
// already in that form.
func NormalizePlaceholderName(name string) string {
	if !strings.ContainsFunc(name, func(r rune) bool { return r >= 'a' && r <= 'z' }) {
		return name
	}

	var b strings.Builder

	for i, r := range name {
		if r >= 'A' && r <= 'Z' && i > 0 {
			b.WriteByte('_')
		}

		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}

		b.WriteRune(r)
	}

	return b.String()
}

// MessageID is the numeric identifier of a message in a translation bundle.
type MessageID uint64

func (id MessageID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Position is a 1-based line/column location in a source unit.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Message is one extracted translatable unit.
type Message struct {
	ID MessageID
	// Key is the MSG_* name the message is bound to.
	Key   string
	Parts []Part
	// Desc, Meaning and Hidden come from the JSDoc block above the declaration.
	Desc     string
	Meaning  string
	Hidden   bool
	Position Position
}

// Placeholders returns the normalized placeholder names in first-use order.
func (msg Message) Placeholders() []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)

	for _, part := range msg.Parts {
		if !part.IsPlaceholder() {
			continue
		}

		if _, ok := seen[part.Name]; ok {
			continue
		}

		seen[part.Name] = struct{}{}
		names = append(names, part.Name)
	}

	return names
}

// Text rebuilds the message as authored, with placeholders written as {$name}.
func (msg Message) Text() string {
	var b strings.Builder

	for _, part := range msg.Parts {
		if part.IsPlaceholder() {
			b.WriteString("{$")
			b.WriteString(part.Text)
			b.WriteString("}")

			continue
		}

		b.WriteString(part.Text)
	}

	return b.String()
}
