package msgid

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	m "msgextract.dev/pkg/msgextract/internal/model"
)

const (
	// SchemeCanonical ids depend on literal text and placeholder positions only.
	SchemeCanonical = "canonical"
	// SchemeClosure ids are bit-exact with the Closure Compiler's GoogleJsMessageIdGenerator.
	SchemeClosure = "closure"

	// DefaultScheme is used when no scheme is configured.
	DefaultScheme = SchemeCanonical
)

// Generator computes the id of a message within a namespace (project).
type Generator interface {
	Name() string
	Generate(namespace string, msg m.Message) (m.MessageID, error)
}

var generators = map[string]Generator{
	SchemeCanonical: Canonical{},
	SchemeClosure:   Closure{},
}

// Lookup returns the generator registered under name. An empty name selects DefaultScheme.
func Lookup(name string) (Generator, error) {
	if strings.TrimSpace(name) == "" {
		name = DefaultScheme
	}

	gen, ok := generators[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown id scheme %q (available: %s)", name, strings.Join(Schemes(), ", "))
	}

	return gen, nil
}

// Schemes lists the registered scheme names in sorted order.
func Schemes() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Canonical derives ids from literal text and placeholder ordinals. Renaming
// a placeholder keeps the id; changing any literal text changes it.
type Canonical struct{}

// Name implements Generator.
func (Canonical) Name() string { return SchemeCanonical }

// Generate implements Generator.
func (Canonical) Generate(namespace string, msg m.Message) (m.MessageID, error) {
	if len(msg.Parts) == 0 {
		return 0, fmt.Errorf("%w: %s has no content", m.ErrInvalidMessage, keyOf(msg))
	}

	return m.MessageID(MessageID(CanonicalContent(msg.Parts), namespace)), nil
}

// CanonicalContent renders parts as the digest input of the canonical scheme:
// literal braces are doubled and the n-th placeholder becomes {n}.
func CanonicalContent(parts []m.Part) string {
	var b strings.Builder

	ordinal := 0

	for _, part := range parts {
		if part.IsPlaceholder() {
			b.WriteByte('{')
			b.WriteString(strconv.Itoa(ordinal))
			b.WriteByte('}')

			ordinal++

			continue
		}

		b.WriteString(strings.ReplaceAll(part.Text, "{", "{{"))
	}

	return b.String()
}

// Closure reproduces GoogleJsMessageIdGenerator: placeholder names are part
// of the digest input and the meaning defaults to the message key.
type Closure struct{}

// Name implements Generator.
func (Closure) Name() string { return SchemeClosure }

// Generate implements Generator.
func (Closure) Generate(namespace string, msg m.Message) (m.MessageID, error) {
	if len(msg.Parts) == 0 {
		return 0, fmt.Errorf("%w: %s has no content", m.ErrInvalidMessage, keyOf(msg))
	}

	var b strings.Builder

	for _, part := range msg.Parts {
		if part.IsPlaceholder() {
			b.WriteString(part.Name)
			continue
		}

		b.WriteString(part.Text)
	}

	meaning := msg.Meaning
	if meaning == "" {
		meaning = msg.Key
	}

	if namespace != "" {
		meaning = namespace + ": " + meaning
	}

	return m.MessageID(MessageID(b.String(), meaning)), nil
}

func keyOf(msg m.Message) string {
	if msg.Key == "" {
		return "message"
	}

	return msg.Key
}
