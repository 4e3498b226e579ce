package domain

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"

	m "msgextract.dev/pkg/msgextract/internal/model"
)

const (
	xmlDeclaration = `<?xml version="1.0" ?>`
	bundleDoctype  = `<!DOCTYPE translationbundle>`
	bundleClose    = `</translationbundle>`
)

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeText replaces the markup-reserved characters &, < and > with entities.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// RenderMessage renders one translation line without the trailing newline.
func RenderMessage(msg m.Message) string {
	var b strings.Builder

	b.WriteString(`<translation id="`)
	b.WriteString(msg.ID.String())
	b.WriteString(`">`)

	for _, part := range msg.Parts {
		if part.IsPlaceholder() {
			b.WriteString(`<ph name="`)
			b.WriteString(EscapeText(part.Name))
			b.WriteString(`"/>`)

			continue
		}

		b.WriteString(EscapeText(part.Text))
	}

	b.WriteString(`</translation>`)

	return b.String()
}

// WriteFragment writes one translation line per message, in order.
func WriteFragment(w io.Writer, messages []m.Message) error {
	bw := bufio.NewWriter(w)

	for _, msg := range messages {
		if _, err := bw.WriteString(RenderMessage(msg) + "\n"); err != nil {
			return fmt.Errorf("write translation %s: %w", msg.Key, err)
		}
	}

	return bw.Flush()
}

// CanonicalLang validates lang as a BCP 47 tag and returns its canonical form.
func CanonicalLang(lang string) (string, error) {
	tag, err := language.Parse(strings.TrimSpace(lang))
	if err != nil {
		return "", fmt.Errorf("invalid bundle language %q: %w", lang, err)
	}

	return tag.String(), nil
}

// WriteBundleOpen writes the XML declaration, doctype and the opening
// translationbundle element.
func WriteBundleOpen(w io.Writer, lang string) error {
	canonical, err := CanonicalLang(lang)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "%s\n%s\n<translationbundle lang=\"%s\">\n", xmlDeclaration, bundleDoctype, canonical)
	if err != nil {
		return fmt.Errorf("write bundle header: %w", err)
	}

	return nil
}

// WriteBundleClose closes the translationbundle element.
func WriteBundleClose(w io.Writer) error {
	if _, err := io.WriteString(w, bundleClose+"\n"); err != nil {
		return fmt.Errorf("write bundle footer: %w", err)
	}

	return nil
}
