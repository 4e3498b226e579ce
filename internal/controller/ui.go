// Package controller provides output adapters for displaying extraction results.
package controller

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "msgextract.dev/pkg/msgextract/internal/model"
)

// Output formats accepted by NewUI.
const (
	FormatAuto  = "auto"
	FormatTable = "table"
	FormatYAML  = "yaml"
)

// UI defines the interface for reporting extraction results.
// Implementations can use different output methods (simple text, TUI, YAML).
type UI interface {
	// DisplayMessages shows the message inventory of the extracted fragments.
	DisplayMessages(ctx context.Context, fragments []m.Fragment) error
	// DisplayDiagnostics reports skipped messages. It never writes to the
	// bundle output stream.
	DisplayDiagnostics(ctx context.Context, diagnostics []m.Diagnostic) error
	// DisplayDiff shows how a bundle on disk differs from a fresh extraction.
	DisplayDiff(ctx context.Context, name string, diff string) error
}

// NewUI selects the UI implementation for format. FormatAuto picks the TUI
// when isTTY is set and the plain table output otherwise.
func NewUI(cmd *cobra.Command, format string, isTTY bool) (UI, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatAuto:
		if isTTY {
			return NewTUI(cmd), nil
		}

		return NewSimpleUI(cmd), nil
	case FormatTable:
		return NewSimpleUI(cmd), nil
	case FormatYAML:
		return NewYAMLUI(cmd), nil
	}

	return nil, fmt.Errorf("unknown output format %q (available: %s, %s, %s)", format, FormatAuto, FormatTable, FormatYAML)
}

// IsTTY reports whether f is an interactive terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type messageRow struct {
	path         string
	position     string
	key          string
	id           string
	placeholders string
	desc         string
}

func messageRows(fragments []m.Fragment) []messageRow {
	rows := make([]messageRow, 0)

	for _, fragment := range fragments {
		path := ""
		if fragment.Source.Origin != nil {
			path = string(fragment.Source.Origin.ShortPath)
		}

		for _, msg := range fragment.Messages {
			rows = append(rows, messageRow{
				path:         path,
				position:     msg.Position.String(),
				key:          msg.Key,
				id:           msg.ID.String(),
				placeholders: strings.Join(msg.Placeholders(), ","),
				desc:         msg.Desc,
			})
		}
	}

	return rows
}
