package controller

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	m "msgextract.dev/pkg/msgextract/internal/model"
)

// YAMLUI writes machine-readable manifests instead of tables.
type YAMLUI struct {
	cmd *cobra.Command
}

// NewYAMLUI creates a new YAMLUI.
func NewYAMLUI(cmd *cobra.Command) *YAMLUI {
	return &YAMLUI{cmd: cmd}
}

type messageManifest struct {
	Key          string   `yaml:"key"`
	ID           string   `yaml:"id"`
	Position     string   `yaml:"position"`
	Text         string   `yaml:"text"`
	Placeholders []string `yaml:"placeholders,omitempty"`
	Desc         string   `yaml:"desc,omitempty"`
	Meaning      string   `yaml:"meaning,omitempty"`
	Hidden       bool     `yaml:"hidden,omitempty"`
}

type fileManifest struct {
	Path     string            `yaml:"path"`
	Messages []messageManifest `yaml:"messages"`
}

type diagnosticManifest struct {
	Path     string `yaml:"path"`
	Key      string `yaml:"key,omitempty"`
	Position string `yaml:"position"`
	Error    string `yaml:"error"`
}

// DisplayMessages writes one YAML document listing every file and its messages.
func (y *YAMLUI) DisplayMessages(ctx context.Context, fragments []m.Fragment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	files := make([]fileManifest, 0, len(fragments))

	for _, fragment := range fragments {
		file := fileManifest{Messages: make([]messageManifest, 0, len(fragment.Messages))}
		if fragment.Source.Origin != nil {
			file.Path = string(fragment.Source.Origin.ShortPath)
		}

		for _, msg := range fragment.Messages {
			file.Messages = append(file.Messages, messageManifest{
				Key:          msg.Key,
				ID:           msg.ID.String(),
				Position:     msg.Position.String(),
				Text:         msg.Text(),
				Placeholders: msg.Placeholders(),
				Desc:         msg.Desc,
				Meaning:      msg.Meaning,
				Hidden:       msg.Hidden,
			})
		}

		files = append(files, file)
	}

	return y.encode(y.cmd.OutOrStdout(), map[string]any{"files": files})
}

// DisplayDiagnostics writes skipped messages as YAML to stderr.
func (y *YAMLUI) DisplayDiagnostics(ctx context.Context, diagnostics []m.Diagnostic) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(diagnostics) == 0 {
		return nil
	}

	skipped := make([]diagnosticManifest, 0, len(diagnostics))
	for _, diag := range diagnostics {
		skipped = append(skipped, diagnosticManifest{
			Path:     string(diag.Path),
			Key:      diag.Key,
			Position: diag.Position.String(),
			Error:    diag.Err.Error(),
		})
	}

	return y.encode(y.cmd.ErrOrStderr(), map[string]any{"skipped": skipped})
}

// DisplayDiff writes the diff as a YAML literal block.
func (y *YAMLUI) DisplayDiff(ctx context.Context, name string, diff string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return y.encode(y.cmd.OutOrStdout(), map[string]any{"bundle": name, "stale": true, "diff": diff})
}

func (y *YAMLUI) encode(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	return encoder.Close()
}
