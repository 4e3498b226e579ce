package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"msgextract.dev/pkg/msgextract/internal/adapter"
	"msgextract.dev/pkg/msgextract/internal/domain/msgid"
	m "msgextract.dev/pkg/msgextract/internal/model"
)

// Extractor runs the read -> parse -> scan -> generate pipeline for one
// source unit.
type Extractor interface {
	// Extract returns the fragment of source. A source that cannot be read
	// or parsed yields a *model.SourceError; skipped messages are reported
	// in Fragment.Diagnostics instead.
	Extract(ctx context.Context, namespace string, source m.Source) (m.Fragment, error)
}

type extractor struct {
	adapter.SourceFSAdapter
	adapter.JSFileAdapter
	Scanner
	generator msgid.Generator
}

// NewExtractor creates a new Extractor instance with the provided dependencies.
func NewExtractor(
	fsAdapter adapter.SourceFSAdapter,
	jsFileAdapter adapter.JSFileAdapter,
	scanner Scanner,
	generator msgid.Generator,
) Extractor {
	return &extractor{
		SourceFSAdapter: fsAdapter,
		JSFileAdapter:   jsFileAdapter,
		Scanner:         scanner,
		generator:       generator,
	}
}

func (e *extractor) Extract(ctx context.Context, namespace string, source m.Source) (m.Fragment, error) {
	fragment := m.Fragment{Source: source, Messages: []m.Message{}, Diagnostics: []m.Diagnostic{}}

	if source.Origin == nil {
		return fragment, &m.SourceError{Err: errors.New("source has no origin")}
	}

	path := source.Origin.ShortPath

	content, err := e.ReadFile(ctx, source.Origin.FullPath)
	if err != nil {
		return fragment, &m.SourceError{Path: path, Err: fmt.Errorf("read: %w", err)}
	}

	unit, err := e.Parse(ctx, path, content)
	if err != nil {
		return fragment, &m.SourceError{Path: path, Err: err}
	}

	messages, diagnostics := e.Scan(unit)
	fragment.Diagnostics = append(fragment.Diagnostics, diagnostics...)

	for _, msg := range messages {
		id, err := e.generator.Generate(namespace, msg)
		if err != nil {
			fragment.Diagnostics = append(fragment.Diagnostics, m.Diagnostic{
				Path:     path,
				Key:      msg.Key,
				Position: msg.Position,
				Err:      err,
			})

			continue
		}

		msg.ID = id
		fragment.Messages = append(fragment.Messages, msg)
	}

	for _, diag := range fragment.Diagnostics {
		slog.Warn("Skipped message", "path", diag.Path, "key", diag.Key, "position", diag.Position.String(), "error", diag.Err)
	}

	slog.Debug("Extracted source", "path", path, "messages", len(fragment.Messages),
		"skipped", len(fragment.Diagnostics), "scheme", e.generator.Name())

	return fragment, nil
}
