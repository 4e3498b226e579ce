package domain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"

	"msgextract.dev/pkg/msgextract/internal/adapter"
	"msgextract.dev/pkg/msgextract/internal/controller"
	"msgextract.dev/pkg/msgextract/internal/domain/msgid"
	m "msgextract.dev/pkg/msgextract/internal/model"
)

const bundleFileMode = 0o644

// SourceArgs selects the source units of a run and how their ids are built.
type SourceArgs struct {
	Paths   []m.Path
	Exclude []string
	// Project is the namespace token that seeds every message id of the run.
	Project  string
	Scheme   string
	Parallel int
}

// ExtractArgs contains the arguments for writing a translation bundle.
type ExtractArgs struct {
	SourceArgs
	// Output is the bundle file. When empty the bundle is written to Out.
	Output m.Path
	Out    io.Writer
	// Wrap adds the XML declaration, doctype and translationbundle root.
	Wrap bool
	Lang string
}

// ListArgs contains the arguments for listing extracted messages.
type ListArgs struct {
	SourceArgs
}

// CheckArgs contains the arguments for comparing a bundle on disk with a
// fresh extraction.
type CheckArgs struct {
	SourceArgs
	Bundle m.Path
	Wrap   bool
	Lang   string
}

// Workflow defines the extraction use cases driven by the CLI.
type Workflow interface {
	Extract(ctx context.Context, args ExtractArgs) error
	List(ctx context.Context, args ListArgs) error
	Check(ctx context.Context, args CheckArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.JSFileAdapter
	controller.UI
	Scanner
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	jsFileAdapter adapter.JSFileAdapter,
	ui controller.UI,
	scanner Scanner,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		JSFileAdapter:   jsFileAdapter,
		UI:              ui,
		Scanner:         scanner,
	}
}

func (w *workflow) Extract(ctx context.Context, args ExtractArgs) error {
	if args.Wrap {
		if _, err := CanonicalLang(args.Lang); err != nil {
			return err
		}
	}

	fragments, unitErr, err := w.collect(ctx, args.SourceArgs)
	if err != nil {
		return err
	}

	bundle, err := renderBundle(fragments, args.Wrap, args.Lang)
	if err != nil {
		return err
	}

	if args.Output != "" {
		if err := w.WriteFile(ctx, args.Output, bundle, bundleFileMode); err != nil {
			return fmt.Errorf("write bundle: %w", err)
		}

		slog.Info("Bundle written", "path", args.Output, "messages", countMessages(fragments))
	} else {
		out := args.Out
		if out == nil {
			out = os.Stdout
		}

		if _, err := out.Write(bundle); err != nil {
			return fmt.Errorf("write bundle: %w", err)
		}
	}

	if err := w.DisplayDiagnostics(ctx, collectDiagnostics(fragments)); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	return unitErr
}

func (w *workflow) List(ctx context.Context, args ListArgs) error {
	fragments, unitErr, err := w.collect(ctx, args.SourceArgs)
	if err != nil {
		return err
	}

	if err := w.DisplayMessages(ctx, fragments); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	if err := w.DisplayDiagnostics(ctx, collectDiagnostics(fragments)); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	return unitErr
}

func (w *workflow) Check(ctx context.Context, args CheckArgs) error {
	if args.Wrap {
		if _, err := CanonicalLang(args.Lang); err != nil {
			return err
		}
	}

	existing, err := w.ReadFile(ctx, args.Bundle)
	if err != nil {
		return fmt.Errorf("read bundle: %w", err)
	}

	fragments, unitErr, err := w.collect(ctx, args.SourceArgs)
	if err != nil {
		return err
	}

	fresh, err := renderBundle(fragments, args.Wrap, args.Lang)
	if err != nil {
		return err
	}

	if bytes.Equal(existing, fresh) {
		slog.Info("Bundle is up to date", "path", args.Bundle, "messages", countMessages(fragments))
		return unitErr
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(existing)),
		B:        difflib.SplitLines(string(fresh)),
		FromFile: string(args.Bundle),
		ToFile:   "extracted",
		Context:  3,
	})
	if err != nil {
		return fmt.Errorf("diff bundle: %w", err)
	}

	if err := w.DisplayDiff(ctx, string(args.Bundle), diff); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	return errors.Join(fmt.Errorf("%w: %s", m.ErrStaleBundle, args.Bundle), unitErr)
}

// collect extracts every source unit selected by args. Units are processed
// concurrently but fragments keep discovery order. A unit that cannot be
// read or parsed is left out and reported in unitErr; err is only set when
// the sources cannot be discovered or the id scheme is unknown.
func (w *workflow) collect(ctx context.Context, args SourceArgs) (fragments []m.Fragment, unitErr error, err error) {
	generator, err := msgid.Lookup(args.Scheme)
	if err != nil {
		return nil, nil, err
	}

	sources, err := w.Get(ctx, args.Paths, args.Exclude...)
	if err != nil {
		return nil, nil, fmt.Errorf("get sources: %w", err)
	}

	slog.Debug("Sources discovered", "count", len(sources), "project", args.Project, "scheme", generator.Name())

	extractor := NewExtractor(w.SourceFSAdapter, w.JSFileAdapter, w.Scanner, generator)

	results := make([]m.Fragment, len(sources))
	failures := make([]error, len(sources))

	var group errgroup.Group
	if args.Parallel > 0 {
		group.SetLimit(args.Parallel)
	}

	for i, source := range sources {
		i, source := i, source
		group.Go(func() error {
			fragment, err := extractor.Extract(ctx, args.Project, source)
			if err != nil {
				slog.Error("Failed to extract source", "error", err)
				failures[i] = err

				return nil
			}

			results[i] = fragment

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, nil, err
	}

	fragments = make([]m.Fragment, 0, len(sources))

	for i := range sources {
		if failures[i] == nil {
			fragments = append(fragments, results[i])
		}
	}

	return fragments, errors.Join(failures...), nil
}

func renderBundle(fragments []m.Fragment, wrap bool, lang string) ([]byte, error) {
	var buf bytes.Buffer

	if wrap {
		if err := WriteBundleOpen(&buf, lang); err != nil {
			return nil, err
		}
	}

	for _, fragment := range fragments {
		if err := WriteFragment(&buf, fragment.Messages); err != nil {
			return nil, err
		}
	}

	if wrap {
		if err := WriteBundleClose(&buf); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

func collectDiagnostics(fragments []m.Fragment) []m.Diagnostic {
	diagnostics := make([]m.Diagnostic, 0)
	for _, fragment := range fragments {
		diagnostics = append(diagnostics, fragment.Diagnostics...)
	}

	return diagnostics
}

func countMessages(fragments []m.Fragment) int {
	total := 0
	for _, fragment := range fragments {
		total += len(fragment.Messages)
	}

	return total
}
