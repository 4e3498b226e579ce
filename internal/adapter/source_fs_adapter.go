// Package adapter contains infrastructure adapters for the msgextract CLI.
package adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	m "msgextract.dev/pkg/msgextract/internal/model"
)

const (
	sourceExt        = ".js"
	recursiveSuffix  = "/..."
	defaultPathQuery = "./..."
)

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when discovering and reading source units. It hides direct `os`
// access so the workflow logic can be tested without touching the disk.
type SourceFSAdapter interface {
	// Get resolves path patterns into source units. Supported forms are a
	// file, a directory (its own files only) and dir/... (recursive). Paths
	// matching any exclude regex are dropped.
	Get(ctx context.Context, paths []m.Path, exclude ...string) ([]m.Source, error)

	// Walk traverses the provided root path. When recursive is false the
	// implementation should limit itself to the root directory (no sub-dirs).
	Walk(ctx context.Context, root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(ctx context.Context, path m.Path) ([]byte, error)

	// WriteFile writes content to a file with the given permissions.
	WriteFile(ctx context.Context, path m.Path, content []byte, perm os.FileMode) error

	// FileInfo returns metadata for a path so the domain can check existence or
	// distinguish between files and directories when necessary.
	FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type directly into the
// domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter is the os-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Get resolves paths into sources in a stable order.
func (a *LocalSourceFSAdapter) Get(ctx context.Context, paths []m.Path, exclude ...string) ([]m.Source, error) {
	excludeRegexes, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		paths = []m.Path{defaultPathQuery}
	}

	var sources []m.Source

	seen := make(map[string]struct{})

	add := func(path string) {
		clean := filepath.Clean(path)
		if _, ok := seen[clean]; ok || isExcluded(clean, excludeRegexes) {
			return
		}

		seen[clean] = struct{}{}
		sources = append(sources, m.Source{Origin: &m.File{
			FullPath:  m.Path(absPath(clean)),
			ShortPath: m.Path(filepath.ToSlash(clean)),
		}})
	}

	for _, path := range paths {
		if err := a.collect(ctx, string(path), add); err != nil {
			return nil, err
		}
	}

	return sources, nil
}

func (a *LocalSourceFSAdapter) collect(ctx context.Context, query string, add func(string)) error {
	recursive := strings.HasSuffix(filepath.ToSlash(query), recursiveSuffix)

	root := query
	if recursive {
		root = strings.TrimSuffix(filepath.ToSlash(query), recursiveSuffix)
		if root == "" {
			root = "."
		}
	}

	info, err := a.FileInfo(ctx, m.Path(root))
	if err != nil {
		return fmt.Errorf("resolve %s: %w", query, err)
	}

	if !info.IsDir() {
		add(root)
		return nil
	}

	return a.Walk(ctx, m.Path(root), recursive, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if path != root && skipDir(info.Name()) {
				return filepath.SkipDir
			}

			return nil
		}

		if filepath.Ext(path) == sourceExt {
			add(path)
		}

		return nil
	})
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalSourceFSAdapter) Walk(ctx context.Context, root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && !recursive && path != rootStr {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.ReadFile(string(path))
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalSourceFSAdapter) WriteFile(ctx context.Context, path m.Path, content []byte, perm os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return os.WriteFile(string(path), content, perm)
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.Stat(string(path))
}

func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	regexes := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		if strings.TrimSpace(pattern) == "" {
			continue
		}

		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		regexes = append(regexes, re)
	}

	return regexes, nil
}

func isExcluded(path string, regexes []*regexp.Regexp) bool {
	slashed := filepath.ToSlash(path)

	for _, re := range regexes {
		if re.MatchString(slashed) {
			return true
		}
	}

	return false
}

func skipDir(name string) bool {
	return name == "node_modules" || (strings.HasPrefix(name, ".") && name != "." && name != "..")
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}

	return abs
}
