// Package batch converts every Markdown file matching a set of glob patterns
// under a root directory, skipping inputs that are unchanged since the last
// run.
package batch

import (
	"context"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/samber/oops"
	"golang.org/x/sync/errgroup"

	"github.com/g5becks/md2docx/internal/config"
	"github.com/g5becks/md2docx/internal/convert"
	"github.com/g5becks/md2docx/internal/lockfile"
	"github.com/g5becks/md2docx/internal/markdown"
	"github.com/g5becks/md2docx/internal/render"
	"github.com/g5becks/md2docx/internal/source"
)

const (
	CodeConvertFailed = "CONVERT_FAILED"
	CodeNoInputs      = "NO_INPUTS"
	codeInvalidArgs   = "INVALID_ARGS"
)

type EventKind int

const (
	EventFileStart EventKind = iota
	EventFileDone
	// EventBatchStart is emitted once, before any file, with Total set.
	EventBatchStart
)

// Event reports progress for one input. Events for different inputs may be
// delivered concurrently.
type Event struct {
	Kind   EventKind
	Input  string
	Result *FileResult
	Err    error
	Total  int
}

type FileResult struct {
	// Input is the slash-separated path relative to the batch root.
	Input   string
	Output  string
	Skipped bool
	Counts  map[markdown.BlockKind]int
}

type Options struct {
	// Root defaults to the config directory, then the working directory.
	Root string
	// Patterns default to the configured batch patterns.
	Patterns []string
	// Exclude is added to the configured excludes.
	Exclude []string
	// Output mirrors inputs under this directory instead of writing next
	// to them. Relative paths resolve against Root.
	Output   string
	Force    bool
	DryRun   bool
	Parallel int
	OnEvent  func(Event)
}

type RunResult struct {
	Files     int
	Converted int
	Skipped   int
	Errors    int
	Results   []FileResult
}

type runState struct {
	result *FileResult
	sha    string
	err    error
}

func Run(ctx context.Context, cfg *config.Config, opts Options) (*RunResult, error) {
	if cfg == nil {
		return nil, oops.
			Code("CONFIG_INVALID").
			Errorf("config is required")
	}

	root, err := resolveRoot(cfg, opts.Root)
	if err != nil {
		return nil, err
	}

	patterns := opts.Patterns
	if len(patterns) == 0 {
		patterns = cfg.Batch.Patterns
	}
	if len(patterns) == 0 {
		patterns = config.DefaultPatterns()
	}

	excludes := slices.Concat(cfg.Batch.Exclude, opts.Exclude)

	inputs, err := matchInputs(root, patterns, excludes)
	if err != nil {
		return nil, err
	}

	if len(inputs) == 0 {
		return nil, oops.
			Code(CodeNoInputs).
			With("root", root).
			With("patterns", patterns).
			Hint("Check the patterns or pass --root").
			Errorf("no files matched %v under %s", patterns, root)
	}

	outputDir := resolveOutputDir(root, cfg.Batch.Output, opts.Output)

	lock, err := lockfile.Load(root)
	if err != nil {
		return nil, err
	}

	parallel := opts.Parallel
	if parallel <= 0 {
		parallel = cfg.Batch.Parallel
	}
	if parallel <= 0 {
		parallel = config.DefaultParallel
	}

	emit := opts.OnEvent
	if emit == nil {
		emit = func(Event) {}
	}

	styleSHA := cfg.Style.Fingerprint()
	loader := source.NewLoader()
	defer func() {
		_ = loader.Close()
	}()

	emit(Event{Kind: EventBatchStart, Total: len(inputs)})

	results := make(map[string]runState, len(inputs))
	var resultsMu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(parallel)

	for _, rel := range inputs {
		output := outputPath(root, outputDir, rel)
		previous := lock.Get(rel)

		group.Go(func() error {
			emit(Event{Kind: EventFileStart, Input: rel})

			state := convertOne(groupCtx, loader, fileJob{
				root:     root,
				rel:      rel,
				output:   output,
				previous: previous,
				style:    cfg.Style,
				styleSHA: styleSHA,
				force:    opts.Force,
				dryRun:   opts.DryRun,
			})

			resultsMu.Lock()
			results[rel] = state
			resultsMu.Unlock()

			emit(Event{Kind: EventFileDone, Input: rel, Result: state.result, Err: state.err})
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, oops.Wrapf(err, "waiting for conversion workers")
	}

	run := &RunResult{Files: len(inputs)}
	now := time.Now().UTC()

	for _, rel := range inputs {
		state := results[rel]
		if state.err != nil {
			run.Errors++
			lock.Remove(rel)
			continue
		}

		run.Results = append(run.Results, *state.result)
		if state.result.Skipped {
			run.Skipped++
			continue
		}

		run.Converted++
		lock.Set(rel, &lockfile.Entry{
			InputSHA:    state.sha,
			StyleSHA:    styleSHA,
			Output:      relativeTo(root, state.result.Output),
			ConvertedAt: now,
		})
	}

	if !opts.DryRun {
		if err := lock.Save(root); err != nil {
			return run, err
		}
	}

	if run.Errors > 0 {
		return run, oops.
			Code(CodeConvertFailed).
			With("failed_files", run.Errors).
			Errorf("%d file(s) failed to convert", run.Errors)
	}

	return run, nil
}

type fileJob struct {
	root     string
	rel      string
	output   string
	previous *lockfile.Entry
	style    config.Style
	styleSHA string
	force    bool
	dryRun   bool
}

func convertOne(ctx context.Context, loader *source.Loader, job fileJob) runState {
	input, err := loader.Load(ctx, filepath.Join(job.root, filepath.FromSlash(job.rel)))
	if err != nil {
		return runState{err: err}
	}

	sha := lockfile.HashContent(input.Content)

	if !job.force && job.previous.Fresh(sha, job.styleSHA) && fileExists(job.output) {
		return runState{
			sha:    sha,
			result: &FileResult{Input: job.rel, Output: job.output, Skipped: true},
		}
	}

	if !job.dryRun {
		if err := os.MkdirAll(filepath.Dir(job.output), 0o755); err != nil {
			return runState{err: oops.
				Code(render.CodeOutputUnwritable).
				With("path", job.output).
				Wrapf(err, "creating output directory")}
		}
	}

	converted, err := convert.ConvertInput(ctx, input, convert.Request{
		Output: job.output,
		Style:  job.style,
		DryRun: job.dryRun,
	})
	if err != nil {
		return runState{err: err}
	}

	return runState{
		sha: sha,
		result: &FileResult{
			Input:  job.rel,
			Output: converted.Output,
			Counts: converted.Counts,
		},
	}
}

// matchInputs expands patterns under root and returns sorted, de-duplicated
// slash-separated paths relative to root.
func matchInputs(root string, patterns []string, excludes []string) ([]string, error) {
	for _, pattern := range slices.Concat(patterns, excludes) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, oops.
				Code(codeInvalidArgs).
				With("pattern", pattern).
				Errorf("invalid glob pattern %q", pattern)
		}
	}

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, oops.
			Code(codeInvalidArgs).
			With("root", root).
			Hint("Pass an existing directory with --root").
			Errorf("batch root %q is not a directory", root)
	}

	fsys := os.DirFS(root)
	seen := map[string]struct{}{}
	var matches []string

	for _, pattern := range patterns {
		walkErr := doublestar.GlobWalk(fsys, pattern, func(path string, d iofs.DirEntry) error {
			if d.IsDir() || excluded(path, excludes) {
				return nil
			}

			if _, ok := seen[path]; !ok {
				seen[path] = struct{}{}
				matches = append(matches, path)
			}
			return nil
		})
		if walkErr != nil {
			return nil, oops.
				With("root", root).
				With("pattern", pattern).
				Wrapf(walkErr, "matching input files")
		}
	}

	slices.Sort(matches)
	return matches, nil
}

func excluded(path string, excludes []string) bool {
	for _, pattern := range excludes {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}

func resolveRoot(cfg *config.Config, root string) (string, error) {
	if root == "" {
		root = cfg.ConfigDir
	}
	if root == "" {
		root = "."
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", oops.
			Code(codeInvalidArgs).
			With("root", root).
			Wrapf(err, "resolving batch root")
	}
	return abs, nil
}

func resolveOutputDir(root string, configured string, override string) string {
	dir := configured
	if override != "" {
		dir = override
	}

	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(root, dir)
}

// outputPath places the DOCX next to its input, or at the mirrored relative
// path under outputDir.
func outputPath(root string, outputDir string, rel string) string {
	base := root
	if outputDir != "" {
		base = outputDir
	}

	return filepath.Join(base, filepath.FromSlash(convert.ResolveOutputPath(rel)))
}

func relativeTo(root string, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
