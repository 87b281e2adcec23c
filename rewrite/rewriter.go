// Package rewrite applies an indentation style to whole file trees.
//
// A Rewriter enumerates the files selected by its Config, reindents each one
// through the indent package, and writes changes back atomically under a
// file lock, so it is safe to point at a tree that other tooling may touch.
package rewrite

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/toolbelt/belt/fileutil"
	"github.com/toolbelt/belt/indent"
	"github.com/toolbelt/belt/logging"
	"github.com/toolbelt/belt/timing"
)

// Rewriter reindents the files selected by its configuration.
type Rewriter struct {
	cfg    Config
	logger *slog.Logger
}

// New validates cfg and constructs a Rewriter. A nil logger is replaced with
// a no-op one.
func New(cfg Config, logger *slog.Logger) (*Rewriter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Rewriter{cfg: cfg, logger: logger}, nil
}

// Result summarizes a rewrite run.
type Result struct {
	Files   int // files examined
	Changed int // files actually rewritten
	Skipped int // files examined but already in the target style
}

// Run reindents every matching file under root. Files already in the target
// style are left untouched. The first failing file aborts the run.
func (r *Rewriter) Run(ctx context.Context, root string) (Result, error) {
	logger := r.logger.With(slog.String("run_id", uuid.NewString()))
	span := timing.Start("reindent "+root, timing.WithLogger(logger))
	defer span.Stop()

	opts := make([]fileutil.EnumerateOption, 0, 3)
	if len(r.cfg.Include) > 0 {
		opts = append(opts, fileutil.MatchAny(r.cfg.Include...))
	}
	if len(r.cfg.Exclude) > 0 {
		opts = append(opts, fileutil.MatchNone(r.cfg.Exclude...))
	}
	if r.cfg.Recursive {
		opts = append(opts, fileutil.Recursive())
	}

	files, err := fileutil.EnumerateFiles(root, opts...)
	if err != nil {
		return Result{}, err
	}

	var result Result
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		changed, err := fileutil.Transform(path, func(text string) (string, error) {
			return indent.Reindent(text, r.cfg.IndentUnit, r.cfg.TabWidth)
		})
		if err != nil {
			return result, fmt.Errorf("reindent %s: %w", path, err)
		}
		result.Files++
		if changed {
			result.Changed++
			logger.Info("reindented file", slog.String("path", path))
		} else {
			result.Skipped++
			logger.Debug("file already normalized", slog.String("path", path))
		}
	}

	logger.Info("reindent run complete",
		slog.Int("files", result.Files),
		slog.Int("changed", result.Changed),
		slog.Int("skipped", result.Skipped))
	return result, nil
}
