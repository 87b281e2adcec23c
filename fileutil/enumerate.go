package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sourcegraph/conc/pool"
)

// EnumerateOption adjusts how EnumerateFiles and EnumerateDirectories walk a
// directory.
type EnumerateOption func(*enumerateOptions)

type enumerateOptions struct {
	all       []string
	any       []string
	none      []string
	recursive bool
	unsorted  bool
	dirFilter func(path string) bool
}

// MatchAll keeps only files whose name matches every one of the given glob
// patterns.
func MatchAll(patterns ...string) EnumerateOption {
	return func(o *enumerateOptions) {
		o.all = append(o.all, patterns...)
	}
}

// MatchAny keeps only files whose name matches at least one of the given
// glob patterns.
func MatchAny(patterns ...string) EnumerateOption {
	return func(o *enumerateOptions) {
		o.any = append(o.any, patterns...)
	}
}

// MatchNone drops files whose name matches any of the given glob patterns.
func MatchNone(patterns ...string) EnumerateOption {
	return func(o *enumerateOptions) {
		o.none = append(o.none, patterns...)
	}
}

// Recursive descends into subdirectories.
func Recursive() EnumerateOption {
	return func(o *enumerateOptions) {
		o.recursive = true
	}
}

// Unsorted skips sorting the results. Useful when the caller sorts or
// aggregates them anyway.
func Unsorted() EnumerateOption {
	return func(o *enumerateOptions) {
		o.unsorted = true
	}
}

// DirFilter limits EnumerateDirectories to directories accepted by filter.
// Rejected directories are not descended into.
func DirFilter(filter func(path string) bool) EnumerateOption {
	return func(o *enumerateOptions) {
		o.dirFilter = filter
	}
}

// EnumerateFiles collects files in root matching the configured filters.
// Glob patterns apply to base names. A missing root yields an empty result;
// a root that is not a directory is an error. Subdirectories of each level
// are scanned concurrently.
func EnumerateFiles(root string, opts ...EnumerateOption) ([]string, error) {
	o := buildEnumerateOptions(opts)
	ok, err := checkRoot(root)
	if err != nil || !ok {
		return nil, err
	}

	var files []string
	level := []string{root}
	for len(level) > 0 {
		results, err := scanLevel(level, func(dir string) (scanResult, error) {
			return scanForFiles(dir, o)
		})
		if err != nil {
			return nil, err
		}
		level = level[:0]
		for _, r := range results {
			files = append(files, r.keep...)
			if o.recursive {
				level = append(level, r.dirs...)
			}
		}
	}

	if !o.unsorted {
		sort.Strings(files)
	}
	return files, nil
}

// EnumerateDirectories collects subdirectories of root, optionally filtered
// and recursive. Rejected directories are skipped entirely, children
// included.
func EnumerateDirectories(root string, opts ...EnumerateOption) ([]string, error) {
	o := buildEnumerateOptions(opts)
	ok, err := checkRoot(root)
	if err != nil || !ok {
		return nil, err
	}

	var dirs []string
	level := []string{root}
	for len(level) > 0 {
		results, err := scanLevel(level, func(dir string) (scanResult, error) {
			return scanForDirs(dir, o)
		})
		if err != nil {
			return nil, err
		}
		level = level[:0]
		for _, r := range results {
			dirs = append(dirs, r.keep...)
			if o.recursive {
				level = append(level, r.dirs...)
			}
		}
	}

	if !o.unsorted {
		sort.Strings(dirs)
	}
	return dirs, nil
}

type scanResult struct {
	keep []string
	dirs []string
}

// scanLevel fans one breadth-first level of directories out over a worker
// pool and gathers the per-directory results.
func scanLevel(level []string, scan func(dir string) (scanResult, error)) ([]scanResult, error) {
	p := pool.NewWithResults[scanResult]().WithErrors().WithMaxGoroutines(scanWorkers())
	for _, dir := range level {
		p.Go(func() (scanResult, error) {
			return scan(dir)
		})
	}
	return p.Wait()
}

func scanForFiles(dir string, o *enumerateOptions) (scanResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return scanResult{}, fmt.Errorf("read directory %s: %w", dir, err)
	}
	var r scanResult
	for _, entry := range entries {
		if entry.IsDir() {
			r.dirs = append(r.dirs, filepath.Join(dir, entry.Name()))
			continue
		}
		if !entry.Type().IsRegular() {
			continue
		}
		ok, err := o.matchFile(entry.Name())
		if err != nil {
			return scanResult{}, err
		}
		if ok {
			r.keep = append(r.keep, filepath.Join(dir, entry.Name()))
		}
	}
	return r, nil
}

func scanForDirs(dir string, o *enumerateOptions) (scanResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return scanResult{}, fmt.Errorf("read directory %s: %w", dir, err)
	}
	var r scanResult
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if o.dirFilter != nil && !o.dirFilter(path) {
			continue
		}
		r.keep = append(r.keep, path)
		r.dirs = append(r.dirs, path)
	}
	return r, nil
}

func (o *enumerateOptions) matchFile(name string) (bool, error) {
	for _, pat := range o.all {
		ok, err := doublestar.Match(pat, name)
		if err != nil {
			return false, fmt.Errorf("pattern %q: %w", pat, err)
		}
		if !ok {
			return false, nil
		}
	}
	if len(o.any) > 0 {
		matched := false
		for _, pat := range o.any {
			ok, err := doublestar.Match(pat, name)
			if err != nil {
				return false, fmt.Errorf("pattern %q: %w", pat, err)
			}
			if ok {
				matched = true
				break
			}
		}
		if !matched {
			return false, nil
		}
	}
	for _, pat := range o.none {
		ok, err := doublestar.Match(pat, name)
		if err != nil {
			return false, fmt.Errorf("pattern %q: %w", pat, err)
		}
		if ok {
			return false, nil
		}
	}
	return true, nil
}

func buildEnumerateOptions(opts []EnumerateOption) *enumerateOptions {
	o := &enumerateOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// checkRoot reports whether root exists. A missing root is not an error; an
// existing non-directory is.
func checkRoot(root string) (bool, error) {
	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !info.IsDir() {
		return false, fmt.Errorf("%s is not a directory", root)
	}
	return true, nil
}

func scanWorkers() int {
	return min(max(runtime.NumCPU()*2, 4), 32)
}
