package rewrite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/toolbelt/belt/indent"
)

func writeFixture(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestRewriterRun(t *testing.T) {
	root := writeFixture(t, map[string]string{
		"a.txt":	"  a\n    b\n",
		"already.txt":	"\ta\n\t  b\n",
		"sub/c.txt":	"    deep\n",
	})

	cfg := Default()
	cfg.Include = []string{"*.txt"}

	rw, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	result, err := rw.Run(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}

	if result.Files != 3 {
		t.Errorf("Files = %d, want 3", result.Files)
	}
	if result.Changed != 2 {
		t.Errorf("Changed = %d, want 2", result.Changed)
	}
	if result.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Skipped)
	}

	got, err := os.ReadFile(filepath.Join(root, "a.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "\ta\n\t  b\n" {
		t.Errorf("a.txt = %q", got)
	}
	got, err = os.ReadFile(filepath.Join(root, "sub", "c.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "\tdeep\n" {
		t.Errorf("sub/c.txt = %q", got)
	}
}

func TestRewriterRunExcludes(t *testing.T) {
	root := writeFixture(t, map[string]string{
		"keep.txt": "  a\n",
		"skip.gen": "  a\n",
	})

	cfg := Default()
	cfg.Exclude = []string{"*.gen"}

	rw, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	result, err := rw.Run(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if result.Files != 1 {
		t.Errorf("Files = %d, want 1", result.Files)
	}

	got, err := os.ReadFile(filepath.Join(root, "skip.gen"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "  a\n" {
		t.Errorf("excluded file was rewritten: %q", got)
	}
}

func TestRewriterRunIdempotent(t *testing.T) {
	root := writeFixture(t, map[string]string{
		"a.txt": "  one\n      two\n",
	})

	rw, err := New(Default(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := rw.Run(context.Background(), root); err != nil {
		t.Fatal(err)
	}
	second, err := rw.Run(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if second.Changed != 0 {
		t.Errorf("second run changed %d files, want 0", second.Changed)
	}
	if second.Skipped != second.Files {
		t.Errorf("second run skipped %d of %d files", second.Skipped, second.Files)
	}
}

func TestRewriterRunNonRecursive(t *testing.T) {
	root := writeFixture(t, map[string]string{
		"a.txt":	"  a\n",
		"sub/b.txt":	"  b\n",
	})

	cfg := Default()
	cfg.Recursive = false

	rw, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	result, err := rw.Run(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if result.Files != 1 {
		t.Errorf("Files = %d, want 1", result.Files)
	}

	got, err := os.ReadFile(filepath.Join(root, "sub", "b.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "  b\n" {
		t.Errorf("nested file was rewritten: %q", got)
	}
}

func TestRewriterRunCancelled(t *testing.T) {
	root := writeFixture(t, map[string]string{"a.txt": "  a\n"})

	rw, err := New(Default(), nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := rw.Run(ctx, root); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestNewInvalidConfig(t *testing.T) {
	cfg := Default()
	cfg.TabWidth = 0
	if _, err := New(cfg, nil); !errors.Is(err, indent.ErrInvalidTabWidth) {
		t.Errorf("error = %v, want ErrInvalidTabWidth", err)
	}
}
