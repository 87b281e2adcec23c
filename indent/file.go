package indent

import "fmt"

// FileSystem is the capability ReindentFile needs to rewrite a file. The
// fileutil package provides an implementation backed by the host filesystem;
// tests can substitute an in-memory one.
type FileSystem interface {
	ReadText(path string) (string, error)
	WriteText(path, text string) error
}

// ReindentFile reads path through fsys, reindents its contents, and writes
// the result back. The file is only written when the text actually changed;
// the returned bool reports whether it was.
func ReindentFile(fsys FileSystem, path, indentUnit string, tabWidth int) (bool, error) {
	text, err := fsys.ReadText(path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	out, err := Reindent(text, indentUnit, tabWidth)
	if err != nil {
		return false, err
	}
	if out == text {
		return false, nil
	}
	if err := fsys.WriteText(path, out); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}
