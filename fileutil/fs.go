package fileutil

import (
	"os"

	"github.com/toolbelt/belt/indent"
)

// OS adapts the host filesystem to the capability interfaces consumed
// elsewhere in the module, indent.FileSystem among them.
type OS struct{}

var _ indent.FileSystem = OS{}

// ReadText reads the entire file at path as a UTF-8 string.
func (OS) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteText writes text to path atomically via WriteText.
func (OS) WriteText(path, text string) error {
	return WriteText(path, text)
}
