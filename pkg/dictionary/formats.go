package dictionary

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// textExtensions lists the extensions we expect for word lists. Others
// are loaded anyway, with a warning.
var textExtensions = []string{".txt", ".dic", ".lst", ""}

// ValidateFile checks that path names an existing regular file before
// it is loaded.
func ValidateFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &ReadError{Path: path, Err: err}
	}
	if info.IsDir() {
		return &ReadError{Path: path, Err: fmt.Errorf("is a directory")}
	}
	if info.Size() == 0 {
		log.Warnf("Dictionary %s is empty, every solve will return no candidates", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	known := false
	for _, e := range textExtensions {
		if ext == e {
			known = true
			break
		}
	}
	if !known {
		log.Warnf("Dictionary %s has unexpected extension %s (expected: %v)", path, ext, textExtensions)
	}
	return nil
}
