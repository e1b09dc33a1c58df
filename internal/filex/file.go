// Package filex holds small filesystem helpers for the CLI.
package filex

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// EnsureParentDir creates the directory that will hold path, so a database
// file can be opened there. A bare file name needs nothing.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// ReadImage loads a photo from disk and guesses its content type from the
// extension.
func ReadImage(path string) (name, contentType string, data []byte, err error) {
	data, err = os.ReadFile(path)
	if err != nil {
		return "", "", nil, fmt.Errorf("read %s: %w", path, err)
	}
	name = filepath.Base(path)
	contentType = mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return name, contentType, data, nil
}
