// Package load parses the Go files of a package directory into dst trees.
package load

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
)

// ErrNoGoFiles is returned when a directory holds no parseable Go files.
var ErrNoGoFiles = errors.New("no go files found")

// PackageDST parses every .go file in dir, test files included, without type checking.
// Files that fail to parse are skipped.
func PackageDST(dir string) ([]*dst.File, *token.FileSet, error) {
	if dir == "" || dir == "." {
		wd, err := os.Getwd()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get working directory: %w", err)
		}

		dir = wd
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	fset := token.NewFileSet()
	dec := decorator.NewDecorator(fset)
	files := make([]*dst.File, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") {
			continue
		}

		file, err := dec.ParseFile(filepath.Join(dir, entry.Name()), nil, 0)
		if err != nil {
			continue
		}

		files = append(files, file)
	}

	if len(files) == 0 {
		return nil, nil, fmt.Errorf("%w in %s", ErrNoGoFiles, dir)
	}

	return files, fset, nil
}
