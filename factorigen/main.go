// factorigen generates typed override helpers for factori fixtures.
// Install it with `go install github.com/toejough/factori/factorigen@latest` and add
// `//go:generate factorigen <Type>` next to a struct. Each exported field F gets a
// `<Type>F(value) factori.Field` helper in generated_<Type>Fields.go, or in a _test.go
// file when the directive sits in a test file. Use `--prefix` to rename the helpers and
// `--output` to pick the file name. Project-wide settings live in factorigen.yaml.
package main

import (
	"fmt"
	"go/token"
	"os"

	"github.com/dave/dst"
	"github.com/toejough/factori/factorigen/run"
	load "github.com/toejough/factori/factorigen/run/1_load"
)

func main() {
	err := run.Run(os.Args, os.Getenv, &realFileSystem{}, &realPackageLoader{}, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// realFileSystem implements run.FileSystem using the os package.
type realFileSystem struct{}

// WriteFile writes data to the file named by name.
func (fs *realFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	err := os.WriteFile(name, data, perm)
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", name, err)
	}

	return nil
}

// realPackageLoader implements run.PackageLoader with direct dst parsing.
type realPackageLoader struct{}

// Load parses the package in dir.
func (pl *realPackageLoader) Load(dir string) ([]*dst.File, *token.FileSet, error) {
	return load.PackageDST(dir)
}
