// Package output names and writes generated helper files.
package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/toejough/go-reorder"
)

// Writer writes generated code.
type Writer interface {
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// Filename picks the output file for typeName. An explicit name wins; otherwise the file
// is generated_<typeName>Fields.go, or _test.go when the package or the go:generate
// source file is a test.
func Filename(typeName, pkgName, goFile, explicit string) string {
	if explicit != "" {
		if strings.HasSuffix(explicit, ".go") {
			return explicit
		}

		return explicit + ".go"
	}

	name := "generated_" + typeName + "Fields"
	if strings.HasSuffix(pkgName, "_test") || strings.HasSuffix(goFile, "_test.go") {
		return name + "_test.go"
	}

	return name + ".go"
}

// Write stores code in filename, reordering declarations first when asked. A reorder
// failure is logged and the code is written as rendered.
func Write(code, filename string, reorderDecls bool, fileWriter Writer, logger zerolog.Logger) error {
	const generatedFilePermissions = 0o600

	if reorderDecls {
		reordered, err := reorder.Source(code)
		if err != nil {
			logger.Warn().Err(err).Str("file", filename).Msg("failed to reorder generated code")
		} else {
			code = reordered
		}
	}

	err := fileWriter.WriteFile(filename, []byte(code), generatedFilePermissions)
	if err != nil {
		return fmt.Errorf("error writing %s: %w", filename, err)
	}

	logger.Info().Str("file", filename).Msg("written successfully")

	return nil
}
