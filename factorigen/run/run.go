// Package run implements the factorigen command in a testable way.
package run

import (
	"errors"
	"fmt"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dave/dst"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	detect "github.com/toejough/factori/factorigen/run/2_detect"
	generate "github.com/toejough/factori/factorigen/run/3_generate"
	output "github.com/toejough/factori/factorigen/run/4_output"
)

// Interfaces - Public

// FileSystem writes generated files.
type FileSystem interface {
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// PackageLoader parses the Go files of a package directory.
type PackageLoader interface {
	Load(dir string) ([]*dst.File, *token.FileSet, error)
}

// ErrInvalidTypeName is returned when the type argument is not a Go identifier.
var ErrInvalidTypeName = errors.New("invalid type name")

// Functions - Public

// NewCommand builds the factorigen command. Logs go to logOut.
func NewCommand(getEnv func(string) string, fileSys FileSystem, pkgLoader PackageLoader, logOut io.Writer) *cobra.Command {
	var (
		configPath string
		outputName string
		prefix     string
	)

	defaults := DefaultConfig()

	cmd := &cobra.Command{
		Use:   "factorigen <Type>",
		Short: "Generate typed factori override helpers for a struct",
		Long: "factorigen reads the struct named by <Type> from the package in the working directory and\n" +
			"writes one <Prefix><Field>(value) factori.Field helper per exported field.",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath, cmd.Flags().Changed("config"), cmd.Flags())
			if err != nil {
				return err
			}

			gen := generator{
				cfg:        cfg,
				getEnv:     getEnv,
				fileSys:    fileSys,
				pkgLoader:  pkgLoader,
				logger:     newLogger(logOut, cfg.Verbose),
				outputName: outputName,
				prefix:     prefix,
			}

			return gen.run(args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", DefaultConfigFile, "config file")
	flags.StringVar(&outputName, "output", "", "output file name (defaults to generated_<Type>Fields.go)")
	flags.StringVar(&prefix, "prefix", "", "helper name prefix (defaults to <Type>)")
	flags.String("dir", defaults.Dir, "package directory")
	flags.String("import", defaults.Import, "factori import path for generated code")
	flags.Bool("lazy", defaults.Lazy, "also generate <Prefix><Field>Func helpers")
	flags.Bool("reorder", defaults.Reorder, "reorder declarations in the generated file")
	flags.BoolP("verbose", "v", defaults.Verbose, "log debug output")

	return cmd
}

// Run executes factorigen with os-style args, where args[0] is the program name.
func Run(args []string, getEnv func(string) string, fileSys FileSystem, pkgLoader PackageLoader, logOut io.Writer) error {
	cmd := NewCommand(getEnv, fileSys, pkgLoader, logOut)
	cmd.SetOut(logOut)
	cmd.SetErr(logOut)

	if len(args) > 0 {
		args = args[1:]
	}

	cmd.SetArgs(args)

	return cmd.Execute()
}

// Structs - Private

type generator struct {
	cfg        Config
	getEnv     func(string) string
	fileSys    FileSystem
	pkgLoader  PackageLoader
	logger     zerolog.Logger
	outputName string
	prefix     string
}

func (g generator) run(typeName string) error {
	if !token.IsIdentifier(typeName) {
		return fmt.Errorf("%w: %q", ErrInvalidTypeName, typeName)
	}

	g.logger.Debug().Str("dir", g.cfg.Dir).Str("type", typeName).Msg("loading package")

	files, _, err := g.pkgLoader.Load(g.cfg.Dir)
	if err != nil {
		return fmt.Errorf("failed to load package in %s: %w", g.cfg.Dir, err)
	}

	target, err := detect.FindStruct(files, g.getEnv("GOPACKAGE"), typeName)
	if err != nil {
		return err
	}

	g.logger.Debug().Str("package", target.Package).Int("fields", len(target.Fields)).Msg("found struct")

	code, err := generate.Source(target, generate.Options{
		Prefix:      g.prefix,
		FactoriPath: g.cfg.Import,
		Lazy:        g.cfg.Lazy,
	})
	if err != nil {
		return err
	}

	filename := output.Filename(target.Name, target.Package, g.getEnv("GOFILE"), g.outputName)
	if !filepath.IsAbs(filename) {
		filename = filepath.Join(g.cfg.Dir, filename)
	}

	return output.Write(code, filename, g.cfg.Reorder, g.fileSys, g.logger)
}

// Functions - Private

func newLogger(out io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{Out: out, NoColor: true, TimeFormat: time.RFC3339}

	return zerolog.New(writer).Level(level).With().Timestamp().Str("component", "factorigen").Logger()
}
