package run_test

import (
	"go/token"
	"os"
	"sync"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
)

// memFileSystem records written files.
type memFileSystem struct {
	mu    sync.Mutex
	files map[string][]byte
	err   error
}

func (m *memFileSystem) WriteFile(name string, data []byte, _ os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}

	m.files[name] = data

	return nil
}

func (m *memFileSystem) written() map[string][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.files
}

// memLoader parses sources held in memory, keyed by file name.
type memLoader struct {
	sources map[string][]byte
	err     error
	dirs    []string
}

func (l *memLoader) Load(dir string) ([]*dst.File, *token.FileSet, error) {
	l.dirs = append(l.dirs, dir)

	if l.err != nil {
		return nil, nil, l.err
	}

	fset := token.NewFileSet()
	dec := decorator.NewDecorator(fset)
	files := make([]*dst.File, 0, len(l.sources))

	for name, source := range l.sources {
		file, err := dec.ParseFile(name, source, 0)
		if err != nil {
			return nil, nil, err
		}

		files = append(files, file)
	}

	return files, fset, nil
}

func envFunc(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func newMemFileSystem() *memFileSystem {
	return &memFileSystem{files: make(map[string][]byte)}
}
