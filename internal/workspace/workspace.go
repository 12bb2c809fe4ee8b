package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pipe01/hyper/internal/parser"
	"github.com/pipe01/hyper/internal/parser/ast"
)

type Mode int

const (
	// ModeModule parses files as a list of component definitions
	ModeModule Mode = iota

	// ModeElement parses files as a single element
	ModeElement
)

type Options struct {
	Mode     Mode
	MaxDepth int
}

type File struct {
	Path   string
	Source string
	Root   ast.Node
}

// Workspace parses files relative to a root directory and caches the results
// until they are forgotten.
type Workspace struct {
	rootPath string
	opts     Options

	mu          sync.Mutex
	parsedFiles map[string]*File
}

func New(rootPath string, opts Options) *Workspace {
	return &Workspace{
		rootPath:    rootPath,
		opts:        opts,
		parsedFiles: make(map[string]*File),
	}
}

func (w *Workspace) fullPath(relPath string) string {
	if filepath.IsAbs(relPath) {
		return filepath.Clean(relPath)
	}

	return filepath.Join(w.rootPath, relPath)
}

// Load reads and parses the file at relPath, returning the cached result if
// it was already loaded.
func (w *Workspace) Load(relPath string) (*File, error) {
	fullPath := w.fullPath(relPath)

	w.mu.Lock()
	f, ok := w.parsedFiles[fullPath]
	w.mu.Unlock()

	if ok {
		return f, nil
	}

	bytes, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return w.LoadWithContents(relPath, bytes)
}

// LoadWithContents parses contents as if they were the file at relPath and
// replaces any cached result for it.
func (w *Workspace) LoadWithContents(relPath string, contents []byte) (*File, error) {
	fullPath := w.fullPath(relPath)

	file := &File{
		Path:   fullPath,
		Source: string(contents),
	}

	opts := parser.Options{
		FileName: relPath,
		MaxDepth: w.opts.MaxDepth,
	}

	var err error

	switch w.opts.Mode {
	case ModeElement:
		file.Root, err = opts.ParseElement(file.Source)
	default:
		file.Root, err = opts.Parse(file.Source)
	}
	if err != nil {
		return nil, fmt.Errorf("parse file: %w", err)
	}

	w.mu.Lock()
	w.parsedFiles[fullPath] = file
	w.mu.Unlock()

	return file, nil
}

// Forget drops the cached result for relPath so the next Load reads it again.
func (w *Workspace) Forget(relPath string) {
	w.mu.Lock()
	delete(w.parsedFiles, w.fullPath(relPath))
	w.mu.Unlock()
}
